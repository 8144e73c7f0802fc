package bot

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"strings"

	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/bwmarrin/discordgo"
	"github.com/jinzhu/gorm"
	"github.com/tattybubutashtanova/histmatch/imp"
	"github.com/tattybubutashtanova/histmatch/input"
	"github.com/tattybubutashtanova/histmatch/models"
)

// Largest edit distance tolerated when looking a reference up by name.
const maxNameDistance = 2

// Commands that need to download attachments.
type handlers struct {
	fetcher *input.Fetcher
	preview uint
}

// Download an attachment as a grayscale image, warning the user on failure.
func (h *handlers) download(ctx *exrouter.Context, att *discordgo.MessageAttachment) (*image.Gray, bool) {
	log.Println("Downloading attachment", att.URL)
	img, err := h.fetcher.Fetch(context.Background(), att.URL)
	if err != nil {
		sendWarning(ctx, fmt.Sprintf("Couldn't open <%s>: `%s`\n", att.URL, err))
		markPoop(ctx)
		return nil, false
	}
	return img, true
}

var errUnknownReference = errors.New("No such reference")

// Name of the saved reference a match command targets, empty when the second
// attachment is the reference. ok is false when attachments are missing.
func matchTarget(args exrouter.Args, atts []*discordgo.MessageAttachment) (name string, ok bool) {
	name = strings.TrimSpace(args.After(1))
	if len(atts) == 0 || (name == "" && len(atts) < 2) {
		return name, false
	}
	return name, true
}

// Find the saved reference of a scope closest to name, and its histogram.
func lookupReference(db *gorm.DB, scope, name string) (models.Reference, imp.Histogram, error) {
	ref, score, err := models.FindClosestReference(db, scope, name)
	if errors.Is(err, models.ErrNoSuchReference) || (err == nil && score > maxNameDistance) {
		return models.Reference{}, imp.Histogram{}, fmt.Errorf("%w: `%s`", errUnknownReference, name)
	} else if err != nil {
		return models.Reference{}, imp.Histogram{}, err
	}
	h, err := ref.Histogram()
	return ref, h, err
}

// Match the first attachment to a saved reference or to the second attachment.
func (h *handlers) match(ctx *exrouter.Context) {
	atts := imageAttachments(ctx.Msg)
	name, ok := matchTarget(ctx.Args, atts)
	if !ok {
		sendUsage(ctx, "[<reference>] + attach a source image (and a reference image if no name is given)")
		return
	}

	src, ok := h.download(ctx, atts[0])
	if !ok {
		return
	}

	var (
		out      *image.Gray
		rep      *imp.Report
		refLabel string
		err      error
	)
	if name != "" {
		var ref models.Reference
		ref, rep, err = h.matchReference(ctx, name, src)
		if err != nil {
			return
		}
		refLabel = "@" + ref.Name
		out = rep.LUT.Apply(src)
	} else {
		refImg, ok := h.download(ctx, atts[1])
		if !ok {
			return
		}
		if out, err = imp.Match(src, refImg); err != nil {
			sendError(ctx, err)
			return
		}
		if rep, err = imp.NewReport(imp.ComputeHistogram(src), imp.ComputeHistogram(refImg)); err != nil {
			internalError(ctx, err)
			return
		}
		refLabel = atts[1].Filename
	}

	outName := outputName(atts[0].Filename, "matched")
	if err := sendImage(ctx, outName, out, h.preview); err != nil {
		internalError(ctx, err)
		return
	}
	sendInfo(ctx, fmt.Sprintf("CDF distance to %s: %.4f → %.4f", refLabel, rep.Before(), rep.After()))

	transaction(ctx, func(tx *gorm.DB) error {
		run := models.NewRun(scopeOf(ctx.Msg), atts[0].Filename, refLabel, outName, rep)
		if err := models.RecordRun(tx, &run); err != nil {
			log.Println("couldn't record run:", err)
			return err
		}
		return nil
	})
}

// Build the report of matching src to the saved reference closest to name.
func (h *handlers) matchReference(ctx *exrouter.Context, name string, src *image.Gray) (models.Reference, *imp.Report, error) {
	var (
		ref  models.Reference
		hist imp.Histogram
	)
	err := transaction(ctx, func(tx *gorm.DB) error {
		var err error
		ref, hist, err = lookupReference(tx, scopeOf(ctx.Msg), name)
		if errors.Is(err, errUnknownReference) {
			sendError(ctx, err)
			markPoop(ctx)
		} else if err != nil {
			internalError(ctx, err)
		}
		return err
	})
	if err != nil {
		return ref, nil, err
	}

	rep, err := imp.NewReport(imp.ComputeHistogram(src), hist)
	if err != nil {
		sendError(ctx, err)
		return ref, nil, err
	}
	return ref, rep, nil
}

// Build a command that applies a point operation to the first attachment.
func (h *handlers) pointOp(suffix string, op func(image.Image) (*image.Gray, error)) exrouter.HandlerFunc {
	return func(ctx *exrouter.Context) {
		atts := imageAttachments(ctx.Msg)
		if len(atts) == 0 {
			sendUsage(ctx, "+ attach an image")
			return
		}
		src, ok := h.download(ctx, atts[0])
		if !ok {
			return
		}
		out, err := op(src)
		if err != nil {
			sendError(ctx, err)
			return
		}
		if err := sendImage(ctx, outputName(atts[0].Filename, suffix), out, h.preview); err != nil {
			internalError(ctx, err)
		}
	}
}
