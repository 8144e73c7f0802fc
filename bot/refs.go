package bot

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/jinzhu/gorm"
	"github.com/tattybubutashtanova/histmatch/imp"
	"github.com/tattybubutashtanova/histmatch/models"
)

// List saved references
func listReferences(ctx *exrouter.Context) {
	var refs []models.Reference
	err := transaction(ctx, func(tx *gorm.DB) error {
		var err error
		refs, err = models.ListReferences(tx, scopeOf(ctx.Msg))
		if err != nil {
			internalError(ctx, err)
		}
		return err
	})
	if err != nil {
		return
	}
	if len(refs) == 0 {
		sendWarning(ctx, "There are no references yet. Use `refs save <name>` with an attached image to create one.")
		return
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 5, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tPIXELS\tRANGE\t")
	for _, r := range refs {
		lo, hi := "?", "?"
		if h, err := r.Histogram(); err == nil {
			l, u, _ := h.Bounds()
			lo, hi = fmt.Sprint(l), fmt.Sprint(u)
		}
		fmt.Fprintf(w, "%s\t%d\t%s-%s\t\n", r.Name, r.Pixels, lo, hi)
	}
	w.Flush()
	ctx.Reply("```" + b.String() + "```")
}

// Save the histogram of the attached image under a name
func (h *handlers) saveReference(ctx *exrouter.Context) {
	atts := imageAttachments(ctx.Msg)
	if len(ctx.Args) < 2 || len(atts) == 0 {
		sendUsage(ctx, "<name> + attach an image")
		return
	}
	name := strings.Join(ctx.Args[1:], " ")

	img, ok := h.download(ctx, atts[0])
	if !ok {
		return
	}

	err := transaction(ctx, func(tx *gorm.DB) error {
		r, err := models.SaveReference(tx, scopeOf(ctx.Msg), name, imp.ComputeHistogram(img))
		if err != nil {
			internalError(ctx, err)
			return err
		}
		sendInfo(ctx, "Saved reference **", r.Name, "** (", r.Pixels, " pixels)")
		return nil
	})
	if err == nil {
		markOk(ctx)
	}
}

// Delete a saved reference
func removeReference(ctx *exrouter.Context) {
	if len(ctx.Args) < 2 {
		sendUsage(ctx, "<name>")
		return
	}
	name := strings.Join(ctx.Args[1:], " ")

	err := transaction(ctx, func(tx *gorm.DB) error {
		r, err := models.FindReference(tx, scopeOf(ctx.Msg), name)
		if gorm.IsRecordNotFoundError(err) {
			sendError(ctx, errors.New("No such reference"))
			markPoop(ctx)
			return err
		} else if err != nil {
			internalError(ctx, err)
			return err
		}
		if err := r.Delete(tx); err != nil {
			internalError(ctx, err)
			return err
		}
		return nil
	})
	if err == nil {
		markOk(ctx)
	}
}
