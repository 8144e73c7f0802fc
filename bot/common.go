package bot

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"path"
	"strings"

	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/bwmarrin/discordgo"
	"github.com/disintegration/imaging"
	"github.com/jinzhu/gorm"
	"github.com/tattybubutashtanova/histmatch/imp"
)

var errNoDB = errors.New("couldn't get DB from context")

// React with a poopy (indicate failure)
func markPoop(ctx *exrouter.Context) {
	ctx.Ses.MessageReactionAdd(ctx.Msg.ChannelID, ctx.Msg.ID, "💩")
}

// React with a thumbs up (indicate success)
func markOk(ctx *exrouter.Context) {
	ctx.Ses.MessageReactionAdd(ctx.Msg.ChannelID, ctx.Msg.ID, "👍")
}

// Report an error
func sendError(ctx *exrouter.Context, err error) {
	ctx.Reply("📛 ", err)
}

// Report an information
func sendInfo(ctx *exrouter.Context, args ...interface{}) {
	ctx.Reply("ℹ️  ", fmt.Sprint(args...))
}

// Report a warning
func sendWarning(ctx *exrouter.Context, args ...interface{}) {
	ctx.Reply("⚠️  ", fmt.Sprint(args...))
}

// Report an internal error
func internalError(ctx *exrouter.Context, err error) {
	sendError(ctx, fmt.Errorf("Internal error (`%w`)", err))
}

// Send correct command syntax
func sendUsage(ctx *exrouter.Context, syntax string) {
	sendWarning(ctx, fmt.Sprintf("syntax: `%s %s`", ctx.Args[0], syntax))
}

// Send an image as a PNG attachment, downsized to the preview size.
func sendImage(ctx *exrouter.Context, name string, img image.Image, preview uint) error {
	if preview > 0 {
		img = imp.Thumbnail(img, preview, preview)
	}
	var b bytes.Buffer
	if err := imp.Encode(&b, img, imaging.PNG); err != nil {
		return err
	}
	_, err := ctx.Ses.ChannelFileSend(ctx.Msg.ChannelID, name, &b)
	return err
}

// Get database instance from the context
func getDB(ctx *exrouter.Context) (db *gorm.DB, err error) {
	db, _ = ctx.Get("db").(*gorm.DB)
	if db == nil {
		err = errNoDB
	}
	return
}

// Helper to execute a database transaction
func transaction(ctx *exrouter.Context, fn func(*gorm.DB) error) error {
	db, err := getDB(ctx)
	if err != nil {
		internalError(ctx, err)
		return err
	}
	return db.Transaction(fn)
}

// The scope of references of a message: its guild, or its channel for
// direct messages.
func scopeOf(m *discordgo.Message) string {
	if m.GuildID != "" {
		return m.GuildID
	}
	return "dm:" + m.ChannelID
}

// Attachments of a message that look like images.
func imageAttachments(m *discordgo.Message) []*discordgo.MessageAttachment {
	res := make([]*discordgo.MessageAttachment, 0, len(m.Attachments))
	for _, att := range m.Attachments {
		if att.Width > 0 && att.Height > 0 {
			res = append(res, att)
		}
	}
	return res
}

// Name of the file replied for an attachment, e.g. "cat.jpg" -> "cat_matched.png".
func outputName(filename, suffix string) string {
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	if base == "" || base == "." || base == "/" {
		base = "image"
	}
	return base + "_" + suffix + ".png"
}
