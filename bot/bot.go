package bot

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/bwmarrin/discordgo"
	"github.com/tattybubutashtanova/histmatch/imp"
	"github.com/tattybubutashtanova/histmatch/input"
	"github.com/tattybubutashtanova/histmatch/models"
)

// Config holds what the bot needs to run.
type Config struct {
	Token   string
	DB      string
	Prefix  string
	Preview uint // largest width or height of replied images
	Fetcher *input.Fetcher
}

// Run runs the bot.
func Run(cfg Config) {
	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		fmt.Println("couldn't create Discord session:", err)
		return
	}

	db, err := models.Open(cfg.DB)
	if err != nil {
		fmt.Println("couldn't connect to db:", err)
		return
	}
	defer db.Close()

	h := &handlers{fetcher: cfg.Fetcher, preview: cfg.Preview}
	if h.fetcher == nil {
		h.fetcher = &input.Fetcher{}
	}

	router := exrouter.New()

	router.Group(func(r *exrouter.Route) {
		r.Use(logMiddleware, dbMiddleware(db))
		r.On("match", h.match).Desc("match the first attachment to a saved reference, or to the second attachment (alias: m)").Alias("m")
		r.On("equalize", h.pointOp("equalized", imp.Equalize)).Desc("equalize the histogram of an attachment (alias: eq)").Alias("eq")
		r.On("stretch", h.pointOp("stretched", imp.Stretch)).Desc("stretch the gray levels of an attachment")
	})

	router.On("refs", func(*exrouter.Context) {}).Group(func(r *exrouter.Route) {
		r.Use(logMiddleware, dbMiddleware(db))
		r.On("list", listReferences).Desc("list saved references (alias: ls)").Alias("ls")
		r.On("save", h.saveReference).Desc("save the histogram of an attachment under a name")
		r.On("remove", removeReference).Desc("delete a saved reference (alias: rm)").Alias("rm")
	}).Desc("handle reference histograms (alias: r)").Alias("r")

	router.Default = router.On("help", func(ctx *exrouter.Context) {
		var f func(depth int, r *exrouter.Route) string
		f = func(depth int, r *exrouter.Route) string {
			text := ""
			for _, v := range r.Routes {
				text += strings.Repeat("  ", depth) + v.Name + ": " + v.Description + "\n"
				text += f(depth+1, &exrouter.Route{Route: v})
			}
			return text
		}
		ctx.Reply("```" + f(0, router) + "```")
	}).Desc("print this help menu (aliases: [h])").Alias("h")

	dg.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil || m.Author.ID == s.State.User.ID {
			return
		}
		router.FindAndExecute(s, cfg.Prefix, s.State.User.ID, m.Message)
	})

	err = dg.Open()
	if err != nil {
		fmt.Println("error opening connection:", err)
		return
	}

	fmt.Println("Up & running")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Cleanly close down the Discord session.
	dg.Close()
}
