package bot

import (
	"errors"
	"testing"

	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/bwmarrin/discordgo"
	"github.com/tattybubutashtanova/histmatch/imp"
	"github.com/tattybubutashtanova/histmatch/models"
)

func TestMatchTarget(t *testing.T) {
	one := []*discordgo.MessageAttachment{{Filename: "a.png"}}
	two := []*discordgo.MessageAttachment{{Filename: "a.png"}, {Filename: "b.png"}}
	cases := []struct {
		args exrouter.Args
		atts []*discordgo.MessageAttachment
		name string
		ok   bool
	}{
		{exrouter.Args{"match", "dusk"}, one, "dusk", true},
		{exrouter.Args{"match", "late", "dusk"}, one, "late dusk", true},
		{exrouter.Args{"match"}, two, "", true},
		{exrouter.Args{"match"}, one, "", false},
		{exrouter.Args{"match", "dusk"}, nil, "dusk", false},
		{exrouter.Args{"match"}, nil, "", false},
	}
	for _, c := range cases {
		name, ok := matchTarget(c.args, c.atts)
		if name != c.name || ok != c.ok {
			t.Errorf("matchTarget(%v, %d attachments): got (%q, %v), want (%q, %v)", c.args, len(c.atts), name, ok, c.name, c.ok)
		}
	}
}

func TestLookupReference(t *testing.T) {
	db := openTestDB(t)
	want := imp.ComputeHistogram(grayImage(2, 1, 10, 20))
	if _, err := models.SaveReference(db, "42", "dusk", want); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		scope, name string
		found       bool
	}{
		{"42", "dusk", true},
		{"42", "dsk", true},
		{"42", "dust", true},
		{"42", "dustx", false},
		{"42", "night", false},
		{"dm:7", "dusk", false},
	}
	for _, c := range cases {
		ref, h, err := lookupReference(db, c.scope, c.name)
		if !c.found {
			if !errors.Is(err, errUnknownReference) {
				t.Errorf("%s/%s: got %v, want errUnknownReference", c.scope, c.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s/%s: %v", c.scope, c.name, err)
			continue
		}
		if ref.Name != "dusk" || h != want {
			t.Errorf("%s/%s: got %q", c.scope, c.name, ref.Name)
		}
	}
}

func TestMatchSavedReference(t *testing.T) {
	f := newFakeDiscord(t)
	db := openTestDB(t)
	if _, err := models.SaveReference(db, "42", "gray", imp.ComputeHistogram(grayImage(1, 1, 100))); err != nil {
		t.Fatal(err)
	}

	m := &discordgo.Message{
		GuildID:     "42",
		ChannelID:   "c1",
		Attachments: []*discordgo.MessageAttachment{f.attach(t, "src.png", grayImage(2, 2, 0, 0, 255, 255))},
	}
	f.run(t, db, testHandlers().match, m, "match", "grey")

	name, out := f.sentImage(t)
	if name != "src_matched.png" {
		t.Errorf("got file %q", name)
	}
	for i, v := range out.Pix {
		if v != 100 {
			t.Fatalf("pixel %d: got %d, want 100", i, v)
		}
	}
	if !f.said("CDF distance to @gray: 0.5000 → 0.0000") {
		t.Errorf("missing distances in %v", f.sent())
	}

	runs, err := models.ListRuns(db, "42", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected one run, got %v", runs)
	}
	if r := runs[0]; r.Source != "src.png" || r.Reference != "@gray" || r.Output != "src_matched.png" || r.Before != 0.5 || r.After != 0 {
		t.Errorf("unexpected run %v", r)
	}
}

func TestMatchUnknownReference(t *testing.T) {
	cases := []struct {
		name      string
		guild     string
		reference string
	}{
		{"too far", "42", "dustx"},
		{"other guild", "43", "gray"},
		{"direct message", "", "gray"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFakeDiscord(t)
			db := openTestDB(t)
			if _, err := models.SaveReference(db, "42", "gray", imp.ComputeHistogram(grayImage(1, 1, 100))); err != nil {
				t.Fatal(err)
			}
			m := &discordgo.Message{
				GuildID:     c.guild,
				ChannelID:   "c1",
				Attachments: []*discordgo.MessageAttachment{f.attach(t, "src.png", grayImage(1, 1, 0))},
			}
			f.run(t, db, testHandlers().match, m, "match", c.reference)

			if !f.said("No such reference") {
				t.Errorf("expected an error message, got %v", f.sent())
			}
			if r := f.reacted(); len(r) != 1 || r[0] != "💩" {
				t.Errorf("unexpected reactions %v", r)
			}
			for _, msg := range f.sent() {
				if msg.File != "" {
					t.Errorf("unexpected file %q", msg.File)
				}
			}
			runs, err := models.ListRuns(db, scopeOf(m), 10)
			if err != nil {
				t.Fatal(err)
			}
			if len(runs) != 0 {
				t.Errorf("unexpected runs %v", runs)
			}
		})
	}
}

func TestMatchAttachments(t *testing.T) {
	f := newFakeDiscord(t)
	db := openTestDB(t)
	m := &discordgo.Message{
		ChannelID: "c1",
		Attachments: []*discordgo.MessageAttachment{
			f.attach(t, "src.png", grayImage(2, 2, 0, 0, 255, 255)),
			f.attach(t, "ref.png", grayImage(1, 1, 100)),
		},
	}
	f.run(t, db, testHandlers().match, m, "match")

	if _, out := f.sentImage(t); out.Pix[0] != 100 || out.Pix[3] != 100 {
		t.Errorf("unexpected output %v", out.Pix)
	}
	runs, err := models.ListRuns(db, "dm:c1", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Reference != "ref.png" {
		t.Errorf("unexpected runs %v", runs)
	}
}

func TestMatchNeedsTwoAttachments(t *testing.T) {
	f := newFakeDiscord(t)
	db := openTestDB(t)
	m := &discordgo.Message{
		ChannelID:   "c1",
		Attachments: []*discordgo.MessageAttachment{f.attach(t, "src.png", grayImage(1, 1, 0))},
	}
	f.run(t, db, testHandlers().match, m, "match")

	if !f.said("syntax: `match") {
		t.Errorf("expected usage, got %v", f.sent())
	}
	runs, err := models.ListRuns(db, "dm:c1", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("unexpected runs %v", runs)
	}
}

func TestPointOp(t *testing.T) {
	f := newFakeDiscord(t)
	db := openTestDB(t)
	h := testHandlers()
	m := &discordgo.Message{
		ChannelID:   "c1",
		Attachments: []*discordgo.MessageAttachment{f.attach(t, "src.png", grayImage(2, 2, 50, 50, 200, 200))},
	}
	f.run(t, db, h.pointOp("equalized", imp.Equalize), m, "equalize")

	name, out := f.sentImage(t)
	if name != "src_equalized.png" {
		t.Errorf("got file %q", name)
	}
	want := []uint8{0, 0, 255, 255}
	for i := range want {
		if out.Pix[i] != want[i] {
			t.Fatalf("got %v, want %v", out.Pix, want)
		}
	}

	f.run(t, db, h.pointOp("stretched", imp.Stretch), &discordgo.Message{ChannelID: "c1"}, "stretch")
	if !f.said("syntax: `stretch") {
		t.Errorf("expected usage, got %v", f.sent())
	}
}

func TestMatchMissingAttachment(t *testing.T) {
	f := newFakeDiscord(t)
	db := openTestDB(t)
	m := &discordgo.Message{
		ChannelID: "c1",
		Attachments: []*discordgo.MessageAttachment{{
			Filename: "gone.png",
			URL:      f.srv.URL + "/attachments/gone.png",
			Width:    1,
			Height:   1,
		}},
	}
	f.run(t, db, testHandlers().pointOp("equalized", imp.Equalize), m, "equalize")

	if !f.said("Couldn't open") {
		t.Errorf("expected a warning, got %v", f.sent())
	}
	if r := f.reacted(); len(r) != 1 || r[0] != "💩" {
		t.Errorf("unexpected reactions %v", r)
	}
}
