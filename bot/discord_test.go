package bot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/bwmarrin/discordgo"
	"github.com/disintegration/imaging"
	"github.com/jinzhu/gorm"
	"github.com/tattybubutashtanova/histmatch/imp"
	"github.com/tattybubutashtanova/histmatch/input"
	"github.com/tattybubutashtanova/histmatch/models"
)

// A message posted to a channel, with its attached file if any.
type sentMessage struct {
	Content string
	File    string
	Data    []byte
}

// Stand-in for the Discord REST API, also serving attachments.
type fakeDiscord struct {
	mu        sync.Mutex
	messages  []sentMessage
	reactions []string
	files     map[string][]byte
	srv       *httptest.Server
}

func newFakeDiscord(t *testing.T) *fakeDiscord {
	t.Helper()
	f := &fakeDiscord{files: map[string][]byte{}}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	channels := discordgo.EndpointChannels
	discordgo.EndpointChannels = f.srv.URL + "/channels/"
	t.Cleanup(func() {
		discordgo.EndpointChannels = channels
		f.srv.Close()
	})
	return f
}

func (f *fakeDiscord) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case strings.HasPrefix(r.URL.Path, "/attachments/"):
		data, ok := f.files[path.Base(r.URL.Path)]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write(data)

	case r.Method == http.MethodPut && strings.Contains(r.URL.Path, "/reactions/"):
		// .../reactions/<emoji>/@me
		f.reactions = append(f.reactions, path.Base(path.Dir(r.URL.Path)))
		w.WriteHeader(http.StatusNoContent)

	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/messages"):
		var payload struct {
			Content string `json:"content"`
		}
		var msg sentMessage
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
			if err := r.ParseMultipartForm(10 << 20); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			json.Unmarshal([]byte(r.FormValue("payload_json")), &payload)
			if fhs := r.MultipartForm.File["file0"]; len(fhs) > 0 {
				file, err := fhs[0].Open()
				if err != nil {
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
				msg.File = fhs[0].Filename
				msg.Data, _ = ioutil.ReadAll(file)
				file.Close()
			}
		} else if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		msg.Content = payload.Content
		f.messages = append(f.messages, msg)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":"%d","channel_id":"c1"}`, len(f.messages))

	default:
		http.NotFound(w, r)
	}
}

// Serve img as a PNG attachment.
func (f *fakeDiscord) attach(t *testing.T, name string, img image.Image) *discordgo.MessageAttachment {
	t.Helper()
	var b bytes.Buffer
	if err := imp.Encode(&b, img, imaging.PNG); err != nil {
		t.Fatal(err)
	}
	f.mu.Lock()
	f.files[name] = b.Bytes()
	f.mu.Unlock()
	r := img.Bounds()
	return &discordgo.MessageAttachment{
		Filename: name,
		URL:      f.srv.URL + "/attachments/" + name,
		Width:    r.Dx(),
		Height:   r.Dy(),
	}
}

func (f *fakeDiscord) sent() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.messages...)
}

func (f *fakeDiscord) reacted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.reactions...)
}

// Whether any message contains s.
func (f *fakeDiscord) said(s string) bool {
	for _, m := range f.sent() {
		if strings.Contains(m.Content, s) {
			return true
		}
	}
	return false
}

// The first file sent, decoded.
func (f *fakeDiscord) sentImage(t *testing.T) (string, *image.Gray) {
	t.Helper()
	for _, m := range f.sent() {
		if m.File == "" {
			continue
		}
		img, err := imp.ReadBytes(m.Data)
		if err != nil {
			t.Fatal(err)
		}
		return m.File, imp.ToGray(img)
	}
	t.Fatalf("no image was sent, messages: %v", f.sent())
	return "", nil
}

// Run handler as if m had been routed to it with args.
func (f *fakeDiscord) run(t *testing.T, db *gorm.DB, handler exrouter.HandlerFunc, m *discordgo.Message, args ...string) {
	t.Helper()
	ses, err := discordgo.New()
	if err != nil {
		t.Fatal(err)
	}
	if m.ID == "" {
		m.ID = "m1"
	}
	dbMiddleware(db)(handler)(exrouter.NewContext(ses, m, args, nil))
}

func testHandlers() *handlers {
	return &handlers{fetcher: &input.Fetcher{}}
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := models.Open(filepath.Join(t.TempDir(), "bot.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	if err := models.Migrate(db); err != nil {
		t.Fatal(err)
	}
	return db
}

func grayImage(w, h int, pix ...uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	copy(img.Pix, pix)
	return img
}
