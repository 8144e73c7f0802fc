package input

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/tattybubutashtanova/histmatch/imp"
)

// DefaultMaxBytes is the largest image a Fetcher downloads by default.
const DefaultMaxBytes = 20 << 20

// ErrTooLarge is returned when a remote image exceeds the download limit.
var ErrTooLarge = errors.New("image too large")

// A Fetcher downloads images over HTTP(S) and decodes them as grayscale.
type Fetcher struct {
	Client   *http.Client
	MaxBytes int64
}

// Fetch downloads the image at url.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*image.Gray, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", imp.ErrNotFound, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s: %s", imp.ErrNotFound, url, resp.Status)
	}

	limit := f.maxBytes()
	if resp.ContentLength > limit {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, url, resp.ContentLength)
	}
	data, err := ioutil.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, url, limit)
	}

	img, err := imp.ReadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	return imp.ToGray(img), nil
}

func (f *Fetcher) client() *http.Client {
	if f.Client == nil {
		return http.DefaultClient
	}
	return f.Client
}

func (f *Fetcher) maxBytes() int64 {
	if f.MaxBytes <= 0 {
		return DefaultMaxBytes
	}
	return f.MaxBytes
}

// IsURL returns true if location should be fetched rather than read from
// the filesystem.
func IsURL(location string) bool {
	l := strings.ToLower(location)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// Open reads a grayscale image from a URL or a file path.
func (f *Fetcher) Open(ctx context.Context, location string) (*image.Gray, error) {
	if IsURL(location) {
		return f.Fetch(ctx, location)
	}
	return imp.ReadGrayFile(location)
}
