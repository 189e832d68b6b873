package assist

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// ErrNotImage is returned when a diagram file is not an image.
var ErrNotImage = errors.New("file is not an image")

// LoadImage reads a diagram from disk, enforcing maxBytes before reading it
// whole. maxBytes <= 0 selects DefaultMaxImageBytes.
func LoadImage(path string, maxBytes int) (*Image, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat image: %w", err)
	}
	if info.Size() > int64(maxBytes) {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrImageTooLarge, path, info.Size(), maxBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return NewImage(data)
}

// NewImage sniffs the MIME type of data and rejects non-images.
func NewImage(data []byte) (*Image, error) {
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return nil, fmt.Errorf("%w (detected %s)", ErrNotImage, mime)
	}
	return &Image{Data: data, MIMEType: mime}, nil
}
