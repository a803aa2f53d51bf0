// Package imaging inspects uploaded images without decoding their pixels.
package imaging

import (
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/webp"
)

// ErrUnsupported is returned when the data is not a jpeg, png, gif or webp image.
var ErrUnsupported = errors.New("imaging: unsupported image format")

// Info describes an image header.
type Info struct {
	Format      string
	ContentType string
	Width       int
	Height      int
}

var contentTypes = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// Inspect reads just enough of r to determine format and dimensions.
func Inspect(r io.Reader) (Info, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return Info{}, ErrUnsupported
		}
		return Info{}, err
	}
	ct, ok := contentTypes[format]
	if !ok {
		return Info{}, ErrUnsupported
	}
	return Info{Format: format, ContentType: ct, Width: cfg.Width, Height: cfg.Height}, nil
}

// ContentTypeForExt maps an allowed upload extension (with dot, lower case) to its MIME type.
func ContentTypeForExt(ext string) (string, bool) {
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg", true
	case ".png":
		return "image/png", true
	case ".gif":
		return "image/gif", true
	case ".webp":
		return "image/webp", true
	}
	return "", false
}
