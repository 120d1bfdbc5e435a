// Package cover probes cover art headers.
//
// Probing reads only as much of the image as the decoder needs for its
// configuration; pixel data is never decoded.
package cover

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"strings"

	// Registered decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrEmpty is returned by Probe for empty input.
var ErrEmpty = errors.New("cover: no image data")

// Info describes a probed image.
type Info struct {
	Width    int
	Height   int
	Format   string // decoder name: "jpeg", "png", ...
	MIMEType string // sniffed from content, "" if not an image
}

// Probe returns the dimensions and type of an encoded image.
//
// The MIME type is sniffed independently of decoding, so Info.MIMEType is
// filled in even when the header is corrupt and an error is returned.
func Probe(data []byte) (Info, error) {
	if len(data) == 0 {
		return Info{}, ErrEmpty
	}

	info := Info{MIMEType: sniff(data)}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return info, fmt.Errorf("cover: decode header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return info, fmt.Errorf("cover: invalid dimensions %dx%d", cfg.Width, cfg.Height)
	}

	info.Width = cfg.Width
	info.Height = cfg.Height
	info.Format = format
	return info, nil
}

// sniff returns the image MIME type of data, or "" for anything that is
// not an image.
func sniff(data []byte) string {
	mtype, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	if !strings.HasPrefix(mtype, "image/") {
		return ""
	}
	return mtype
}
