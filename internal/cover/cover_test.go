package cover

import (
	"bytes"
	"errors"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
)

func encode(t *testing.T, format string, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "jpeg":
		err = jpeg.Encode(&buf, img, nil)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	case "bmp":
		err = bmp.Encode(&buf, img)
	}
	if err != nil {
		t.Fatalf("encode %s: %v", format, err)
	}
	return buf.Bytes()
}

func TestProbe(t *testing.T) {
	tests := []struct {
		format string
		w, h   int
		mime   string
	}{
		{"png", 640, 480, "image/png"},
		{"jpeg", 300, 300, "image/jpeg"},
		{"gif", 16, 9, "image/gif"},
		{"bmp", 5, 7, "image/bmp"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			info, err := Probe(encode(t, tt.format, tt.w, tt.h))
			if err != nil {
				t.Fatalf("Probe() error = %v", err)
			}
			if info.Width != tt.w || info.Height != tt.h {
				t.Errorf("dimensions = %dx%d, want %dx%d", info.Width, info.Height, tt.w, tt.h)
			}
			if info.Format != tt.format {
				t.Errorf("Format = %q, want %q", info.Format, tt.format)
			}
			if info.MIMEType != tt.mime {
				t.Errorf("MIMEType = %q, want %q", info.MIMEType, tt.mime)
			}
		})
	}
}

func TestProbe_Corrupt(t *testing.T) {
	// A PNG signature followed by garbage
	data := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0xAB}, 64)...)

	info, err := Probe(data)
	if err == nil {
		t.Fatal("Probe() of corrupt image should fail")
	}
	if info.Width != 0 || info.Height != 0 {
		t.Errorf("dimensions = %dx%d, want 0x0", info.Width, info.Height)
	}
	if info.MIMEType != "image/png" {
		t.Errorf("MIMEType = %q, want sniffed image/png", info.MIMEType)
	}
}

func TestProbe_NotAnImage(t *testing.T) {
	info, err := Probe([]byte("plain text is not a cover"))
	if err == nil {
		t.Fatal("expected error for non-image data")
	}
	if info.MIMEType != "" {
		t.Errorf("MIMEType = %q, want empty for non-image", info.MIMEType)
	}
}

func TestProbe_Empty(t *testing.T) {
	if _, err := Probe(nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("Probe(nil) error = %v, want ErrEmpty", err)
	}
}
