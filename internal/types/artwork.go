package types

import "fmt"

// Artwork is a detached copy of a track's cover image.
//
// The engine exposes a single picture per track, preferring the front
// cover and falling back to a picture of type "other".
type Artwork struct {
	// MIME type sniffed from the image data ("" if unknown)
	MIMEType string

	// Image binary data
	Data []byte

	// Dimensions probed from the image header, 0 if undecodable
	Width  int // Pixels
	Height int // Pixels
}

// Decodable reports whether the image header could be probed.
func (a Artwork) Decodable() bool {
	return a.Width > 0 && a.Height > 0
}

// String returns a human-readable description of the artwork.
//
// Example output: "Front cover (1200x1200 JPEG, 245KB)"
func (a Artwork) String() string {
	sizeStr := formatSize(len(a.Data))

	dims := ""
	if a.Decodable() {
		dims = fmt.Sprintf("%dx%d ", a.Width, a.Height)
	}

	return fmt.Sprintf("Front cover (%s%s, %s)", dims, mimeToFormat(a.MIMEType), sizeStr)
}

// formatSize formats byte size in human-readable form.
func formatSize(bytes int) string {
	const (
		KB = 1024
		MB = 1024 * KB
	)

	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1fMB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%dKB", bytes/KB)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

// mimeToFormat converts MIME type to short format name.
func mimeToFormat(mime string) string {
	switch mime {
	case "image/jpeg":
		return "JPEG"
	case "image/png":
		return "PNG"
	case "image/gif":
		return "GIF"
	case "image/bmp":
		return "BMP"
	case "image/tiff":
		return "TIFF"
	case "image/webp":
		return "WebP"
	default:
		return "Image"
	}
}
