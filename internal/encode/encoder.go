// Package encode writes preview images of projected geometry.
package encode

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/gen2brain/webp"
)

// DefaultQuality is used by the lossy formats when no quality is given.
const DefaultQuality = 90

// Encoder serializes an image in one file format.
type Encoder interface {
	// Encode encodes img to bytes.
	Encode(img image.Image) ([]byte, error)

	// Format returns the format name (e.g. "jpeg", "png", "webp").
	Format() string

	// ContentType returns the MIME type of the encoded bytes.
	ContentType() string

	// FileExtension returns the file extension including the dot.
	FileExtension() string
}

// imageFormat describes one supported preview format.
type imageFormat struct {
	name        string
	ext         string
	contentType string
	lossy       bool
	encode      func(w io.Writer, img image.Image, quality int) error
	decode      func(r io.Reader) (image.Image, error)
}

// formats is keyed by every accepted name or extension.
var formats = map[string]*imageFormat{}

func init() {
	for _, f := range []*imageFormat{
		{
			name: "png", ext: ".png", contentType: "image/png",
			encode: func(w io.Writer, img image.Image, _ int) error {
				enc := &png.Encoder{CompressionLevel: png.BestCompression}
				return enc.Encode(w, img)
			},
			decode: png.Decode,
		},
		{
			// Thin lines blur at low quality; PNG is usually the better
			// choice for graticules.
			name: "jpeg", ext: ".jpg", contentType: "image/jpeg", lossy: true,
			encode: func(w io.Writer, img image.Image, quality int) error {
				return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
			},
			decode: jpeg.Decode,
		},
		{
			// gen2brain/webp uses a system libwebp through purego when
			// present and its embedded WASM build otherwise. Quality 100
			// selects lossless mode.
			name: "webp", ext: ".webp", contentType: "image/webp", lossy: true,
			encode: func(w io.Writer, img image.Image, quality int) error {
				return webp.Encode(w, img, webp.Options{Quality: quality, Lossless: quality >= 100})
			},
			decode: webp.Decode,
		},
	} {
		formats[f.name] = f
		formats[strings.TrimPrefix(f.ext, ".")] = f
	}
}

func lookup(format string) (*imageFormat, bool) {
	f, ok := formats[strings.ToLower(strings.TrimSpace(format))]
	return f, ok
}

// encoder binds a format to a quality setting.
type encoder struct {
	f       *imageFormat
	quality int
}

func (e *encoder) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.f.encode(&buf, img, e.quality); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *encoder) Format() string        { return e.f.name }
func (e *encoder) ContentType() string   { return e.f.contentType }
func (e *encoder) FileExtension() string { return e.f.ext }

// NewEncoder creates an encoder for the given format and quality. Quality
// is ignored by lossless formats; non-positive values select the default.
func NewEncoder(format string, quality int) (Encoder, error) {
	f, ok := lookup(format)
	if !ok {
		return nil, fmt.Errorf("unsupported image format: %q (supported: jpeg, png, webp)", format)
	}
	if !f.lossy {
		quality = 0
	} else if quality <= 0 {
		quality = DefaultQuality
	} else if quality > 100 {
		quality = 100
	}
	return &encoder{f: f, quality: quality}, nil
}

// FormatFromPath guesses the image format from a file name's extension.
func FormatFromPath(path string) (string, error) {
	ext := filepath.Ext(path)
	if f, ok := lookup(strings.TrimPrefix(ext, ".")); ok && ext != "" {
		return f.name, nil
	}
	return "", fmt.Errorf("cannot infer image format from %q", path)
}

// DecodeImage decodes bytes written by one of the encoders back to an
// image. It is used to verify previews.
func DecodeImage(data []byte, format string) (image.Image, error) {
	f, ok := lookup(format)
	if !ok {
		return nil, fmt.Errorf("unsupported decode format: %q", format)
	}
	return f.decode(bytes.NewReader(data))
}
