package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
)

// MaxWidth is the widest stored image; anything wider is downscaled
// proportionally.
const MaxWidth = 1600

const jpegQuality = 85

// Processed is a validated, possibly downscaled image ready for storage.
type Processed struct {
	Data        []byte
	ContentType string
	Ext         string
	Width       int
	Height      int
}

// Process decodes an uploaded image, rejecting anything that isn't a real
// image, and downscales it when wider than MaxWidth. WebP input is passed
// through untouched since the decoder doesn't cover it.
func Process(reader io.Reader, contentType string) (*Processed, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	if contentType == "image/webp" {
		return &Processed{Data: data, ContentType: contentType, Ext: "webp"}, nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	switch format {
	case "jpeg", "png", "gif":
	default:
		return nil, fmt.Errorf("unsupported image format %q", format)
	}

	bounds := img.Bounds()
	if bounds.Dx() > MaxWidth {
		img = imaging.Resize(img, MaxWidth, 0, imaging.Lanczos)
		bounds = img.Bounds()
	}

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	case "png":
		err = png.Encode(&buf, img)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	ext := format
	if format == "jpeg" {
		ext = "jpg"
	}

	return &Processed{
		Data:        buf.Bytes(),
		ContentType: "image/" + format,
		Ext:         ext,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
	}, nil
}
