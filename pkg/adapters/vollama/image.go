package vollama

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const jpegQuality = 90

// PreparedImage is an image in a format every vision model accepts.
type PreparedImage struct {
	Format string
	Data   []byte
}

// DataURI renders the image as a base64 data URI.
func (p *PreparedImage) DataURI() string {
	return fmt.Sprintf("data:image/%s;base64,%s", p.Format, base64.StdEncoding.EncodeToString(p.Data))
}

// PrepareImage decodes data and keeps JPEG and PNG as-is. Other formats are re-encoded as JPEG.
func PrepareImage(data []byte) (*PreparedImage, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	switch format {
	case "jpeg", "png":
		return &PreparedImage{Format: format, Data: data}, nil
	}
	var buf bytes.Buffer
	if err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("re-encoding %s as jpeg: %w", format, err)
	}
	return &PreparedImage{Format: "jpeg", Data: buf.Bytes()}, nil
}
