// Package texture decodes the image formats game assets come in into
// RGBA pixels ready for GPU upload.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"strings"
)

// Decode turns raw file bytes into RGBA pixels. TGA files are decoded
// by hand, everything else goes through the standard image decoders.
// The name's extension picks the path.
func Decode(data []byte, name string) (*image.RGBA, error) {
	var (
		img image.Image
		err error
	)
	if strings.HasSuffix(strings.ToLower(name), ".tga") {
		img, err = DecodeTGA(data)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("texture %q: %w", name, err)
	}
	return ToRGBA(img), nil
}

// ToRGBA converts any decoded image into the tightly packed RGBA layout
// the GL upload wants.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
