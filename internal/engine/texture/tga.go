package texture

import (
	"fmt"
	"image"
	"image/color"
)

// DecodeTGA decodes an uncompressed (type 2) or RLE-compressed
// (type 10) true-color TGA file, 24 or 32 bits per pixel.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("TGA header truncated")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != 2 && imageType != 10 {
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA depth %d", bpp)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}
	pixels := data[offset:]
	depth := bpp / 8

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	// Bit 5 of the descriptor means rows run top to bottom.
	topDown := descriptor&0x20 != 0

	put := func(i int, c color.RGBA) {
		x, y := i%width, i/width
		if !topDown {
			y = height - 1 - y
		}
		img.SetRGBA(x, y, c)
	}

	if imageType == 2 {
		if len(pixels) < width*height*depth {
			return nil, fmt.Errorf("TGA pixel data truncated")
		}
		for i := 0; i < width*height; i++ {
			put(i, readPixel(pixels[i*depth:], depth))
		}
		return img, nil
	}

	// RLE: each packet is a count byte followed by either one pixel
	// repeated, or count literal pixels.
	i, d := 0, 0
	for i < width*height && d < len(pixels) {
		packet := pixels[d]
		d++
		count := int(packet&0x7f) + 1

		if packet&0x80 != 0 {
			if d+depth > len(pixels) {
				return nil, fmt.Errorf("TGA RLE packet truncated")
			}
			c := readPixel(pixels[d:], depth)
			d += depth
			for n := 0; n < count && i < width*height; n++ {
				put(i, c)
				i++
			}
			continue
		}

		for n := 0; n < count && i < width*height; n++ {
			if d+depth > len(pixels) {
				return nil, fmt.Errorf("TGA RLE packet truncated")
			}
			put(i, readPixel(pixels[d:], depth))
			d += depth
			i++
		}
	}
	if i < width*height {
		return nil, fmt.Errorf("TGA RLE data truncated")
	}
	return img, nil
}

// readPixel reads one BGR(A) pixel.
func readPixel(p []byte, depth int) color.RGBA {
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if depth == 4 {
		c.A = p[3]
	}
	return c
}
