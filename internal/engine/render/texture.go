package render

import (
	"image"
	"os"
	"path/filepath"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/tundra/internal/engine/texture"
)

// texGPU is one uploaded texture, registered as a group's GPU handle.
type texGPU struct {
	id uint32
}

// Release implements model.GPUResource. The shared fallback texture
// uses id 0 and is never deleted here.
func (t *texGPU) Release() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

// loadTexture reads, decodes and uploads a texture file, relative to
// the renderer's asset directory.
func (r *Renderer) loadTexture(name string) (*texGPU, error) {
	path := name
	if r.AssetDir != "" {
		path = filepath.Join(r.AssetDir, name)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, err := texture.Decode(data, name)
	if err != nil {
		return nil, err
	}
	return &texGPU{id: uploadTexture(img)}, nil
}

func uploadTexture(img *image.RGBA) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Bounds().Dx()), int32(img.Bounds().Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	return id
}

// whiteTexture is the 1x1 fallback bound when a texture fails to load.
func whiteTexture() uint32 {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Pix[0], img.Pix[1], img.Pix[2], img.Pix[3] = 255, 255, 255, 255
	return uploadTexture(img)
}
