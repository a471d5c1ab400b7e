package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/rs/zerolog/log"

	"github.com/richinsley/deskscene/textures"
)

// TextureBackend uploads textures with go-gl. A GL context must be current.
type TextureBackend struct{}

var _ textures.Backend = (*TextureBackend)(nil)

func NewTextureBackend() *TextureBackend {
	return &TextureBackend{}
}

func (b *TextureBackend) Upload(img *textures.Image) (textures.Handle, error) {
	if img == nil || len(img.Pix) == 0 {
		return 0, fmt.Errorf("upload: empty image")
	}

	var internalFormat int32
	var format uint32
	switch img.Channels {
	case 3:
		internalFormat, format = gl.RGB8, gl.RGB
	case 4:
		internalFormat, format = gl.RGBA8, gl.RGBA
	default:
		return 0, fmt.Errorf("upload: %w: %d channels", textures.ErrUnsupportedFormat, img.Channels)
	}

	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	// RGB rows are not 4-byte aligned in general.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		internalFormat,
		int32(img.Width),
		int32(img.Height),
		0,
		format,
		gl.UNSIGNED_BYTE,
		gl.Ptr(img.Pix),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0) // Unbind texture

	log.Debug().Uint32("texture", textureID).Int("channels", img.Channels).Msg("uploaded texture")
	return textures.Handle(textureID), nil
}

func (b *TextureBackend) Bind(unit int, h textures.Handle) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, uint32(h))
}

func (b *TextureBackend) Release(h textures.Handle) {
	id := uint32(h)
	gl.DeleteTextures(1, &id)
}
