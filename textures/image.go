package textures

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// Image is decoded pixel data with tightly packed rows of Width*Channels bytes.
// Row 0 is the bottom row once the decoder has flipped it for GL.
type Image struct {
	Pix      []byte
	Width    int
	Height   int
	Channels int
}

// Decoder turns an image file into pixel data.
type Decoder interface {
	Decode(path string) (*Image, error)
}

// decodeFuncs are picked by file extension. Sniffing with image.Decode is
// avoided because the tga package registers itself without a magic prefix.
var decodeFuncs = map[string]func(io.Reader) (image.Image, error){
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".gif":  gif.Decode,
	".bmp":  bmp.Decode,
	".tif":  tiff.Decode,
	".tiff": tiff.Decode,
	".webp": webp.Decode,
	".tga":  tga.Decode,
}

// FileDecoder reads images from disk. FlipVertically is set once and applies
// to every subsequent Decode.
type FileDecoder struct {
	FlipVertically bool
}

// NewFileDecoder returns a decoder that flips images so that the first row of
// Pix is the bottom of the picture, matching GL texture coordinates.
func NewFileDecoder() *FileDecoder {
	return &FileDecoder{FlipVertically: true}
}

func (d *FileDecoder) Decode(path string) (*Image, error) {
	decode, ok := decodeFuncs[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("decode %s: unknown image extension", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	src, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	img := pack(src, channelCount(src))
	if d.FlipVertically {
		img.flipVertical()
	}
	return img, nil
}

// channelCount reports how many channels the GL upload needs for src.
func channelCount(src image.Image) int {
	switch src.(type) {
	case *image.Gray, *image.Gray16, *image.Alpha, *image.Alpha16:
		return 1
	}
	if o, ok := src.(interface{ Opaque() bool }); ok && o.Opaque() {
		return 3
	}
	return 4
}

// pack converts src to straight-alpha bytes with the given channel count.
func pack(src image.Image, channels int) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := &Image{
		Pix:      make([]byte, w*h*channels),
		Width:    w,
		Height:   h,
		Channels: channels,
	}

	if channels == 1 {
		gray := image.NewGray(image.Rect(0, 0, w, h))
		draw.Draw(gray, gray.Bounds(), src, b.Min, draw.Src)
		for y := 0; y < h; y++ {
			copy(out.Pix[y*w:(y+1)*w], gray.Pix[y*gray.Stride:])
		}
		return out
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(nrgba, nrgba.Bounds(), src, b.Min, draw.Src)
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride:]
		for x := 0; x < w; x++ {
			dst := out.Pix[(y*w+x)*channels:]
			copy(dst[:channels], row[x*4:x*4+channels])
		}
	}
	return out
}

// flipVertical reverses row order in place.
func (img *Image) flipVertical() {
	rowSize := img.Width * img.Channels
	tmp := make([]byte, rowSize)
	for top, bottom := 0, img.Height-1; top < bottom; top, bottom = top+1, bottom-1 {
		t := img.Pix[top*rowSize : (top+1)*rowSize]
		b := img.Pix[bottom*rowSize : (bottom+1)*rowSize]
		copy(tmp, t)
		copy(t, b)
		copy(b, tmp)
	}
}
