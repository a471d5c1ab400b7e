package renderer

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
)

var ErrSnapshotFormat = errors.New("unsupported snapshot format")

// encodeImage writes img in the format named by ext (".png", ".jpg",
// ".jpeg" or ".webp").
func encodeImage(w io.Writer, img image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 92})
	case ".webp":
		return nativewebp.Encode(w, img, nil)
	default:
		return fmt.Errorf("%w: %q", ErrSnapshotFormat, ext)
	}
}

func writeImage(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := encodeImage(&buf, img, filepath.Ext(path)); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// opaque sets every alpha to 255 so translucent surfaces do not punch holes
// in the written image.
func opaque(img *image.NRGBA) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
}
