// Package imageio decodes image files and normalizes them into the
// fixed-size grayscale grids the hashing pipeline consumes.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Algoculus/UTH-CVIP-assignments/internal/wavelet"
)

// ErrDecode is returned when image data cannot be decoded by any
// registered format.
var ErrDecode = errors.New("imageio: undecodable image data")

var supportedExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {},
	".bmp": {}, ".tif": {}, ".tiff": {}, ".webp": {},
}

// IsSupported reports whether the file extension belongs to a decodable
// image format.
func IsSupported(path string) bool {
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Decode reads and decodes an image file. I/O errors are returned
// unchanged; decode failures wrap ErrDecode.
func Decode(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, err := DecodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDecode, path)
	}
	return img, nil
}

// DecodeBytes decodes in-memory image data.
func DecodeBytes(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrDecode
	}
	return img, nil
}

// Normalize scales the image to size x size with bilinear resampling and
// converts it to a grayscale coefficient grid using the usual luminance
// weights.
func Normalize(img image.Image, size int) wavelet.Matrix {
	resized := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.BiLinear.Scale(resized, resized.Bounds(), img, img.Bounds(), draw.Over, nil)

	m := wavelet.NewMatrix(size, size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()
			lum := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			m.Set(y, x, lum)
		}
	}
	return m
}

// Load decodes a file and normalizes it in one step.
func Load(path string, size int) (wavelet.Matrix, error) {
	img, err := Decode(path)
	if err != nil {
		return wavelet.Matrix{}, err
	}
	return Normalize(img, size), nil
}

// CollectImages walks a directory tree and returns the sorted paths of
// every supported image file.
func CollectImages(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsSupported(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
