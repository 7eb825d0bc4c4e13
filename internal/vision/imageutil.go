package vision

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"gocv.io/x/gocv"

	_ "golang.org/x/image/tiff"
)

// LoadGrayFile decodes an image file (PNG, JPEG, or TIFF) into a
// grayscale Mat. Used by the offline tools; the service path decodes
// request bytes directly.
func LoadGrayFile(path string) (gocv.Mat, error) {
	f, err := os.Open(path)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return GrayMatFromImage(img)
}

// GrayMatFromImage converts a decoded Go image into a grayscale Mat.
func GrayMatFromImage(img image.Image) (gocv.Mat, error) {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return gocv.Mat{}, ErrDecode
	}

	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)

	m := gocv.NewMatWithSize(bounds.Dy(), bounds.Dx(), gocv.MatTypeCV8U)
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			m.SetUCharAt(y, x, gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
		}
	}
	return m, nil
}
