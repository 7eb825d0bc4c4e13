// Package vision implements the image stages of the pipeline: decoding,
// preprocessing, grid boundary location, perspective correction, and
// per-cell extraction.
package vision

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// ErrDecode indicates unreadable or corrupt image bytes.
var ErrDecode = errors.New("could not decode image")

// Raster holds the two working forms of the input image: the grayscale
// raster that cell content is read from, and the binarized raster used
// for boundary detection. Both belong to one request and must be closed
// together.
type Raster struct {
	Gray   gocv.Mat
	Binary gocv.Mat
}

// Close releases both rasters.
func (r *Raster) Close() {
	if !r.Gray.Empty() {
		r.Gray.Close()
	}
	if !r.Binary.Empty() {
		r.Binary.Close()
	}
}

// Decode decodes raw image bytes into a grayscale Mat.
func Decode(data []byte) (gocv.Mat, error) {
	img, err := gocv.IMDecode(data, gocv.IMReadGrayScale)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if img.Empty() {
		img.Close()
		return gocv.Mat{}, ErrDecode
	}
	return img, nil
}

// Preprocess normalizes a grayscale image for boundary detection: light
// Gaussian blur, Gaussian adaptive threshold (inverted, so grid lines and
// ink come out as foreground), and a small morphological close to heal
// broken line segments.
func Preprocess(gray gocv.Mat) Raster {
	blurred := gocv.NewMat()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: 3, Y: 3}, 0, 0, gocv.BorderDefault)

	binary := gocv.NewMat()
	gocv.AdaptiveThreshold(blurred, &binary, 255,
		gocv.AdaptiveThresholdGaussian, gocv.ThresholdBinaryInv, 11, 2)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: 2, Y: 2})
	defer kernel.Close()
	gocv.MorphologyEx(binary, &binary, gocv.MorphClose, kernel)

	return Raster{Gray: blurred, Binary: binary}
}
