package recognize

import (
	"fmt"
	"image"
	"sync"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"
)

// DigitChars is the character set the primary classifier is restricted to.
const DigitChars = "123456789"

// minReadSize is the smallest edge length fed to Tesseract; smaller cells
// are upscaled first.
const minReadSize = 100

// DigitReader is a single-cell digit classifier. Implementations must be
// deterministic for identical input images.
type DigitReader interface {
	ReadDigit(cell gocv.Mat) (Opinion, error)
}

// Engine is the primary classifier: a Tesseract client restricted to the
// digits 1-9. One Engine is created at process start and shared by all
// requests; the Tesseract client is not reentrant, so calls serialize on
// an internal mutex.
type Engine struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// NewEngine creates the shared recognition engine.
func NewEngine() (*Engine, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}

	// Digits are not dictionary words; keep the language model out of it.
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")
	_ = client.SetVariable("classify_bln_numeric_mode", "1")

	if err := client.SetWhitelist(DigitChars); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set digit whitelist: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_CHAR); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set PSM: %w", err)
	}

	return &Engine{client: client}, nil
}

// Close releases the Tesseract client.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.client != nil {
		err := e.client.Close()
		e.client = nil
		return err
	}
	return nil
}

// ReadDigit classifies a normalized cell image. A cell with no readable
// digit yields Opinion{Value: 0, Confidence: 0}.
func (e *Engine) ReadDigit(cell gocv.Mat) (Opinion, error) {
	if cell.Empty() {
		return Opinion{Source: SourcePrimary}, fmt.Errorf("empty cell image")
	}

	prepared := upscaleForRead(cell)
	defer prepared.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, prepared)
	if err != nil {
		return Opinion{Source: SourcePrimary}, fmt.Errorf("failed to encode cell: %w", err)
	}
	defer buf.Close()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.client == nil {
		return Opinion{Source: SourcePrimary}, fmt.Errorf("engine closed")
	}
	if err := e.client.SetImageFromBytes(buf.GetBytes()); err != nil {
		return Opinion{Source: SourcePrimary}, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := e.client.GetBoundingBoxes(gosseract.RIL_SYMBOL)
	if err != nil {
		return Opinion{Source: SourcePrimary}, fmt.Errorf("OCR failed: %w", err)
	}

	best := Opinion{Source: SourcePrimary}
	for _, box := range boxes {
		if len(box.Word) != 1 || box.Word[0] < '1' || box.Word[0] > '9' {
			continue
		}
		conf := box.Confidence / 100.0
		if conf > best.Confidence {
			best.Value = int(box.Word[0] - '0')
			best.Confidence = conf
		}
	}
	return best, nil
}

// upscaleForRead returns a copy of the cell scaled up to at least
// minReadSize on its shorter edge. Tesseract's classifier degrades
// sharply below ~100px glyph height.
func upscaleForRead(cell gocv.Mat) gocv.Mat {
	h, w := cell.Rows(), cell.Cols()
	shorter := min(h, w)
	out := gocv.NewMat()
	if shorter >= minReadSize {
		cell.CopyTo(&out)
		return out
	}
	scale := float64(minReadSize) / float64(shorter)
	gocv.Resize(cell, &out, image.Point{}, scale, scale, gocv.InterpolationCubic)
	return out
}
