//go:build cgo

package ocr

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/otiai10/gosseract/v2"

	"github.com/spiralbot/spiralbot/internal/element"
)

// TesseractEngine recognizes text through the native Tesseract library.
type TesseractEngine struct {
	// Language is the Tesseract language code, e.g. "eng".
	Language string
}

// NewEngine returns the Tesseract-backed engine.
func NewEngine() Engine {
	return &TesseractEngine{Language: "eng"}
}

// Probe checks once whether Tesseract can initialize, returning its version
// on success. Call sites keep the report instead of re-probing.
func Probe() Report {
	client := gosseract.NewClient()
	defer client.Close()

	version := client.Version()
	if version == "" {
		return Report{Available: false, Err: ErrUnavailable}
	}
	return Report{Available: true, Version: version}
}

// Recognize extracts word-level tokens from the image. Tesseract consumes a
// file path, so the capture is spilled to a temporary PNG for the call.
func (e *TesseractEngine) Recognize(img image.Image) ([]Token, error) {
	tmp, err := os.CreateTemp("", "spiralbot-ocr-*.png")
	if err != nil {
		return nil, fmt.Errorf("ocr temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("ocr encode capture: %w", err)
	}
	tmp.Close()

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.Language); err != nil {
		return nil, fmt.Errorf("ocr set language: %w", err)
	}
	if err := client.SetImage(tmpPath); err != nil {
		return nil, fmt.Errorf("ocr set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("ocr bounding boxes: %w", err)
	}

	tokens := make([]Token, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		tokens = append(tokens, Token{
			Text:       box.Word,
			Confidence: box.Confidence / 100.0,
			Bounds: element.BoundingBox{
				X:      box.Box.Min.X,
				Y:      box.Box.Min.Y,
				Width:  box.Box.Dx(),
				Height: box.Box.Dy(),
			},
		})
	}
	return tokens, nil
}
