//go:build !cgo

package ocr

import "image"

// unavailableEngine stands in when the binary is built without cgo and the
// native Tesseract bindings are compiled out.
type unavailableEngine struct{}

// NewEngine returns an engine whose calls report ErrUnavailable.
func NewEngine() Engine {
	return unavailableEngine{}
}

// Probe reports that no OCR engine is compiled in.
func Probe() Report {
	return Report{Available: false, Err: ErrUnavailable}
}

func (unavailableEngine) Recognize(image.Image) ([]Token, error) {
	return nil, ErrUnavailable
}
