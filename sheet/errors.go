package sheet

import (
	"fmt"
)

// ImageLoadError is returned when the sheet's bitmap could not be decoded.
type ImageLoadError struct {
	Path string
	Err  error
}

func (e *ImageLoadError) Error() string {
	return fmt.Sprintf("sheet: could not load image %q: %v", e.Path, e.Err)
}

func (e *ImageLoadError) Unwrap() error { return e.Err }

// Cause lets errors.Cause from github.com/pkg/errors see through the error.
func (e *ImageLoadError) Cause() error { return e.Err }

// DescriptorLoadError is returned when the descriptor could not be opened or
// read.
type DescriptorLoadError struct {
	Path string
	Err  error
}

func (e *DescriptorLoadError) Error() string {
	return fmt.Sprintf("sheet: could not load descriptor %q: %v", e.Path, e.Err)
}

func (e *DescriptorLoadError) Unwrap() error { return e.Err }

func (e *DescriptorLoadError) Cause() error { return e.Err }
