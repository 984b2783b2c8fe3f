package bus

import (
	"errors"

	"github.com/ezrec/lr35902/translate"
)

var f = translate.From

var (
	// Image errors
	ErrImageEmpty = errors.New(f("image empty"))
	ErrImageSize  = errors.New(f("image exceeds address space"))
)

// ErrImage indicates the image file that failed to load.
type ErrImage struct {
	Path string
	Err  error
}

func (err *ErrImage) Error() string {
	return f("image %v: %v", err.Path, err.Err)
}

func (err *ErrImage) Unwrap() error {
	return err.Err
}
