package upload

import "errors"

var (
	ErrForcedFailure       = errors.New("forced failure triggered")
	ErrNoFilePart          = errors.New("no file part")
	ErrNoSelectedFile      = errors.New("no selected file")
	ErrExtensionNotAllowed = errors.New("file extension is not allowed")
)
