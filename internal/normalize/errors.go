package normalize

import "errors"

var (
	// ErrUnsupportedFormat means the declared type maps to no known extractor.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrEmptyContent means extraction produced no usable text.
	ErrEmptyContent = errors.New("document contains no extractable text")
	// ErrCorruptDocument means the bytes could not be decoded as the declared format.
	ErrCorruptDocument = errors.New("document could not be read")
)
