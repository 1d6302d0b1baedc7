package services

import "errors"

// Screening errors returned by the core pipeline. Handlers map these to
// HTTP status codes; everything else is treated as an internal error.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrExtractionFailed  = errors.New("failed to extract text from document")
	ErrEmptyDocument     = errors.New("no extractable text found in document")
	ErrEmbeddingFailed   = errors.New("failed to compute text embedding")

	// ErrModelUnavailable is consumed inside the narrative chain and never
	// reaches a caller of Screen.
	ErrModelUnavailable = errors.New("narrative model unavailable")
)
