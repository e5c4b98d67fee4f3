package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for the use case layer. The HTTP boundary maps
// ErrInvalidInput to a 400-class response and the provider failures to a
// 500-class response. ErrPersistenceFailed is never surfaced to callers;
// it is logged and reported only.
var (
	ErrInvalidInput      = goerr.New("input is required")
	ErrEmbeddingFailed   = goerr.New("embedding generation failed")
	ErrGenerationFailed  = goerr.New("completion generation failed")
	ErrPersistenceFailed = goerr.New("exchange persistence failed")
)
