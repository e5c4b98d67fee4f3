package firestore

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for the Firestore repository
var (
	ErrNotFound          = goerr.New("not found")
	ErrDimensionMismatch = goerr.New("embedding dimension mismatch")
)
