package history

import "errors"

var (
	ErrRecordNotFound = errors.New("family history record not found")
	ErrIDGeneration   = errors.New("failed to generate a unique record id")
)
