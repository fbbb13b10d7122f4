package marriage

import "errors"

var (
	ErrMarriageNotFound = errors.New("marriage not found")
	ErrSamePerson       = errors.New("husband and wife cannot be the same person")
)
