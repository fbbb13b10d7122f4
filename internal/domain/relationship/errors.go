package relationship

import "errors"

var (
	ErrRelationshipNotFound = errors.New("parent-child relationship not found")
	ErrTypeNotFound         = errors.New("relationship type not found")
	ErrSamePerson           = errors.New("parent and child cannot be the same person")
)
