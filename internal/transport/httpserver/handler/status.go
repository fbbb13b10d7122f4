package handler

import (
	"errors"

	accountdomain "family-tree-go/internal/domain/account"
	eventdomain "family-tree-go/internal/domain/event"
	familydomain "family-tree-go/internal/domain/family"
	historydomain "family-tree-go/internal/domain/history"
	marriagedomain "family-tree-go/internal/domain/marriage"
	mediadomain "family-tree-go/internal/domain/media"
	memberdomain "family-tree-go/internal/domain/member"
	reldomain "family-tree-go/internal/domain/relationship"
)

func isNotFound(err error) bool {
	return errors.Is(err, familydomain.ErrFamilyNotFound) ||
		errors.Is(err, memberdomain.ErrMemberNotFound) ||
		errors.Is(err, memberdomain.ErrParentNotFound) ||
		errors.Is(err, memberdomain.ErrSpouseNotFound) ||
		errors.Is(err, marriagedomain.ErrMarriageNotFound) ||
		errors.Is(err, reldomain.ErrRelationshipNotFound) ||
		errors.Is(err, reldomain.ErrTypeNotFound) ||
		errors.Is(err, accountdomain.ErrAccountNotFound) ||
		errors.Is(err, eventdomain.ErrEventNotFound) ||
		errors.Is(err, historydomain.ErrRecordNotFound) ||
		errors.Is(err, mediadomain.ErrMediaNotFound)
}

func isConflict(err error) bool {
	return errors.Is(err, accountdomain.ErrUsernameTaken)
}

func isValidation(err error) bool {
	return errors.Is(err, memberdomain.ErrSameParentSpouse) ||
		errors.Is(err, memberdomain.ErrSpouseNotMarried) ||
		errors.Is(err, memberdomain.ErrInvalidGender) ||
		errors.Is(err, marriagedomain.ErrSamePerson) ||
		errors.Is(err, reldomain.ErrSamePerson) ||
		errors.Is(err, mediadomain.ErrFileRequired) ||
		errors.Is(err, mediadomain.ErrInvalidOwnerType) ||
		errors.Is(err, mediadomain.ErrNoFaceDetected) ||
		errors.Is(err, mediadomain.ErrUploadFailed)
}
