package member

import "errors"

var (
	ErrMemberNotFound   = errors.New("member not found")
	ErrParentNotFound   = errors.New("parent not found")
	ErrSpouseNotFound   = errors.New("spouse not found")
	ErrSameParentSpouse = errors.New("parent and spouse cannot be the same person")
	ErrSpouseNotMarried = errors.New("spouse is not married to this parent")
	ErrInvalidGender    = errors.New("gender must be male or female")
)
