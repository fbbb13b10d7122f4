package media

import "errors"

var (
	ErrMediaNotFound    = errors.New("media not found")
	ErrFileRequired     = errors.New("file is required")
	ErrInvalidOwnerType = errors.New("invalid owner type")
	ErrUploadFailed     = errors.New("upload failed")
	ErrNoFaceDetected   = errors.New("no faces detected in the image")
)
