package domain

import "errors"

var (
	ErrUnreadableSource    = errors.New("source document cannot be read")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrInvalidRole         = errors.New("invalid role")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)
