package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrKeyNotFound          = errors.New("key not found in store")
	ErrInvalidDensityMode   = errors.New("invalid density mode")
	ErrCollectionNotFound   = errors.New("collection not found")
	ErrCollectionNameEmpty  = errors.New("collection name is empty")
	ErrDocumentNotFound     = errors.New("document not found")
	ErrJobNotFound          = errors.New("job not found")
	ErrJobNotFlagged        = errors.New("job is not flagged")
	ErrUploadNotFound       = errors.New("upload session not found")
	ErrUploadExpired        = errors.New("upload session has expired")
	ErrUnsupportedFileType  = errors.New("unsupported file type")
	ErrFileTooLarge         = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed         = errors.New("file upload to storage failed")
	ErrUndoActionNotFound   = errors.New("undo action not found")
	ErrUndoActionResolved   = errors.New("undo action already resolved")
	ErrUnsupportedExportFmt = errors.New("unsupported export format")
)
