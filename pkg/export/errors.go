package export

import (
	"errors"
	"fmt"
)

var (
	// ErrBackendUnavailable indicates a backend that is unknown or not
	// compiled into this build
	ErrBackendUnavailable = errors.New("export: backend unavailable")
	// ErrNilDocument indicates a missing document
	ErrNilDocument = errors.New("export: nil document")
	// ErrExportInProgress indicates another export of the same document is
	// running
	ErrExportInProgress = errors.New("export: export already in progress for this document")
	// ErrCanceled indicates the export was canceled between pages
	ErrCanceled = errors.New("export: canceled")
	// ErrPageRange indicates an invalid or out-of-range page selection
	ErrPageRange = errors.New("export: invalid page range")
	// ErrVerify indicates a written PDF that does not match expectations
	ErrVerify = errors.New("export: verification failed")
)

// BackendError reports a backend that could not be created
type BackendError struct {
	Backend Backend
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("export backend %s: %v", e.Backend, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// PageError reports a failure while rendering one output page
type PageError struct {
	Page int // 0-based source page index
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("export page %d: %v", e.Page+1, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}
