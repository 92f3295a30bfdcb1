package pdf

import (
	"errors"
	"fmt"
)

var (
	// ErrCorruptDocument indicates the file could not be parsed as a PDF.
	ErrCorruptDocument = errors.New("corrupt document")

	// ErrEncryptedDocument indicates the document requires a password that
	// was not supplied. Opening first retries with an empty user password.
	ErrEncryptedDocument = errors.New("encrypted document")
)

// PageIndexError reports a page number outside [1, PageCount].
type PageIndexError struct {
	Requested int
	PageCount int
}

func (e *PageIndexError) Error() string {
	return fmt.Sprintf("page %d out of range [1, %d]", e.Requested, e.PageCount)
}

// MalformedContentError records a recoverable fault inside a content stream.
// Interpretation stops at the fault and keeps every primitive decoded before
// it; the error is retained on the page rather than returned.
type MalformedContentError struct {
	Page   int
	Offset int
	Reason string
}

func (e *MalformedContentError) Error() string {
	return fmt.Sprintf("malformed content stream on page %d at offset %d: %s",
		e.Page, e.Offset, e.Reason)
}
