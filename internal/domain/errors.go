package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSearchTooShort  = errors.New("search must be at least 3 characters")
	ErrNoSearchResults = errors.New("no search results")
	ErrMagnetNotFound  = errors.New("magnet not found")
	ErrSeedsNotFound   = errors.New("seeds not found")
	ErrLeechesNotFound = errors.New("leeches not found")
	ErrTransport       = errors.New("transport error")
)

type Stage string

const (
	StageListing Stage = "listing"
	StageDetail  Stage = "detail"
)

// TransportError is returned when a page could not be fetched at all. It
// aborts the whole search regardless of which stage raised it.
type TransportError struct {
	Stage Stage
	URL   string
	Err   error
}

func (e *TransportError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("%s %s: %v", ErrTransport, e.Stage, e.Err)
	}
	return fmt.Sprintf("%s %s %s: %v", ErrTransport, e.Stage, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

func WrapTransport(stage Stage, rawURL string, err error) error {
	if err == nil {
		return nil
	}
	return &TransportError{Stage: stage, URL: rawURL, Err: err}
}
