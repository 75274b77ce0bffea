// Package apperr defines the error taxonomy shared by every upload stage.
//
// Each failure is an *Error tagged with a Kind. The underlying cause, if any,
// is kept in Err and exposed through Unwrap so nothing is collapsed into a
// generic "unknown" failure.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindAuthFailure
	KindMissingSessionCookie
	KindTokenExtractionFailure
	KindTransportFailure
	KindNoFilesFound
	KindMissingFilename
	KindUploadFailure
	KindMissingArgument
)

var kindNames = map[Kind]string{
	KindUnknown:                "Unknown",
	KindAuthFailure:            "AuthFailure",
	KindMissingSessionCookie:   "MissingSessionCookie",
	KindTokenExtractionFailure: "TokenExtractionFailure",
	KindTransportFailure:       "TransportFailure",
	KindNoFilesFound:           "NoFilesFound",
	KindMissingFilename:        "MissingFilename",
	KindUploadFailure:          "UploadFailure",
	KindMissingArgument:        "MissingArgument",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is a tagged failure. Only the fields relevant to Kind are set.
type Error struct {
	Kind       Kind
	StatusCode int    // AuthFailure
	Spec       string // NoFilesFound
	Name       string // MissingArgument, MissingFilename
	Err        error
}

// Sentinels for errors.Is. Matching is by Kind only.
var (
	ErrAuth                 = &Error{Kind: KindAuthFailure}
	ErrMissingSessionCookie = &Error{Kind: KindMissingSessionCookie}
	ErrTokenExtraction      = &Error{Kind: KindTokenExtractionFailure}
	ErrTransport            = &Error{Kind: KindTransportFailure}
	ErrNoFilesFound         = &Error{Kind: KindNoFilesFound}
	ErrMissingFilename      = &Error{Kind: KindMissingFilename}
	ErrUpload               = &Error{Kind: KindUploadFailure}
	ErrMissingArgument      = &Error{Kind: KindMissingArgument}
)

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case KindAuthFailure:
		msg = fmt.Sprintf("failure to auth: %d", e.StatusCode)
	case KindMissingSessionCookie:
		msg = "no Set-Cookie header received"
	case KindTokenExtractionFailure:
		msg = "could not extract CSRF token from response body"
	case KindTransportFailure:
		msg = "transport failure"
	case KindNoFilesFound:
		msg = fmt.Sprintf("no files found in %q", e.Spec)
	case KindMissingFilename:
		msg = fmt.Sprintf("missing filename for %q", e.Name)
	case KindUploadFailure:
		msg = "upload failure"
	case KindMissingArgument:
		msg = fmt.Sprintf("missing argument: %s", e.Name)
	default:
		msg = "unknown failure"
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func AuthFailure(statusCode int) error {
	return &Error{Kind: KindAuthFailure, StatusCode: statusCode}
}

func MissingSessionCookie() error {
	return &Error{Kind: KindMissingSessionCookie}
}

func TokenExtractionFailure(cause error) error {
	return &Error{Kind: KindTokenExtractionFailure, Err: cause}
}

func TransportFailure(cause error) error {
	return &Error{Kind: KindTransportFailure, Err: cause}
}

func NoFilesFound(spec string) error {
	return &Error{Kind: KindNoFilesFound, Spec: spec}
}

func MissingFilename(path string) error {
	return &Error{Kind: KindMissingFilename, Name: path}
}

func UploadFailure(cause error) error {
	return &Error{Kind: KindUploadFailure, Err: cause}
}

func MissingArgument(name string) error {
	return &Error{Kind: KindMissingArgument, Name: name}
}
