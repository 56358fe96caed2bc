package transform

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure a tool can report to its user.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	MissingInput
	InvalidLength
	InvalidParameter
	UnsupportedAlgorithm
	TransformFailed
	ClipboardDenied
)

var (
	ErrMissingInput         = errors.New("missing input")
	ErrInvalidLength        = errors.New("invalid length")
	ErrInvalidParameter     = errors.New("invalid parameter")
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
	ErrTransformFailed      = errors.New("transform failed")
	ErrClipboardDenied      = errors.New("clipboard denied")
)

func (k ErrorKind) String() string {
	switch k {
	case MissingInput:
		return "missing_input"
	case InvalidLength:
		return "invalid_length"
	case InvalidParameter:
		return "invalid_parameter"
	case UnsupportedAlgorithm:
		return "unsupported_algorithm"
	case TransformFailed:
		return "transform_failed"
	case ClipboardDenied:
		return "clipboard_denied"
	default:
		return "none"
	}
}

func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ErrorKind) UnmarshalText(b []byte) error {
	for kind := KindNone; kind <= ClipboardDenied; kind++ {
		if kind.String() == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown error kind %q", b)
}

// Title is the short headline shown in an error notification.
func (k ErrorKind) Title() string {
	switch k {
	case MissingInput:
		return "Missing input"
	case InvalidLength:
		return "Invalid length"
	case InvalidParameter:
		return "Invalid option"
	case UnsupportedAlgorithm:
		return "Unsupported tool"
	case TransformFailed:
		return "Operation failed"
	case ClipboardDenied:
		return "Clipboard unavailable"
	default:
		return ""
	}
}

// Description is the body text shown under Title.
func (k ErrorKind) Description() string {
	switch k {
	case MissingInput:
		return "Please fill in all required fields."
	case InvalidLength:
		return "One of the fields is too short or too long."
	case InvalidParameter:
		return "One of the options is not an allowed value."
	case UnsupportedAlgorithm:
		return "This tool is not available."
	case TransformFailed:
		return "The input could not be processed. Check the key and the input format."
	case ClipboardDenied:
		return "Access to the clipboard was denied."
	default:
		return ""
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case MissingInput:
		return ErrMissingInput
	case InvalidLength:
		return ErrInvalidLength
	case InvalidParameter:
		return ErrInvalidParameter
	case UnsupportedAlgorithm:
		return ErrUnsupportedAlgorithm
	case TransformFailed:
		return ErrTransformFailed
	case ClipboardDenied:
		return ErrClipboardDenied
	default:
		return nil
	}
}

// Error is the only error type that crosses the transform boundary.
// Fields holds per-field messages keyed by the json field name.
type Error struct {
	Kind    ErrorKind
	Message string
	Fields  map[string]string
	Err     error
}

var _ error = (*Error)(nil)

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.sentinel().Error()
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// Failed wraps an algorithm error as TransformFailed unless it already
// carries a kind.
func Failed(msg string, err error) error {
	var terr *Error
	if errors.As(err, &terr) {
		return err
	}
	return &Error{Kind: TransformFailed, Message: msg, Err: err}
}

// KindOf reports the kind of err. Untyped errors are TransformFailed.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}

	var terr *Error
	if errors.As(err, &terr) {
		return terr.Kind
	}
	return TransformFailed
}

// FieldsOf returns the field messages attached to err, if any.
func FieldsOf(err error) map[string]string {
	var terr *Error
	if errors.As(err, &terr) {
		return terr.Fields
	}
	return nil
}
