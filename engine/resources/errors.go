package resources

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies why a resource request failed.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// The file could not be opened or stat'ed.
	KindOpen
	// Reading bytes failed or ended early.
	KindRead
	// The bytes were read but do not follow the expected binary layout.
	KindFormat
	// Structural decoding (JSON, YAML, image) failed.
	KindDecode
	// The resource-creation capability rejected the data.
	KindCreate
	// A mesh key without the mesh@collection separator.
	KindKeyFormat
	// A collection was scanned but does not contain the requested mesh.
	KindNotFound
	// A scene element or manifest entry could not be resolved.
	KindParse
	// Program parameters could not be bound.
	KindBind
)

var (
	ErrOpen      = errors.New("open failed")
	ErrRead      = errors.New("read failed")
	ErrFormat    = errors.New("malformed data")
	ErrDecode    = errors.New("decode failed")
	ErrCreate    = errors.New("resource creation failed")
	ErrKeyFormat = errors.New("invalid resource key")
	ErrNotFound  = errors.New("resource not found")
	ErrParse     = errors.New("parse failed")
	ErrBind      = errors.New("parameter binding failed")
)

var kindSentinels = map[ErrorKind]error{
	KindOpen:      ErrOpen,
	KindRead:      ErrRead,
	KindFormat:    ErrFormat,
	KindDecode:    ErrDecode,
	KindCreate:    ErrCreate,
	KindKeyFormat: ErrKeyFormat,
	KindNotFound:  ErrNotFound,
	KindParse:     ErrParse,
	KindBind:      ErrBind,
}

func (k ErrorKind) String() string {
	if s, ok := kindSentinels[k]; ok {
		return s.Error()
	}
	return "unknown error"
}

// Error is returned by every loader. Each layer that adds context wraps the
// error of the layer below in Err, so errors.Is(err, ErrOpen) holds for a
// scene that failed because a texture file was missing.
type Error struct {
	Kind     ErrorKind
	Resource ResourceType
	// Name is the requested key (mesh key, texture name, scene id...).
	Name string
	// Path is the file involved, if any.
	Path string
	Err  error
}

func NewError(kind ErrorKind, resource ResourceType, name, path string, err error) *Error {
	return &Error{
		Kind:     kind,
		Resource: resource,
		Name:     name,
		Path:     path,
		Err:      err,
	}
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Resource.String())
	if e.Name != "" {
		fmt.Fprintf(&sb, " %q", e.Name)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Kind.String())
	if e.Path != "" {
		fmt.Fprintf(&sb, " (%s)", e.Path)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error kind.
func (e *Error) Is(target error) bool {
	s, ok := kindSentinels[e.Kind]
	return ok && s == target
}

// KindOf returns the kind of the outermost *Error in err's chain.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
