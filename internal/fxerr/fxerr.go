// Package fxerr defines the error kinds surfaced by the navigation and
// operation engine.
package fxerr

import (
	"errors"
	"fmt"
)

// Kind classifies an engine error.
type Kind int

const (
	Unknown Kind = iota
	IOKind
	ItemNotFound
	RemoveItem
	PutItem
	Encode
	TerminalTooSmall
	NothingToUndo
	NothingToRedo
)

var kindNames = map[Kind]string{
	Unknown:          "unknown",
	IOKind:           "io",
	ItemNotFound:     "item not found",
	RemoveItem:       "cannot remove item",
	PutItem:          "cannot put item",
	Encode:           "cannot encode name",
	TerminalTooSmall: "terminal too small",
	NothingToUndo:    "nothing to undo",
	NothingToRedo:    "nothing to redo",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

var (
	ErrNothingToUndo = &Error{Kind: NothingToUndo}
	ErrNothingToRedo = &Error{Kind: NothingToRedo}
)

// Error carries a Kind, the offending path when there is one, and the
// underlying cause.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNothingToUndo)
// holds regardless of path or cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func IO(err error) error {
	return &Error{Kind: IOKind, Err: err}
}

func IOPath(path string, err error) error {
	return &Error{Kind: IOKind, Path: path, Err: err}
}

func NotFound(index int) error {
	return &Error{Kind: ItemNotFound, Err: fmt.Errorf("no item at index %d", index)}
}

func Remove(path string, err error) error {
	return &Error{Kind: RemoveItem, Path: path, Err: err}
}

func Put(path string, err error) error {
	return &Error{Kind: PutItem, Path: path, Err: err}
}

func EncodeName(path string) error {
	return &Error{Kind: Encode, Path: path, Err: errors.New("name is not valid UTF-8")}
}

func TooSmall(cols, rows int) error {
	return &Error{
		Kind: TerminalTooSmall,
		Err:  fmt.Errorf("need at least 4x4, got %dx%d", cols, rows),
	}
}

// KindOf reports the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}
