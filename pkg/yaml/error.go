package yaml

import (
	"errors"
	"fmt"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/token"
)

// NewPathBuilder returns a builder for paths into a YAML document.
func NewPathBuilder() *yaml.PathBuilder {
	return &yaml.PathBuilder{}
}

// Error is a YAML error bound to a document position, either a parser
// token or a path into the document. With source bytes attached, the
// message includes the offending lines.
type Error struct {
	Err    error
	Path   *yaml.Path
	Token  *token.Token
	Source []byte
}

func NewError(err error, opts ...ErrorOpt) *Error {
	e := &Error{Err: err}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

type ErrorOpt func(e *Error)

// WithPath binds the error to a document path.
func WithPath(path *yaml.Path) ErrorOpt {
	return func(e *Error) {
		e.Path = path
	}
}

// WithToken binds the error to a parser token.
func WithToken(tk *token.Token) ErrorOpt {
	return func(e *Error) {
		e.Token = tk
	}
}

// WithSource attaches the document bytes used to render source excerpts.
func WithSource(source []byte) ErrorOpt {
	return func(e *Error) {
		e.Source = source
	}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return ""
	}

	if e.Path != nil && len(e.Source) > 0 {
		annotated, err := e.Path.AnnotateSource(e.Source, false)
		if err == nil {
			return fmt.Sprintf("%v:\n%s", e.Err, annotated)
		}
	}

	if e.Path != nil {
		return fmt.Sprintf("error at %s: %v", e.Path.String(), e.Err)
	}

	if e.Token != nil {
		return fmt.Sprintf("[%d:%d] %v", e.Token.Position.Line, e.Token.Position.Column, e.Err)
	}

	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorWrapper applies a fixed set of options, usually the source bytes,
// to every [Error] passing through it.
type ErrorWrapper struct {
	Opts []ErrorOpt
}

func NewErrorWrapper(opts ...ErrorOpt) *ErrorWrapper {
	return &ErrorWrapper{Opts: opts}
}

// Wrap applies the wrapper's options plus opts to err. Errors that are not
// [*Error] values pass through unmodified.
func (ew *ErrorWrapper) Wrap(err error, opts ...ErrorOpt) error {
	if err == nil {
		return nil
	}

	var yamlErr *Error
	if !errors.As(err, &yamlErr) {
		return err
	}

	for _, opt := range slices.Concat(ew.Opts, opts) {
		opt(yamlErr)
	}

	return yamlErr
}
