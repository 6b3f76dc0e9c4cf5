package config

import (
	"github.com/kdbg-dev/kdbg/pkg/yaml"
)

// Validator checks a decoded YAML document against the config schema.
type Validator interface {
	Validate(data any) error
}

// LoaderOpt configures a [Loader].
type LoaderOpt func(*Loader)

// WithValidator replaces the embedded schema validator.
func WithValidator(v Validator) LoaderOpt {
	return func(l *Loader) {
		l.validator = v
	}
}

// Loader reads one config document. The raw bytes are kept so errors from
// any stage can be annotated with the offending document location.
type Loader struct {
	validator Validator
	yamlError *yaml.ErrorWrapper
	data      []byte
}

// NewLoaderFromBytes creates a [Loader] from byte data.
func NewLoaderFromBytes(data []byte, opts ...LoaderOpt) *Loader {
	l := &Loader{
		validator: DefaultValidator,
		data:      data,
	}
	for _, opt := range opts {
		opt(l)
	}

	l.yamlError = yaml.NewErrorWrapper(
		yaml.WithSource(data),
	)

	return l
}

// NewLoaderFromFile creates a [Loader] from a file path.
func NewLoaderFromFile(path string, opts ...LoaderOpt) (*Loader, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err //nolint:wrapcheck // Return the original error.
	}

	return NewLoaderFromBytes(data, opts...), nil
}

// Validate checks the raw document against the schema without binding it to
// the [Config] type, so unknown fields and type mismatches surface with
// their paths instead of as decode failures.
func (l *Loader) Validate() error {
	var doc any

	err := yaml.Unmarshal(l.data, &doc)
	if err != nil {
		return l.yamlError.Wrap(err)
	}

	if l.validator == nil {
		return nil
	}

	err = l.validator.Validate(doc)
	if err != nil {
		return l.yamlError.Wrap(err)
	}

	return nil
}

// Load decodes the document into a [Config], fills defaults, and runs the
// constraint checks the schema cannot express.
func (l *Loader) Load() (*Config, error) {
	c := &Config{}

	err := yaml.Unmarshal(l.data, c)
	if err != nil {
		return nil, l.yamlError.Wrap(err)
	}

	c.EnsureDefaults()

	err = c.Validate()
	if err != nil {
		return nil, l.yamlError.Wrap(err)
	}

	return c, nil
}
