package yaml_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goyaml "github.com/goccy/go-yaml"

	"github.com/kdbg-dev/kdbg/pkg/yaml"
)

func mustBuildPath(t *testing.T, parts ...string) *goyaml.Path {
	t.Helper()

	pb := yaml.NewPathBuilder()
	current := pb.Root()

	for _, part := range parts {
		current = current.Child(part)
	}

	return current.Build()
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err  *yaml.Error
		want string
	}{
		"with path": {
			err: &yaml.Error{
				Err:  errors.New("value is required"),
				Path: mustBuildPath(t, "resolver", "similarityThreshold"),
			},
			want: "error at $.resolver.similarityThreshold: value is required",
		},
		"without path": {
			err: &yaml.Error{
				Err: errors.New("value is required"),
			},
			want: "value is required",
		},
		"nil cause": {
			err:  &yaml.Error{},
			want: "",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestErrorAnnotatesSource(t *testing.T) {
	t.Parallel()

	source := []byte(`defaults:
  namespace: prod
  tail: many
shells:
  - /bin/sh
`)

	err := yaml.NewError(
		errors.New("got string, want integer"),
		yaml.WithPath(mustBuildPath(t, "defaults", "tail")),
		yaml.WithSource(source),
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "got string, want integer")
	assert.Contains(t, err.Error(), "tail: many")
}

func TestErrorToken(t *testing.T) {
	t.Parallel()

	var target *yaml.Error

	d := yaml.NewDecoder(strings.NewReader(`tail: [`))

	var v any

	err := d.Decode(&v)
	require.Error(t, err)
	require.ErrorAs(t, err, &target)
	assert.NotNil(t, target.Token)
	assert.Regexp(t, `^\[\d+:\d+\] `, target.Error())
}

func TestErrorWrapper(t *testing.T) {
	t.Parallel()

	source := []byte("namespace: 42\n")
	wrapper := yaml.NewErrorWrapper(yaml.WithSource(source))

	t.Run("nil passes through", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, wrapper.Wrap(nil))
	})

	t.Run("plain errors pass through", func(t *testing.T) {
		t.Parallel()

		plain := errors.New("not a yaml error")
		assert.Equal(t, plain, wrapper.Wrap(plain))
	})

	t.Run("attaches source", func(t *testing.T) {
		t.Parallel()

		yamlErr := yaml.NewError(
			errors.New("got number, want string"),
			yaml.WithPath(mustBuildPath(t, "namespace")),
		)

		err := wrapper.Wrap(yamlErr)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "namespace: 42")
	})

	t.Run("applies call options", func(t *testing.T) {
		t.Parallel()

		yamlErr := yaml.NewError(errors.New("boom"))

		err := wrapper.Wrap(yamlErr, yaml.WithPath(mustBuildPath(t, "shells")))

		var target *yaml.Error
		require.ErrorAs(t, err, &target)
		assert.NotNil(t, target.Path)
	})
}

func TestErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("root cause")
	err := yaml.NewError(cause, yaml.WithPath(mustBuildPath(t, "defaults")))

	assert.ErrorIs(t, err, cause)
}
