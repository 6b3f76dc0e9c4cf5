package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	_ "embed"

	"github.com/kdbg-dev/kdbg/pkg/resolve"
	"github.com/kdbg-dev/kdbg/pkg/yaml"
)

//go:generate go run ../../internal/schemagen/main.go -o kdbg.v1beta1.json

// APIVersion is the current schema version for kdbg configuration.
const APIVersion = "kdbg.dev/v1beta1"

// SchemaFileName is the name of the JSON schema file written next to the
// configuration file for editor integration.
const SchemaFileName = "kdbg.v1beta1.json"

// Defaults applied by [Config.EnsureDefaults] when the corresponding
// fields are unset.
const (
	DefaultTail           = 100
	DefaultImage          = "busybox"
	DefaultDebugNamespace = "default"
)

var (
	//go:embed config.yaml
	defaultConfigYAML []byte

	//go:embed kdbg.v1beta1.json
	schemaJSON []byte

	// ValidAPIVersions contains all accepted apiVersion values.
	ValidAPIVersions = []string{APIVersion}

	// ValidKinds contains all accepted kind values.
	ValidKinds = []string{"Configuration"}

	// DefaultValidator validates configuration against the JSON schema.
	DefaultValidator = yaml.MustNewValidator("/"+SchemaFileName, schemaJSON)
)

// TypeMeta contains the API version and kind metadata for a configuration
// document.
type TypeMeta struct {
	// APIVersion specifies the schema version for this configuration.
	APIVersion string `json:"apiVersion" jsonschema:"title=API Version"`
	// Kind declares the type of this configuration document.
	Kind string `json:"kind" jsonschema:"title=Kind"`
}

// Config is the root kdbg configuration document.
//
//nolint:recvcheck // Must satisfy the jsonschema interface.
type Config struct {
	// Defaults sets fallback values applied when flags and environment variables are unset.
	Defaults *Defaults `json:"defaults,omitempty" jsonschema:"title=Defaults"`
	// Resolver tunes fuzzy pod name resolution.
	Resolver *Resolver `json:"resolver,omitempty" jsonschema:"title=Resolver"`
	TypeMeta `json:",inline"`
}

// New creates a new [Config] with default values.
func New() *Config {
	c := &Config{
		TypeMeta: TypeMeta{
			APIVersion: APIVersion,
			Kind:       "Configuration",
		},
	}
	c.EnsureDefaults()

	return c
}

// EnsureDefaults initializes nil fields to their default values.
func (c *Config) EnsureDefaults() {
	if c.Defaults == nil {
		c.Defaults = &Defaults{}
	}

	c.Defaults.EnsureDefaults()

	if c.Resolver == nil {
		c.Resolver = &Resolver{}
	}

	c.Resolver.EnsureDefaults()
}

// Validate checks constraints that the JSON schema cannot express.
func (c *Config) Validate() error {
	if c.Defaults != nil {
		err := c.Defaults.Validate()
		if err != nil {
			return fmt.Errorf("validate defaults: %w", err)
		}
	}

	if c.Resolver != nil {
		err := c.Resolver.Validate()
		if err != nil {
			return fmt.Errorf("validate resolver: %w", err)
		}
	}

	return nil
}

func (c Config) JSONSchemaExtend(jss *jsonschema.Schema) {
	extendSchemaWithEnums(jss, ValidAPIVersions, ValidKinds)
}

// MarshalYAML serializes the config to YAML.
func (c Config) MarshalYAML() ([]byte, error) {
	type alias Config

	b, err := yaml.Marshal(alias(c))
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	return b, nil
}

// Write writes the config to the specified path if it doesn't already exist.
func (c Config) Write(path string) error {
	b, err := c.MarshalYAML()
	if err != nil {
		return err
	}

	err = WriteIfNotExists(path, b)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// WriteDefault writes the embedded default config.yaml to the specified path,
// and places the JSON schema alongside it.
func WriteDefault(path string, force bool) error {
	err := WriteDefaultFile(path, defaultConfigYAML, force, "configuration")
	if err != nil {
		return fmt.Errorf("write default config: %w", err)
	}

	schemaPath := filepath.Join(filepath.Dir(path), SchemaFileName)
	slog.Debug("write JSON schema", slog.String("path", schemaPath))

	err = os.WriteFile(schemaPath, schemaJSON, 0o600)
	if err != nil {
		return fmt.Errorf("write schema file: %w", err)
	}

	return nil
}

// GetPath returns the path to the configuration file.
func GetPath() string {
	return GetConfigPath("config.yaml")
}

// Defaults contains fallback values for command flags.
type Defaults struct {
	// Tail is the number of log lines the logs command prints.
	Tail *int `json:"tail,omitempty" jsonschema:"title=Tail,minimum=0"`
	// Namespace scopes pod listing and resolution. Empty searches all namespaces.
	Namespace string `json:"namespace,omitempty" jsonschema:"title=Namespace"`
	// DebugNamespace is the namespace where throwaway debug pods run.
	DebugNamespace string `json:"debugNamespace,omitempty" jsonschema:"title=Debug Namespace"`
	// Image is the container image used for debug pods.
	Image string `json:"image,omitempty" jsonschema:"title=Debug Image"`
	// Shells are candidate shell paths tried in order by the shell command.
	Shells []string `json:"shells,omitempty" jsonschema:"title=Shells"`
}

// EnsureDefaults initializes unset fields to their default values.
// Namespace and Shells stay as-is, an empty namespace means all namespaces
// and an empty shell list falls back to the dispatcher's ladder.
func (d *Defaults) EnsureDefaults() {
	if d.Tail == nil {
		tail := DefaultTail
		d.Tail = &tail
	}

	if d.DebugNamespace == "" {
		d.DebugNamespace = DefaultDebugNamespace
	}

	if d.Image == "" {
		d.Image = DefaultImage
	}
}

// Validate checks constraints that the JSON schema cannot express.
func (d *Defaults) Validate() error {
	if d.Tail != nil && *d.Tail < 0 {
		return errors.New("tail must be zero or positive")
	}

	for _, shell := range d.Shells {
		if shell == "" {
			return errors.New("shell path must not be empty")
		}
	}

	return nil
}

// Resolver tunes fuzzy pod name matching.
type Resolver struct {
	// SimilarityThreshold is the minimum similarity score for fuzzy matches, between 0 and 1.
	SimilarityThreshold *float64 `json:"similarityThreshold,omitempty" jsonschema:"title=Similarity Threshold,minimum=0,maximum=1"`
	// MaxSuggestions caps how many candidate names appear in non-interactive ambiguity errors.
	MaxSuggestions int `json:"maxSuggestions,omitempty" jsonschema:"title=Max Suggestions,minimum=1"`
}

// EnsureDefaults initializes unset fields to their default values.
func (r *Resolver) EnsureDefaults() {
	if r.SimilarityThreshold == nil {
		threshold := resolve.DefaultSimilarityThreshold
		r.SimilarityThreshold = &threshold
	}

	if r.MaxSuggestions == 0 {
		r.MaxSuggestions = resolve.DefaultMaxSuggestions
	}
}

// Validate checks constraints that the JSON schema cannot express.
func (r *Resolver) Validate() error {
	if r.SimilarityThreshold != nil {
		t := *r.SimilarityThreshold
		if t < 0 || t > 1 {
			return errors.New("similarity threshold must be between 0 and 1")
		}
	}

	if r.MaxSuggestions < 0 {
		return errors.New("max suggestions must be zero or positive")
	}

	return nil
}

func extendSchemaWithEnums(jss *jsonschema.Schema, apiVersions, kinds []string) {
	apiVersion, ok := jss.Properties.Get("apiVersion")
	if !ok {
		panic("apiVersion property not found in schema")
	}

	for _, version := range apiVersions {
		apiVersion.OneOf = append(apiVersion.OneOf, &jsonschema.Schema{
			Type:  "string",
			Const: version,
			Title: "API Version",
		})
	}

	_, _ = jss.Properties.Set("apiVersion", apiVersion)

	kind, ok := jss.Properties.Get("kind")
	if !ok {
		panic("kind property not found in schema")
	}

	for _, kindValue := range kinds {
		kind.OneOf = append(kind.OneOf, &jsonschema.Schema{
			Type:  "string",
			Const: kindValue,
			Title: "Kind",
		})
	}

	_, _ = jss.Properties.Set("kind", kind)
}
