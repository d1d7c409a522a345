package config

import (
	"context"
	_ "embed"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/dagrkit/dagr/pkg/logger"
)

// DefaultEnvPrefix marks environment variables that override configuration keys.
const DefaultEnvPrefix = "DAGR_"

//go:embed reference.yaml
var referenceYAML []byte

// StoreOptions controls which layers LoadStore stacks, lowest precedence first:
// the reference document, each file in Files, then the environment.
type StoreOptions struct {
	// Reference replaces the built-in reference document when non-nil.
	Reference []byte
	Files     []string
	// EnvPrefix defaults to DefaultEnvPrefix.
	EnvPrefix string
	SkipEnv   bool
	// LookupEnv resolves ${NAME} references that are not configuration keys.
	// Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// KoanfStore is the koanf-backed Store. It is immutable once LoadStore returns.
type KoanfStore struct {
	koanf *koanf.Koanf
}

var _ Store = (*KoanfStore)(nil)

// LoadStore builds a store from the reference document, user files and the
// environment, then resolves ${...} substitutions.
func LoadStore(ctx context.Context, opts StoreOptions) (*KoanfStore, error) {
	log := logger.FromContext(ctx)
	k := koanf.New(".")

	reference := opts.Reference
	if reference == nil {
		reference = referenceYAML
	}
	if err := k.Load(yamlBytes(reference), yamlParser{}); err != nil {
		return nil, fmt.Errorf("failed to load reference configuration: %w", err)
	}

	for _, path := range opts.Files {
		if err := k.Load(file.Provider(path), yamlParser{}); err != nil {
			return nil, fmt.Errorf("failed to load configuration file %s: %w", path, err)
		}
		log.Debug("loaded configuration file", "path", path)
	}

	if !opts.SkipEnv {
		if err := loadEnvironment(k, opts.EnvPrefix); err != nil {
			return nil, err
		}
	}

	if err := substitute(k, opts.LookupEnv); err != nil {
		return nil, err
	}

	log.Debug("configuration loaded", "keys", len(k.Keys()))
	return &KoanfStore{koanf: k}, nil
}

// loadEnvironment overlays PREFIX_SECTION__NAME variables onto section.name.
// Double underscores separate path segments, single underscores become dashes.
// Variables without a double underscore are ignored.
func loadEnvironment(k *koanf.Koanf, prefix string) error {
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: prefix,
		TransformFunc: func(key string, value string) (string, any) {
			return transformEnvKey(strings.TrimPrefix(key, prefix)), value
		},
	}), nil); err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}
	return nil
}

// transformEnvKey converts BWA_KIT__DIR to bwa-kit.dir.
func transformEnvKey(s string) string {
	if !strings.Contains(s, "__") {
		return ""
	}
	parts := strings.Split(strings.ToLower(s), "__")
	for i, part := range parts {
		part = strings.Trim(part, "_")
		if part == "" {
			return ""
		}
		parts[i] = strings.ReplaceAll(part, "_", "-")
	}
	return strings.Join(parts, ".")
}

// HasPath reports whether key holds a non-null value.
func (s *KoanfStore) HasPath(key string) bool {
	return key != "" && s.koanf.Exists(key) && s.koanf.Get(key) != nil
}

func (s *KoanfStore) value(key string) (any, error) {
	if !s.HasPath(key) {
		return nil, missingKey(key)
	}
	return s.koanf.Get(key), nil
}

func (s *KoanfStore) String(key string) (string, error) {
	v, err := s.value(key)
	if err != nil {
		return "", err
	}
	text, ok := scalarText(v)
	if !ok {
		return "", typeMismatch(key, v, "string")
	}
	return text, nil
}

func (s *KoanfStore) Text(key string) (string, error) {
	v, err := s.value(key)
	if err != nil {
		return "", err
	}
	text, ok := scalarText(v)
	if !ok {
		return "", typeMismatch(key, v, "scalar")
	}
	return strings.TrimSpace(text), nil
}

func (s *KoanfStore) Bool(key string) (bool, error) {
	v, err := s.value(key)
	if err != nil {
		return false, err
	}
	b, ok := toBool(v)
	if !ok {
		return false, typeMismatch(key, v, "bool")
	}
	return b, nil
}

func (s *KoanfStore) Int32(key string) (int32, error) {
	v, err := s.value(key)
	if err != nil {
		return 0, err
	}
	n, ok := toInt32(v)
	if !ok {
		return 0, typeMismatch(key, v, "int32")
	}
	return n, nil
}

func (s *KoanfStore) Int64(key string) (int64, error) {
	v, err := s.value(key)
	if err != nil {
		return 0, err
	}
	n, ok := toInt64(v)
	if !ok {
		return 0, typeMismatch(key, v, "int64")
	}
	return n, nil
}

func (s *KoanfStore) Float64(key string) (float64, error) {
	v, err := s.value(key)
	if err != nil {
		return 0, err
	}
	f, ok := toFloat64(v)
	if !ok {
		return 0, typeMismatch(key, v, "float64")
	}
	return f, nil
}

func (s *KoanfStore) Duration(key string) (time.Duration, error) {
	v, err := s.value(key)
	if err != nil {
		return 0, err
	}
	d, ok := toDuration(v)
	if !ok {
		return 0, typeMismatch(key, v, "duration")
	}
	return d, nil
}

// YAML renders the loaded configuration, after substitution, as YAML.
func (s *KoanfStore) YAML() ([]byte, error) {
	return s.koanf.Marshal(yamlParser{})
}

// Keys returns every leaf key in lexicographic order.
func (s *KoanfStore) Keys() []string {
	keys := s.koanf.Keys()
	sort.Strings(keys)
	return keys
}

// Decode unmarshals the subtree at prefix into out using koanf struct tags.
func (s *KoanfStore) Decode(prefix string, out any) error {
	if err := s.koanf.UnmarshalWithConf(prefix, out, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           out,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				durationDecodeHook,
				memoryDecodeHook,
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}); err != nil {
		return fmt.Errorf("failed to decode configuration section %q: %w", prefix, err)
	}
	return nil
}

// durationDecodeHook accepts the same duration forms as Store.Duration.
func durationDecodeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(time.Duration(0)) {
		return data, nil
	}
	d, ok := toDuration(data)
	if !ok {
		return nil, fmt.Errorf("%w: %v is not a valid duration", ErrTypeMismatch, data)
	}
	return d, nil
}

func memoryDecodeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(Memory(0)) {
		return data, nil
	}
	text, ok := scalarText(data)
	if !ok {
		return nil, fmt.Errorf("%w: %v is not a valid memory size", ErrTypeMismatch, data)
	}
	m, err := ParseMemory(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return m, nil
}

// yamlBytes is a koanf.Provider for an in-memory YAML document.
type yamlBytes []byte

func (b yamlBytes) ReadBytes() ([]byte, error) {
	return b, nil
}

func (b yamlBytes) Read() (map[string]any, error) {
	return nil, fmt.Errorf("Read not implemented")
}
