package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLParser_Unmarshal(t *testing.T) {
	t.Run("Should keep native types for numbers that decode exactly", func(t *testing.T) {
		out, err := yamlParser{}.Unmarshal([]byte(`
count: 42
long: 9223372036854775807
ratio: 0.25
sci: 1e3
hex: 0x1F
flag: true
name: dagr
empty: ~
`))

		require.NoError(t, err)
		assert.Equal(t, 42, out["count"])
		assert.Equal(t, 9223372036854775807, out["long"])
		assert.Equal(t, 0.25, out["ratio"])
		assert.Equal(t, 1000.0, out["sci"])
		assert.Equal(t, 31, out["hex"])
		assert.Equal(t, true, out["flag"])
		assert.Equal(t, "dagr", out["name"])
		assert.Nil(t, out["empty"])
	})

	t.Run("Should keep the source text of numbers that would lose digits", func(t *testing.T) {
		out, err := yamlParser{}.Unmarshal([]byte(`
huge: 123456789012345678901234567890
price: 12345.678901234567890
grouped: 1_234_567_890_123_456_789_012_345
`))

		require.NoError(t, err)
		assert.Equal(t, "123456789012345678901234567890", out["huge"])
		assert.Equal(t, "12345.678901234567890", out["price"])
		assert.Equal(t, "1234567890123456789012345", out["grouped"])
	})

	t.Run("Should apply merge keys without overriding explicit keys", func(t *testing.T) {
		out, err := yamlParser{}.Unmarshal([]byte(`
defaults: &defaults
  threads: 2
  dir: /opt
tool:
  <<: *defaults
  threads: 8
`))

		require.NoError(t, err)
		assert.Equal(t, map[string]any{"threads": 8, "dir": "/opt"}, out["tool"])
	})

	t.Run("Should decode nested lists and mappings", func(t *testing.T) {
		out, err := yamlParser{}.Unmarshal([]byte("tool:\n  args: [a, 2]\n  env:\n    - {k: v}\n"))

		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"args": []any{"a", 2},
			"env":  []any{map[string]any{"k": "v"}},
		}, out["tool"])
	})

	t.Run("Should treat an empty document as an empty configuration", func(t *testing.T) {
		out, err := yamlParser{}.Unmarshal([]byte("# nothing here\n"))

		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("Should reject documents that are not mappings", func(t *testing.T) {
		_, err := yamlParser{}.Unmarshal([]byte("- a\n- b\n"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be a mapping")
	})

	t.Run("Should reject merge keys that do not name a mapping", func(t *testing.T) {
		_, err := yamlParser{}.Unmarshal([]byte("tool:\n  <<: 3\n"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "merge key")
	})
}
