package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/get2knowio/climax/internal/config"
)

func actionWithArg(arg config.ArgDef) config.ActionDef {
	return config.ActionDef{Name: "demo", Command: "demo", Args: []config.ArgDef{arg}}
}

func TestCoerceArgs_Integer(t *testing.T) {
	def := actionWithArg(config.ArgDef{Name: "count", Type: config.ArgInteger})

	tests := []struct {
		name     string
		value    any
		expected any
		problem  bool
	}{
		{"int passes through", 42, 42, false},
		{"numeric string", "42", 42, false},
		{"whole float", float64(42), 42, false},
		{"whole float string", "42.0", 42, false},
		{"true becomes one", true, 1, false},
		{"false becomes zero", false, 0, false},
		{"fractional float fails", 3.5, nil, true},
		{"fractional string fails", "3.5", nil, true},
		{"text fails", "abc", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coerced, problems := CoerceArgs(def, map[string]any{"count": tt.value})
			if tt.problem {
				require.Len(t, problems, 1)
				assert.Contains(t, problems[0], "'count' must be an integer")
			} else {
				require.Empty(t, problems)
				assert.Equal(t, tt.expected, coerced["count"])
			}
		})
	}
}

func TestCoerceArgs_Number(t *testing.T) {
	def := actionWithArg(config.ArgDef{Name: "ratio", Type: config.ArgNumber})

	coerced, problems := CoerceArgs(def, map[string]any{"ratio": "3.25"})
	require.Empty(t, problems)
	assert.Equal(t, 3.25, coerced["ratio"])

	coerced, problems = CoerceArgs(def, map[string]any{"ratio": float64(2)})
	require.Empty(t, problems)
	assert.Equal(t, 2.0, coerced["ratio"])

	_, problems = CoerceArgs(def, map[string]any{"ratio": "lots"})
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "'ratio' must be a number")
}

func TestCoerceArgs_Boolean(t *testing.T) {
	def := actionWithArg(config.ArgDef{Name: "force", Type: config.ArgBoolean})

	tests := []struct {
		name     string
		value    any
		expected any
		problem  bool
	}{
		{"bool passes through", true, true, false},
		{"string true", "true", true, false},
		{"string false", "false", false, false},
		{"string mixed case", "True", true, false},
		{"string one", "1", true, false},
		{"number one", float64(1), true, false},
		{"number zero", float64(0), false, false},
		{"number two fails", float64(2), nil, true},
		{"text fails", "maybe", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coerced, problems := CoerceArgs(def, map[string]any{"force": tt.value})
			if tt.problem {
				require.Len(t, problems, 1)
				assert.Contains(t, problems[0], "'force' must be a boolean")
			} else {
				require.Empty(t, problems)
				assert.Equal(t, tt.expected, coerced["force"])
			}
		})
	}
}

func TestCoerceArgs_String(t *testing.T) {
	def := actionWithArg(config.ArgDef{Name: "label"})

	coerced, problems := CoerceArgs(def, map[string]any{"label": "plain"})
	require.Empty(t, problems)
	assert.Equal(t, "plain", coerced["label"])

	// Non-strings stringify rather than fail.
	coerced, _ = CoerceArgs(def, map[string]any{"label": float64(7)})
	assert.Equal(t, "7", coerced["label"])

	coerced, _ = CoerceArgs(def, map[string]any{"label": 2.5})
	assert.Equal(t, "2.5", coerced["label"])

	coerced, _ = CoerceArgs(def, map[string]any{"label": true})
	assert.Equal(t, "true", coerced["label"])
}

func TestCoerceArgs_Enum(t *testing.T) {
	def := actionWithArg(config.ArgDef{Name: "mode", Enum: []string{"fast", "slow"}})

	_, problems := CoerceArgs(def, map[string]any{"mode": "fast"})
	assert.Empty(t, problems)

	_, problems = CoerceArgs(def, map[string]any{"mode": "medium"})
	require.Len(t, problems, 1)
	assert.Equal(t, "Argument 'mode' must be one of [fast, slow], got 'medium'", problems[0])
}

func TestCoerceArgs_RequiredAndDefaults(t *testing.T) {
	def := config.ActionDef{Name: "demo", Command: "demo", Args: []config.ArgDef{
		{Name: "needed", Required: true},
		{Name: "padded", Type: config.ArgInteger, Default: 5},
		{Name: "optional"},
	}}

	// Defaults satisfy absent arguments, including required ones.
	coerced, problems := CoerceArgs(def, map[string]any{"needed": "x"})
	require.Empty(t, problems)
	assert.Equal(t, 5, coerced["padded"])
	_, present := coerced["optional"]
	assert.False(t, present, "optional args without defaults stay absent")

	_, problems = CoerceArgs(def, map[string]any{})
	require.Len(t, problems, 1)
	assert.Equal(t, "Missing required argument: needed", problems[0])
}

func TestCoerceArgs_RequiredWithDefaultIsSatisfied(t *testing.T) {
	def := actionWithArg(config.ArgDef{Name: "branch", Required: true, Default: "main"})

	coerced, problems := CoerceArgs(def, map[string]any{})
	require.Empty(t, problems)
	assert.Equal(t, "main", coerced["branch"])
}

func TestCoerceArgs_ExtraKeysIgnored(t *testing.T) {
	def := actionWithArg(config.ArgDef{Name: "known"})

	coerced, problems := CoerceArgs(def, map[string]any{"known": "v", "mystery": 1})
	assert.Empty(t, problems)
	assert.Equal(t, map[string]any{"known": "v"}, coerced)
}
