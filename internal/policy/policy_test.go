package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/get2knowio/climax/internal/config"
	"github.com/get2knowio/climax/internal/logger"
)

func TestMain(m *testing.M) {
	logger.SetSilent(true)
	os.Exit(m.Run())
}

func writePolicy(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testActions() []*config.ResolvedAction {
	return []*config.ResolvedAction{
		{
			Name:        "git_status",
			Description: "Show working tree status",
			Def:         config.ActionDef{Name: "git_status"},
		},
		{
			Name:        "git_commit",
			Description: "Record changes",
			Def: config.ActionDef{
				Name: "git_commit",
				Args: []config.ArgDef{{Name: "message", Required: true}},
			},
		},
	}
}

func TestLoad(t *testing.T) {
	pol, err := Load(writePolicy(t, `
default: disabled
executor:
  type: docker
  image: alpine/git
  volumes: ["$HOME:/workspace"]
  network: none
tools:
  git_status:
    description: Safe status check
  git_commit:
    args:
      message:
        pattern: "[a-z].*"
        min: 1
        max: 100
`))
	require.NoError(t, err)

	assert.Equal(t, DefaultDisabled, pol.Default)
	require.NotNil(t, pol.Executor)
	assert.Equal(t, ExecutorDocker, pol.Executor.Type)
	assert.Equal(t, "alpine/git", pol.Executor.Image)
	require.Contains(t, pol.Tools, "git_commit")
	c := pol.Tools["git_commit"].Args["message"]
	assert.Equal(t, "[a-z].*", c.Pattern)
	require.NotNil(t, c.Min)
	assert.Equal(t, float64(1), *c.Min)
}

func TestLoad_Defaults(t *testing.T) {
	pol, err := Load(writePolicy(t, "tools: {}\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultDisabled, pol.Default, "an unstated default keeps unlisted actions off")
	assert.Nil(t, pol.Executor)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writePolicy(t, "default: sometimes\n"))
	assert.Error(t, err)

	_, err = Load(writePolicy(t, "executor:\n  type: docker\n"))
	assert.Error(t, err, "docker executor requires an image")

	_, err = Load(writePolicy(t, "executor:\n  type: vm\n"))
	assert.Error(t, err)

	_, err = Load("/nonexistent/policy.yaml")
	assert.Error(t, err)
}

func TestApply_NilPolicyPassesThrough(t *testing.T) {
	actions := testActions()
	assert.Equal(t, actions, Apply(actions, nil))
}

func TestApply_DefaultDisabledKeepsOnlyListed(t *testing.T) {
	pol := &Policy{
		Default: DefaultDisabled,
		Tools: map[string]ActionPolicy{"git_status": {}},
	}

	out := Apply(testActions(), pol)
	require.Len(t, out, 1)
	assert.Equal(t, "git_status", out[0].Name)
}

func TestApply_DefaultEnabledKeepsEverything(t *testing.T) {
	pol := &Policy{
		Default: DefaultEnabled,
		Tools: map[string]ActionPolicy{"git_status": {}},
	}

	out := Apply(testActions(), pol)
	assert.Len(t, out, 2)
}

func TestApply_DescriptionOverrideCopiesNotMutates(t *testing.T) {
	actions := testActions()
	pol := &Policy{
		Default: DefaultEnabled,
		Tools: map[string]ActionPolicy{"git_status": {Description: "Overridden"}},
	}

	out := Apply(actions, pol)
	assert.Equal(t, "Overridden", out[0].Description)
	assert.Equal(t, "Show working tree status", actions[0].Description, "the input must stay untouched")
}

func TestApply_AttachesConstraintsForDeclaredArgsOnly(t *testing.T) {
	min := float64(1)
	pol := &Policy{
		Default: DefaultEnabled,
		Tools: map[string]ActionPolicy{
			"git_commit": {Args: map[string]config.ArgConstraint{
				"message": {Min: &min},
				"phantom": {Pattern: ".*"},
			}},
		},
	}

	out := Apply(testActions(), pol)
	commit := out[1]
	assert.Contains(t, commit.Constraints, "message")
	assert.NotContains(t, commit.Constraints, "phantom", "constraints for undeclared args are dropped with a warning")
}

func TestCheckConstraints_Pattern(t *testing.T) {
	action := testActions()[1]
	action.Constraints = map[string]config.ArgConstraint{"message": {Pattern: "[a-z].*"}}

	assert.Empty(t, CheckConstraints(action, map[string]any{"message": "fix parser"}))

	problems := CheckConstraints(action, map[string]any{"message": "Fix parser"})
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "does not match pattern")
}

func TestCheckConstraints_PatternIsFullMatch(t *testing.T) {
	action := testActions()[1]
	action.Constraints = map[string]config.ArgConstraint{"message": {Pattern: "fix"}}

	problems := CheckConstraints(action, map[string]any{"message": "fix parser"})
	assert.Len(t, problems, 1, "a partial match is not enough")
}

func TestCheckConstraints_MinMax(t *testing.T) {
	min, max := float64(1), float64(10)
	action := &config.ResolvedAction{
		Name:        "scale",
		Def:         config.ActionDef{Name: "scale", Args: []config.ArgDef{{Name: "replicas", Type: config.ArgInteger}}},
		Constraints: map[string]config.ArgConstraint{"replicas": {Min: &min, Max: &max}},
	}

	assert.Empty(t, CheckConstraints(action, map[string]any{"replicas": 5}))

	problems := CheckConstraints(action, map[string]any{"replicas": 0})
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "below minimum")

	problems = CheckConstraints(action, map[string]any{"replicas": 11})
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "above maximum")
}

func TestCheckConstraints_SkipsAbsentAndMistypedValues(t *testing.T) {
	min := float64(1)
	action := &config.ResolvedAction{
		Name: "demo",
		Def: config.ActionDef{Name: "demo", Args: []config.ArgDef{
			{Name: "count"},
			{Name: "label"},
		}},
		Constraints: map[string]config.ArgConstraint{
			"count": {Min: &min},
			"label": {Pattern: "[a-z]+"},
		},
	}

	// Absent args are not checked; numeric bounds ignore strings.
	assert.Empty(t, CheckConstraints(action, map[string]any{"count": "not-a-number"}))
	assert.Empty(t, CheckConstraints(action, map[string]any{}))
}
