// Package config defines the YAML source model for climax: CLI sources,
// the actions they expose, and the resolved per-action view the rest of
// the system works with.
package config

import "fmt"

// ArgType defines the declared type of an action argument.
type ArgType string

const (
	ArgString  ArgType = "string"
	ArgInteger ArgType = "integer"
	ArgNumber  ArgType = "number"
	ArgBoolean ArgType = "boolean"
)

// ValidArgTypes contains all valid argument type values.
var ValidArgTypes = map[ArgType]bool{
	ArgString:  true,
	ArgInteger: true,
	ArgNumber:  true,
	ArgBoolean: true,
}

// ArgDef describes a single argument of an action.
type ArgDef struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Type        ArgType  `yaml:"type"`
	Required    bool     `yaml:"required"`
	Default     any      `yaml:"default"`
	Flag        string   `yaml:"flag"`
	Positional  bool     `yaml:"positional"`
	Enum        []string `yaml:"enum"`
	Cwd         bool     `yaml:"cwd"`
	Stdin       bool     `yaml:"stdin"`
}

// EffectiveType returns the declared type, defaulting to string.
func (a ArgDef) EffectiveType() ArgType {
	if a.Type == "" {
		return ArgString
	}
	return a.Type
}

// ActionDef describes one action of a source.
type ActionDef struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Command     string   `yaml:"command"`
	Args        []ArgDef `yaml:"args"`
	Timeout     int      `yaml:"timeout"` // seconds, 0 means default
}

// SourceConfig is one YAML source definition: a base command plus the
// actions it exposes.
type SourceConfig struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Command     string            `yaml:"command"`
	Env         map[string]string `yaml:"env"`
	WorkingDir  string            `yaml:"working_dir"`
	Category    string            `yaml:"category"`
	Tags        []string          `yaml:"tags"`
	GlobalArgs  []ArgDef          `yaml:"global_args"`
	Actions     []ActionDef       `yaml:"actions"`
}

// ArgConstraint restricts the values an argument may take. Attached to
// resolved actions by the policy layer.
type ArgConstraint struct {
	Pattern string   `yaml:"pattern"`
	Min     *float64 `yaml:"min"`
	Max     *float64 `yaml:"max"`
}

// ResolvedAction is a single action paired with everything from its
// source that execution needs.
type ResolvedAction struct {
	Name              string
	Description       string
	Def               ActionDef
	BaseCommand       string
	Env               map[string]string
	WorkingDir        string
	GlobalArgs        []ArgDef
	SourceName        string
	SourceDescription string
	Category          string
	Tags              []string
	Timeout           int
	Constraints       map[string]ArgConstraint
}

// Resolve flattens sources into the ordered action list, preserving
// source order and per-source action order. Duplicate names are NOT
// removed here; the index handles those.
func Resolve(sources []SourceConfig) []*ResolvedAction {
	var actions []*ResolvedAction
	for i := range sources {
		src := &sources[i]
		for _, def := range src.Actions {
			desc := def.Description
			if desc == "" {
				desc = fmt.Sprintf("Run: %s %s", src.Command, def.Command)
			}
			actions = append(actions, &ResolvedAction{
				Name:              def.Name,
				Description:       desc,
				Def:               def,
				BaseCommand:       src.Command,
				Env:               src.Env,
				WorkingDir:        src.WorkingDir,
				GlobalArgs:        src.GlobalArgs,
				SourceName:        src.Name,
				SourceDescription: src.Description,
				Category:          src.Category,
				Tags:              src.Tags,
				Timeout:           def.Timeout,
			})
		}
	}
	return actions
}
