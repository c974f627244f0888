package config

import (
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// ValidationError represents a single validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult holds the result of validating a source config.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors,omitempty"`
	Warnings []ValidationError `json:"warnings,omitempty"`
}

var actionNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Validate checks a source config for structural problems. Errors are
// collected, not short-circuited, so one pass reports everything.
func Validate(src *SourceConfig) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if src.Command == "" {
		result.Errors = append(result.Errors, ValidationError{"command", "required field is missing"})
	}
	if len(src.Actions) == 0 {
		result.Errors = append(result.Errors, ValidationError{"actions", "at least one action is required"})
	}

	seenNames := make(map[string]bool)
	for i, action := range src.Actions {
		prefix := fmt.Sprintf("actions[%d]", i)

		if action.Name == "" {
			result.Errors = append(result.Errors, ValidationError{prefix + ".name", "required"})
		} else {
			if !actionNamePattern.MatchString(action.Name) {
				result.Errors = append(result.Errors, ValidationError{prefix + ".name", "must be snake_case (lowercase letters, numbers, underscores)"})
			}
			if seenNames[action.Name] {
				result.Errors = append(result.Errors, ValidationError{prefix + ".name", fmt.Sprintf("duplicate action name: %s", action.Name)})
			}
			seenNames[action.Name] = true
		}

		if action.Timeout < 0 {
			result.Errors = append(result.Errors, ValidationError{prefix + ".timeout", "must not be negative"})
		}

		validateArgs(prefix, action.Args, result)
	}

	validateArgs("global_args", src.GlobalArgs, result)

	// Warn when the base command is unlikely to run.
	if src.Command != "" {
		base := strings.Fields(src.Command)
		if len(base) > 0 {
			if _, err := exec.LookPath(base[0]); err != nil {
				result.Warnings = append(result.Warnings, ValidationError{"command", fmt.Sprintf("'%s' not found on PATH", base[0])})
			}
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func validateArgs(prefix string, args []ArgDef, result *ValidationResult) {
	seen := make(map[string]bool)
	for i, arg := range args {
		field := fmt.Sprintf("%s.args[%d]", prefix, i)

		if arg.Name == "" {
			result.Errors = append(result.Errors, ValidationError{field + ".name", "required"})
		} else if seen[arg.Name] {
			result.Errors = append(result.Errors, ValidationError{field + ".name", fmt.Sprintf("duplicate argument name: %s", arg.Name)})
		}
		seen[arg.Name] = true

		if arg.Type != "" && !ValidArgTypes[arg.Type] {
			result.Errors = append(result.Errors, ValidationError{field + ".type", fmt.Sprintf("invalid argument type: %s", arg.Type)})
		}
		if len(arg.Enum) > 0 && arg.EffectiveType() != ArgString {
			result.Errors = append(result.Errors, ValidationError{field + ".enum", "enum is only supported for string arguments"})
		}
		if arg.Positional && arg.Flag != "" {
			result.Errors = append(result.Errors, ValidationError{field, "positional arguments cannot carry a flag"})
		}
		if arg.Cwd && arg.Stdin {
			result.Errors = append(result.Errors, ValidationError{field, "an argument cannot be both cwd and stdin"})
		}
	}
}

// ValidateFile loads and validates a single source file. A file that
// fails to parse yields an invalid result rather than an error.
func ValidateFile(path string) (*SourceConfig, *ValidationResult) {
	src, err := LoadSource(path)
	if err != nil {
		return nil, &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Field:   "file",
				Message: err.Error(),
			}},
		}
	}
	return src, Validate(src)
}
