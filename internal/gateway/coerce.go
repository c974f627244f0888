package gateway

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/get2knowio/climax/internal/config"
)

// CoerceArgs validates call arguments against an action's declared
// arguments and coerces each value to its declared type. Defaults fill
// in for absent arguments before the required check. Every problem is
// collected; keys the action does not declare are ignored. The returned
// map holds only string, int, float64 and bool values.
func CoerceArgs(def config.ActionDef, args map[string]any) (map[string]any, []string) {
	coerced := make(map[string]any, len(def.Args))
	var problems []string

	for _, arg := range def.Args {
		value, present := args[arg.Name]
		if !present || value == nil {
			if arg.Default != nil {
				value = arg.Default
			} else if arg.Required {
				problems = append(problems, fmt.Sprintf("Missing required argument: %s", arg.Name))
				continue
			} else {
				continue
			}
		}

		converted, err := coerceValue(arg, value)
		if err != "" {
			problems = append(problems, err)
			continue
		}

		if s, isStr := converted.(string); isStr && len(arg.Enum) > 0 {
			if !contains(arg.Enum, s) {
				problems = append(problems, fmt.Sprintf("Argument '%s' must be one of [%s], got '%s'",
					arg.Name, strings.Join(arg.Enum, ", "), s))
				continue
			}
		}

		coerced[arg.Name] = converted
	}
	return coerced, problems
}

// coerceValue converts one value to the argument's declared type. A
// non-empty return string is the collected problem.
func coerceValue(arg config.ArgDef, value any) (any, string) {
	switch arg.EffectiveType() {
	case config.ArgString:
		return coerceString(value), ""
	case config.ArgInteger:
		return coerceInteger(arg.Name, value)
	case config.ArgNumber:
		return coerceNumber(arg.Name, value)
	case config.ArgBoolean:
		return coerceBoolean(arg.Name, value)
	}
	return coerceString(value), ""
}

func coerceString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func coerceInteger(name string, value any) (any, string) {
	switch v := value.(type) {
	case int:
		return v, ""
	case int64:
		return int(v), ""
	case float64:
		if v != math.Trunc(v) {
			return nil, fmt.Sprintf("Argument '%s' must be an integer, got %v", name, v)
		}
		return int(v), ""
	case bool:
		if v {
			return 1, ""
		}
		return 0, ""
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n, ""
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil && f == math.Trunc(f) {
			return int(f), ""
		}
		return nil, fmt.Sprintf("Argument '%s' must be an integer, got '%s'", name, v)
	}
	return nil, fmt.Sprintf("Argument '%s' must be an integer, got %v", name, value)
}

func coerceNumber(name string, value any) (any, string) {
	switch v := value.(type) {
	case float64:
		return v, ""
	case int:
		return float64(v), ""
	case int64:
		return float64(v), ""
	case bool:
		if v {
			return float64(1), ""
		}
		return float64(0), ""
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, ""
		}
		return nil, fmt.Sprintf("Argument '%s' must be a number, got '%s'", name, v)
	}
	return nil, fmt.Sprintf("Argument '%s' must be a number, got %v", name, value)
}

func coerceBoolean(name string, value any) (any, string) {
	switch v := value.(type) {
	case bool:
		return v, ""
	case string:
		switch strings.ToLower(v) {
		case "true", "1", "yes":
			return true, ""
		case "false", "0", "no":
			return false, ""
		}
		return nil, fmt.Sprintf("Argument '%s' must be a boolean, got '%s'", name, v)
	case float64:
		if v == 1 {
			return true, ""
		}
		if v == 0 {
			return false, ""
		}
	case int:
		if v == 1 {
			return true, ""
		}
		if v == 0 {
			return false, ""
		}
	}
	return nil, fmt.Sprintf("Argument '%s' must be a boolean, got %v", name, value)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
