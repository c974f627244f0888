package policy

import (
	"fmt"
	"regexp"

	"github.com/get2knowio/climax/internal/config"
	"github.com/get2knowio/climax/internal/logger"
)

// Apply filters and decorates resolved actions according to the policy.
// The input slice is never mutated; decorated actions are copies. A nil
// policy passes everything through unchanged.
func Apply(actions []*config.ResolvedAction, pol *Policy) []*config.ResolvedAction {
	if pol == nil {
		return actions
	}

	known := make(map[string]bool, len(actions))
	for _, a := range actions {
		known[a.Name] = true
	}
	for name := range pol.Tools {
		if !known[name] {
			logger.Warnf("policy references unknown action '%s'", name)
		}
	}

	var out []*config.ResolvedAction
	for _, action := range actions {
		ap, listed := pol.Tools[action.Name]
		if pol.Default == DefaultDisabled && !listed {
			continue
		}
		if !listed {
			out = append(out, action)
			continue
		}

		decorated := *action
		if ap.Description != "" {
			decorated.Description = ap.Description
		}
		if len(ap.Args) > 0 {
			declared := make(map[string]bool, len(action.Def.Args))
			for _, arg := range action.Def.Args {
				declared[arg.Name] = true
			}
			decorated.Constraints = make(map[string]config.ArgConstraint, len(ap.Args))
			for argName, c := range ap.Args {
				if !declared[argName] {
					logger.Warnf("policy for action '%s' constrains unknown argument '%s'", action.Name, argName)
					continue
				}
				decorated.Constraints[argName] = c
			}
		}
		out = append(out, &decorated)
	}
	return out
}

// CheckConstraints validates coerced argument values against the
// action's policy constraints, collecting every violation. Constraints
// on absent arguments and on value kinds they do not apply to are
// skipped.
func CheckConstraints(action *config.ResolvedAction, args map[string]any) []string {
	if len(action.Constraints) == 0 {
		return nil
	}

	var problems []string
	for _, arg := range action.Def.Args {
		c, ok := action.Constraints[arg.Name]
		if !ok {
			continue
		}
		value, present := args[arg.Name]
		if !present {
			continue
		}

		if c.Pattern != "" {
			if s, isStr := value.(string); isStr {
				re, err := regexp.Compile("^(?:" + c.Pattern + ")$")
				if err != nil {
					problems = append(problems, fmt.Sprintf("invalid pattern for argument '%s': %v", arg.Name, err))
				} else if !re.MatchString(s) {
					problems = append(problems, fmt.Sprintf("argument '%s' value %q does not match pattern %s", arg.Name, s, c.Pattern))
				}
			}
		}

		if c.Min != nil || c.Max != nil {
			if n, isNum := numericValue(value); isNum {
				if c.Min != nil && n < *c.Min {
					problems = append(problems, fmt.Sprintf("argument '%s' value %v is below minimum %v", arg.Name, value, *c.Min))
				}
				if c.Max != nil && n > *c.Max {
					problems = append(problems, fmt.Sprintf("argument '%s' value %v is above maximum %v", arg.Name, value, *c.Max))
				}
			}
		}
	}
	return problems
}

func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
