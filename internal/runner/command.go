// Package runner assembles argv arrays from validated arguments and
// executes them as subprocesses. Nothing here passes through a shell.
package runner

import (
	"fmt"
	"os"
	"strings"

	"github.com/get2knowio/climax/internal/config"
	"github.com/get2knowio/climax/internal/policy"
)

// Invocation is a fully assembled command ready to execute.
type Invocation struct {
	Argv  []string
	Dir   string            // working directory, empty for inherit
	Stdin string            // data piped to stdin, empty for none
	Env   map[string]string // source env, merged over the process env
}

// BuildCommand assembles the argv for an action from coerced argument
// values. Positional arguments come first in declaration order, then
// flag arguments, then global arguments. Arguments marked cwd or stdin
// never appear in the argv; they set the working directory and stdin
// data instead.
func BuildCommand(action *config.ResolvedAction, args map[string]any) Invocation {
	inv := Invocation{Dir: action.WorkingDir, Env: action.Env}

	inv.Argv = append(inv.Argv, strings.Fields(action.BaseCommand)...)
	inv.Argv = append(inv.Argv, strings.Fields(action.Def.Command)...)

	// Positionals in declaration order.
	for _, arg := range action.Def.Args {
		if !arg.Positional || arg.Cwd || arg.Stdin {
			continue
		}
		if value, ok := argValue(arg, args); ok {
			inv.Argv = append(inv.Argv, formatValue(value))
		}
	}

	// Then flags. The cwd and stdin carriers are picked off here
	// whether or not they were declared positional.
	for _, arg := range action.Def.Args {
		value, ok := argValue(arg, args)
		if !ok {
			continue
		}
		switch {
		case arg.Cwd:
			inv.Dir = formatValue(value)
		case arg.Stdin:
			inv.Stdin = formatValue(value)
		case arg.Positional:
			// already emitted
		default:
			inv.Argv = appendFlag(inv.Argv, arg, value)
		}
	}

	// Global arguments last, defaults only. A "$VAR" default resolves
	// from the environment and is skipped when unset or empty.
	for _, arg := range action.GlobalArgs {
		if arg.Default == nil {
			continue
		}
		value := formatValue(arg.Default)
		if strings.HasPrefix(value, "$") {
			value = os.Getenv(strings.TrimPrefix(value, "$"))
			if value == "" {
				continue
			}
		}
		if arg.Positional {
			inv.Argv = append(inv.Argv, value)
		} else {
			inv.Argv = appendFlag(inv.Argv, arg, value)
		}
	}

	return inv
}

// argValue resolves an argument's value from the call args, falling
// back to its declared default.
func argValue(arg config.ArgDef, args map[string]any) (any, bool) {
	if value, ok := args[arg.Name]; ok {
		return value, true
	}
	if arg.Default != nil {
		return arg.Default, true
	}
	return nil, false
}

// appendFlag emits a flag argument. Booleans emit the bare flag only
// when true; a flag ending in "=" joins flag and value into one token.
func appendFlag(argv []string, arg config.ArgDef, value any) []string {
	flag := arg.Flag
	if flag == "" {
		flag = "--" + strings.ReplaceAll(arg.Name, "_", "-")
	}

	if b, isBool := value.(bool); isBool {
		if b {
			return append(argv, strings.TrimSuffix(flag, "="))
		}
		return argv
	}

	if strings.HasSuffix(flag, "=") {
		return append(argv, flag+formatValue(value))
	}
	return append(argv, flag, formatValue(value))
}

func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// BuildDockerPrefix assembles the `docker run` prefix for a docker
// executor. Volume specs may reference environment variables as $VAR.
func BuildDockerPrefix(exec *policy.ExecutorConfig) []string {
	prefix := []string{"docker", "run", "--rm"}
	for _, vol := range exec.Volumes {
		prefix = append(prefix, "-v", os.Expand(vol, os.Getenv))
	}
	if exec.Network != "" {
		prefix = append(prefix, "--network", exec.Network)
	}
	if exec.WorkingDir != "" {
		prefix = append(prefix, "-w", exec.WorkingDir)
	}
	return append(prefix, exec.Image)
}
