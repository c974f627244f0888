// Package output renders CLI results for humans: colored validation
// reports and action tables.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/get2knowio/climax/internal/config"
	"github.com/get2knowio/climax/internal/index"
)

type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

type Formatter struct {
	format OutputFormat
	out    io.Writer
}

func NewFormatter(format OutputFormat, out io.Writer) *Formatter {
	return &Formatter{format: format, out: out}
}

// FormatValidation prints one file's validation outcome.
func (f *Formatter) FormatValidation(path string, src *config.SourceConfig, result *config.ValidationResult) {
	if result.Valid {
		actionCount := 0
		if src != nil {
			actionCount = len(src.Actions)
		}
		fmt.Fprintf(f.out, "%s %s: %d action(s)\n", color.GreenString("✓"), path, actionCount)
	} else {
		fmt.Fprintf(f.out, "%s %s:\n", color.RedString("✗"), path)
		for _, e := range result.Errors {
			fmt.Fprintf(f.out, "  %s %s\n", color.RedString("error:"), e.Error())
		}
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(f.out, "  %s %s\n", color.YellowString("warning:"), w.Error())
	}
}

// FormatActions prints the indexed actions sorted by name.
func (f *Formatter) FormatActions(idx *index.Index) {
	entries := append([]*index.Entry(nil), idx.Entries()...)
	sort.Slice(entries, func(i, j int) bool { return entries[i].ActionName < entries[j].ActionName })

	if f.format == FormatJSON {
		catalog := make([]index.CatalogEntry, 0, len(entries))
		for _, e := range entries {
			catalog = append(catalog, e.CatalogEntry)
		}
		data, _ := json.MarshalIndent(catalog, "", "  ")
		fmt.Fprintln(f.out, string(data))
		return
	}

	table := tablewriter.NewTable(f.out,
		tablewriter.WithHeader([]string{"Action", "Source", "Description", "Arguments"}),
	)
	for _, e := range entries {
		table.Append([]string{e.ActionName, e.SourceName, e.Description, describeArgs(e.Action)})
	}
	table.Render()
	fmt.Fprintf(f.out, "%d action(s)\n", len(entries))
}

// describeArgs summarizes an action's arguments on one line each.
func describeArgs(action *config.ResolvedAction) string {
	var lines []string
	for _, arg := range action.Def.Args {
		notes := []string{string(arg.EffectiveType())}
		if arg.Required {
			notes = append(notes, "required")
		}
		if arg.Positional {
			notes = append(notes, "positional")
		}
		if arg.Default != nil {
			notes = append(notes, fmt.Sprintf("default=%v", arg.Default))
		}
		if len(arg.Enum) > 0 {
			notes = append(notes, "enum="+strings.Join(arg.Enum, "|"))
		}
		if arg.Flag != "" {
			notes = append(notes, "flag="+arg.Flag)
		}
		if c, ok := action.Constraints[arg.Name]; ok {
			if c.Pattern != "" {
				notes = append(notes, "pattern="+c.Pattern)
			}
			if c.Min != nil {
				notes = append(notes, fmt.Sprintf("min=%v", *c.Min))
			}
			if c.Max != nil {
				notes = append(notes, fmt.Sprintf("max=%v", *c.Max))
			}
		}
		lines = append(lines, fmt.Sprintf("%s (%s)", arg.Name, strings.Join(notes, ", ")))
	}
	return strings.Join(lines, "\n")
}
