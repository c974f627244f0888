// Package index builds the immutable discovery index over every action
// resolved from the loaded sources and answers search, summary and
// lookup queries against it.
package index

import (
	"sort"
	"strings"

	"github.com/get2knowio/climax/internal/config"
	"github.com/get2knowio/climax/internal/logger"
)

// CatalogEntry is the JSON view of one indexed action.
type CatalogEntry struct {
	ActionName      string             `json:"action_name"`
	Description     string             `json:"description"`
	SourceName      string             `json:"source_name"`
	Category        string             `json:"category,omitempty"`
	Tags            []string           `json:"tags,omitempty"`
	ParameterSchema *config.JSONSchema `json:"parameter_schema"`
}

// SourceSummary aggregates the actions contributed by one source.
type SourceSummary struct {
	SourceName  string   `json:"source_name"`
	Description string   `json:"description,omitempty"`
	ActionCount int      `json:"action_count"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Entry pairs the catalog view of an action with the resolved action
// that executes it.
type Entry struct {
	CatalogEntry
	Action *config.ResolvedAction

	searchText string
}

// Index is the immutable action catalog. Build it once, then share it
// freely; all query methods are read-only.
type Index struct {
	entries   []*Entry
	byName    map[string]*Entry
	summaries []SourceSummary
}

// Build constructs the index from resolved actions, in order. When two
// actions share a name the later one wins and takes the earlier one's
// turn at the end of the ordering; the replacement is logged. Source
// summaries count every contributed action, so duplicate resolution
// never changes them.
func Build(actions []*config.ResolvedAction) *Index {
	idx := &Index{
		byName:    make(map[string]*Entry, len(actions)),
		summaries: []SourceSummary{},
	}
	summaryPos := make(map[string]int)

	for _, action := range actions {
		if pos, ok := summaryPos[action.SourceName]; ok {
			idx.summaries[pos].ActionCount++
		} else {
			summaryPos[action.SourceName] = len(idx.summaries)
			idx.summaries = append(idx.summaries, SourceSummary{
				SourceName:  action.SourceName,
				Description: action.SourceDescription,
				ActionCount: 1,
				Category:    action.Category,
				Tags:        action.Tags,
			})
		}

		entry := &Entry{
			CatalogEntry: CatalogEntry{
				ActionName:      action.Name,
				Description:     action.Description,
				SourceName:      action.SourceName,
				Category:        action.Category,
				Tags:            action.Tags,
				ParameterSchema: config.BuildInputSchema(action.Def),
			},
			Action:     action,
			searchText: buildSearchText(action),
		}

		if prev, ok := idx.byName[action.Name]; ok {
			logger.Warnf("action '%s' from source '%s' replaces earlier definition from source '%s'",
				action.Name, action.SourceName, prev.SourceName)
			for i, e := range idx.entries {
				if e == prev {
					idx.entries = append(idx.entries[:i], idx.entries[i+1:]...)
					break
				}
			}
		}
		idx.byName[action.Name] = entry
		idx.entries = append(idx.entries, entry)
	}
	return idx
}

// BuildFromSources resolves the sources and builds the index in one step.
func BuildFromSources(sources []config.SourceConfig) *Index {
	return Build(config.Resolve(sources))
}

func buildSearchText(action *config.ResolvedAction) string {
	parts := []string{action.Name, action.Description, action.SourceName, action.Category}
	parts = append(parts, action.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

// Search returns up to limit entries matching every given filter, in
// index order. The query is a case-insensitive literal substring over
// name, description, source name, category and tags; category and
// source are exact case-insensitive matches. An empty filter string
// means no filter for that field. A limit of zero or less matches
// nothing.
func (idx *Index) Search(query, category, source string, limit int) []CatalogEntry {
	if limit <= 0 {
		return []CatalogEntry{}
	}

	query = strings.ToLower(query)
	category = strings.ToLower(category)
	source = strings.ToLower(source)

	results := []CatalogEntry{}
	for _, entry := range idx.entries {
		if query != "" && !strings.Contains(entry.searchText, query) {
			continue
		}
		if category != "" && strings.ToLower(entry.Category) != category {
			continue
		}
		if source != "" && strings.ToLower(entry.SourceName) != source {
			continue
		}
		results = append(results, entry.CatalogEntry)
		if len(results) >= limit {
			break
		}
	}
	return results
}

// Summaries returns one summary per source, in source order. The counts
// are fixed at build time and ignore later duplicate resolution.
func (idx *Index) Summaries() []SourceSummary {
	return idx.summaries
}

// Get returns the entry for an exact action name.
func (idx *Index) Get(name string) (*Entry, bool) {
	entry, ok := idx.byName[name]
	return entry, ok
}

// Names returns all action names sorted alphabetically.
func (idx *Index) Names() []string {
	names := make([]string, 0, len(idx.byName))
	for name := range idx.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entries returns all entries in index order.
func (idx *Index) Entries() []*Entry {
	return idx.entries
}

// Len reports the number of indexed actions.
func (idx *Index) Len() int {
	return len(idx.entries)
}
