// Package mapping projects project and issuer data onto the named fields of
// CERFA PDF forms. Tables are static and read-only; Resolve is pure.
package mapping

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"
)

// RuleKind tags the variant held by a FieldRule.
type RuleKind uint8

const (
	RuleUnmapped RuleKind = iota
	RuleDirect
	RuleSelect
)

func (k RuleKind) String() string {
	switch k {
	case RuleDirect:
		return "direct"
	case RuleSelect:
		return "select"
	default:
		return "unmapped"
	}
}

// FieldRule says what to do with one source value.
type FieldRule struct {
	kind    RuleKind
	field   string
	choices map[string]string
}

// Direct copies the value into field.
func Direct(field string) FieldRule { return FieldRule{kind: RuleDirect, field: field} }

// Select ticks the checkbox choices[value]. An empty destination leaves the
// choice unticked.
func Select(choices map[string]string) FieldRule {
	c := make(map[string]string, len(choices))
	for k, v := range choices {
		c[k] = v
	}
	return FieldRule{kind: RuleSelect, choices: c}
}

// Unmapped marks a source that the form has no field for.
func Unmapped() FieldRule { return FieldRule{kind: RuleUnmapped} }

// Kind returns the variant tag.
func (r FieldRule) Kind() RuleKind { return r.kind }

// Field returns the destination of a Direct rule.
func (r FieldRule) Field() string { return r.field }

// Choice returns the destination ticked for value by a Select rule.
func (r FieldRule) Choice(value string) (string, bool) {
	dest, ok := r.choices[value]
	if !ok || dest == "" {
		return "", false
	}
	return dest, true
}

// Choices returns the sorted keys of a Select rule.
func (r FieldRule) Choices() []string {
	keys := make([]string, 0, len(r.choices))
	for k := range r.choices {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Date part suffixes. A key "client.dateNaissance.jour" is a synthetic
// destination for the day of client.dateNaissance, never a source path.
const (
	partDay   = "jour"
	partMonth = "mois"
	partYear  = "annee"
)

type entry struct {
	path string
	rule FieldRule
}

func on(path string, rule FieldRule) entry { return entry{path: path, rule: rule} }

type dateFields struct {
	day, month, year string
}

// Table is the read-only field mapping of one form. Sources are applied in
// declaration order, so a later source overwrites an earlier one that shares
// a destination.
type Table struct {
	sources []string
	rules   map[string]FieldRule
	dates   map[string]dateFields
}

// Sources returns the source paths in application order.
func (t *Table) Sources() []string {
	return append([]string(nil), t.sources...)
}

// Rule returns the rule for a source path. Date sources declared only
// through their parts report Unmapped.
func (t *Table) Rule(path string) (FieldRule, bool) {
	r, ok := t.rules[path]
	if !ok {
		if _, dated := t.dates[path]; dated {
			return Unmapped(), true
		}
	}
	return r, ok
}

// Fields returns every destination field the table can write, sorted.
func (t *Table) Fields() []string {
	seen := map[string]bool{}
	for _, r := range t.rules {
		switch r.kind {
		case RuleDirect:
			seen[r.field] = true
		case RuleSelect:
			for _, dest := range r.choices {
				if dest != "" {
					seen[dest] = true
				}
			}
		}
	}
	for _, d := range t.dates {
		seen[d.day], seen[d.month], seen[d.year] = true, true, true
	}
	out := make([]string, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// buildTable validates entries and indexes them.
func buildTable(entries []entry) (*Table, error) {
	t := &Table{
		rules: make(map[string]FieldRule, len(entries)),
		dates: map[string]dateFields{},
	}
	parts := map[string]map[string]string{}
	declared := map[string]bool{}

	for _, e := range entries {
		if e.path == "" {
			return nil, eris.New("mapping: empty source path")
		}
		if declared[e.path] {
			return nil, eris.Errorf("mapping: duplicate source path %q", e.path)
		}
		declared[e.path] = true

		switch e.rule.kind {
		case RuleDirect:
			if e.rule.field == "" {
				return nil, eris.Errorf("mapping: %s: direct rule without field", e.path)
			}
		case RuleSelect:
			if len(e.rule.choices) == 0 {
				return nil, eris.Errorf("mapping: %s: selection without choices", e.path)
			}
			for k := range e.rule.choices {
				if k == "" {
					return nil, eris.Errorf("mapping: %s: selection with empty key", e.path)
				}
			}
		}

		if base, part, ok := splitDatePart(e.path); ok {
			if e.rule.kind != RuleDirect {
				return nil, eris.Errorf("mapping: %s: date part must be a direct rule", e.path)
			}
			if parts[base] == nil {
				parts[base] = map[string]string{}
				if !declared[base] && !containsPath(entries, base) {
					t.sources = append(t.sources, base)
				}
			}
			parts[base][part] = e.rule.field
			continue
		}

		t.rules[e.path] = e.rule
		t.sources = append(t.sources, e.path)
	}

	for base, p := range parts {
		if p[partDay] == "" || p[partMonth] == "" || p[partYear] == "" {
			return nil, eris.Errorf("mapping: %s: date parts must declare jour, mois and annee", base)
		}
		t.dates[base] = dateFields{day: p[partDay], month: p[partMonth], year: p[partYear]}
	}

	return t, nil
}

func mustTable(entries ...entry) *Table {
	t, err := buildTable(entries)
	if err != nil {
		panic(err)
	}
	return t
}

// splitDatePart recognises "<date path>.jour|mois|annee" where the parent
// segment is date-like.
func splitDatePart(path string) (base, part string, ok bool) {
	i := strings.LastIndex(path, ".")
	if i <= 0 {
		return "", "", false
	}
	base, part = path[:i], path[i+1:]
	switch part {
	case partDay, partMonth, partYear:
	default:
		return "", "", false
	}
	if !isDateLike(base) {
		return "", "", false
	}
	return base, part, true
}

// isDateLike applies the naming convention: the last segment mentions "date".
func isDateLike(path string) bool {
	last := path
	if i := strings.LastIndex(path, "."); i >= 0 {
		last = path[i+1:]
	}
	return strings.Contains(strings.ToLower(last), "date")
}

func containsPath(entries []entry, path string) bool {
	for _, e := range entries {
		if e.path == path {
			return true
		}
	}
	return false
}
