package mapping

import (
	"fmt"
	"strings"

	"github.com/Bist0uille/archibot/internal/model"
)

// Checkbox states written into PDF forms.
const (
	CheckboxOn  = "On"
	CheckboxOff = "Off"
)

// Resolution is the flat field mapping for one document.
type Resolution struct {
	DocumentID string            `json:"document_id"`
	Fields     map[string]string `json:"fields"`
	Notices    []string          `json:"notices,omitempty"`
}

// Resolve maps the project and the issuer profile onto the fields of docID.
// Issuer values are written first and project values override them. It never
// fails on data; anything unusable is skipped or reported as a notice.
func Resolve(docID string, p model.ProjectInput, issuer model.Value) Resolution {
	res := Resolution{DocumentID: docID, Fields: map[string]string{}}

	for _, path := range issuerTable.sources {
		v, ok := issuer.Lookup(path)
		if !ok || !v.IsScalar() || v.IsEmpty() {
			continue
		}
		if r := issuerTable.rules[path]; r.kind == RuleDirect {
			res.Fields[r.field] = fieldText(v)
		}
	}

	t, ok := tables[docID]
	if !ok {
		res.Notices = append(res.Notices,
			fmt.Sprintf("no field mapping for document %s; only issuer fields were filled", docID))
		return res
	}

	for _, path := range t.sources {
		v, ok := p.Lookup(path)
		if !ok || !v.IsScalar() || v.IsEmpty() {
			continue
		}
		rule := t.rules[path]
		if parts, dated := t.dates[path]; dated {
			if applyDate(res.Fields, parts, v) {
				continue
			}
			if rule.kind != RuleDirect {
				res.Notices = append(res.Notices,
					fmt.Sprintf("%s: %q is not a year-month-day date and has no whole-date field", path, v.Text()))
				continue
			}
		}
		apply(res.Fields, path, rule, v)
	}

	return res
}

func apply(fields map[string]string, path string, rule FieldRule, v model.Value) {
	switch rule.kind {
	case RuleDirect:
		fields[rule.field] = fieldText(v)
	case RuleSelect:
		if dest, ok := rule.Choice(choiceKey(path, v)); ok {
			fields[dest] = CheckboxOn
		}
	}
}

// choiceKey is the selection key for v. Category and destination go through
// the same parser as the rule engine, so English spellings tick the same box.
func choiceKey(path string, v model.Value) string {
	switch path {
	case "projet.typeProjet":
		if c := model.ParseCategory(v.Text()); c != model.CategoryUnknown {
			return string(c)
		}
	case "projet.destination":
		if d := model.ParseDestination(v.Text()); d != model.DestinationUnknown {
			return string(d)
		}
	}
	return v.Text()
}

// applyDate splits a year-month-day value on hyphens into its day, month and
// year fields. Single-digit days and months are zero-padded.
func applyDate(fields map[string]string, d dateFields, v model.Value) bool {
	if v.Kind() != model.KindString {
		return false
	}
	parts := strings.Split(strings.TrimSpace(v.Text()), "-")
	if len(parts) != 3 {
		return false
	}
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
		if parts[i] == "" {
			return false
		}
	}
	fields[d.year] = parts[0]
	fields[d.month] = padTwo(parts[1])
	fields[d.day] = padTwo(parts[2])
	return true
}

func padTwo(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// fieldText renders a scalar as PDF field text.
func fieldText(v model.Value) string {
	if v.Kind() == model.KindBool {
		if v.Truthy() {
			return CheckboxOn
		}
		return CheckboxOff
	}
	return v.Text()
}
