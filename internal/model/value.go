package model

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindString
	KindNumber
	KindBool
	KindRecord
)

// Value is a loosely-typed nested record as captured by the wizard or read
// from a save file. The zero Value is absent.
type Value struct {
	kind   Kind
	str    string
	num    float64
	flag   bool
	fields map[string]Value
}

// Absent returns the absent value.
func Absent() Value { return Value{} }

// String returns a string scalar.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a numeric scalar.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Bool returns a boolean scalar.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// Record returns a record holding a copy of fields. Absent children are dropped.
func Record(fields map[string]Value) Value {
	m := make(map[string]Value, len(fields))
	for k, v := range fields {
		if v.kind == KindAbsent {
			continue
		}
		m[k] = v
	}
	return Value{kind: KindRecord, fields: m}
}

// FromAny converts decoded JSON or YAML data into a Value. nil and
// unsupported types become absent.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Absent()
	case Value:
		return t
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case int32:
		return Number(float64(t))
	case uint64:
		return Number(float64(t))
	case time.Time:
		return String(t.Format(time.DateOnly))
	case map[string]any:
		m := make(map[string]Value, len(t))
		for k, c := range t {
			m[k] = FromAny(c)
		}
		return Record(m)
	case map[any]any:
		m := make(map[string]Value, len(t))
		for k, c := range t {
			m[fmt.Sprint(k)] = FromAny(c)
		}
		return Record(m)
	default:
		return Absent()
	}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v holds nothing.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// IsScalar reports whether v is a string, number or bool.
func (v Value) IsScalar() bool {
	return v.kind == KindString || v.kind == KindNumber || v.kind == KindBool
}

// IsRecord reports whether v is a record.
func (v Value) IsRecord() bool { return v.kind == KindRecord }

// IsEmpty reports whether v is absent, an empty record, or a blank string.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindAbsent:
		return true
	case KindString:
		return strings.TrimSpace(v.str) == ""
	case KindRecord:
		return len(v.fields) == 0
	}
	return false
}

// Text returns the canonical text of a scalar: strings verbatim, numbers in
// shortest decimal form, booleans as "true"/"false". Records and absent
// values return "".
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return formatNumber(v.num)
	case KindBool:
		return strconv.FormatBool(v.flag)
	}
	return ""
}

// Truthy mirrors how a form treats a checkbox-like field: true booleans,
// non-zero numbers, and non-blank strings other than "false", "0", "non" and
// "off" are truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.flag
	case KindNumber:
		return v.num != 0
	case KindString:
		switch strings.ToLower(strings.TrimSpace(v.str)) {
		case "", "false", "0", "non", "no", "off":
			return false
		}
		return true
	case KindRecord:
		return len(v.fields) > 0
	}
	return false
}

// Field returns the child named key of a record.
func (v Value) Field(key string) (Value, bool) {
	if v.kind != KindRecord {
		return Absent(), false
	}
	c, ok := v.fields[key]
	return c, ok
}

// Keys returns the sorted child names of a record.
func (v Value) Keys() []string {
	if v.kind != KindRecord {
		return nil
	}
	keys := make([]string, 0, len(v.fields))
	for k := range v.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup resolves a dotted path such as "societe.adresse.ville". Traversal
// through a non-record at any intermediate segment yields absent.
func (v Value) Lookup(path string) (Value, bool) {
	if path == "" {
		return Absent(), false
	}
	cur := v
	for _, seg := range strings.Split(path, ".") {
		next, ok := cur.Field(seg)
		if !ok {
			return Absent(), false
		}
		cur = next
	}
	return cur, !cur.IsAbsent()
}

// With returns a copy of the record v with path set to child, creating
// intermediate records as needed. A non-record v is replaced by a record.
func (v Value) With(path string, child Value) Value {
	segs := strings.SplitN(path, ".", 2)
	base := make(map[string]Value, len(v.fields)+1)
	if v.kind == KindRecord {
		for k, c := range v.fields {
			base[k] = c
		}
	}
	if len(segs) == 1 {
		if child.IsAbsent() {
			delete(base, segs[0])
		} else {
			base[segs[0]] = child
		}
		return Value{kind: KindRecord, fields: base}
	}
	base[segs[0]] = base[segs[0]].With(segs[1], child)
	return Value{kind: KindRecord, fields: base}
}

// Any converts v back to plain Go data suitable for JSON or YAML encoding.
func (v Value) Any() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.flag
	case KindRecord:
		m := make(map[string]any, len(v.fields))
		for k, c := range v.fields {
			m[k] = c.Any()
		}
		return m
	}
	return nil
}

// MarshalJSON encodes v as its plain Go form.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}

// UnmarshalJSON decodes any JSON document into v.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = FromAny(raw)
	return nil
}

// NumberOrZero is the single numeric coercion used by the decision engine:
// numbers pass through, numeric strings (comma or dot decimal) are parsed,
// everything else, including absent values, is 0.
func NumberOrZero(v Value) float64 {
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return 0
		}
		return v.num
	case KindString:
		s := strings.ReplaceAll(strings.TrimSpace(v.str), ",", ".")
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	}
	return 0
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
