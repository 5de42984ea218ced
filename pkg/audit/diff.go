// Package audit computes field-level change sets for the activity log.
//
// Fields take part in a diff when they carry an `audit:"name"` struct tag. The
// original value is a struct (or pointer to one); the updates value is either a
// struct of the same shape or a patch struct whose pointer fields are nil when the
// field is not being updated.
package audit

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"
)

const tagName = "audit"

// Change is the before and after rendering of a single field.
type Change struct {
	From string `json:"from" dynamodbav:"from"`
	To   string `json:"to" dynamodbav:"to"`
}

// ChangeSet maps an audited field name to its change.
type ChangeSet map[string]Change

// Empty reports whether no field changed.
func (c ChangeSet) Empty() bool {
	return len(c) == 0
}

// Fields returns the changed field names in sorted order.
func (c ChangeSet) Fields() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ToDetails renders the change set as an activity log details payload.
func (c ChangeSet) ToDetails() map[string]any {
	changes := make(map[string]any, len(c))
	for name, change := range c {
		changes[name] = map[string]any{"from": change.From, "to": change.To}
	}
	return map[string]any{"changes": changes}
}

var timeType = reflect.TypeOf(time.Time{})

// Diff compares every audited field present in updates against original and
// returns the fields whose effective value differs.
func Diff(original, updates any) ChangeSet {
	changes := ChangeSet{}

	ov := indirect(reflect.ValueOf(original))
	uv := indirect(reflect.ValueOf(updates))
	if ov.Kind() != reflect.Struct || uv.Kind() != reflect.Struct {
		return changes
	}

	current := auditedFields(ov)
	ut := uv.Type()
	for i := 0; i < ut.NumField(); i++ {
		name, ok := fieldName(ut.Field(i))
		if !ok {
			continue
		}
		old, ok := current[name]
		if !ok {
			continue
		}

		next := uv.Field(i)
		if next.Kind() == reflect.Pointer {
			if next.IsNil() {
				continue
			}
			next = next.Elem()
		}
		old = derefOrZero(old)

		if change, changed := compare(old, next); changed {
			changes[name] = change
		}
	}

	return changes
}

func compare(old, next reflect.Value) (Change, bool) {
	switch {
	case old.Type() == timeType && next.Type() == timeType:
		from, to := old.Interface().(time.Time), next.Interface().(time.Time)
		if from.Equal(to) {
			return Change{}, false
		}
		return Change{From: formatTime(from), To: formatTime(to)}, true

	case isList(old) && isList(next):
		from, to := joinSorted(old), joinSorted(next)
		if from == to {
			return Change{}, false
		}
		return Change{From: from, To: to}, true

	default:
		from, to := fmt.Sprint(old.Interface()), fmt.Sprint(next.Interface())
		if from == to {
			return Change{}, false
		}
		return Change{From: from, To: to}, true
	}
}

func auditedFields(v reflect.Value) map[string]reflect.Value {
	fields := make(map[string]reflect.Value)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if name, ok := fieldName(t.Field(i)); ok {
			fields[name] = v.Field(i)
		}
	}
	return fields
}

func fieldName(f reflect.StructField) (string, bool) {
	if !f.IsExported() {
		return "", false
	}
	name := f.Tag.Get(tagName)
	if name == "" || name == "-" {
		return "", false
	}
	return name, true
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func derefOrZero(v reflect.Value) reflect.Value {
	if v.Kind() != reflect.Pointer {
		return v
	}
	if v.IsNil() {
		return reflect.Zero(v.Type().Elem())
	}
	return v.Elem()
}

func isList(v reflect.Value) bool {
	return v.Kind() == reflect.Slice || v.Kind() == reflect.Array
}

func joinSorted(v reflect.Value) string {
	items := make([]string, v.Len())
	for i := range items {
		items[i] = fmt.Sprint(v.Index(i).Interface())
	}
	sort.Strings(items)
	return strings.Join(items, ", ")
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
