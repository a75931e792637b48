// Package converters turns exported records into canonical models.
//
// Exports come from several generations of the backend and name the same
// field differently: a task title can be "title_c", "title" or "Name", an
// ID can be "Id" or "id", a date "due_date_c" or "dueDate". Each
// converter lists the accepted spellings in priority order and takes the
// first one present.
//
// Example usage:
//
//	task, err := converters.TaskFromRecord(rec)
//	user, err := converters.UserFromRecord(rec)
package converters

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Record is one decoded export object
type Record map[string]any

// dateLayouts are tried in order when a date is a string
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// lookup returns the value under the first key present with a non-nil value
func (r Record) lookup(keys ...string) (any, string, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v, k, true
		}
	}
	return nil, "", false
}

// String returns the first present key as a string
func (r Record) String(keys ...string) string {
	v, _, ok := r.lookup(keys...)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case Record, map[string]any:
		// lookup fields come back as {"Id": 1, "Name": "..."}
		return asRecord(s).String("Name", "name_c", "name")
	default:
		return fmt.Sprint(s)
	}
}

// Int returns the first present key as an int. Lookup objects yield
// their Id.
func (r Record) Int(keys ...string) (int, bool, error) {
	v, key, ok := r.lookup(keys...)
	if !ok {
		return 0, false, nil
	}
	n, err := toInt(v)
	if err != nil {
		return 0, false, fmt.Errorf("field %s: %w", key, err)
	}
	return n, true, nil
}

// Time returns the first present key as a UTC time
func (r Record) Time(keys ...string) (time.Time, bool, error) {
	v, key, ok := r.lookup(keys...)
	if !ok {
		return time.Time{}, false, nil
	}
	t, err := toTime(v)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("field %s: %w", key, err)
	}
	if t.IsZero() {
		return t, false, nil
	}
	return t.UTC(), true, nil
}

// Strings returns the first present key as a string list. A single
// string is split on commas.
func (r Record) Strings(keys ...string) []string {
	v, _, ok := r.lookup(keys...)
	if !ok {
		return nil
	}
	var out []string
	switch s := v.(type) {
	case string:
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	case []any:
		for _, item := range s {
			if str := strings.TrimSpace(fmt.Sprint(item)); str != "" {
				out = append(out, str)
			}
		}
	case []string:
		out = append(out, s...)
	}
	return out
}

// Records returns the first present key as a list of records. A JSON
// string holding an array is decoded first.
func (r Record) Records(keys ...string) ([]Record, error) {
	v, key, ok := r.lookup(keys...)
	if !ok {
		return nil, nil
	}
	if s, isString := v.(string); isString {
		if strings.TrimSpace(s) == "" {
			return nil, nil
		}
		var decoded []any
		if err := json.Unmarshal([]byte(s), &decoded); err != nil {
			return nil, fmt.Errorf("field %s: %w", key, err)
		}
		v = decoded
	}
	list, isList := v.([]any)
	if !isList {
		return nil, fmt.Errorf("field %s: expected a list, got %T", key, v)
	}
	out := make([]Record, 0, len(list))
	for _, item := range list {
		rec := asRecord(item)
		if rec == nil {
			return nil, fmt.Errorf("field %s: expected objects, got %T", key, item)
		}
		out = append(out, rec)
	}
	return out, nil
}

func asRecord(v any) Record {
	switch m := v.(type) {
	case Record:
		return m
	case map[string]any:
		return Record(m)
	}
	return nil
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%v is not a whole number", n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		return int(i), err
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", n)
		}
		return i, nil
	case Record, map[string]any:
		id, ok, err := asRecord(n).Int("Id", "id")
		if err == nil && !ok {
			err = fmt.Errorf("lookup object has no Id")
		}
		return id, err
	}
	return 0, fmt.Errorf("unsupported number type %T", v)
}

func toTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, nil
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized date %q", t)
	}
	return time.Time{}, fmt.Errorf("unsupported date type %T", v)
}
