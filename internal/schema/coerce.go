package schema

import (
	"encoding/json"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// maxEpochMillis is the largest magnitude a JavaScript Date accepts.
const maxEpochMillis = 8.64e15

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// fieldReader pulls typed fields out of an untyped object and records a
// violation for every field it cannot read.
type fieldReader struct {
	entity string
	obj    map[string]any
	order  []string
	errs   []FieldError
	failed map[string]bool
}

func newReader(entity string, input any) (*fieldReader, error) {
	obj, ok := asObject(input)
	if !ok {
		return nil, &ValidationError{
			Entity: entity,
			Fields: []FieldError{{Code: CodeInvalidType, Message: "expected an object"}},
		}
	}
	return &fieldReader{entity: entity, obj: obj, failed: make(map[string]bool)}, nil
}

// asObject accepts any non-nil map keyed by strings, including named types
// like gin.H and map[string]string.
func asObject(input any) (map[string]any, bool) {
	if obj, ok := input.(map[string]any); ok {
		return obj, obj != nil
	}

	rv := reflect.ValueOf(input)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String || rv.IsNil() {
		return nil, false
	}
	obj := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		obj[iter.Key().String()] = iter.Value().Interface()
	}
	return obj, true
}

func (r *fieldReader) fail(field, code string) {
	if r.failed[field] {
		return
	}
	r.failed[field] = true
	r.errs = append(r.errs, FieldError{Field: field, Code: code, Message: messages[code]})
}

// lookup returns the raw value and whether it is present and non-null.
func (r *fieldReader) lookup(key string) (any, bool) {
	r.order = append(r.order, key)
	v, ok := r.obj[key]
	return v, ok && v != nil
}

func (r *fieldReader) requiredString(key string) string {
	v, ok := r.lookup(key)
	if !ok {
		r.fail(key, CodeMissing)
		return ""
	}
	s, ok := v.(string)
	if !ok {
		r.fail(key, CodeInvalidType)
	}
	return s
}

func (r *fieldReader) optionalString(key string) *string {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		r.fail(key, CodeInvalidType)
		return nil
	}
	return &s
}

func (r *fieldReader) requiredBool(key string) bool {
	v, ok := r.lookup(key)
	if !ok {
		r.fail(key, CodeMissing)
		return false
	}
	b, ok := v.(bool)
	if !ok {
		r.fail(key, CodeInvalidType)
	}
	return b
}

func (r *fieldReader) requiredDate(key string) time.Time {
	v, ok := r.lookup(key)
	if !ok {
		r.fail(key, CodeMissing)
		return time.Time{}
	}
	t, code := coerceDate(v)
	if code != "" {
		r.fail(key, code)
	}
	return t
}

// result returns the collected violations ordered by field read order.
func (r *fieldReader) result() error {
	if len(r.errs) == 0 {
		return nil
	}
	pos := make(map[string]int, len(r.order))
	for i, key := range r.order {
		if _, seen := pos[key]; !seen {
			pos[key] = i
		}
	}
	sort.SliceStable(r.errs, func(i, j int) bool {
		return pos[r.errs[i].Field] < pos[r.errs[j].Field]
	})
	return &ValidationError{Entity: r.entity, Fields: r.errs}
}

// coerceDate converts strings, epoch milliseconds and time values into a
// UTC time. It returns a violation code when the value cannot be converted.
func coerceDate(v any) (time.Time, string) {
	switch val := v.(type) {
	case time.Time:
		return val.UTC(), ""
	case *time.Time:
		if val == nil {
			return time.Time{}, CodeInvalidDate
		}
		return val.UTC(), ""
	case string:
		return parseDateString(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return time.Time{}, CodeInvalidDate
		}
		return fromEpochMillis(f)
	case float64:
		return fromEpochMillis(val)
	case float32:
		return fromEpochMillis(float64(val))
	case int:
		return fromEpochMillis(float64(val))
	case int32:
		return fromEpochMillis(float64(val))
	case int64:
		return fromEpochMillis(float64(val))
	case uint:
		return fromEpochMillis(float64(val))
	case uint32:
		return fromEpochMillis(float64(val))
	case uint64:
		return fromEpochMillis(float64(val))
	default:
		return time.Time{}, CodeInvalidType
	}
}

func parseDateString(s string) (time.Time, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, CodeInvalidDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), ""
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return fromEpochMillis(f)
	}
	return time.Time{}, CodeInvalidDate
}

func fromEpochMillis(ms float64) (time.Time, string) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) || math.Abs(ms) > maxEpochMillis {
		return time.Time{}, CodeInvalidDate
	}
	return time.UnixMilli(int64(ms)).UTC(), ""
}
