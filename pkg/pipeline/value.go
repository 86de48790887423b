package pipeline

import (
	"fmt"
	"strings"
	"time"
)

// Get walks a dotted path through embedded documents. It does not descend into
// arrays; use Collect for that.
func Get(d Doc, path string) (any, bool) {
	var cur any = d
	for _, part := range strings.Split(path, ".") {
		m, ok := asDoc(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Collect returns every value reachable through path. Arrays met on the way,
// including at the leaf, are flattened.
func Collect(d Doc, path string) []any {
	out := make([]any, 0, 1)
	collect(d, strings.Split(path, "."), &out)
	return out
}

func collect(cur any, parts []string, out *[]any) {
	if items, ok := toSlice(cur); ok {
		for _, item := range items {
			collect(item, parts, out)
		}
		return
	}
	if len(parts) == 0 {
		*out = append(*out, cur)
		return
	}
	m, ok := asDoc(cur)
	if !ok {
		return
	}
	next, ok := m[parts[0]]
	if !ok {
		return
	}
	collect(next, parts[1:], out)
}

func asDoc(v any) (Doc, bool) {
	switch m := v.(type) {
	case Doc:
		return m, m != nil
	case map[string]any:
		return Doc(m), m != nil
	}
	return nil, false
}

func toSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []Doc:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(s))
		for i := range s {
			out[i] = Doc(s[i])
		}
		return out, true
	case []string:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out, true
	}
	return nil, false
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	if i, ok := toInt64(v); ok {
		return float64(i), true
	}
	return 0, false
}

// type order used when comparing mixed values: null < numbers < strings < booleans < dates
func rank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case string:
		return 2
	case bool:
		return 3
	case time.Time, *time.Time:
		return 4
	}
	if _, ok := toFloat(v); ok {
		return 1
	}
	return 5
}

// Compare orders two scalar values. Values of different kinds order by kind.
func Compare(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch ra {
	case 0:
		return 0
	case 1:
		fa, _ := toFloat(a)
		fb, _ := toFloat(b)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	case 2:
		return strings.Compare(a.(string), b.(string))
	case 3:
		ba, bb := a.(bool), b.(bool)
		switch {
		case ba == bb:
			return 0
		case !ba:
			return -1
		}
		return 1
	case 4:
		return asTime(a).Compare(asTime(b))
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func asTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case *time.Time:
		if t != nil {
			return *t
		}
	}
	return time.Time{}
}

// Equal reports whether two scalar values are the same, treating all numeric
// types alike.
func Equal(a, b any) bool {
	return Compare(a, b) == 0
}

// key gives a map key for grouping joined documents by a scalar value.
func key(v any) string {
	if f, ok := toFloat(v); ok {
		return fmt.Sprintf("n:%v", f)
	}
	if t, ok := v.(time.Time); ok {
		return "t:" + t.UTC().Format(time.RFC3339Nano)
	}
	return fmt.Sprintf("%T:%v", v, v)
}

// Items returns the elements of an array value.
func Items(v any) ([]any, bool) {
	return toSlice(v)
}

// Int64 converts any integer value.
func Int64(v any) (int64, bool) {
	return toInt64(v)
}
