package pipeline

import (
	"strings"
)

// Expr is a filter predicate over one document.
type Expr interface {
	Matches(d Doc) bool
}

// EqExpr matches when any value found at Field equals Value. A nil Value also
// matches a missing field.
type EqExpr struct {
	Field string
	Value any
}

// InExpr matches when any value found at Field equals one of Values.
type InExpr struct {
	Field  string
	Values []any
}

// ExistsExpr matches when Field is present and not null.
type ExistsExpr struct {
	Field string
}

// ContainsFoldExpr is a case-insensitive substring match on a string field.
type ContainsFoldExpr struct {
	Field  string
	Substr string
}

type AndExpr struct {
	Exprs []Expr
}

type OrExpr struct {
	Exprs []Expr
}

func Eq(field string, value any) Expr { return EqExpr{Field: field, Value: value} }

func In(field string, values []any) Expr { return InExpr{Field: field, Values: values} }

func Exists(field string) Expr { return ExistsExpr{Field: field} }

func ContainsFold(field, substr string) Expr {
	return ContainsFoldExpr{Field: field, Substr: substr}
}

// And combines exprs, skipping nil entries. It returns nil when nothing is left.
func And(exprs ...Expr) Expr {
	kept := compact(exprs)
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return AndExpr{Exprs: kept}
}

// Or combines exprs, skipping nil entries. It returns nil when nothing is left.
func Or(exprs ...Expr) Expr {
	kept := compact(exprs)
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return OrExpr{Exprs: kept}
}

func compact(exprs []Expr) []Expr {
	kept := make([]Expr, 0, len(exprs))
	for _, e := range exprs {
		if e != nil {
			kept = append(kept, e)
		}
	}
	return kept
}

func (e EqExpr) Matches(d Doc) bool {
	values := Collect(d, e.Field)
	if e.Value == nil && len(values) == 0 {
		return true
	}
	for _, v := range values {
		if Equal(v, e.Value) {
			return true
		}
	}
	return false
}

func (e InExpr) Matches(d Doc) bool {
	for _, v := range Collect(d, e.Field) {
		for _, want := range e.Values {
			if Equal(v, want) {
				return true
			}
		}
	}
	return false
}

func (e ExistsExpr) Matches(d Doc) bool {
	v, ok := Get(d, e.Field)
	return ok && v != nil
}

func (e ContainsFoldExpr) Matches(d Doc) bool {
	needle := strings.ToLower(e.Substr)
	for _, v := range Collect(d, e.Field) {
		if s, ok := v.(string); ok && strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

func (e AndExpr) Matches(d Doc) bool {
	for _, sub := range e.Exprs {
		if !sub.Matches(d) {
			return false
		}
	}
	return true
}

func (e OrExpr) Matches(d Doc) bool {
	for _, sub := range e.Exprs {
		if sub.Matches(d) {
			return true
		}
	}
	return false
}

// Value computes a derived field from a document.
type Value interface {
	Eval(d Doc) any
}

type sizeValue struct{ path string }

type sumValue struct{ path string }

type hasValue struct {
	path  string
	value any
}

type fieldValue struct{ path string }

type litValue struct{ v any }

// Size is the length of the array at path, 0 when absent.
func Size(path string) Value { return sizeValue{path: path} }

// Sum adds up every number reachable through path.
func Sum(path string) Value { return sumValue{path: path} }

// Has reports whether value is among the values reachable through path.
func Has(path string, value any) Value { return hasValue{path: path, value: value} }

// FieldOf copies the value at path.
func FieldOf(path string) Value { return fieldValue{path: path} }

func Lit(v any) Value { return litValue{v: v} }

func (v sizeValue) Eval(d Doc) any {
	raw, _ := Get(d, v.path)
	items, _ := toSlice(raw)
	return int64(len(items))
}

func (v sumValue) Eval(d Doc) any {
	var (
		ints    int64
		floats  float64
		isFloat bool
	)
	for _, item := range Collect(d, v.path) {
		switch n := item.(type) {
		case float32:
			isFloat = true
			floats += float64(n)
		case float64:
			isFloat = true
			floats += n
		default:
			if i, ok := toInt64(item); ok {
				ints += i
			}
		}
	}
	if isFloat {
		return floats + float64(ints)
	}
	return ints
}

func (v hasValue) Eval(d Doc) any {
	if v.value == nil {
		return false
	}
	for _, item := range Collect(d, v.path) {
		if Equal(item, v.value) {
			return true
		}
	}
	return false
}

func (v fieldValue) Eval(d Doc) any {
	out, _ := Get(d, v.path)
	return out
}

func (v litValue) Eval(Doc) any { return v.v }
