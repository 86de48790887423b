package pipeline

import (
	"context"
	"strings"
)

// Window is the leading part of a pipeline a Querier runs natively: a filter,
// an order and a slice of the result. Limit < 0 means no limit.
type Window struct {
	Filter Expr
	Sort   []SortKey
	Skip   int
	Limit  int
}

// Querier is a Source that can also order, slice and count on its side.
type Querier interface {
	Source
	Query(ctx context.Context, collection string, w Window) ([]Doc, error)
	Count(ctx context.Context, collection string, filter Expr) (int64, error)
}

// ApplyWindow orders and slices docs in process.
func ApplyWindow(docs []Doc, w Window) []Doc {
	docs = filter(docs, w.Filter)
	if len(w.Sort) > 0 {
		sortDocs(docs, w.Sort)
	}
	if w.Skip >= len(docs) {
		return docs[:0]
	}
	if w.Skip > 0 {
		docs = docs[w.Skip:]
	}
	if w.Limit >= 0 && w.Limit < len(docs) {
		docs = docs[:w.Limit]
	}
	return docs
}

// normalize moves Sort, Skip and Limit ahead of the stages that keep one
// output document per input without reordering, so they sit right after the
// leading matches. Stages only needed for their fields are dropped in front of
// a final Count.
func normalize(stages []Stage) []Stage {
	out := append([]Stage(nil), stages...)
	if n := len(out); n > 0 {
		if _, ok := out[n-1].(Count); ok {
			i := n - 1
			for i > 0 && (rowPreserving(out[i-1]) || isSort(out[i-1])) {
				i--
			}
			out = append(out[:i], out[n-1])
		}
	}
	for moved := true; moved; {
		moved = false
		for i := 1; i < len(out); i++ {
			if commutes(out[i-1], out[i]) {
				out[i-1], out[i] = out[i], out[i-1]
				moved = true
			}
		}
	}
	return out
}

// commutes reports whether cur may run before prev with the same result.
func commutes(prev, cur Stage) bool {
	if !rowPreserving(prev) {
		return false
	}
	switch s := cur.(type) {
	case Skip, Limit:
		return true
	case Sort:
		for _, k := range s.Keys {
			if touches(prev, k.Field) {
				return false
			}
		}
		return true
	}
	return false
}

func rowPreserving(s Stage) bool {
	switch s.(type) {
	case Lookup, AddFields, Project, Unset:
		return true
	}
	return false
}

func isSort(s Stage) bool {
	_, ok := s.(Sort)
	return ok
}

// touches reports whether s may change the value found at path.
func touches(s Stage, path string) bool {
	top := strings.SplitN(path, ".", 2)[0]
	switch x := s.(type) {
	case Lookup:
		return x.As == top
	case AddFields:
		for _, f := range x.Fields {
			if f.Name == top {
				return true
			}
		}
	case Unset:
		for _, f := range x.Fields {
			if f == top {
				return true
			}
		}
	case Project:
		if path == "id" {
			return false
		}
		for _, f := range x.Fields {
			if f == path {
				return false
			}
		}
		return true
	}
	return false
}

// window folds a leading Sort and any following Skip/Limit stages into w.
// It returns the remaining stages and whether anything was folded.
func window(w Window, stages []Stage) (Window, []Stage, bool) {
	w.Limit = -1
	i := 0
	if len(stages) > 0 {
		if s, ok := stages[0].(Sort); ok {
			w.Sort = s.Keys
			i++
		}
	}
	for ; i < len(stages); i++ {
		switch s := stages[i].(type) {
		case Skip:
			if s.N <= 0 {
				continue
			}
			w.Skip += s.N
			if w.Limit >= 0 {
				w.Limit = max(w.Limit-s.N, 0)
			}
			continue
		case Limit:
			if s.N >= 0 && (w.Limit < 0 || s.N < w.Limit) {
				w.Limit = s.N
			}
			continue
		}
		break
	}
	return w, stages[i:], i > 0
}
