package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Source fetches the documents of a collection matching filter. A nil filter
// selects everything. Returned documents may be modified by the caller.
type Source interface {
	Find(ctx context.Context, collection string, filter Expr) ([]Doc, error)
}

// Aggregator runs a whole pipeline.
type Aggregator interface {
	Aggregate(ctx context.Context, p *Pipeline) ([]Doc, error)
}

// Executor interprets pipelines over a Source. Leading Match stages are
// handed to the source. When the source is a Querier the order, the page
// window and a final Count go to it as well; every other stage runs in process.
type Executor struct {
	src Source
}

func NewExecutor(src Source) *Executor {
	return &Executor{src: src}
}

// Aggregate runs p and returns the resulting documents.
func (e *Executor) Aggregate(ctx context.Context, p *Pipeline) ([]Doc, error) {
	stages := normalize(p.Stages)
	var pushed []Expr
	for len(stages) > 0 {
		m, ok := stages[0].(Match)
		if !ok {
			break
		}
		pushed = append(pushed, m.Filter)
		stages = stages[1:]
	}
	where := And(pushed...)

	if q, ok := e.src.(Querier); ok {
		if len(stages) == 1 {
			if c, isCount := stages[0].(Count); isCount {
				n, err := q.Count(ctx, p.Collection, where)
				if err != nil {
					return nil, err
				}
				if n == 0 {
					return []Doc{}, nil
				}
				return []Doc{{c.As: n}}, nil
			}
		}
		if w, rest, folded := window(Window{Filter: where}, stages); folded {
			docs, err := q.Query(ctx, p.Collection, w)
			if err != nil {
				return nil, err
			}
			return e.run(ctx, docs, rest)
		}
	}

	docs, err := e.src.Find(ctx, p.Collection, where)
	if err != nil {
		return nil, err
	}
	return e.run(ctx, docs, stages)
}

func (e *Executor) run(ctx context.Context, docs []Doc, stages []Stage) ([]Doc, error) {
	var err error
	for _, st := range stages {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		switch s := st.(type) {
		case Match:
			docs = filter(docs, s.Filter)
		case Lookup:
			if docs, err = e.lookup(ctx, docs, s); err != nil {
				return nil, err
			}
		case AddFields:
			docs = addFields(docs, s.Fields)
		case Project:
			docs = project(docs, s.Fields)
		case Unset:
			docs = unset(docs, s.Fields)
		case Sort:
			sortDocs(docs, s.Keys)
		case Skip:
			if s.N >= len(docs) {
				docs = docs[:0]
			} else if s.N > 0 {
				docs = docs[s.N:]
			}
		case Limit:
			if s.N >= 0 && s.N < len(docs) {
				docs = docs[:s.N]
			}
		case Unwind:
			docs = unwind(docs, s.Field)
		case ReplaceRoot:
			docs = replaceRoot(docs, s.Field)
		case Count:
			if len(docs) == 0 {
				return []Doc{}, nil
			}
			docs = []Doc{{s.As: int64(len(docs))}}
		default:
			return nil, fmt.Errorf("pipeline: unsupported stage %s", st.stageName())
		}
	}
	return docs, nil
}

func filter(docs []Doc, expr Expr) []Doc {
	if expr == nil {
		return docs
	}
	out := docs[:0:0]
	for _, d := range docs {
		if expr.Matches(d) {
			out = append(out, d)
		}
	}
	return out
}

func (e *Executor) lookup(ctx context.Context, docs []Doc, l Lookup) ([]Doc, error) {
	seen := make(map[string]bool)
	values := make([]any, 0, len(docs))
	for _, d := range docs {
		for _, v := range Collect(d, l.LocalField) {
			if v == nil {
				continue
			}
			k := key(v)
			if !seen[k] {
				seen[k] = true
				values = append(values, v)
			}
		}
	}

	var foreign []Doc
	groups := make(map[string][]int)
	if len(values) > 0 {
		var err error
		foreign, err = e.src.Find(ctx, l.From, And(In(l.ForeignField, values), l.Where))
		if err != nil {
			return nil, err
		}
		for i, f := range foreign {
			for _, v := range Collect(f, l.ForeignField) {
				k := key(v)
				groups[k] = append(groups[k], i)
			}
		}
	}

	out := make([]Doc, 0, len(docs))
	for _, d := range docs {
		picked := make(map[int]bool)
		matches := make([]Doc, 0)
		for _, v := range Collect(d, l.LocalField) {
			if v == nil {
				continue
			}
			for _, idx := range groups[key(v)] {
				if !picked[idx] {
					picked[idx] = true
					matches = append(matches, foreign[idx])
				}
			}
		}
		if len(l.Pipeline) > 0 && len(matches) > 0 {
			var err error
			if matches, err = e.run(ctx, matches, l.Pipeline); err != nil {
				return nil, err
			}
		}

		joined := d.Clone()
		if l.Single {
			if len(matches) > 0 {
				joined[l.As] = matches[0]
			} else {
				joined[l.As] = nil
			}
		} else {
			items := make([]any, len(matches))
			for i := range matches {
				items[i] = matches[i]
			}
			joined[l.As] = items
		}
		out = append(out, joined)
	}
	return out, nil
}

func addFields(docs []Doc, fields []Field) []Doc {
	out := make([]Doc, len(docs))
	for i, d := range docs {
		nd := d.Clone()
		for _, f := range fields {
			nd[f.Name] = f.Value.Eval(d)
		}
		out[i] = nd
	}
	return out
}

func project(docs []Doc, fields []string) []Doc {
	out := make([]Doc, len(docs))
	for i, d := range docs {
		nd := make(Doc, len(fields)+1)
		if id, ok := d["id"]; ok {
			nd["id"] = id
		}
		for _, f := range fields {
			projectInto(nd, d, strings.Split(f, "."))
		}
		out[i] = nd
	}
	return out
}

// projectInto copies the value at parts from src into dst. A null parent is
// kept as null so a dangling join stays visible as an empty field.
func projectInto(dst, src Doc, parts []string) {
	v, ok := src[parts[0]]
	if !ok {
		return
	}
	if len(parts) == 1 {
		dst[parts[0]] = v
		return
	}
	sub, isDoc := asDoc(v)
	if !isDoc {
		if v == nil {
			if _, set := dst[parts[0]]; !set {
				dst[parts[0]] = nil
			}
		}
		return
	}
	target, _ := dst[parts[0]].(Doc)
	if target == nil {
		target = Doc{}
		dst[parts[0]] = target
	}
	projectInto(target, sub, parts[1:])
}

func unset(docs []Doc, fields []string) []Doc {
	out := make([]Doc, len(docs))
	for i, d := range docs {
		nd := d.Clone()
		for _, f := range fields {
			delete(nd, f)
		}
		out[i] = nd
	}
	return out
}

func sortDocs(docs []Doc, keys []SortKey) {
	sort.SliceStable(docs, func(i, j int) bool {
		for _, k := range keys {
			a, _ := Get(docs[i], k.Field)
			b, _ := Get(docs[j], k.Field)
			c := Compare(a, b)
			if c == 0 {
				continue
			}
			if k.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func unwind(docs []Doc, field string) []Doc {
	out := make([]Doc, 0, len(docs))
	for _, d := range docs {
		v, ok := d[field]
		if !ok || v == nil {
			continue
		}
		items, isSlice := toSlice(v)
		if !isSlice {
			out = append(out, d)
			continue
		}
		for _, item := range items {
			nd := d.Clone()
			nd[field] = item
			out = append(out, nd)
		}
	}
	return out
}

func replaceRoot(docs []Doc, field string) []Doc {
	out := make([]Doc, 0, len(docs))
	for _, d := range docs {
		v, _ := Get(d, field)
		if root, ok := asDoc(v); ok {
			out = append(out, root.Clone())
		}
	}
	return out
}
