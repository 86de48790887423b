// Package pipeline describes aggregation pipelines as typed stage values and
// interprets them over any document source.
package pipeline

// Doc is one stored or derived document. Keys are snake_case field names.
type Doc map[string]any

// Clone returns a shallow copy of d.
func (d Doc) Clone() Doc {
	out := make(Doc, len(d)+2)
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Stage is one step of a Pipeline.
type Stage interface {
	stageName() string
}

// Match keeps the documents satisfying Filter.
type Match struct {
	Filter Expr
}

// Lookup joins documents of collection From whose ForeignField equals the
// value(s) of LocalField. Where narrows the joined side and Pipeline runs over
// the matches of every parent. The result is stored under As, collapsed to the
// first match (or nil) when Single is set.
type Lookup struct {
	From         string
	LocalField   string
	ForeignField string
	Where        Expr
	Pipeline     []Stage
	As           string
	Single       bool
}

// AddFields sets computed fields on every document.
type AddFields struct {
	Fields []Field
}

// Field is one computed field of AddFields.
type Field struct {
	Name  string
	Value Value
}

// Project restricts documents to the listed paths. Dotted paths keep a subset
// of an embedded document. The id field is always kept.
type Project struct {
	Fields []string
}

// Unset removes top-level fields.
type Unset struct {
	Fields []string
}

// SortKey orders on one field.
type SortKey struct {
	Field string
	Desc  bool
}

// Sort orders documents by Keys, the first key being the most significant.
type Sort struct {
	Keys []SortKey
}

type Skip struct {
	N int
}

type Limit struct {
	N int
}

// Unwind emits one document per element of the array at Field. Documents with
// a missing, null or empty Field are dropped. A non-array value passes through.
type Unwind struct {
	Field string
}

// ReplaceRoot promotes the embedded document at Field to the root. Documents
// without one are dropped.
type ReplaceRoot struct {
	Field string
}

// Count replaces the stream by one document {As: n}, or none when empty.
type Count struct {
	As string
}

func (Match) stageName() string       { return "match" }
func (Lookup) stageName() string      { return "lookup" }
func (AddFields) stageName() string   { return "addFields" }
func (Project) stageName() string     { return "project" }
func (Unset) stageName() string       { return "unset" }
func (Sort) stageName() string        { return "sort" }
func (Skip) stageName() string        { return "skip" }
func (Limit) stageName() string       { return "limit" }
func (Unwind) stageName() string      { return "unwind" }
func (ReplaceRoot) stageName() string { return "replaceRoot" }
func (Count) stageName() string       { return "count" }

// Pipeline is an ordered list of stages run against Collection.
type Pipeline struct {
	Collection string
	Stages     []Stage
}

// From starts a pipeline over collection.
func From(collection string) *Pipeline {
	return &Pipeline{Collection: collection}
}

// With returns a copy of p with stages appended. p is left untouched.
func (p *Pipeline) With(stages ...Stage) *Pipeline {
	out := &Pipeline{Collection: p.Collection, Stages: make([]Stage, 0, len(p.Stages)+len(stages))}
	out.Stages = append(out.Stages, p.Stages...)
	out.Stages = append(out.Stages, stages...)
	return out
}

func (p *Pipeline) Match(filter Expr) *Pipeline {
	p.Stages = append(p.Stages, Match{Filter: filter})
	return p
}

func (p *Pipeline) Lookup(l Lookup) *Pipeline {
	p.Stages = append(p.Stages, l)
	return p
}

func (p *Pipeline) AddFields(fields ...Field) *Pipeline {
	p.Stages = append(p.Stages, AddFields{Fields: fields})
	return p
}

func (p *Pipeline) Project(fields ...string) *Pipeline {
	p.Stages = append(p.Stages, Project{Fields: fields})
	return p
}

func (p *Pipeline) Unset(fields ...string) *Pipeline {
	p.Stages = append(p.Stages, Unset{Fields: fields})
	return p
}

func (p *Pipeline) Sort(keys ...SortKey) *Pipeline {
	p.Stages = append(p.Stages, Sort{Keys: keys})
	return p
}

func (p *Pipeline) Unwind(field string) *Pipeline {
	p.Stages = append(p.Stages, Unwind{Field: field})
	return p
}

func (p *Pipeline) ReplaceRoot(field string) *Pipeline {
	p.Stages = append(p.Stages, ReplaceRoot{Field: field})
	return p
}

func (p *Pipeline) Limit(n int) *Pipeline {
	p.Stages = append(p.Stages, Limit{N: n})
	return p
}

// Asc and Desc build sort keys.
func Asc(field string) SortKey  { return SortKey{Field: field} }
func Desc(field string) SortKey { return SortKey{Field: field, Desc: true} }

// Set builds an AddFields entry.
func Set(name string, v Value) Field { return Field{Name: name, Value: v} }
