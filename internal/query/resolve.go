// Package query implements the notice search engine: field resolution,
// predicate filtering, date sorting, pagination, preview truncation and the
// export gate. Everything here works on an immutable in-memory snapshot.
package query

import "github.com/jjenkins/gazette/internal/model"

// Field is a resolved logical column. The zero value is the absent field.
type Field struct {
	name string
	ok   bool
}

// Absent is the unresolved field
var Absent = Field{}

// Name returns the physical column name and whether the field resolved
func (f Field) Name() (string, bool) {
	return f.name, f.ok
}

// Present reports whether the field resolved to a column
func (f Field) Present() bool {
	return f.ok
}

func (f Field) String() string {
	if !f.ok {
		return "<absent>"
	}
	return f.name
}

// Resolve returns the first candidate present in columns, preserving the
// candidate priority order. No match yields Absent.
func Resolve(columns model.Columns, candidates ...string) Field {
	for _, c := range candidates {
		if columns.Has(c) {
			return Field{name: c, ok: true}
		}
	}
	return Absent
}

// DateField resolves the publication date column of a snapshot
func DateField(columns model.Columns) Field {
	return Resolve(columns, model.DateColumns...)
}

// TextField resolves the body text column of a snapshot
func TextField(columns model.Columns) Field {
	return Resolve(columns, model.TextColumns...)
}
