package query

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jjenkins/gazette/internal/model"
)

// Order is the publication date sort direction
type Order string

const (
	Descending Order = "desc" // most recent first
	Ascending  Order = "asc"  // oldest first
)

// ParseOrder maps a request value to an Order, defaulting to Descending
func ParseOrder(s string) Order {
	if Order(strings.ToLower(strings.TrimSpace(s))) == Ascending {
		return Ascending
	}
	return Descending
}

// Spec is the combined set of search criteria for one query. Two specs are
// equal iff all five fields are equal, which is what drives page resets.
type Spec struct {
	Text       string
	Category   model.Category
	Company    string
	Identifier string
	Order      Order
}

// DefaultSpec matches every record, most recent first
func DefaultSpec() Spec {
	return Spec{Category: model.CategoryAll, Order: Descending}
}

// Predicate reports whether a record satisfies one criterion
type Predicate func(model.Record) bool

// Predicates returns the active predicates of spec for a snapshot with the
// given columns. Inactive criteria contribute nothing, so an empty list
// matches everything.
func (s Spec) Predicates(columns model.Columns) []Predicate {
	var preds []Predicate

	if p := categoryPredicate(columns, s.Category); p != nil {
		preds = append(preds, p)
	}
	if p := containsFoldPredicate(columns, model.ColumnCompany, s.Company); p != nil {
		preds = append(preds, p)
	}
	if p := identifierPredicate(columns, s.Identifier); p != nil {
		preds = append(preds, p)
	}
	// An unresolvable body column skips the text predicate instead of
	// excluding every record.
	if name, ok := TextField(columns).Name(); ok {
		if p := containsFoldPredicate(columns, name, s.Text); p != nil {
			preds = append(preds, p)
		}
	}

	return preds
}

// Filter returns the records of set matching every active predicate of
// spec, in snapshot order.
func Filter(set *model.RecordSet, spec Spec) []model.Record {
	return Apply(set.Records(), spec.Predicates(set.Columns()))
}

// Apply keeps the records satisfying all preds. The input slice is not
// modified.
func Apply(records []model.Record, preds []Predicate) []model.Record {
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if matchAll(r, preds) {
			out = append(out, r)
		}
	}
	return out
}

func matchAll(r model.Record, preds []Predicate) bool {
	for _, p := range preds {
		if !p(r) {
			return false
		}
	}
	return true
}

func categoryPredicate(columns model.Columns, category model.Category) Predicate {
	if category == "" || category == model.CategoryAll || !columns.Has(model.ColumnCategory) {
		return nil
	}
	return func(r model.Record) bool {
		return r.Category() == category
	}
}

// containsFoldPredicate matches case-insensitive containment of needle in
// column. Blank cells never match.
func containsFoldPredicate(columns model.Columns, column, needle string) Predicate {
	if needle == "" || !columns.Has(column) {
		return nil
	}
	fold := cases.Fold()
	folded := fold.String(needle)
	return func(r model.Record) bool {
		if _, ok := r.Value(column); !ok {
			return false
		}
		return strings.Contains(fold.String(r.Raw(column)), folded)
	}
}

// identifierPredicate matches the identifier as a literal substring of its
// textual value, never numerically.
func identifierPredicate(columns model.Columns, needle string) Predicate {
	if needle == "" || !columns.Has(model.ColumnIdentifier) {
		return nil
	}
	return func(r model.Record) bool {
		if _, ok := r.Value(model.ColumnIdentifier); !ok {
			return false
		}
		return strings.Contains(r.Raw(model.ColumnIdentifier), needle)
	}
}
