package query

import (
	"slices"
	"sync/atomic"

	"github.com/jjenkins/gazette/internal/model"
)

// NavKind selects a page movement requested alongside a query
type NavKind int

const (
	NavNone NavKind = iota
	NavNext
	NavPrev
	NavGoto
)

// Nav is a page movement. Page is only used by NavGoto.
type Nav struct {
	Kind NavKind
	Page int
}

// Summary counts notable categories within a filtered result set
type Summary struct {
	Total               int
	ShareholderMeetings int
	Dissolutions        int
	Auctions            int
	HasCategories       bool
}

// Result is everything a presentation layer needs to render one query
type Result struct {
	Spec       Spec
	Page       Page
	Summary    Summary
	DateField  Field
	TextField  Field
	Exportable bool
}

// Engine runs queries against the current snapshot. The snapshot is
// replaced wholesale on reload and never modified in place, so an Engine is
// safe for concurrent use. States are not: each session brings its own.
type Engine struct {
	set atomic.Pointer[model.RecordSet]
}

// NewEngine creates an Engine serving set
func NewEngine(set *model.RecordSet) *Engine {
	e := &Engine{}
	e.Replace(set)
	return e
}

// Replace swaps in a new snapshot
func (e *Engine) Replace(set *model.RecordSet) {
	if set == nil {
		set = model.NewRecordSet(nil, nil)
	}
	e.set.Store(set)
}

// Snapshot returns the snapshot currently served
func (e *Engine) Snapshot() *model.RecordSet {
	return e.set.Load()
}

// Categories returns the categories present in the snapshot, sorted
func (e *Engine) Categories() []model.Category {
	set := e.Snapshot()
	if !set.Columns().Has(model.ColumnCategory) {
		return nil
	}

	seen := make(map[model.Category]bool)
	var cats []model.Category
	for _, r := range set.Records() {
		c := r.Category()
		if !seen[c] {
			seen[c] = true
			cats = append(cats, c)
		}
	}
	slices.Sort(cats)
	return cats
}

// Search filters and sorts the snapshot, applies nav to state and returns
// the current page. A spec change resets state to page 1 and discards nav.
func (e *Engine) Search(state *State, spec Spec, nav Nav) Result {
	set := e.Snapshot()
	dateField := DateField(set.Columns())
	textField := TextField(set.Columns())

	filtered := Filter(set, spec)
	sorted := Sort(filtered, dateField, spec.Order)

	if !state.Observe(spec) {
		totalPages := TotalPages(len(sorted), PageSize)
		switch nav.Kind {
		case NavNext:
			state.Next(totalPages)
		case NavPrev:
			state.Prev()
		case NavGoto:
			state.Goto(nav.Page, totalPages)
		}
	}

	return Result{
		Spec:       spec,
		Page:       Paginate(sorted, PageSize, state, spec),
		Summary:    summarize(set.Columns(), sorted),
		DateField:  dateField,
		TextField:  textField,
		Exportable: CanExport(len(sorted), ExportLimit),
	}
}

// Export returns the full filtered and sorted result set for spec, or an
// *ExportLimitError when it exceeds ExportLimit. No session state is read
// or written.
func (e *Engine) Export(spec Spec) ([]model.Record, error) {
	return ExportSet(e.Snapshot(), spec)
}

// ExportSet is Export against an explicit snapshot, for callers that also
// need that snapshot's header.
func ExportSet(set *model.RecordSet, spec Spec) ([]model.Record, error) {
	filtered := Filter(set, spec)
	if !CanExport(len(filtered), ExportLimit) {
		return nil, &ExportLimitError{Count: len(filtered), Limit: ExportLimit}
	}
	return Sort(filtered, DateField(set.Columns()), spec.Order), nil
}

func summarize(columns model.Columns, records []model.Record) Summary {
	s := Summary{
		Total:         len(records),
		HasCategories: columns.Has(model.ColumnCategory),
	}
	if !s.HasCategories {
		return s
	}
	for _, r := range records {
		switch r.Category() {
		case model.CategoryShareholderMeeting:
			s.ShareholderMeetings++
		case model.CategoryDissolution:
			s.Dissolutions++
		case model.CategoryAuction:
			s.Auctions++
		}
	}
	return s
}
