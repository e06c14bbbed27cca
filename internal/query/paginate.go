package query

import "github.com/jjenkins/gazette/internal/model"

// PageSize is the fixed number of records per page
const PageSize = 10

// State is one session's navigation memory: the current page and the last
// spec it was computed for. Each session owns its own State.
type State struct {
	page int
	last Spec
	seen bool
}

// NewState returns a State on page 1 with no prior spec
func NewState() *State {
	return &State{page: 1}
}

// Page returns the current page number
func (s *State) Page() int {
	return s.page
}

// Observe records spec as the latest one. A spec different from the last
// seen one sends the session back to page 1. It reports whether a reset
// happened.
func (s *State) Observe(spec Spec) bool {
	if s.seen && s.last == spec {
		return false
	}
	s.last = spec
	s.seen = true
	s.page = 1
	return true
}

// Next advances one page when a later page exists
func (s *State) Next(totalPages int) {
	if s.page < totalPages {
		s.page++
	}
}

// Prev goes back one page when not on the first page
func (s *State) Prev() {
	if s.page > 1 {
		s.page--
	}
}

// Goto jumps to page, clamped to [1, totalPages]. A stale selector value
// lands on the nearest valid page.
func (s *State) Goto(page, totalPages int) {
	s.page = page
	s.clamp(totalPages)
}

func (s *State) clamp(totalPages int) {
	if s.page < 1 {
		s.page = 1
	}
	if s.page > totalPages {
		s.page = totalPages
	}
}

// Meta describes a page within a result set. Start and End are 1-based and
// inclusive; both are 0 for an empty result.
type Meta struct {
	Total      int
	TotalPages int
	Page       int
	Start      int
	End        int
}

// HasPrev reports whether a previous page exists
func (m Meta) HasPrev() bool {
	return m.Page > 1
}

// HasNext reports whether a following page exists
func (m Meta) HasNext() bool {
	return m.Page < m.TotalPages
}

// Page is one slice of a result set plus its metadata
type Page struct {
	Records []model.Record
	Meta
}

// TotalPages returns the page count for total records. An empty result still
// has one (empty) page.
func TotalPages(total, pageSize int) int {
	if total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// Paginate slices records for the page held by state. A spec that differs
// from the last one seen resets state to page 1 before the page is clamped
// into range.
func Paginate(records []model.Record, pageSize int, state *State, spec Spec) Page {
	total := len(records)
	totalPages := TotalPages(total, pageSize)

	state.Observe(spec)
	state.clamp(totalPages)

	start := (state.page - 1) * pageSize
	end := min(state.page*pageSize, total)
	if start > end {
		start = end
	}

	meta := Meta{
		Total:      total,
		TotalPages: totalPages,
		Page:       state.page,
	}
	if total > 0 {
		meta.Start = start + 1
		meta.End = end
	}

	return Page{
		Records: records[start:end],
		Meta:    meta,
	}
}
