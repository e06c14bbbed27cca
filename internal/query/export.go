package query

import "fmt"

// ExportLimit is the largest result set that may be exported in full
const ExportLimit = 5000

// CanExport reports whether total records fit under limit
func CanExport(total, limit int) bool {
	return total <= limit
}

// ExportLimitError is returned when a result set is too large to export.
// It carries the figures the user needs to narrow the filters.
type ExportLimitError struct {
	Count int
	Limit int
}

func (e *ExportLimitError) Error() string {
	return fmt.Sprintf("too many results to export (%d > %d), narrow the filters", e.Count, e.Limit)
}
