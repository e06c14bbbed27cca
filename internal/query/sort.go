package query

import (
	"slices"
	"strings"
	"time"

	"github.com/jjenkins/gazette/internal/model"
)

// dateLayouts are tried in order when reading publication dates
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
}

// ParseDate reads a publication date value, reporting false for blank or
// unrecognized values.
func ParseDate(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Sort orders records by the date column. An absent field leaves the input
// order untouched. Records with a missing or unparseable date always come
// after dated records, whichever the direction. The sort is stable and
// returns a new slice.
func Sort(records []model.Record, field Field, order Order) []model.Record {
	out := append([]model.Record(nil), records...)

	column, ok := field.Name()
	if !ok {
		return out
	}

	type keyed struct {
		rec   model.Record
		date  time.Time
		valid bool
	}
	keys := make([]keyed, len(out))
	for i, r := range out {
		d, ok := ParseDate(r.Raw(column))
		keys[i] = keyed{rec: r, date: d, valid: ok}
	}

	slices.SortStableFunc(keys, func(a, b keyed) int {
		switch {
		case !a.valid && !b.valid:
			return 0
		case !a.valid:
			return 1
		case !b.valid:
			return -1
		}
		c := a.date.Compare(b.date)
		if order == Descending {
			c = -c
		}
		return c
	})

	for i, k := range keys {
		out[i] = k.rec
	}
	return out
}
