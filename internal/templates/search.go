// Package templates renders the search UI as templ components.
package templates

import (
	"net/url"
	"slices"
	"strings"

	"github.com/jjenkins/gazette/internal/model"
	"github.com/jjenkins/gazette/internal/query"
)

// Title is the page title of the search UI
const Title = "El Peruano: legal notice search"

// SearchView is the data behind the search page and its results partial
type SearchView struct {
	Result     query.Result
	Categories []model.Category
	// Filters are the request parameters reproducing Result.Spec
	Filters url.Values
}

// Param is one request parameter carried by the page selector form
type Param struct {
	Name  string
	Value string
}

func (v SearchView) link(path string, extra ...string) string {
	q := url.Values{}
	for k, vs := range v.Filters {
		q[k] = vs
	}
	for i := 0; i+1 < len(extra); i += 2 {
		q.Set(extra[i], extra[i+1])
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// hiddenFilters lists Filters in a stable order
func (v SearchView) hiddenFilters() []Param {
	names := make([]string, 0, len(v.Filters))
	for k := range v.Filters {
		names = append(names, k)
	}
	slices.Sort(names)

	var params []Param
	for _, k := range names {
		for _, val := range v.Filters[k] {
			params = append(params, Param{Name: k, Value: val})
		}
	}
	return params
}

// body returns the record's text under the resolved body column
func body(r model.Record, textField query.Field) string {
	if col, ok := textField.Name(); ok {
		return r.Raw(col)
	}
	return ""
}

// MetadataLine joins the notice's date, company and RUC, or reports that
// it has none.
func MetadataLine(r model.Record, dateField query.Field) string {
	var parts []string
	if col, ok := dateField.Name(); ok {
		if v, ok := r.Value(col); ok {
			parts = append(parts, "Date: "+v)
		}
	}
	if v, ok := r.Value(model.ColumnCompany); ok {
		parts = append(parts, "Company: "+v)
	}
	if v, ok := r.Value(model.ColumnIdentifier); ok {
		parts = append(parts, "RUC: "+v)
	}
	if len(parts) == 0 {
		return "No metadata"
	}
	return strings.Join(parts, " | ")
}
