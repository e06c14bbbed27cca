package templates

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjenkins/gazette/internal/model"
	"github.com/jjenkins/gazette/internal/query"
)

func render(t *testing.T, view SearchView) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, Results(view).Render(context.Background(), &b))
	return b.String()
}

func resultFor(t *testing.T, header []string, rows ...map[string]string) query.Result {
	t.Helper()
	engine := query.NewEngine(model.NewRecordSet(header, rows))
	return engine.Search(query.NewState(), query.DefaultSpec(), query.Nav{})
}

func TestResults_Excerpts(t *testing.T) {
	long := strings.Repeat("palabra ", 150)
	res := resultFor(t, []string{"tipo", "texto_completo"},
		map[string]string{"tipo": "LEY", "texto_completo": long},
		map[string]string{"tipo": "LEY", "texto_completo": "  corto  "},
	)

	html := render(t, SearchView{Result: res})
	assert.Contains(t, html, "<details><summary>Show full text</summary>")
	assert.Contains(t, html, "...</p>")
	assert.Contains(t, html, "No text available")
	assert.Contains(t, html, `class="badge badge-ley"`)
	assert.Contains(t, html, "No metadata")
}

func TestResults_WithoutCategoryColumn(t *testing.T) {
	res := resultFor(t, []string{"empresa", "ruc"},
		map[string]string{"empresa": "Acme", "ruc": "20100154057"},
	)

	html := render(t, SearchView{Result: res})
	assert.NotContains(t, html, "badge")
	assert.NotContains(t, html, "Auctions")
	assert.Contains(t, html, "Company: Acme | RUC: 20100154057")
	assert.Contains(t, html, "No text available")
}

func TestMetadataLine(t *testing.T) {
	r := model.Record{Fields: map[string]string{"fecha": "2024-01-10", "empresa": " ", "ruc": "205"}}
	cols := model.NewColumns([]string{"fecha", "empresa", "ruc"})

	assert.Equal(t, "Date: 2024-01-10 | RUC: 205", MetadataLine(r, query.DateField(cols)))
	assert.Equal(t, "RUC: 205", MetadataLine(r, query.Absent))
}

func TestSearch_FullPage(t *testing.T) {
	res := resultFor(t, []string{"tipo"}, map[string]string{"tipo": "REMATE"})

	var b strings.Builder
	view := SearchView{Result: res, Categories: []model.Category{model.CategoryAuction}}
	require.NoError(t, Search(view).Render(context.Background(), &b))

	html := b.String()
	assert.True(t, strings.HasPrefix(html, "<!doctype html>"))
	assert.Contains(t, html, `<option value="REMATE">REMATE</option>`)
	assert.Contains(t, html, `<option value="desc" selected>`)
}

func TestResults_SinglePageShowsPosition(t *testing.T) {
	res := resultFor(t, []string{"tipo"}, map[string]string{"tipo": "LEY"})

	html := render(t, SearchView{Result: res})
	assert.Contains(t, html, "<span>Page 1 of 1</span>")
	assert.NotContains(t, html, "Next")
	assert.NotContains(t, html, `<select name="page">`)
}

func TestResults_PageSelectorKeepsFilters(t *testing.T) {
	rows := make([]map[string]string, 25)
	for i := range rows {
		rows[i] = map[string]string{"tipo": "LEY", "empresa": "Acme"}
	}
	res := resultFor(t, []string{"tipo", "empresa"}, rows...)

	view := SearchView{Result: res, Filters: url.Values{"empresa": {"acme"}, "q": {"ley"}}}
	html := render(t, view)
	assert.Contains(t, html, "<span>Page 1 of 3</span>")
	assert.Contains(t, html, `<input type="hidden" name="empresa" value="acme"><input type="hidden" name="q" value="ley">`)
	assert.Contains(t, html, `<option value="1" selected>1</option>`)
	assert.Contains(t, html, `href="/?empresa=acme&amp;nav=next&amp;q=ley"`)
}
