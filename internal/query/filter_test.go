package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjenkins/gazette/internal/model"
)

func TestResolve(t *testing.T) {
	cols := model.NewColumns([]string{"fecha", "fecha_publicacion", "texto"})

	t.Run("first candidate in priority order", func(t *testing.T) {
		name, ok := Resolve(cols, "fecha_boletin", "fecha_publicacion", "fecha").Name()
		require.True(t, ok)
		assert.Equal(t, "fecha_publicacion", name)
	})

	t.Run("logical fields", func(t *testing.T) {
		assert.Equal(t, "fecha", DateField(cols).String())
		assert.Equal(t, "texto", TextField(cols).String())
	})

	t.Run("absent is not an error", func(t *testing.T) {
		f := Resolve(cols, "contenido", "cuerpo")
		assert.False(t, f.Present())
		assert.Equal(t, Absent, f)
		assert.False(t, Resolve(model.NewColumns(nil)).Present())
	})
}

func TestFilter_DefaultSpecIsIdentity(t *testing.T) {
	set := fixtureSet(t)

	got := Filter(set, DefaultSpec())
	assert.Equal(t, set.Records(), got)
	assert.Equal(t, []string{"decreto", "junta", "remate", "disolucion", "aviso"}, names(got))
}

func TestFilter_CategoryClosure(t *testing.T) {
	set := fixtureSet(t)
	assert.Equal(t, 2, set.Dropped())

	specs := []Spec{
		DefaultSpec(),
		{Category: model.CategoryAll, Company: "acme"},
		{Category: "OTRO"},
		{Category: "", Identifier: "1"},
		{Category: model.CategoryAll, Text: "categoria"},
	}
	for _, spec := range specs {
		for _, n := range names(Filter(set, spec)) {
			assert.NotContains(t, []string{"otro", "blank"}, n, "spec %+v", spec)
		}
	}
}

func TestFilter_KeepsEveryRowWithoutCategoryColumn(t *testing.T) {
	set := withoutColumn(t, "tipo")

	assert.Equal(t, 7, set.Len())
	assert.Len(t, Filter(set, Spec{Category: model.CategoryLaw}), 7)
}

func TestFilter_Category(t *testing.T) {
	set := fixtureSet(t)

	got := Filter(set, Spec{Category: model.CategoryAuction})
	assert.Equal(t, []string{"remate"}, names(got))

	assert.Empty(t, Filter(set, Spec{Category: "remate"}), "category match is case-sensitive")
}

func TestFilter_CompanyIsCaseInsensitive(t *testing.T) {
	set := fixtureSet(t)

	lower := Filter(set, Spec{Category: model.CategoryAll, Company: "acme"})
	upper := Filter(set, Spec{Category: model.CategoryAll, Company: "ACME"})

	assert.Equal(t, lower, upper)
	assert.Equal(t, []string{"junta", "remate"}, names(lower))
}

func TestFilter_Identifier(t *testing.T) {
	set := fixtureSet(t)

	tests := []struct {
		needle string
		want   []string
	}{
		{"0154", []string{"junta"}},
		{"20", []string{"junta", "remate"}},
		{"2010015405700", []string{}},
		{" ", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.needle, func(t *testing.T) {
			got := Filter(set, Spec{Category: model.CategoryAll, Identifier: tt.needle})
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestFilter_Text(t *testing.T) {
	set := fixtureSet(t)

	assert.Equal(t, []string{"decreto"}, names(Filter(set, Spec{Text: "sunat"})))
	assert.Equal(t, []string{"disolucion"}, names(Filter(set, Spec{Text: "DISOLUCIÓN"})))

	// A multi-word query is one literal substring.
	assert.Equal(t, []string{"junta"}, names(Filter(set, Spec{Text: "junta general"})))
	assert.Empty(t, Filter(set, Spec{Text: "general junta"}))
}

func TestFilter_TextSkippedWithoutBodyColumn(t *testing.T) {
	// With no resolvable body column the text predicate matches everything
	// instead of nothing.
	set := withoutColumn(t, "texto_completo")

	got := Filter(set, Spec{Category: model.CategoryAll, Text: "anything at all"})
	assert.Equal(t, set.Records(), got)
}

func TestFilter_MissingColumnsDisablePredicates(t *testing.T) {
	assert.Len(t, Filter(withoutColumn(t, "empresa"), Spec{Company: "acme"}), 5)
	assert.Len(t, Filter(withoutColumn(t, "ruc"), Spec{Identifier: "999"}), 5)
}

func TestFilter_Conjunction(t *testing.T) {
	set := fixtureSet(t)

	got := Filter(set, Spec{Category: model.CategoryAuction, Company: "acme", Identifier: "205", Text: "inmueble"})
	assert.Equal(t, []string{"remate"}, names(got))

	assert.Empty(t, Filter(set, Spec{Category: model.CategoryShareholderMeeting, Text: "inmueble"}))
}

func TestFilter_ResultIsSubsetOfSource(t *testing.T) {
	set := fixtureSet(t)
	source := make(map[int]string)
	for _, r := range set.Records() {
		source[r.ID] = r.Fields["n"]
	}

	specs := []Spec{
		DefaultSpec(),
		{Company: "a"},
		{Text: "de", Order: Ascending},
		{Identifier: "5"},
	}
	for _, spec := range specs {
		got := Filter(set, spec)
		ids := make(map[int]bool)
		for _, r := range got {
			assert.Equal(t, source[r.ID], r.Fields["n"])
			assert.False(t, ids[r.ID], "duplicate record %d", r.ID)
			ids[r.ID] = true
		}
	}
}

func TestApply_NoPredicatesMatchesAll(t *testing.T) {
	records := fixtureSet(t).Records()
	assert.Equal(t, records, Apply(records, nil))
}
