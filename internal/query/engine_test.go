package query

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjenkins/gazette/internal/model"
)

func TestCanExport(t *testing.T) {
	assert.True(t, CanExport(0, ExportLimit))
	assert.True(t, CanExport(5000, 5000))
	assert.False(t, CanExport(5001, 5000))
}

func TestEngine_Search(t *testing.T) {
	engine := NewEngine(fixtureSet(t))
	state := NewState()

	res := engine.Search(state, DefaultSpec(), Nav{})

	assert.Equal(t, []string{"junta", "decreto", "remate", "disolucion", "aviso"}, names(res.Page.Records))
	assert.Equal(t, Summary{Total: 5, ShareholderMeetings: 1, Dissolutions: 1, Auctions: 1, HasCategories: true}, res.Summary)
	assert.Equal(t, "fecha_boletin", res.DateField.String())
	assert.Equal(t, "texto_completo", res.TextField.String())
	assert.True(t, res.Exportable)
}

func TestEngine_SearchNavigation(t *testing.T) {
	engine := NewEngine(numbered(t, 25))
	state := NewState()
	spec := DefaultSpec()

	res := engine.Search(state, spec, Nav{})
	assert.Equal(t, 1, res.Page.Page)

	res = engine.Search(state, spec, Nav{Kind: NavNext})
	assert.Equal(t, 2, res.Page.Page)
	assert.Equal(t, "r11", res.Page.Records[0].Fields["n"])

	res = engine.Search(state, spec, Nav{Kind: NavGoto, Page: 3})
	assert.Equal(t, 3, res.Page.Page)

	res = engine.Search(state, spec, Nav{Kind: NavNext})
	assert.Equal(t, 3, res.Page.Page, "next past the last page is ignored")

	res = engine.Search(state, spec, Nav{Kind: NavGoto, Page: 9})
	assert.Equal(t, 3, res.Page.Page, "goto past the end is clamped")

	res = engine.Search(state, spec, Nav{Kind: NavPrev})
	assert.Equal(t, 2, res.Page.Page)

	// A changed spec wins over the requested movement.
	asc := spec
	asc.Order = Ascending
	res = engine.Search(state, asc, Nav{Kind: NavGoto, Page: 3})
	assert.Equal(t, 1, res.Page.Page)
	assert.Equal(t, "r25", res.Page.Records[0].Fields["n"])
}

func TestEngine_SearchGotoClamps(t *testing.T) {
	engine := NewEngine(numbered(t, 25))
	state := NewState()
	spec := DefaultSpec()

	engine.Search(state, spec, Nav{})

	res := engine.Search(state, spec, Nav{Kind: NavGoto, Page: 7})
	assert.Equal(t, 3, res.Page.Page)
	assert.Equal(t, "r21", res.Page.Records[0].Fields["n"])

	res = engine.Search(state, spec, Nav{Kind: NavGoto, Page: -2})
	assert.Equal(t, 1, res.Page.Page)
}

func TestEngine_SearchEmptyResult(t *testing.T) {
	engine := NewEngine(fixtureSet(t))

	res := engine.Search(NewState(), Spec{Text: "no existe"}, Nav{Kind: NavNext})
	assert.Equal(t, Meta{TotalPages: 1, Page: 1}, res.Page.Meta)
	assert.Empty(t, res.Page.Records)
	assert.Equal(t, 0, res.Summary.Total)
}

func TestEngine_Export(t *testing.T) {
	t.Run("within limit", func(t *testing.T) {
		engine := NewEngine(numbered(t, ExportLimit))
		records, err := engine.Export(Spec{Order: Ascending})
		require.NoError(t, err)
		require.Len(t, records, ExportLimit)
		assert.Equal(t, "r5000", records[0].Fields["n"])
	})

	t.Run("over limit", func(t *testing.T) {
		engine := NewEngine(numbered(t, ExportLimit+1))
		records, err := engine.Export(DefaultSpec())
		assert.Nil(t, records)

		var limitErr *ExportLimitError
		require.True(t, errors.As(err, &limitErr))
		assert.Equal(t, ExportLimit+1, limitErr.Count)
		assert.Equal(t, ExportLimit, limitErr.Limit)
	})

	t.Run("narrowed filter passes", func(t *testing.T) {
		engine := NewEngine(numbered(t, ExportLimit+1))
		records, err := engine.Export(Spec{Text: "texto", Category: model.CategoryLaw})
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestEngine_Categories(t *testing.T) {
	engine := NewEngine(fixtureSet(t))
	assert.Equal(t, []model.Category{
		model.CategoryNotice,
		model.CategoryDecreeSupreme,
		model.CategoryDissolution,
		model.CategoryShareholderMeeting,
		model.CategoryAuction,
	}, engine.Categories())

	engine.Replace(withoutColumn(t, "tipo"))
	assert.Nil(t, engine.Categories())
}

func TestEngine_ReplaceWhileSearching(t *testing.T) {
	engine := NewEngine(numbered(t, 30))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			state := NewState()
			for j := 0; j < 50; j++ {
				res := engine.Search(state, DefaultSpec(), Nav{Kind: NavNext})
				assert.LessOrEqual(t, res.Page.Page, res.Page.TotalPages)
			}
		}()
	}
	for i := 0; i < 10; i++ {
		engine.Replace(numbered(t, 5+i))
	}
	wg.Wait()

	engine.Replace(nil)
	assert.Equal(t, 0, engine.Snapshot().Len())
}
