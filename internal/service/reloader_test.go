package service

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjenkins/gazette/internal/model"
	"github.com/jjenkins/gazette/internal/query"
)

func TestReloader_Reload(t *testing.T) {
	engine := query.NewEngine(nil)

	rows := []map[string]string{{"tipo": "LEY"}, {"tipo": "OTRO"}}
	var fail bool
	r := NewReloader(engine, func(ctx context.Context) (*model.RecordSet, error) {
		if fail {
			return nil, errors.New("source unavailable")
		}
		return model.NewRecordSet([]string{"tipo"}, rows), nil
	})
	r.logger = log.New(io.Discard, "", 0)
	r.errLogger = log.New(io.Discard, "", 0)

	require.NoError(t, r.Reload(context.Background()))
	assert.Equal(t, 1, engine.Snapshot().Len())
	assert.Equal(t, 1, engine.Snapshot().Dropped())

	fail = true
	assert.Error(t, r.Reload(context.Background()))
	assert.Equal(t, 1, engine.Snapshot().Len(), "failed reload keeps the old snapshot")
}
