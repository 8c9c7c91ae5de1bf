package pdo_test

import (
	"errors"
	"testing"
	"time"

	"github.com/compozy/uafixtures/engine/header"
	"github.com/compozy/uafixtures/engine/infra/postgres"
	"github.com/compozy/uafixtures/engine/source"
	"github.com/compozy/uafixtures/engine/source/pdo"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var requestColumns = []string{"headers", "date", "count", "id"}

func TestSource_Properties(t *testing.T) {
	t.Run("Should pass header blobs through unfiltered", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		now := time.Now()
		rows := mockPool.NewRows(requestColumns).
			AddRow(`{"user-agent":"UA-1","accept":"*/*"}`, now, int64(4), int64(3)).
			AddRow(`not json`, now, int64(2), int64(2)).
			AddRow(`{"accept-language":"de"}`, now, int64(1), int64(1))
		mockPool.ExpectQuery("SELECT DISTINCT (.+) FROM request").WillReturnRows(rows)

		s := pdo.New(postgres.NewRequestRepo(mockPool))
		assert.True(t, s.IsReady(t.Context()))
		var entries []*source.Entry
		for entry, err := range s.Properties(t.Context()) {
			require.NoError(t, err)
			entries = append(entries, entry)
		}
		require.Len(t, entries, 2)
		first := entries[0].Record
		assert.Equal(t, []header.Field{
			{Name: "user-agent", Value: "UA-1"},
			{Name: "accept", Value: "*/*"},
		}, first.Headers.Fields())
		assert.Equal(t, `{"user-agent":"UA-1","accept":"*/*"}`, first.Raw)
		assert.Nil(t, first.File)
		assert.Empty(t, entries[1].Record.UserAgent())
		assert.NotEqual(t, entries[0].ID, entries[1].ID)
	})
	t.Run("Should wrap statement failures as query errors", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		mockPool.ExpectQuery("SELECT DISTINCT (.+) FROM request").WillReturnError(errors.New("syntax"))

		var srcErr *source.Error
		for _, err := range pdo.New(postgres.NewRequestRepo(mockPool)).Properties(t.Context()) {
			require.ErrorAs(t, err, &srcErr)
		}
		require.NotNil(t, srcErr)
		assert.Equal(t, source.ErrorKindQuery, srcErr.Kind)
		assert.Equal(t, pdo.Name, srcErr.Source)
	})
}
