package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCatalog(t *testing.T) {
	t.Run("single series", func(t *testing.T) {
		series, err := parseCatalog([]byte(`
		{
			"id": 81189,
			"name": "Breaking Bad",
			"episodes": [
				{"airedSeason": 1, "airedNumber": 1, "dvdSeason": 1, "dvdNumber": 2, "airDate": "2008-01-20", "name": "Pilot"},
				{"airedSeason": 1, "airedNumber": 2, "airDate": "2008-01-27T00:00:00Z"},
				{"airedSeason": 0, "airedNumber": 1}
			]
		}`))
		require.NoError(t, err)
		require.Len(t, series, 1)

		s := series[0]
		assert.Equal(t, int64(81189), s.ID)
		require.Len(t, s.Episodes, 3)

		require.NotNil(t, s.Episodes[0].AirDate)
		assert.Equal(t, "2008-01-20", s.Episodes[0].AirDate.Format(time.DateOnly))
		require.NotNil(t, s.Episodes[0].DVDNumber)
		assert.Equal(t, 2, *s.Episodes[0].DVDNumber)

		require.NotNil(t, s.Episodes[1].AirDate)
		assert.Equal(t, "2008-01-27", s.Episodes[1].AirDate.Format(time.DateOnly))
		assert.Nil(t, s.Episodes[1].DVDSeason)

		assert.Nil(t, s.Episodes[2].AirDate)
	})

	t.Run("list", func(t *testing.T) {
		series, err := parseCatalog([]byte(`[{"id": 1, "name": "A"}, {"id": 2, "name": "B"}]`))
		require.NoError(t, err)
		assert.Len(t, series, 2)
	})

	t.Run("errors", func(t *testing.T) {
		for _, b := range []string{
			`not json`,
			`{"name": "no id"}`,
			`{"id": 1, "episodes": [{"airedSeason": 1, "airedNumber": 1, "airDate": "20th of May"}]}`,
		} {
			_, err := parseCatalog([]byte(b))
			assert.Error(t, err, b)
		}
	})
}
