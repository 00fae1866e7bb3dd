package facet_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/facetdb/facet"
	"github.com/facetdb/facet/dialect"
	"github.com/facetdb/facet/dialect/sql"
)

// sqliteClient opens an in-memory database and seeds a small music
// catalog so compiled statements run against a real engine.
func sqliteClient(t *testing.T) *facet.Client {
	t.Helper()
	drv, err := sql.Open(dialect.SQLite, ":memory:")
	require.NoError(t, err)
	// Every pooled connection gets its own :memory: database.
	drv.DB().SetMaxOpenConns(1)
	client := facet.NewClient(drv)
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	for _, ddl := range []string{
		"CREATE TABLE Artist (ArtistId INTEGER PRIMARY KEY, Name TEXT)",
		"CREATE TABLE Album (AlbumId INTEGER PRIMARY KEY, Title TEXT, ArtistId INTEGER)",
		"CREATE TABLE Track (TrackId INTEGER PRIMARY KEY, Name TEXT, AlbumId INTEGER, UnitPrice REAL)",
	} {
		require.NoError(t, drv.Exec(ctx, ddl, []any{}, nil))
	}

	artist := client.Table("Artist")
	album := client.Table("Album")
	track := client.Table("Track")
	seed := []struct {
		tbl    *facet.Context
		values map[string]any
	}{
		{artist, map[string]any{"ArtistId": 1, "Name": "AC/DC"}},
		{artist, map[string]any{"ArtistId": 2, "Name": "Accept"}},
		{artist, map[string]any{"ArtistId": 3, "Name": "Aerosmith"}},
		{album, map[string]any{"AlbumId": 1, "Title": "For Those About To Rock We Salute You", "ArtistId": 1}},
		{album, map[string]any{"AlbumId": 2, "Title": "Balls to the Wall", "ArtistId": 2}},
		{album, map[string]any{"AlbumId": 3, "Title": "Restless and Wild", "ArtistId": 2}},
		{track, map[string]any{"TrackId": 1, "Name": "For Those About To Rock (We Salute You)", "AlbumId": 1, "UnitPrice": 0.99}},
		{track, map[string]any{"TrackId": 2, "Name": "Balls to the Wall", "AlbumId": 2, "UnitPrice": 0.99}},
		{track, map[string]any{"TrackId": 3, "Name": "Fast As a Shark", "AlbumId": 3, "UnitPrice": 0.99}},
		{track, map[string]any{"TrackId": 4, "Name": "Restless and Wild", "AlbumId": 3, "UnitPrice": 0.99}},
	}
	for _, s := range seed {
		_, err := s.tbl.Insert(ctx, s.values)
		require.NoError(t, err)
	}
	return client
}

func TestSQLiteRoundTrip(t *testing.T) {
	client := sqliteClient(t)
	ctx := context.Background()

	t.Run("filter_order_limit", func(t *testing.T) {
		rows, err := client.Table("Artist").Query().
			Where(func(w *sql.Where) { w.GreaterThan("ArtistId", 1) }).
			Order(func(o *sql.Order) { o.By("Name").Desc() }).
			Limit(2).
			All(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Aerosmith", rows[0]["Name"])
		assert.Equal(t, "Accept", rows[1]["Name"])
	})

	t.Run("count", func(t *testing.T) {
		n, err := client.Table("Track").Query().
			Where(func(w *sql.Where) { w.Equals("AlbumId", 3) }).
			Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("get_not_found", func(t *testing.T) {
		_, err := client.Table("Artist").Query().
			Where(func(w *sql.Where) { w.Equals("Name", "Nobody") }).
			Get(ctx)
		assert.True(t, facet.IsNotFound(err))
	})

	t.Run("group_count_alias", func(t *testing.T) {
		rows, err := client.Table("Album").Query().
			Group(func(g *sql.Group) { g.By("ArtistId") }).
			Order(func(o *sql.Order) { o.By("ArtistId") }).
			All(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, int64(1), rows[0]["$count"])
		assert.Equal(t, int64(1), rows[0]["ArtistId"])
		assert.Equal(t, int64(2), rows[1]["$count"])
		assert.Equal(t, int64(2), rows[1]["ArtistId"])
	})

	t.Run("in_predicate", func(t *testing.T) {
		rows, err := client.Table("Artist").Query().
			Where(func(w *sql.Where) { w.In("ArtistId", []any{1, 3}) }).
			Order(func(o *sql.Order) { o.By("ArtistId") }).
			All(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "AC/DC", rows[0]["Name"])
		assert.Equal(t, "Aerosmith", rows[1]["Name"])
	})

	t.Run("join_chain", func(t *testing.T) {
		artist := client.Table("Artist", "ArtistId", "Name")
		album := client.Table("Album", "AlbumId", "Title", "ArtistId")
		track := client.Table("Track", "TrackId", "Name", "AlbumId", "UnitPrice")

		j, err := artist.Join(album, sql.Key("ArtistId"), sql.Key("ArtistId"))
		require.NoError(t, err)
		j, err = j.Join(track, sql.Key("AlbumId"), sql.Key("AlbumId"))
		require.NoError(t, err)

		n, err := j.Query().
			Where(func(w *sql.Where) { w.Equals("Artist.Name", "Accept") }).
			Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})

	t.Run("update_and_delete", func(t *testing.T) {
		n, err := client.Table("Track").Update(ctx,
			map[string]any{"UnitPrice": 1.29},
			func(w *sql.Where) { w.Equals("AlbumId", 3) },
		)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		n, err = client.Table("Track").Delete(ctx,
			func(w *sql.Where) { w.Equals("TrackId", 4) },
		)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		remaining, err := client.Table("Track").Query().Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), remaining)
	})
}
