package cache

import (
	"context"
	"meal-delivery-service/internal/adapters/repositories"
	"meal-delivery-service/internal/domain"
	"meal-delivery-service/internal/platform/db"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSqliteGeocodeCache(t *testing.T) {
	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	defer conn.Close()

	ctx := context.Background()
	require.NoError(t, repositories.InitSchema(ctx, conn))

	c := NewSqliteGeocodeCache(conn)

	empty, err := c.GetMany(ctx, []string{"1 Rue Peel"})
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, c.PutMany(ctx, map[string]domain.Coordinates{
		"1 Rue Peel": {Lat: 45.5, Lon: -73.57},
		"2 Rue Guy":  {Lat: 45.49, Lon: -73.58},
	}))
	require.NoError(t, c.PutMany(ctx, map[string]domain.Coordinates{
		"2 Rue Guy": {Lat: 45.4, Lon: -73.6},
	}))

	got, err := c.GetMany(ctx, []string{"1 Rue Peel", " 2 Rue Guy ", "1 Rue Peel", "", "3 Rue Bleury"})
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.Coordinates{
		"1 Rue Peel": {Lat: 45.5, Lon: -73.57},
		"2 Rue Guy":  {Lat: 45.4, Lon: -73.6},
	}, got)

	assert.Error(t, c.PutMany(ctx, map[string]domain.Coordinates{" ": {}}))
}

func TestGeocodeCachePlaceholders(t *testing.T) {
	assert.Equal(t, "$2", NewSQLGeocodeCache(nil).placeholder(2))
	assert.Equal(t, "?", NewSqliteGeocodeCache(nil).placeholder(2))
}
