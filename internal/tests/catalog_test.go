package tests

import (
	"testing"

	"grab-atreat/internal/domain"
	"grab-atreat/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_SeedAndList(t *testing.T) {
	catalog := service.NewCatalogService()
	catalog.Seed()

	restaurants := catalog.List()
	require.Len(t, restaurants, 4)
	assert.Equal(t, "Ovenly - Bakery", restaurants[0].Name)

	ovenly, err := catalog.Get(1)
	require.NoError(t, err)
	assert.Len(t, ovenly.Menu, 3)

	_, err = catalog.Get(99)
	assert.ErrorIs(t, err, service.ErrRestaurantNotFound)
}

func TestCatalogService_AdmissionPolicy(t *testing.T) {
	catalog := service.NewCatalogService()
	catalog.Seed()

	require.NoError(t, catalog.CheckAccepting(1))

	require.NoError(t, catalog.SetStatus(1, domain.StatusBusy))
	assert.ErrorIs(t, catalog.CheckAccepting(1), service.ErrRestaurantUnavailable)

	require.NoError(t, catalog.SetStatus(1, domain.StatusOffline))
	assert.ErrorIs(t, catalog.CheckAccepting(1), service.ErrRestaurantUnavailable)

	require.NoError(t, catalog.SetStatus(1, domain.StatusAvailable))
	require.NoError(t, catalog.CheckAccepting(1))

	assert.ErrorIs(t, catalog.CheckAccepting(99), service.ErrRestaurantNotFound)
	assert.Equal(t, domain.StatusOffline, catalog.Status(99))
}

func TestCatalogService_ToggleAvailability(t *testing.T) {
	catalog := service.NewCatalogService()
	catalog.Seed()

	available, err := catalog.ToggleAvailability(1, 101)
	require.NoError(t, err)
	assert.False(t, available)

	available, err = catalog.ToggleAvailability(1, 101)
	require.NoError(t, err)
	assert.True(t, available)

	_, err = catalog.ToggleAvailability(1, 999)
	assert.ErrorIs(t, err, service.ErrMenuItemNotFound)
	_, err = catalog.ToggleAvailability(99, 101)
	assert.ErrorIs(t, err, service.ErrRestaurantNotFound)
}

// Snapshots are copies; mutating a listed restaurant must not leak back.
func TestCatalogService_SnapshotIsolation(t *testing.T) {
	catalog := service.NewCatalogService()
	catalog.Seed()

	snapshot, err := catalog.Get(1)
	require.NoError(t, err)
	snapshot.Menu[0].Price = 1

	fresh, err := catalog.Get(1)
	require.NoError(t, err)
	assert.Equal(t, int64(120), fresh.Menu[0].Price)
}
