package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oficina/backend/internal/domain/cadastros"
	"github.com/oficina/backend/internal/domain/shared"
	"github.com/oficina/backend/internal/domain/shared/valueobject"
)

func TestGormVehicleRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	repo := NewGormVehicleRepository(setupTestDB(t))

	owner := shared.NewID()
	gol, err := cadastros.NewVehicle(owner, "BRA-2E19", "Volkswagen", "Gol", 2019)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, gol))

	onix, err := cadastros.NewVehicle(owner, "ABC1234", "Chevrolet", "Onix", 2021)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, onix))

	other, err := cadastros.NewVehicle(shared.NewID(), "XYZ9A87", "Fiat", "Uno", 2010)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, other))

	t.Run("finds by plate", func(t *testing.T) {
		plate, err := valueobject.NewLicensePlate("bra2e19")
		require.NoError(t, err)

		found, err := repo.FindByPlate(ctx, plate)
		require.NoError(t, err)
		assert.Equal(t, gol.GetID(), found.GetID())
		assert.Equal(t, owner, found.OwnerID())
		assert.Equal(t, "Volkswagen", found.Brand().String())
		assert.Equal(t, "Gol", found.Model().String())
		assert.Equal(t, 2019, found.Year())
		assert.True(t, found.Plate().IsMercosul())
	})

	t.Run("lists by owner", func(t *testing.T) {
		found, err := repo.FindByOwner(ctx, owner)
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, gol.GetID(), found[0].GetID())
		assert.Equal(t, onix.GetID(), found[1].GetID())
	})

	t.Run("ownership transfer persists", func(t *testing.T) {
		newOwner := shared.NewID()
		require.NoError(t, other.TransferOwnership(newOwner))
		require.NoError(t, repo.Save(ctx, other))

		found, err := repo.FindByID(ctx, other.GetID())
		require.NoError(t, err)
		assert.Equal(t, newOwner, found.OwnerID())
	})

	t.Run("search by brand", func(t *testing.T) {
		f := shared.DefaultFilter()
		f.Search = "chev"
		found, err := repo.FindAll(ctx, f)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, onix.GetID(), found[0].GetID())
	})

	t.Run("missing vehicle", func(t *testing.T) {
		_, err := repo.FindByID(ctx, shared.NewID())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormServiceRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	repo := NewGormServiceRepository(setupTestDB(t))

	oil, err := cadastros.NewService("Troca de óleo", "", valueobject.MustBRL("80.00"))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, oil))

	align, err := cadastros.NewService("Alinhamento", "Alinhamento e balanceamento", valueobject.MustBRL("150.00"))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, align))

	t.Run("round trips an empty description", func(t *testing.T) {
		found, err := repo.FindByID(ctx, oil.GetID())
		require.NoError(t, err)
		assert.True(t, found.Description().IsZero())
		assert.True(t, valueobject.MustBRL("80").Equals(found.Price()))
	})

	t.Run("price change persists", func(t *testing.T) {
		require.NoError(t, align.UpdatePrice(valueobject.MustBRL("165.50")))
		require.NoError(t, repo.Save(ctx, align))

		found, err := repo.FindByID(ctx, align.GetID())
		require.NoError(t, err)
		assert.Equal(t, "165.5", found.Price().Amount().String())
		assert.Equal(t, "Alinhamento e balanceamento", found.Description().String())
	})

	t.Run("orders by price", func(t *testing.T) {
		found, err := repo.FindAll(ctx, shared.Filter{OrderBy: "price", OrderDir: "desc"})
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, align.GetID(), found[0].GetID())
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, oil.GetID()))
		_, err := repo.FindByID(ctx, oil.GetID())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
