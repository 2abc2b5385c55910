package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/memory"
)

// seed crea bodega 1 → zona → ubicación 1 y dos productos.
func seed(t *testing.T) (*memory.Store, entity.Location, []*entity.Product) {
	t.Helper()
	s := memory.NewStore()
	wh := s.AddWarehouse(entity.Warehouse{Name: "Central"})
	zone, err := s.AddZone(entity.Zone{WarehouseID: wh.ID, Name: "A"})
	require.NoError(t, err)
	loc, err := s.AddLocation(entity.Location{ZoneID: zone.ID, Code: "A-01", Type: entity.LocationTypeShelf})
	require.NoError(t, err)
	products := []*entity.Product{
		{Name: "Tornillo", SKU: "SKU-1", Category: "FERR"},
		{Name: "Tuerca", SKU: "SKU-2", Category: "FERR"},
	}
	n, err := s.Products().InsertSkipExisting(context.Background(), products)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
	return s, loc, products
}

func TestAddLocation_ResuelveBodegaPorZona(t *testing.T) {
	s, loc, _ := seed(t)

	got, err := s.Locations().GetByID(context.Background(), loc.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.WarehouseID)

	missing, err := s.Locations().GetByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAddLocation_CodigoDuplicado(t *testing.T) {
	s, loc, _ := seed(t)

	_, err := s.AddLocation(entity.Location{ZoneID: loc.ZoneID, Code: "A-01", Type: entity.LocationTypeBin})
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestRun_RollbackDescartaEscriturasYLiberaLock(t *testing.T) {
	s, loc, products := seed(t)
	ctx := context.Background()
	boom := errors.New("fallo de auditoría")

	err := s.Run(ctx, func(inv repository.InventoryRepository, logs repository.InventoryLogRepository) error {
		_, err := inv.Increment(ctx, loc.ID, products[0].ID, 5)
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	rows, err := s.Inventory().List(ctx, entity.InventoryFilter{})
	require.NoError(t, err)
	assert.Empty(t, rows, "el rollback no debe dejar filas")

	// Si el lock no se hubiera liberado esto bloquearía.
	row, err := s.Inventory().Increment(ctx, loc.ID, products[0].ID, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), row.Quantity)
}

func TestIncrement_FKInexistenteEsNotFound(t *testing.T) {
	s, loc, _ := seed(t)

	_, err := s.Inventory().Increment(context.Background(), loc.ID, 999, 1)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRun_CeldasDistintasNoSeBloquean(t *testing.T) {
	s, loc, products := seed(t)
	ctx := context.Background()

	holding := make(chan struct{})
	finish := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- s.Run(ctx, func(inv repository.InventoryRepository, _ repository.InventoryLogRepository) error {
			if _, err := inv.Increment(ctx, loc.ID, products[0].ID, 1); err != nil {
				return err
			}
			close(holding)
			<-finish
			return nil
		})
	}()
	<-holding

	other := make(chan error, 1)
	go func() {
		_, err := s.Inventory().Increment(ctx, loc.ID, products[1].ID, 1)
		other <- err
	}()

	select {
	case err := <-other:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("un ajuste sobre otra celda quedó bloqueado")
	}

	close(finish)
	require.NoError(t, <-done)
}

func TestProducts_DeleteConInventarioEsConflicto(t *testing.T) {
	s, loc, products := seed(t)
	ctx := context.Background()

	_, err := s.Inventory().Increment(ctx, loc.ID, products[0].ID, 1)
	require.NoError(t, err)

	assert.True(t, errors.Is(s.Products().Delete(ctx, products[0].ID), domain.ErrConflict))
	assert.NoError(t, s.Products().Delete(ctx, products[1].ID))
	assert.True(t, errors.Is(s.Products().Delete(ctx, products[1].ID), domain.ErrNotFound))
}

func TestProducts_ListOrderedByName(t *testing.T) {
	s, _, _ := seed(t)
	ctx := context.Background()
	_, err := s.Products().InsertSkipExisting(ctx, []*entity.Product{{Name: "Arandela", SKU: "SKU-3", Category: "FERR"}})
	require.NoError(t, err)

	list, err := s.Products().ListOrderedByName(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Arandela", "Tornillo", "Tuerca"}, []string{list[0].Name, list[1].Name, list[2].Name})
}
