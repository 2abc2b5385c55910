package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// Run ejecuta fn en una transacción en memoria: si fn falla se descarta todo lo escrito.
// Los locks de celda tomados por Increment se liberan al terminar, con commit o sin él.
func (s *Store) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	logRepo repository.InventoryLogRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &memTx{
		s:      s,
		held:   make(map[cellKey]*sync.Mutex),
		staged: make(map[cellKey]entity.InventoryRow),
	}
	defer tx.release()

	if err := fn(tx, tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

func (s *Store) cellLock(k cellKey) *sync.Mutex {
	m, _ := s.cellLocks.LoadOrStore(k, &sync.Mutex{})
	return m.(*sync.Mutex)
}

type memTx struct {
	s      *Store
	held   map[cellKey]*sync.Mutex
	staged map[cellKey]entity.InventoryRow
	logs   []entity.InventoryLogEntry
}

func (tx *memTx) lock(k cellKey) {
	if _, ok := tx.held[k]; ok {
		return
	}
	m := tx.s.cellLock(k)
	m.Lock()
	tx.held[k] = m
}

func (tx *memTx) release() {
	for k, m := range tx.held {
		m.Unlock()
		delete(tx.held, k)
	}
}

func (tx *memTx) commit() {
	tx.s.mu.Lock()
	defer tx.s.mu.Unlock()
	for k, row := range tx.staged {
		tx.s.rows[k] = row
	}
	tx.s.logs = append(tx.s.logs, tx.logs...)
}

// Increment equivale al INSERT ... ON CONFLICT DO UPDATE de PostgreSQL: valida las FKs,
// bloquea la celda hasta el fin de la tx y suma sobre el último valor confirmado o escrito en esta tx.
func (tx *memTx) Increment(ctx context.Context, locationID, productID, change int64) (*entity.InventoryRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	k := cellKey{locationID: locationID, productID: productID}

	tx.s.mu.RLock()
	_, locOK := tx.s.locations[locationID]
	_, prodOK := tx.s.products[productID]
	tx.s.mu.RUnlock()
	if !locOK || !prodOK {
		return nil, fmt.Errorf("%w: ubicación %d o producto %d", domain.ErrNotFound, locationID, productID)
	}

	tx.lock(k)

	row, ok := tx.staged[k]
	if !ok {
		tx.s.mu.RLock()
		row, ok = tx.s.rows[k]
		tx.s.mu.RUnlock()
	}
	if ok {
		row.Quantity += change
	} else {
		row = entity.InventoryRow{LocationID: locationID, ProductID: productID, Quantity: change}
	}
	row.UpdatedAt = tx.s.now()
	tx.staged[k] = row

	out := row
	return &out, nil
}

// List dentro de la tx ve lo confirmado más lo escrito por la propia tx.
func (tx *memTx) List(ctx context.Context, filter entity.InventoryFilter) ([]*entity.InventoryRow, error) {
	list, err := tx.s.listRows(ctx, filter, tx.staged)
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Append asigna ID en el momento de la escritura: con el lock de celda tomado,
// el orden de IDs de una celda coincide con el orden de aplicación.
func (tx *memTx) Append(ctx context.Context, entry *entity.InventoryLogEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx.s.mu.Lock()
	entry.ID = tx.s.nextID("inventory_logs")
	tx.s.mu.Unlock()
	entry.CreatedAt = tx.s.now()
	tx.logs = append(tx.logs, *entry)
	return nil
}

func (tx *memTx) ListByKey(ctx context.Context, locationID, productID int64) ([]*entity.InventoryLogEntry, error) {
	list, err := tx.s.listLogs(ctx, locationID, productID)
	if err != nil {
		return nil, err
	}
	for i := range tx.logs {
		e := tx.logs[i]
		if e.LocationID == locationID && e.ProductID == productID {
			list = append(list, &e)
		}
	}
	return list, nil
}

func (s *Store) listRows(ctx context.Context, filter entity.InventoryFilter, overlay map[cellKey]entity.InventoryRow) ([]*entity.InventoryRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	merged := make(map[cellKey]entity.InventoryRow, len(s.rows)+len(overlay))
	for k, r := range s.rows {
		merged[k] = r
	}
	for k, r := range overlay {
		merged[k] = r
	}

	list := make([]*entity.InventoryRow, 0, len(merged))
	for k, r := range merged {
		if filter.LocationID != 0 && k.locationID != filter.LocationID {
			continue
		}
		if filter.ProductID != 0 && k.productID != filter.ProductID {
			continue
		}
		if p, ok := s.products[k.productID]; ok {
			p := p
			r.Product = &p
		}
		r := r
		list = append(list, &r)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].LocationID != list[j].LocationID {
			return list[i].LocationID < list[j].LocationID
		}
		return list[i].ProductID < list[j].ProductID
	})
	return list, nil
}

func (s *Store) listLogs(ctx context.Context, locationID, productID int64) ([]*entity.InventoryLogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []*entity.InventoryLogEntry
	for i := range s.logs {
		e := s.logs[i]
		if e.LocationID == locationID && e.ProductID == productID {
			list = append(list, &e)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

type inventoryView struct{ s *Store }

// Increment fuera de transacción explícita: autocommit.
func (v inventoryView) Increment(ctx context.Context, locationID, productID, change int64) (*entity.InventoryRow, error) {
	var row *entity.InventoryRow
	err := v.s.Run(ctx, func(invRepo repository.InventoryRepository, _ repository.InventoryLogRepository) error {
		r, err := invRepo.Increment(ctx, locationID, productID, change)
		row = r
		return err
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (v inventoryView) List(ctx context.Context, filter entity.InventoryFilter) ([]*entity.InventoryRow, error) {
	return v.s.listRows(ctx, filter, nil)
}

type logView struct{ s *Store }

func (v logView) Append(ctx context.Context, entry *entity.InventoryLogEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	entry.ID = v.s.nextID("inventory_logs")
	entry.CreatedAt = v.s.now()
	v.s.logs = append(v.s.logs, *entry)
	return nil
}

func (v logView) ListByKey(ctx context.Context, locationID, productID int64) ([]*entity.InventoryLogEntry, error) {
	return v.s.listLogs(ctx, locationID, productID)
}
