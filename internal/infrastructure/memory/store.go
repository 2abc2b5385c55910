// Package memory implementa los puertos de persistencia en memoria para desarrollo local y tests.
//
// El ledger reproduce la semántica de PostgreSQL: Increment toma un lock por celda
// (location, product) que se mantiene hasta el commit o rollback de la transacción,
// así dos ajustes sobre la misma celda se serializan y celdas distintas no se bloquean.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var (
	_ repository.LocationRepository     = locationView{}
	_ repository.ProductRepository      = productView{}
	_ repository.InventoryRepository    = inventoryView{}
	_ repository.InventoryLogRepository = logView{}
)

type cellKey struct {
	locationID int64
	productID  int64
}

// Store estado completo en memoria. mu protege los mapas; cellLocks serializa el ledger por celda.
type Store struct {
	mu         sync.RWMutex
	warehouses map[int64]entity.Warehouse
	zones      map[int64]entity.Zone
	locations  map[int64]entity.Location
	products   map[int64]entity.Product
	skus       map[string]int64
	rows       map[cellKey]entity.InventoryRow
	logs       []entity.InventoryLogEntry
	seq        map[string]int64

	cellLocks sync.Map // cellKey -> *sync.Mutex
	now       func() time.Time
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		warehouses: make(map[int64]entity.Warehouse),
		zones:      make(map[int64]entity.Zone),
		locations:  make(map[int64]entity.Location),
		products:   make(map[int64]entity.Product),
		skus:       make(map[string]int64),
		rows:       make(map[cellKey]entity.InventoryRow),
		seq:        make(map[string]int64),
		now:        time.Now,
	}
}

// Locations expone las ubicaciones como LocationRepository.
func (s *Store) Locations() repository.LocationRepository { return locationView{s} }

// Products expone el catálogo como ProductRepository.
func (s *Store) Products() repository.ProductRepository { return productView{s} }

// Inventory expone el ledger fuera de transacción (cada Increment es su propia tx).
func (s *Store) Inventory() repository.InventoryRepository { return inventoryView{s} }

// Logs expone la auditoría fuera de transacción.
func (s *Store) Logs() repository.InventoryLogRepository { return logView{s} }

// nextID requiere mu tomado en escritura.
func (s *Store) nextID(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

// AddWarehouse registra una bodega y le asigna ID si no trae.
func (s *Store) AddWarehouse(w entity.Warehouse) entity.Warehouse {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w.ID == 0 {
		w.ID = s.nextID("warehouses")
	}
	s.warehouses[w.ID] = w
	return w
}

// AddZone registra una zona; la bodega debe existir.
func (s *Store) AddZone(z entity.Zone) (entity.Zone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.warehouses[z.WarehouseID]; !ok {
		return entity.Zone{}, fmt.Errorf("%w: bodega %d", domain.ErrNotFound, z.WarehouseID)
	}
	if z.ID == 0 {
		z.ID = s.nextID("zones")
	}
	s.zones[z.ID] = z
	return z, nil
}

// AddLocation registra una ubicación; la zona debe existir y el código ser único.
// WarehouseID de la entrada se ignora: se resuelve siempre por la zona.
func (s *Store) AddLocation(l entity.Location) (entity.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.zones[l.ZoneID]; !ok {
		return entity.Location{}, fmt.Errorf("%w: zona %d", domain.ErrNotFound, l.ZoneID)
	}
	for _, other := range s.locations {
		if other.Code == l.Code {
			return entity.Location{}, fmt.Errorf("%w: código %q", domain.ErrConflict, l.Code)
		}
	}
	if l.ID == 0 {
		l.ID = s.nextID("locations")
	}
	l.WarehouseID = 0
	s.locations[l.ID] = l
	return s.withWarehouse(l), nil
}

// withWarehouse requiere mu tomado.
func (s *Store) withWarehouse(l entity.Location) entity.Location {
	l.WarehouseID = s.zones[l.ZoneID].WarehouseID
	return l
}

type locationView struct{ s *Store }

func (v locationView) GetByID(_ context.Context, id int64) (*entity.Location, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	l, ok := v.s.locations[id]
	if !ok {
		return nil, nil
	}
	l = v.s.withWarehouse(l)
	return &l, nil
}

func (v locationView) List(_ context.Context) ([]*entity.Location, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	list := make([]*entity.Location, 0, len(v.s.locations))
	for _, l := range v.s.locations {
		l = v.s.withWarehouse(l)
		list = append(list, &l)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

type productView struct{ s *Store }

func (v productView) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	p, ok := v.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// ListOrderedByName ordena por nombre y por ID ante empates.
func (v productView) ListOrderedByName(_ context.Context) ([]*entity.Product, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	list := make([]*entity.Product, 0, len(v.s.products))
	for _, p := range v.s.products {
		p := p
		list = append(list, &p)
	}
	sort.Slice(list, func(i, j int) bool {
		if c := strings.Compare(list[i].Name, list[j].Name); c != 0 {
			return c < 0
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

// InsertSkipExisting asigna ID a los insertados y omite los SKU existentes.
func (v productView) InsertSkipExisting(ctx context.Context, products []*entity.Product) (int64, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var inserted int64
	for _, p := range products {
		if err := ctx.Err(); err != nil {
			return inserted, err
		}
		if _, exists := v.s.skus[p.SKU]; exists {
			continue
		}
		p.ID = v.s.nextID("products")
		v.s.products[p.ID] = *p
		v.s.skus[p.SKU] = p.ID
		inserted++
	}
	return inserted, nil
}

func (v productView) Delete(_ context.Context, id int64) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	p, ok := v.s.products[id]
	if !ok {
		return fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	for k := range v.s.rows {
		if k.productID == id {
			return fmt.Errorf("%w: el producto %d tiene inventario", domain.ErrConflict, id)
		}
	}
	delete(v.s.products, id)
	delete(v.s.skus, p.SKU)
	return nil
}
