package planet

import (
	"context"
	"sort"
	"sync"
	"time"

	apperrors "planets-api/internal/shared/errors"
)

// MemoryGateway is an in-memory implementation of the Gateway, used by tests
// and for running the server without a database. IDs are assigned
// sequentially starting at 1, matching the store-assigned numeric identity of
// the Postgres repository.
type MemoryGateway struct {
	mu      sync.RWMutex
	planets map[int]*Planet
	nextID  int
}

var _ Gateway = (*MemoryGateway)(nil)

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{
		planets: make(map[int]*Planet),
		nextID:  1,
	}
}

func (g *MemoryGateway) FindAll(ctx context.Context) ([]Planet, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	planets := make([]Planet, 0, len(g.planets))
	for _, p := range g.planets {
		planets = append(planets, *p)
	}
	sort.Slice(planets, func(i, j int) bool { return planets[i].ID < planets[j].ID })
	return planets, nil
}

func (g *MemoryGateway) FindByID(ctx context.Context, id int) (*Planet, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	p, ok := g.planets[id]
	if !ok {
		return nil, apperrors.NotFoundf("planet %d not found", id)
	}
	copied := *p
	return &copied, nil
}

func (g *MemoryGateway) Create(ctx context.Context, input Input, actor string) (*Planet, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now().UTC()
	p := &Planet{
		ID:          g.nextID,
		Name:        input.Name,
		Description: input.Description,
		Diameter:    input.Diameter,
		Moons:       input.Moons,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   actor,
		UpdatedBy:   actor,
	}
	g.planets[p.ID] = p
	g.nextID++

	copied := *p
	return &copied, nil
}

func (g *MemoryGateway) Replace(ctx context.Context, id int, input Input, actor string) (*Planet, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.planets[id]
	if !ok {
		return nil, apperrors.NotFoundf("planet %d not found", id)
	}

	p.Name = input.Name
	p.Description = input.Description
	p.Diameter = input.Diameter
	p.Moons = input.Moons
	p.CreatedBy = actor
	p.UpdatedBy = actor
	p.UpdatedAt = time.Now().UTC()

	copied := *p
	return &copied, nil
}

func (g *MemoryGateway) SetPhoto(ctx context.Context, id int, filename string) (*Planet, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.planets[id]
	if !ok {
		return nil, apperrors.NotFoundf("planet %d not found", id)
	}

	p.PhotoFilename = &filename
	p.UpdatedAt = time.Now().UTC()

	copied := *p
	return &copied, nil
}

func (g *MemoryGateway) Delete(ctx context.Context, id int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.planets[id]; !ok {
		return apperrors.NotFoundf("planet %d not found", id)
	}
	delete(g.planets, id)
	return nil
}
