package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"skeleton-creator/internal/creator/models"
	"skeleton-creator/internal/creator/repository"

	"github.com/gofiber/fiber/v3/log"
	"github.com/google/uuid"
)

// ============================================================
// Registry
// ============================================================

var ErrNotFound = errors.New("design not found")

// Registry хранит по контроллеру на сессию редактора. Контроллер создаётся
// лениво: при первом обращении состояние поднимается из хранилища.
type Registry struct {
	opts Options

	mu          sync.Mutex
	controllers map[string]*Controller
}

func NewRegistry(opts Options) *Registry {
	return &Registry{
		opts:        opts.withDefaults(),
		controllers: make(map[string]*Controller),
	}
}

// Create starts a new design from defaults and persists it.
func (r *Registry) Create(ctx context.Context) (*Controller, error) {
	id := uuid.NewString()
	c := New(id, models.Defaults(), r.opts)

	if err := c.persist(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("persist new design: %w", err)
	}

	r.mu.Lock()
	r.controllers[id] = c
	r.mu.Unlock()

	log.Infof("[REGISTRY] created design %s", id)
	return c, nil
}

func (r *Registry) Get(ctx context.Context, id string) (*Controller, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.controllers[id]; ok {
		return c, nil
	}

	fields, err := r.opts.Store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load design %s: %w", id, err)
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}

	c := New(id, repository.Decode(fields), r.opts)
	r.controllers[id] = c
	log.Infof("[REGISTRY] rehydrated design %s", id)
	return c, nil
}

// Delete закрывает сессию и стирает её поля из хранилища.
func (r *Registry) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	r.mu.Lock()
	c, live := r.controllers[id]
	delete(r.controllers, id)
	r.mu.Unlock()

	if live {
		c.Close()
		if err := c.wait(ctx); err != nil {
			return err
		}
	} else {
		fields, err := r.opts.Store.Load(ctx, id)
		if err != nil {
			return fmt.Errorf("load design %s: %w", id, err)
		}
		if len(fields) == 0 {
			return ErrNotFound
		}
	}

	if err := r.opts.Store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete design %s: %w", id, err)
	}
	log.Infof("[REGISTRY] deleted design %s", id)
	return nil
}

// IDs lists designs known to the store or alive in memory.
func (r *Registry) IDs(ctx context.Context) ([]string, error) {
	stored, err := r.opts.Store.List(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(stored))
	for _, id := range stored {
		seen[id] = struct{}{}
	}

	r.mu.Lock()
	for id := range r.controllers {
		seen[id] = struct{}{}
	}
	r.mu.Unlock()

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, c := range r.controllers {
		c.Close()
		delete(r.controllers, id)
	}
}
