// Package session maps game ids to live games and serializes access to
// each one. Every mutation is written through to the store, so a registry
// rebuilt after a restart finds its games again.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/colmak/rustychess/internal/board"
	"github.com/colmak/rustychess/internal/game"
	"github.com/colmak/rustychess/internal/storage"
)

// ErrNotFound is returned for ids with no live or stored game.
var ErrNotFound = storage.ErrNotFound

// entry pairs a game with its own lock, so a slow operation on one game
// does not block the others.
type entry struct {
	mu      sync.Mutex
	game    *game.Game
	created time.Time
}

// Registry tracks games by id. The registry lock only guards the map;
// each game is guarded by its entry lock.
type Registry struct {
	mu    sync.Mutex
	games map[string]*entry
	store *storage.GameStore
}

// New creates a registry backed by store.
func New(store *storage.GameStore) *Registry {
	return &Registry{
		games: make(map[string]*entry),
		store: store,
	}
}

// Create starts a new game from the standard starting position, persists
// it, and returns its id.
func (r *Registry) Create() (string, error) {
	id := uuid.NewString()
	e := &entry{game: game.New(), created: time.Now().UTC()}

	if err := r.store.Save(record(id, e)); err != nil {
		return "", err
	}

	r.mu.Lock()
	r.games[id] = e
	r.mu.Unlock()

	return id, nil
}

// Get runs fn with the game locked. Nothing is persisted; use it for
// reads. The game must not be retained after fn returns.
func (r *Registry) Get(id string, fn func(*game.Game) error) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.game)
}

// With runs fn with the game locked and writes the game through to the
// store when fn succeeds. A failed save does not roll the game back.
func (r *Registry) With(id string, fn func(*game.Game) error) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := fn(e.game); err != nil {
		return err
	}
	return r.store.Save(record(id, e))
}

// Remove deletes the game from the registry and the store.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	delete(r.games, id)
	r.mu.Unlock()

	return r.store.Delete(id)
}

// List returns the stored records of all games.
func (r *Registry) List() ([]*storage.GameRecord, error) {
	return r.store.List()
}

// lookup returns the live entry for id, loading and replaying the stored
// record on first access after a restart.
func (r *Registry) lookup(id string) (*entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.games[id]; ok {
		return e, nil
	}

	rec, err := r.store.Load(id)
	if err != nil {
		return nil, err
	}

	g, err := replay(rec.Moves)
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", id, err)
	}

	e := &entry{game: g, created: rec.CreatedAt}
	r.games[id] = e
	return e, nil
}

// replay rebuilds a game by applying the recorded moves from the starting
// position, restoring the undo history along the way.
func replay(moves []string) (*game.Game, error) {
	g := game.New()
	for _, s := range moves {
		m, err := board.ParseUCIMove(s)
		if err != nil {
			return nil, fmt.Errorf("stored move %q: %w", s, err)
		}
		if err := g.ApplyMove(m); err != nil {
			return nil, fmt.Errorf("stored move %q: %w", s, err)
		}
	}
	return g, nil
}

// record snapshots an entry for the store. Callers must have exclusive
// access to e.
func record(id string, e *entry) *storage.GameRecord {
	moves := e.game.Moves()
	uci := make([]string, len(moves))
	for i, m := range moves {
		uci[i] = m.String()
	}
	return &storage.GameRecord{
		ID:        id,
		FEN:       e.game.FEN(),
		Moves:     uci,
		Status:    string(e.game.Status()),
		CreatedAt: e.created,
	}
}
