package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"ctchen222/rehla/internal/client/store"
)

// Favorite is a locally saved story or destination.
type Favorite struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Location    string `json:"location"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// Favorites is an insertion-ordered set keyed by id, written to the store
// after every mutation. It is never synchronized with the server.
type Favorites struct {
	mu    sync.Mutex
	store store.Store
	items []Favorite
}

// LoadFavorites reads the persisted list once. A corrupt entry starts an
// empty list.
func LoadFavorites(ctx context.Context, st store.Store) (*Favorites, error) {
	f := &Favorites{store: st}

	raw, err := st.Get(ctx, store.KeyFavorites)
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &f.items); err != nil {
			f.items = nil
		}
	}
	f.items = dedupe(f.items)
	return f, nil
}

// Add appends item unless its id is already present.
func (f *Favorites) Add(ctx context.Context, item Favorite) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.indexOf(item.ID) >= 0 {
		return nil
	}
	return f.commit(ctx, appended(f.items, item))
}

// Remove drops the entry with id, if any.
func (f *Favorites) Remove(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.indexOf(id)
	if i < 0 {
		return nil
	}
	return f.commit(ctx, removed(f.items, i))
}

// Clear empties the list.
func (f *Favorites) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.commit(ctx, nil)
}

// Toggle removes item when present and adds it otherwise. It reports whether
// item is saved afterwards.
func (f *Favorites) Toggle(ctx context.Context, item Favorite) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if i := f.indexOf(item.ID); i >= 0 {
		if err := f.commit(ctx, removed(f.items, i)); err != nil {
			return true, err
		}
		return false, nil
	}
	if err := f.commit(ctx, appended(f.items, item)); err != nil {
		return false, err
	}
	return true, nil
}

func (f *Favorites) Contains(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.indexOf(id) >= 0
}

// Items returns a copy in insertion order.
func (f *Favorites) Items() []Favorite {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Favorite, len(f.items))
	copy(out, f.items)
	return out
}

func (f *Favorites) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

func (f *Favorites) indexOf(id string) int {
	for i, it := range f.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// commit writes next to the store and only then makes it the current list,
// so a failed write leaves memory and storage in agreement.
func (f *Favorites) commit(ctx context.Context, next []Favorite) error {
	encoded := next
	if encoded == nil {
		encoded = []Favorite{}
	}
	raw, err := json.Marshal(encoded)
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}
	if err := f.store.Set(ctx, store.KeyFavorites, raw); err != nil {
		return err
	}
	f.items = next
	return nil
}

func appended(items []Favorite, item Favorite) []Favorite {
	out := make([]Favorite, len(items), len(items)+1)
	copy(out, items)
	return append(out, item)
}

func removed(items []Favorite, i int) []Favorite {
	out := make([]Favorite, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

func dedupe(items []Favorite) []Favorite {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, it := range items {
		if _, ok := seen[it.ID]; ok {
			continue
		}
		seen[it.ID] = struct{}{}
		out = append(out, it)
	}
	return out
}
