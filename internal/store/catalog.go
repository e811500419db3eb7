package store

import (
	"sync"

	"savora_storefront/internal/models"
)

// Catalog détient la liste des plats achetables. Remplacement en bloc
// uniquement : pas de merge, pas de patch plat par plat.
type Catalog struct {
	mu    sync.RWMutex
	items []models.MenuItem
	byID  map[string]models.MenuItem
	subs  map[int]chan struct{}
	next  int
}

func NewCatalog() *Catalog {
	return &Catalog{
		byID: make(map[string]models.MenuItem),
		subs: make(map[int]chan struct{}),
	}
}

// ReplaceAll remplace tout le catalogue par items, puis notifie les abonnés.
func (c *Catalog) ReplaceAll(items []models.MenuItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make([]models.MenuItem, len(items))
	copy(c.items, items)

	c.byID = make(map[string]models.MenuItem, len(items))
	for _, it := range items {
		c.byID[it.ID] = it
	}

	for _, ch := range c.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (c *Catalog) Items() []models.MenuItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.MenuItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Catalog) Get(id string) (models.MenuItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, ok := c.byID[id]
	return it, ok
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Grouped regroupe les plats par catégorie (déjà normalisée en majuscules
// au décodage de l'API).
func (c *Catalog) Grouped() map[string][]models.MenuItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	groups := make(map[string][]models.MenuItem)
	for _, it := range c.items {
		groups[it.Category] = append(groups[it.Category], it)
	}
	return groups
}

// Subscribe enregistre un abonné notifié après chaque ReplaceAll.
// La fonction retournée désinscrit l'abonné.
func (c *Catalog) Subscribe() (<-chan struct{}, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.next
	c.next++
	ch := make(chan struct{}, 1)
	c.subs[id] = ch

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}
