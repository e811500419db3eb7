package store

import (
	"sync"
	"time"
)

// Durée de rétention alignée sur le cookie de session (30 jours)
const cartTTL = 30 * 24 * time.Hour

type cartEntry struct {
	cart     *Cart
	lastSeen time.Time
}

// CartRegistry associe un panier à chaque session navigateur. Les paniers
// inactifs depuis plus de cartTTL sont évincés au passage, en même temps
// que le cookie de session expire.
type CartRegistry struct {
	mu      sync.Mutex
	entries map[string]*cartEntry
	ttl     time.Duration
}

func NewCartRegistry() *CartRegistry {
	return &CartRegistry{
		entries: make(map[string]*cartEntry),
		ttl:     cartTTL,
	}
}

// Get renvoie le panier de la session, créé à la volée si besoin,
// et rafraîchit sa date de dernier accès.
func (r *CartRegistry) Get(sessionID string) *Cart {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.evictLocked(now)

	e, ok := r.entries[sessionID]
	if !ok {
		e = &cartEntry{cart: NewCart()}
		r.entries[sessionID] = e
	}
	e.lastSeen = now
	return e.cart
}

// Len renvoie le nombre de paniers actuellement retenus.
func (r *CartRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *CartRegistry) evictLocked(now time.Time) {
	for sid, e := range r.entries {
		if now.Sub(e.lastSeen) > r.ttl {
			delete(r.entries, sid)
		}
	}
}
