package store

import (
	"sync"

	"savora_storefront/internal/models"

	"github.com/shopspring/decimal"
)

// CartUpdate est l'instantané poussé aux abonnés après chaque mutation.
type CartUpdate struct {
	Items []models.CartItem
	Total decimal.Decimal
	Count int
}

// Cart est le panier d'une session : au plus une ligne par plat,
// quantité minimum 1, une quantité qui tombe à zéro supprime la ligne.
// Purement en mémoire, aucun appel réseau dans ce composant.
type Cart struct {
	mu    sync.Mutex
	items []models.CartItem
	subs  map[int]chan CartUpdate
	next  int
}

func NewCart() *Cart {
	return &Cart{subs: make(map[int]chan CartUpdate)}
}

// Add incrémente la quantité si le plat est déjà dans le panier,
// sinon insère une nouvelle ligne avec les champs copiés du catalogue.
func (c *Cart) Add(item models.MenuItem, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == item.ID {
			c.items[i].Quantity += quantity
			c.notifyLocked()
			return
		}
	}

	c.items = append(c.items, models.CartItem{
		ProductID: item.ID,
		Name:      item.Name,
		Price:     item.Price,
		Quantity:  quantity,
		ImageURL:  item.ImageURL,
	})
	c.notifyLocked()
}

// Remove supprime la ligne du plat. Sans effet si le plat est absent.
func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.notifyLocked()
			return
		}
	}
}

// Decrement baisse la quantité de 1 ; à zéro la ligne disparaît.
// Sans effet si le plat est absent.
func (c *Cart) Decrement(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity--
			if c.items[i].Quantity <= 0 {
				c.items = append(c.items[:i], c.items[i+1:]...)
			}
			c.notifyLocked()
			return
		}
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) == 0 {
		return
	}
	c.items = nil
	c.notifyLocked()
}

func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Total recalcule la somme prix×quantité à chaque appel, jamais de cache.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalLocked()
}

// Count renvoie le nombre de lignes distinctes du panier.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Subscribe enregistre un abonné qui reçoit un instantané après chaque
// mutation. La fonction retournée désinscrit l'abonné.
func (c *Cart) Subscribe() (<-chan CartUpdate, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.next
	c.next++
	ch := make(chan CartUpdate, 4)
	c.subs[id] = ch

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// Snapshot renvoie l'état courant sous la même forme que les notifications.
func (c *Cart) Snapshot() CartUpdate {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CartUpdate{Items: c.snapshotLocked(), Total: c.totalLocked(), Count: len(c.items)}
}

func (c *Cart) snapshotLocked() []models.CartItem {
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) totalLocked() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

func (c *Cart) notifyLocked() {
	update := CartUpdate{Items: c.snapshotLocked(), Total: c.totalLocked(), Count: len(c.items)}
	for _, ch := range c.subs {
		select {
		case ch <- update:
		default:
		}
	}
}
