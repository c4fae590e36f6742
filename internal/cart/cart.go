// Package cart holds the shopping cart: an ordered list of products keyed
// by product id, persisted to the local key-value store.
package cart

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/ayeshaishere/admin-dashboard/internal/dummyjson"
	"github.com/ayeshaishere/admin-dashboard/internal/localstore"
)

// Item is one cart line: the product flattened in plus a quantity ≥ 1.
// An item never sits at quantity 0; it is removed instead.
type Item struct {
	dummyjson.Product
	Quantity int `json:"quantity"`
}

// Subtotal 单行小计
func (it Item) Subtotal() float64 {
	return it.Price * float64(it.Quantity)
}

// ---------- transitions ----------

type action interface {
	isAction()
}

type loadAction struct {
	items []Item
}

type addAction struct {
	product dummyjson.Product
}

type removeAction struct {
	productID int
}

type setQuantityAction struct {
	productID int
	quantity  int
}

type clearAction struct{}

func (loadAction) isAction()        {}
func (addAction) isAction()         {}
func (removeAction) isAction()      {}
func (setQuantityAction) isAction() {}
func (clearAction) isAction()       {}

// reduce is pure; persistence happens in the store after it.
func reduce(items []Item, a action) []Item {
	switch a := a.(type) {
	case loadAction:
		return a.items
	case addAction:
		for i, it := range items {
			if it.ID == a.product.ID {
				out := make([]Item, len(items))
				copy(out, items)
				out[i].Quantity++
				return out
			}
		}
		return append(append([]Item(nil), items...), Item{Product: a.product, Quantity: 1})
	case removeAction:
		out := make([]Item, 0, len(items))
		for _, it := range items {
			if it.ID != a.productID {
				out = append(out, it)
			}
		}
		return out
	case setQuantityAction:
		// 数量 ≤ 0 等价于删除
		if a.quantity <= 0 {
			return reduce(items, removeAction{productID: a.productID})
		}
		out := make([]Item, len(items))
		copy(out, items)
		for i := range out {
			if out[i].ID == a.productID {
				out[i].Quantity = a.quantity
			}
		}
		return out
	case clearAction:
		return []Item{}
	}
	return items
}

// ---------- store ----------

// Store owns the cart sequence. Mutations persist the whole cart, but only
// once the startup load has run, so an initial empty state never clobbers
// a saved cart.
type Store struct {
	mu     sync.Mutex
	items  []Item
	loaded bool

	kv localstore.Store
}

func New(kv localstore.Store) *Store {
	return &Store{kv: kv}
}

// Load restores the saved cart once at startup. A missing entry means an
// empty cart; a malformed one is discarded the same way.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return
	}

	raw, ok, err := s.kv.Get(localstore.KeyCart)
	if err != nil {
		log.Printf("cart: read saved cart: %v", err)
		s.items = reduce(s.items, loadAction{items: []Item{}})
		s.loaded = true
		return
	}
	if !ok {
		s.items = reduce(s.items, loadAction{items: []Item{}})
		s.loaded = true
		return
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil || items == nil {
		_ = s.kv.Delete(localstore.KeyCart)
		items = []Item{}
	}
	s.items = reduce(s.items, loadAction{items: items})
	s.loaded = true
	if len(items) > 0 {
		log.Printf("cart: restored %d saved items", len(items))
	}
}

// AddItem appends the product with quantity 1, or bumps the quantity if it
// is already in the cart.
func (s *Store) AddItem(p dummyjson.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = reduce(s.items, addAction{product: p})
	s.persistLocked()
}

// RemoveItem deletes the matching line; no-op when absent.
func (s *Store) RemoveItem(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = reduce(s.items, removeAction{productID: productID})
	s.persistLocked()
}

// SetQuantity replaces a line's quantity; qty ≤ 0 removes the line.
func (s *Store) SetQuantity(productID, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = reduce(s.items, setQuantityAction{productID: productID, quantity: qty})
	s.persistLocked()
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = reduce(s.items, clearAction{})
	s.persistLocked()
}

// Items returns a copy of the cart lines in order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// TotalPrice 合计金额，空购物车为 0
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, it := range s.items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// TotalItemCount 合计件数
func (s *Store) TotalItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// persistLocked mirrors the cart into the key-value store. Gated on the
// startup load so the pre-load empty state is never written out.
func (s *Store) persistLocked() {
	if !s.loaded {
		return
	}
	b, err := json.Marshal(s.items)
	if err != nil {
		log.Printf("cart: marshal cart: %v", err)
		return
	}
	if err := s.kv.Set(localstore.KeyCart, string(b)); err != nil {
		log.Printf("cart: persist cart: %v", err)
	}
}
