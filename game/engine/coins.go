package engine

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// CoinManager tracks uncollected coins on the grid and the player's balance
type CoinManager struct {
	cells   mapset.Set[CellID]
	balance int
}

// NewCoinManager returns an empty coin set with a zero balance
func NewCoinManager() *CoinManager {
	return &CoinManager{cells: mapset.New[CellID]()}
}

// Place scatters up to n coins over distinct random cells of size cells,
// skipping every excluded cell and any cell that already holds a coin. It
// returns the number of coins actually placed.
func (c *CoinManager) Place(n, size int, rng Rand, exclude ...CellID) int {
	blocked := mapset.New[CellID]()
	for _, id := range exclude {
		blocked.Put(id)
	}

	free := make([]CellID, 0, size)
	for i := 0; i < size; i++ {
		id := CellID(i)
		if !blocked.Has(id) && !c.cells.Has(id) {
			free = append(free, id)
		}
	}

	if n > len(free) {
		n = len(free)
	}

	// Partial Fisher-Yates: the first n entries end up a uniform sample
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(free)-i)
		free[i], free[j] = free[j], free[i]
		c.cells.Put(free[i])
	}

	return n
}

// Has reports whether a coin lies on id
func (c *CoinManager) Has(id CellID) bool {
	return c.cells.Has(id)
}

// Collect picks up the coin on id, if any, crediting exactly one to the balance
func (c *CoinManager) Collect(id CellID) bool {
	if !c.cells.Has(id) {
		return false
	}
	c.cells.Remove(id)
	c.balance++
	return true
}

// Add credits amount to the balance; non-positive amounts are ignored
func (c *CoinManager) Add(amount int) {
	if amount <= 0 {
		return
	}
	c.balance += amount
}

// Spend debits amount from the balance. It refuses negative amounts and
// amounts above the balance without changing anything.
func (c *CoinManager) Spend(amount int) bool {
	if amount < 0 || amount > c.balance {
		return false
	}
	c.balance -= amount
	return true
}

// Balance returns the current coin balance
func (c *CoinManager) Balance() int {
	return c.balance
}

// Count returns the number of coins still on the grid
func (c *CoinManager) Count() int {
	return c.cells.Size()
}

// Cells returns the coin cells in ascending order
func (c *CoinManager) Cells() []CellID {
	out := make([]CellID, 0, c.cells.Size())
	c.cells.Each(func(id CellID) {
		out = append(out, id)
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clear removes every coin from the grid, optionally zeroing the balance
func (c *CoinManager) Clear(resetBalance bool) {
	c.cells = mapset.New[CellID]()
	if resetBalance {
		c.balance = 0
	}
}
