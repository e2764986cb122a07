package model

// historySize is how many recent generations are kept for cycle detection
const historySize = 5

// History remembers hashes of recent generations to spot still lifes and short cycles
type History struct {
	hashes []string
}

// NewHistory returns an empty history
func NewHistory() *History {
	return &History{hashes: make([]string, 0, historySize+1)}
}

// Update adds the grid's state to history and maintains size
func (h *History) Update(g *Grid) {
	h.hashes = append(h.hashes, g.GetGridHash())

	if len(h.hashes) > historySize {
		h.hashes = h.hashes[1:]
	}
}

// IsStagnant reports whether g repeats one of the last three recorded generations.
// Call it before Update with the same grid, otherwise every grid matches itself.
func (h *History) IsStagnant(g *Grid) bool {
	if len(h.hashes) < 3 {
		return false
	}

	currentHash := g.GetGridHash()
	for back := 1; back <= 3; back++ {
		if h.hashes[len(h.hashes)-back] == currentHash {
			return true
		}
	}
	return false
}

// Reset forgets all recorded generations
func (h *History) Reset() {
	h.hashes = h.hashes[:0]
}
