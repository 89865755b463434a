package engine

// parentLink is either a root marker (ok == false) or a pointer to a parent cell
type parentLink struct {
	parent CellID
	ok     bool
}

// ParentIndex stores the spanning tree as one parent pointer per cell. The
// tree is rooted at the maze's end cell.
type ParentIndex struct {
	links []parentLink
}

// NewParentIndex returns an index where every cell is a root
func NewParentIndex(size int) *ParentIndex {
	return &ParentIndex{links: make([]parentLink, size)}
}

// Parent returns the parent of id; ok is false when id is a root
func (p *ParentIndex) Parent(id CellID) (CellID, bool) {
	l := p.links[id]
	return l.parent, l.ok
}

// IsRoot reports whether id has no parent
func (p *ParentIndex) IsRoot(id CellID) bool {
	return !p.links[id].ok
}

// Set points id at parent
func (p *ParentIndex) Set(id, parent CellID) {
	p.links[id] = parentLink{parent: parent, ok: true}
}

// SetRoot clears the parent pointer of id
func (p *ParentIndex) SetRoot(id CellID) {
	p.links[id] = parentLink{}
}

// Len returns the number of cells tracked
func (p *ParentIndex) Len() int {
	return len(p.links)
}

// Depths returns the distance of every cell to its root. Chains are walked
// with an explicit stack and every visited cell is memoized, so each cell is
// resolved once regardless of grid size.
func (p *ParentIndex) Depths() []int {
	depths := make([]int, len(p.links))
	known := make([]bool, len(p.links))
	chain := make([]CellID, 0, 64)

	for i := range p.links {
		id := CellID(i)
		chain = chain[:0]

		for !known[id] {
			parent, ok := p.Parent(id)
			if !ok {
				depths[id] = 0
				known[id] = true
				break
			}
			chain = append(chain, id)
			id = parent
			// A cycle would be a corrupted tree; stop rather than spin.
			if len(chain) > len(p.links) {
				break
			}
		}

		base := depths[id]
		for j := len(chain) - 1; j >= 0; j-- {
			base++
			depths[chain[j]] = base
			known[chain[j]] = true
		}
	}

	return depths
}

// Depth returns the distance of a single cell to its root
func (p *ParentIndex) Depth(id CellID) int {
	depth := 0
	for {
		parent, ok := p.Parent(id)
		if !ok || depth > len(p.links) {
			return depth
		}
		depth++
		id = parent
	}
}

// PathToRoot returns the cells from id up to and including its root
func (p *ParentIndex) PathToRoot(id CellID) []CellID {
	path := []CellID{id}
	for len(path) <= len(p.links) {
		parent, ok := p.Parent(id)
		if !ok {
			break
		}
		path = append(path, parent)
		id = parent
	}
	return path
}

// PickStartCell chooses a random cell whose depth exceeds 75% of the deepest
// cell. When every cell sits at depth 0 (or nothing qualifies) any cell may be
// returned.
func (p *ParentIndex) PickStartCell(rng Rand) CellID {
	depths := p.Depths()

	maxDepth := 0
	for _, d := range depths {
		if d > maxDepth {
			maxDepth = d
		}
	}

	threshold := startDepthRatio * float64(maxDepth)
	candidates := make([]CellID, 0, len(depths)/4+1)
	for id, d := range depths {
		if float64(d) > threshold {
			candidates = append(candidates, CellID(id))
		}
	}

	if maxDepth == 0 || len(candidates) == 0 {
		return CellID(rng.Intn(len(depths)))
	}
	return candidates[rng.Intn(len(candidates))]
}
