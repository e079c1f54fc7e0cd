package model

// Edge is an unordered pair of variables, stored with I < J. Coordinates are
// 1-based to match the problem file format.
type Edge struct {
	I int
	J int
}

// EdgeIndex is the bijection between linear edge ids 1..Num and the upper
// off-diagonal cells of a p×p symmetric matrix.
type EdgeIndex struct {
	P      int
	edges  []Edge // edges[k-1] is edge k
	lookup []int  // lookup[(i-1)*P+(j-1)] is the linear id for i<j, 0 if unset
}

// NumEdges is the number of free off-diagonal cells for p variables
func NumEdges(p int) int {
	return p * (p - 1) / 2
}

// NewEdgeIndex validates the given pairs against p. There must be exactly
// p(p-1)/2 distinct pairs, none on the diagonal, all within [1,p]. Pairs may be
// given in either orientation.
func NewEdgeIndex(p int, pairs []Edge) (*EdgeIndex, error) {
	if p < 2 {
		return nil, ConfigErrorf("Invalid variable count %d: at least 2 required", p)
	}

	num := NumEdges(p)
	if len(pairs) != num {
		return nil, ConfigErrorf("Edge index has %d entries but p=%d requires %d", len(pairs), p, num)
	}

	ei := &EdgeIndex{
		P:      p,
		edges:  make([]Edge, num),
		lookup: make([]int, p*p),
	}

	for k, e := range pairs {
		i, j := e.I, e.J
		if i < 1 || i > p || j < 1 || j > p {
			return nil, ConfigErrorf("Edge %d (%d,%d) is out of range [1,%d]", k+1, e.I, e.J, p)
		}
		if i == j {
			return nil, ConfigErrorf("Edge %d (%d,%d) is on the diagonal", k+1, e.I, e.J)
		}
		if i > j {
			i, j = j, i
		}

		cell := (i-1)*p + (j - 1)
		if prev := ei.lookup[cell]; prev != 0 {
			return nil, ConfigErrorf("Edge %d (%d,%d) duplicates edge %d", k+1, e.I, e.J, prev)
		}

		ei.lookup[cell] = k + 1
		ei.edges[k] = Edge{I: i, J: j}
	}

	// Every upper-triangle cell must be assigned
	for i := 1; i <= p; i++ {
		for j := i + 1; j <= p; j++ {
			if ei.lookup[(i-1)*p+(j-1)] == 0 {
				return nil, ConfigErrorf("Edge index does not cover (%d,%d)", i, j)
			}
		}
	}

	return ei, nil
}

// FullEdgeIndex returns the canonical row-major index (1,2),(1,3),...,(p-1,p)
func FullEdgeIndex(p int) (*EdgeIndex, error) {
	pairs := make([]Edge, 0, NumEdges(p))
	for i := 1; i <= p; i++ {
		for j := i + 1; j <= p; j++ {
			pairs = append(pairs, Edge{I: i, J: j})
		}
	}
	return NewEdgeIndex(p, pairs)
}

// Num is the number of edges
func (ei *EdgeIndex) Num() int {
	return len(ei.edges)
}

// ToCoord maps linear id k (1-based) to its coordinates (i<j, 1-based)
func (ei *EdgeIndex) ToCoord(k int) (int, int, error) {
	if k < 1 || k > len(ei.edges) {
		return 0, 0, ConfigErrorf("Invalid edge id %d: must be in [1,%d]", k, len(ei.edges))
	}
	e := ei.edges[k-1]
	return e.I, e.J, nil
}

// ToLinear maps 1-based coordinates in either order to the linear edge id
func (ei *EdgeIndex) ToLinear(i, j int) (int, error) {
	if i > j {
		i, j = j, i
	}
	if i < 1 || j > ei.P || i == j {
		return 0, ConfigErrorf("Invalid edge coordinates (%d,%d) for p=%d", i, j, ei.P)
	}
	return ei.lookup[(i-1)*ei.P+(j-1)], nil
}

// Cell is the fast path used inside the sampler: 0-based edge position to
// 0-based matrix row and column. No bounds checking beyond the slice.
func (ei *EdgeIndex) Cell(k int) (int, int) {
	e := ei.edges[k]
	return e.I - 1, e.J - 1
}

// Pairs returns a copy of the edges in linear id order
func (ei *EdgeIndex) Pairs() []Edge {
	return append([]Edge(nil), ei.edges...)
}
