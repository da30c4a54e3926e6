package scattering

import (
	"fmt"
	"strings"

	"github.com/born-ml/scatter/internal/filters"
)

// Step is one filter selection along a path.
type Step struct {
	J int `json:"j"` // scale
	L int `json:"l"` // orientation, wavelet index within the octave, or degree
}

// Path is a branch of the cascade tree. The empty path is order 0.
type Path []Step

// Order returns the scattering order of the path.
func (p Path) Order() int {
	return len(p)
}

// String formats the path as "(j,l)->(j,l)", or "phi" for order 0.
func (p Path) String() string {
	if len(p) == 0 {
		return "phi"
	}
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = fmt.Sprintf("(%d,%d)", s.J, s.L)
	}
	return strings.Join(parts, "->")
}

// Paths enumerates every path of a geometry in canonical order: order 0,
// order 1 sorted by (j, l), order 2 sorted by (j1, l1, j2, l2).
func Paths(g filters.Geometry) []Path {
	return newPathTable(g).paths
}

// CountPaths is the closed-form number of order-k paths.
func CountPaths(g filters.Geometry, order int) int {
	if order < 0 || order > g.MaxOrder {
		return 0
	}
	h := g.Harmonics()
	switch order {
	case 0:
		return 1
	case 1:
		return g.J * h
	default:
		pairs := g.J * (g.J - 1) / 2
		if g.Dim == 3 {
			return h * pairs
		}
		return h * h * pairs
	}
}

// pathTable is the precomputed enumeration plus the tree structure the
// cascade walks.
type pathTable struct {
	paths []Path
	// children[i] lists the indices of the order-2 extensions of order-1 path i.
	children map[int][]int
	// orderStart[k] is the index of the first order-k path; orderStart[3] is len(paths).
	orderStart [4]int
}

func newPathTable(g filters.Geometry) *pathTable {
	h := g.Harmonics()
	t := &pathTable{children: make(map[int][]int)}
	t.paths = append(t.paths, Path{})

	t.orderStart[1] = len(t.paths)
	for j := range g.J {
		for l := range h {
			t.paths = append(t.paths, Path{{J: j, L: l}})
		}
	}

	t.orderStart[2] = len(t.paths)
	if g.MaxOrder >= 2 {
		for parent := t.orderStart[1]; parent < t.orderStart[2]; parent++ {
			first := t.paths[parent][0]
			for j2 := first.J + 1; j2 < g.J; j2++ {
				for l2 := range h {
					// Solid harmonic branches keep their degree.
					if g.Dim == 3 && l2 != first.L {
						continue
					}
					t.children[parent] = append(t.children[parent], len(t.paths))
					t.paths = append(t.paths, Path{first, {J: j2, L: l2}})
				}
			}
		}
	}
	t.orderStart[3] = len(t.paths)
	return t
}
