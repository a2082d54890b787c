// Package allocation turns proportion distributions into exact integer counts.
//
// Every leaf combination gets round(total × p1 × p2 × …) using round-half-up.
// Rounding can leave the cells off by a few units, so the difference is added
// to the single largest cell. This keeps the total exact at the cost of a
// slightly skewed largest cell.
package allocation

import (
	"errors"
	"fmt"
	"math"

	"question-bank-be/pkg/taxonomy"
)

var (
	// ErrInvalidAllocation is returned for a negative total or a missing dimension.
	ErrInvalidAllocation = errors.New("invalid allocation request")

	// ErrAllocationDegenerate is returned when the total is positive but every
	// leaf has a zero share (a dimension whose proportions are all zero), so no
	// cell can absorb the remainder.
	ErrAllocationDegenerate = errors.New("allocation degenerate: every cell has a zero share")
)

// roundingTolerance keeps products that should land exactly on .5 from
// rounding down because of float representation error.
const roundingTolerance = 1e-9

// Cell is one combination of labels, one label per dimension, with its count.
type Cell struct {
	Labels []string
	Count  int
}

// Allocation holds the surviving cells in leaf iteration order.
type Allocation struct {
	Cells []Cell
}

func (a Allocation) Total() int {
	total := 0
	for _, c := range a.Cells {
		total += c.Count
	}
	return total
}

// Allocate computes per-cell counts over the cartesian product of dims.
// Leaves are visited in insertion order, last dimension varying fastest.
func Allocate(total int, dims ...taxonomy.Distribution) (Allocation, error) {
	shares, err := collectShares(total, dims)
	if err != nil || total == 0 {
		return Allocation{}, err
	}

	var (
		cells       []Cell
		sum         int
		bestLabels  []string
		bestProduct float64
	)
	cursor := make([]int, len(dims))
	for {
		product := float64(total)
		labels := make([]string, len(dims))
		for d, i := range cursor {
			product *= shares[d][i].Proportion
			labels[d] = shares[d][i].Label
		}
		if product > bestProduct {
			bestProduct, bestLabels = product, labels
		}
		if count := roundHalfUp(product); count > 0 {
			cells = append(cells, Cell{Labels: labels, Count: count})
			sum += count
		}
		if !advance(cursor, shares) {
			break
		}
	}

	if delta := total - sum; delta != 0 {
		if len(cells) == 0 {
			// Every leaf rounded to zero. All counts tie at zero, so the
			// leaf with the largest exact share takes the whole total.
			if bestProduct <= 0 {
				return Allocation{}, fmt.Errorf("%w (total %d)", ErrAllocationDegenerate, total)
			}
			cells = []Cell{{Labels: bestLabels}}
		}
		correct(cells, delta)
		cells = dropEmpty(cells)
	}

	return Allocation{Cells: cells}, nil
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5 + roundingTolerance))
}

// advance moves the odometer one leaf forward and reports whether one remains.
func advance(cursor []int, shares [][]taxonomy.Share) bool {
	for d := len(cursor) - 1; d >= 0; d-- {
		cursor[d]++
		if cursor[d] < len(shares[d]) {
			return true
		}
		cursor[d] = 0
	}
	return false
}

// correct applies delta to the largest cell. A negative delta bigger than that
// cell clamps it at zero and carries the rest to the next largest, so no count
// ever goes negative.
func correct(cells []Cell, delta int) {
	for delta != 0 {
		i := largest(cells)
		if delta > 0 {
			cells[i].Count += delta
			return
		}
		take := cells[i].Count
		if take > -delta {
			take = -delta
		}
		cells[i].Count -= take
		delta += take
	}
}

// largest returns the first cell holding the maximum count.
func largest(cells []Cell) int {
	best := 0
	for i := 1; i < len(cells); i++ {
		if cells[i].Count > cells[best].Count {
			best = i
		}
	}
	return best
}

func dropEmpty(cells []Cell) []Cell {
	out := cells[:0]
	for _, c := range cells {
		if c.Count > 0 {
			out = append(out, c)
		}
	}
	return out
}

// AllocateNested splits total one dimension at a time: the first dimension is
// apportioned over total, each of its labels is apportioned over the next
// dimension, and so on. Each split uses the same rounding and remainder rule
// as Allocate, so the leaves still sum to total, but a small total spread over
// several dimensions no longer collapses into a single cell.
func AllocateNested(total int, dims ...taxonomy.Distribution) (Allocation, error) {
	shares, err := collectShares(total, dims)
	if err != nil || total == 0 {
		return Allocation{}, err
	}
	var cells []Cell
	if err := split(total, shares, nil, &cells); err != nil {
		return Allocation{}, err
	}
	return Allocation{Cells: cells}, nil
}

func collectShares(total int, dims []taxonomy.Distribution) ([][]taxonomy.Share, error) {
	if total < 0 {
		return nil, fmt.Errorf("%w: total must be >= 0, got %d", ErrInvalidAllocation, total)
	}
	if len(dims) == 0 {
		return nil, fmt.Errorf("%w: at least one distribution is required", ErrInvalidAllocation)
	}
	shares := make([][]taxonomy.Share, len(dims))
	for i, d := range dims {
		if d.Len() == 0 {
			return nil, fmt.Errorf("%w: distribution %d is empty", ErrInvalidAllocation, i)
		}
		shares[i] = d.Shares()
	}
	return shares, nil
}

func split(count int, shares [][]taxonomy.Share, prefix []string, out *[]Cell) error {
	parts, err := Apportion(count, shares[0])
	if err != nil {
		return fmt.Errorf("%w (count %d at dimension %d)", err, count, len(prefix))
	}
	for _, p := range parts {
		labels := make([]string, len(prefix)+1)
		copy(labels, prefix)
		labels[len(prefix)] = p.Labels[0]
		if len(shares) == 1 {
			*out = append(*out, Cell{Labels: labels, Count: p.Count})
			continue
		}
		if err := split(p.Count, shares[1:], labels, out); err != nil {
			return err
		}
	}
	return nil
}

// Apportion splits count over a single dimension and returns one cell per
// surviving label. It is Allocate restricted to one distribution.
func Apportion(count int, shares []taxonomy.Share) ([]Cell, error) {
	if count == 0 {
		return nil, nil
	}
	var (
		cells []Cell
		sum   int
		best  = -1
	)
	for i, s := range shares {
		if s.Proportion > 0 && (best < 0 || s.Proportion > shares[best].Proportion) {
			best = i
		}
		if n := roundHalfUp(float64(count) * s.Proportion); n > 0 {
			cells = append(cells, Cell{Labels: []string{s.Label}, Count: n})
			sum += n
		}
	}
	if delta := count - sum; delta != 0 {
		if len(cells) == 0 {
			if best < 0 {
				return nil, ErrAllocationDegenerate
			}
			cells = []Cell{{Labels: []string{shares[best].Label}}}
		}
		correct(cells, delta)
		cells = dropEmpty(cells)
	}
	return cells, nil
}
