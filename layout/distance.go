package layout

import (
	"errors"
	"fmt"

	"capture/game"
)

var ErrUnreachable = errors.New("no path between cells")

// Distancer holds maze distances between every pair of open cells,
// computed once by breadth-first search.
type Distancer struct {
	index map[game.Position]int
	dist  [][]int // -1 when unreachable
}

func NewDistancer(l *Layout) *Distancer {
	d := &Distancer{index: map[game.Position]int{}}
	var cells []game.Position
	for x := 0; x < l.Width; x++ {
		for y := 0; y < l.Height; y++ {
			pos := game.Cell(x, y)
			if !l.IsWall(pos) {
				d.index[pos] = len(cells)
				cells = append(cells, pos)
			}
		}
	}

	d.dist = make([][]int, len(cells))
	for i, from := range cells {
		row := make([]int, len(cells))
		for j := range row {
			row[j] = -1
		}
		row[i] = 0
		queue := []game.Position{from}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, next := range l.neighbours(cur) {
				j := d.index[next]
				if row[j] < 0 {
					row[j] = row[d.index[cur]] + 1
					queue = append(queue, next)
				}
			}
		}
		d.dist[i] = row
	}
	return d
}

func (d *Distancer) Distance(a, b game.Position) (float64, error) {
	i, ok := d.index[a]
	if !ok {
		return 0, fmt.Errorf("%w: %s is not an open cell", ErrUnreachable, a)
	}
	j, ok := d.index[b]
	if !ok {
		return 0, fmt.Errorf("%w: %s is not an open cell", ErrUnreachable, b)
	}
	if d.dist[i][j] < 0 {
		return 0, fmt.Errorf("%w: %s to %s", ErrUnreachable, a, b)
	}
	return float64(d.dist[i][j]), nil
}
