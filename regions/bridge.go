// SPDX-License-Identifier: MIT

package regions

import (
	"container/list"
	"fmt"
	"math"

	"github.com/xinyuangui2/morpho/neighborhood"
)

// Bridge finds a minimum-conversion path of background pixels joining region
// src to region dst, labels as produced by Label. Each background pixel on
// the path costs 1, foreground pixels are free. It returns the path, from a
// src pixel to a dst pixel inclusive, and its cost.
//
// Behavior:
//  1. Validate labels.
//  2. Multi-source 0-1 BFS from every src pixel:
//     moving into a foreground pixel costs 0 (pushed front),
//     moving into a background pixel costs 1 (pushed back).
//  3. Stop when a dst pixel is popped.
//  4. Rebuild the path from predecessors.
//
// Complexity: O(N·d). Memory: O(N) for distances and predecessors.
func Bridge(labels []int, count int, shape neighborhood.Shape, conn neighborhood.Connectivity, src, dst int) (path []int, cost int, err error) {
	w, err := adjacency(shape, conn)
	if err != nil {
		return nil, 0, err
	}
	if err := checkSize(len(labels), shape); err != nil {
		return nil, 0, err
	}
	if src < 1 || src > count || dst < 1 || dst > count {
		return nil, 0, fmt.Errorf("%w: %d, %d not in [1,%d]", ErrRegionIndex, src, dst, count)
	}

	dist := make([]int, len(labels))
	prev := make([]int, len(labels))
	for i := range dist {
		dist[i] = math.MaxInt
		prev[i] = -1
	}

	dq := list.New()
	for p, l := range labels {
		if l == src {
			dist[p] = 0
			dq.PushFront(p)
		}
	}

	target := -1
	for dq.Len() > 0 {
		u := dq.Remove(dq.Front()).(int)
		if labels[u] == dst {
			target = u
			break
		}
		for v := range w.Neighbors(u) {
			step := 0
			if labels[v] == 0 {
				step = 1
			}
			if nd := dist[u] + step; nd < dist[v] {
				dist[v] = nd
				prev[v] = u
				if step == 0 {
					dq.PushFront(v)
				} else {
					dq.PushBack(v)
				}
			}
		}
	}

	if target < 0 {
		return nil, 0, ErrNoPath
	}
	for at := target; at >= 0; at = prev[at] {
		path = append(path, at)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, dist[target], nil
}
