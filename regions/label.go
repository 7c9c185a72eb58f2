// SPDX-License-Identifier: MIT

package regions

import (
	"github.com/xinyuangui2/morpho/morph"
	"github.com/xinyuangui2/morpho/neighborhood"
)

// Threshold returns the mask of pixels strictly greater than t.
func Threshold[T morph.Element](img []T, t T) []bool {
	fg := make([]bool, len(img))
	for i, v := range img {
		fg[i] = v > t
	}
	return fg
}

// Label assigns 1..count to the connected regions of fg, in raster order of
// their first pixel; background pixels get 0.
//
// Stage 1 (Validate): shape, connectivity, buffer length.
// Stage 2 (Scan): every unlabeled foreground pixel seeds a BFS that labels
// its whole region.
//
// Time:   O(N·d), where d = 4 or 8.
// Memory: O(N) for labels and the queue.
func Label(fg []bool, shape neighborhood.Shape, conn neighborhood.Connectivity) (labels []int, count int, err error) {
	w, err := adjacency(shape, conn)
	if err != nil {
		return nil, 0, err
	}
	if err := checkSize(len(fg), shape); err != nil {
		return nil, 0, err
	}

	labels = make([]int, len(fg))
	queue := make([]int, 0, 64)
	for p0, on := range fg {
		if !on || labels[p0] != 0 {
			continue
		}
		count++
		labels[p0] = count
		queue = append(queue[:0], p0)
		for qi := 0; qi < len(queue); qi++ {
			for q := range w.Neighbors(queue[qi]) {
				if fg[q] && labels[q] == 0 {
					labels[q] = count
					queue = append(queue, q)
				}
			}
		}
	}
	return labels, count, nil
}

// Components returns the pixel indices of every region, region k-1 holding
// label k. Pixels within a region are in raster order.
func Components(fg []bool, shape neighborhood.Shape, conn neighborhood.Connectivity) ([][]int, error) {
	labels, count, err := Label(fg, shape, conn)
	if err != nil {
		return nil, err
	}
	comps := make([][]int, count)
	for p, l := range labels {
		if l > 0 {
			comps[l-1] = append(comps[l-1], p)
		}
	}
	return comps, nil
}

// Describe summarizes the count regions of labels, measuring values in img.
// img may be nil, leaving Peak and Sum zero.
func Describe[T morph.Element](labels []int, count int, shape neighborhood.Shape, img []T) ([]Region, error) {
	if err := checkSize(len(labels), shape); err != nil {
		return nil, err
	}
	if img != nil {
		if err := checkSize(len(img), shape); err != nil {
			return nil, err
		}
	}
	out := make([]Region, count)
	for p, l := range labels {
		if l <= 0 || l > count {
			continue
		}
		row, col := shape.Coord(p)
		r := &out[l-1]
		var v float64
		if img != nil {
			v = float64(img[p])
		}
		if r.Area == 0 {
			*r = Region{Label: l, Top: row, Left: col, Bottom: row, Right: col, Peak: v}
		}
		r.Area++
		r.Top, r.Bottom = min(r.Top, row), max(r.Bottom, row)
		r.Left, r.Right = min(r.Left, col), max(r.Right, col)
		r.Peak = max(r.Peak, v)
		r.Sum += v
	}
	return out, nil
}
