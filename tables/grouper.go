package tables

import (
	"sort"

	"github.com/tsawler/rankgrid/model"
)

// IndexedFill is a fill together with its position in the page's Fills slice
type IndexedFill struct {
	model.Fill
	Index int `json:"index"`
}

// SeparatorCluster is a group of ruling fills sharing one y coordinate,
// ordered by x ascending
type SeparatorCluster struct {
	Y     float64       `json:"y"`
	Fills []IndexedFill `json:"fills"`
}

// Len returns the number of fills in the cluster
func (c SeparatorCluster) Len() int {
	return len(c.Fills)
}

// GroupSeparators clusters a page's ruling fills by y. Fills without a ruling
// owner tag are ignored and clusters with fewer than 1+ProblemCount fills are
// discarded. The result is sorted by y ascending; fills inside a cluster are
// sorted by x ascending with ties kept in input order.
func GroupSeparators(fills []model.Fill, cfg Config) []SeparatorCluster {
	ruling := make([]IndexedFill, 0, len(fills))
	for i, f := range fills {
		if cfg.isRuling(f.OwnerTag) {
			ruling = append(ruling, IndexedFill{Fill: f, Index: i})
		}
	}
	if len(ruling) == 0 {
		return nil
	}

	sort.SliceStable(ruling, func(i, j int) bool {
		if ruling[i].Y != ruling[j].Y {
			return ruling[i].Y < ruling[j].Y
		}
		return ruling[i].X < ruling[j].X
	})

	var clusters []SeparatorCluster
	current := SeparatorCluster{Y: ruling[0].Y, Fills: []IndexedFill{ruling[0]}}

	for _, f := range ruling[1:] {
		if sameRow(current.Y, f.Y, cfg.YTolerance) {
			current.Fills = append(current.Fills, f)
			continue
		}
		clusters = appendCluster(clusters, current, cfg)
		current = SeparatorCluster{Y: f.Y, Fills: []IndexedFill{f}}
	}
	clusters = appendCluster(clusters, current, cfg)

	return clusters
}

// sameRow reports whether y belongs to a cluster anchored at anchor.
// The anchor is the cluster's smallest y, so merging never drifts.
func sameRow(anchor, y, tolerance float64) bool {
	if tolerance <= 0 {
		return y == anchor
	}
	return y-anchor <= tolerance
}

// appendCluster finalizes a cluster and keeps it if it is large enough
func appendCluster(clusters []SeparatorCluster, c SeparatorCluster, cfg Config) []SeparatorCluster {
	if len(c.Fills) < cfg.minClusterSize() {
		return clusters
	}
	if cfg.YTolerance > 0 {
		// fills merged from neighbouring y values are only sorted per y
		sort.SliceStable(c.Fills, func(i, j int) bool {
			return c.Fills[i].X < c.Fills[j].X
		})
	}
	return append(clusters, c)
}

// ClusterKeys returns the y coordinate of every cluster, ascending
func ClusterKeys(clusters []SeparatorCluster) []float64 {
	keys := make([]float64, len(clusters))
	for i, c := range clusters {
		keys[i] = c.Y
	}
	return keys
}

// DropTrailingCluster returns the clusters without the one with the largest y.
// On the last page that cluster bounds the summary block, not a data row.
func DropTrailingCluster(clusters []SeparatorCluster) []SeparatorCluster {
	if len(clusters) == 0 {
		return clusters
	}
	out := make([]SeparatorCluster, len(clusters)-1)
	copy(out, clusters[:len(clusters)-1])
	return out
}
