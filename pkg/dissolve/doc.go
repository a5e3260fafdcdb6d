// Package dissolve fills a masked region of an N-dimensional image with the
// values found just outside it, propagated inward in order of geodesic
// distance from the mask boundary.
//
// The filter runs in four stages:
//
//  1. Topology: the 2·D axis-aligned neighbour offsets and their physical
//     lengths, derived from the image spacing.
//  2. Seeding: every 1-D line of the processing region is scanned along every
//     axis. Each transition between outside and inside the mask produces a
//     distance-zero seed on the inside pixel carrying the outside value. A
//     mask touching the region border is seeded with the background value.
//  3. Propagation: a multi-source Dijkstra expansion restricted to masked
//     pixels. Each masked pixel receives the value carried by the first seed
//     that reaches it along a minimum-length path.
//  4. Composition: the output starts as a copy of the input and only masked
//     pixels are overwritten, one write per finalized pixel.
//
// The frontier is a binary heap with lazy decrease-key: improved distances are
// pushed as new entries and outdated ones are skipped when popped. Entries with
// equal distance leave the heap in push order, so results are deterministic.
//
// Example:
//
//	img := grid.FromSlice([]float64{10, 0, 0, 0, 20}, []int{5}, nil)
//	mask := grid.FromSlice([]uint8{0, 1, 1, 1, 0}, []int{5}, nil)
//	res, err := dissolve.Dissolve(img, grid.MaskOf(mask), 9.0)
//	// res.Output.Data() == [10 10 10 20 20]
package dissolve
