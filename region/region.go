// Package region decomposes an axis-aligned read window into per-tile
// fetch plans: which tile to fetch, what crop box to take from it, and
// where to paste the crop into the destination image.
package region

// Box is a crop rectangle in tile-local pixel coordinates,
// left/top inclusive, right/bottom exclusive. A Box with Full set to
// true means the entire tile is used, with no cropping.
type Box struct {
	Left, Top, Right, Bottom uint64
	Full                     bool
}

// Point is a destination-image pixel coordinate.
type Point struct {
	X, Y uint64
}

// Plan is one tile fetch: the tile's grid index, the crop box to take
// from it, and where to paste that crop in the destination image.
type Plan struct {
	TileX, TileY uint64
	Crop         Box
	Paste        Point
}

// divmod is floored Euclidean division: for non-negative a and positive
// b (the only case that arises here, since both are pixel coordinates)
// this is ordinary integer division and remainder.
func divmod(a, b uint64) (q, r uint64) {
	return a / b, a % b
}

// PlanRegion decomposes the window (x0, y0)-(x1, y1) — x0<=x1<=level width,
// y0<=y1<=level height — against a tile grid of size tw x th into an
// ordered list of tile fetches, row-major with j (tile row) outer and i
// (tile column) inner. The union of pasted crop boxes exactly tiles the
// destination rectangle of size (x1-x0, y1-y0), with no overlap or gap.
func PlanRegion(tw, th, x0, y0, x1, y1 uint64) []Plan {
	i0, dx0 := divmod(x0, tw)
	i1, dx1 := divmod(x1, tw)
	j0, dy0 := divmod(y0, th)
	j1, dy1 := divmod(y1, th)

	iMax := i1
	if dx1 != 0 {
		iMax++
	}
	jMax := j1
	if dy1 != 0 {
		jMax++
	}

	var plans []Plan
	for j := j0; j < jMax; j++ {
		for i := i0; i < iMax; i++ {
			interior := i0 < i && i < i1 && j0 < j && j < j1
			var crop Box
			if interior {
				crop = Box{Full: true}
			} else {
				left := uint64(0)
				if i == i0 {
					left = dx0
				}
				right := tw
				if i == i1 {
					right = dx1
				}
				top := uint64(0)
				if j == j0 {
					top = dy0
				}
				bottom := th
				if j == j1 {
					bottom = dy1
				}
				crop = Box{Left: left, Top: top, Right: right, Bottom: bottom}
			}

			var px, py uint64
			if i != i0 {
				px = tw*(i-i0) - dx0
			}
			if j != j0 {
				py = th*(j-j0) - dy0
			}

			plans = append(plans, Plan{
				TileX: i, TileY: j,
				Crop:  crop,
				Paste: Point{X: px, Y: py},
			})
		}
	}
	return plans
}
