package clutbench

import (
	"fmt"
	"math"

	"github.com/kovidgoyal/clutbench/colorconv"
)

// Difference summarises how far apart two rasters are. Absolute is the sum of
// the absolute per channel deltas, the Max fields hold the largest delta
// seen in each channel.
type Difference struct {
	Absolute         uint64
	MaxR, MaxG, MaxB uint32
}

func (d Difference) String() string {
	return fmt.Sprintf("%d (Rmax %d, Gmax %d, Bmax %d)", d.Absolute, d.MaxR, d.MaxG, d.MaxB)
}

func absdiff(a, b float32) uint32 {
	d := int64(a - b) // truncates towards zero
	if d < 0 {
		d = -d
	}
	return uint32(d)
}

// Compare walks the region shared by a and b and accumulates per channel
// differences. Pixels outside the overlap are ignored.
func Compare(a, b *Raster) (ans Difference) {
	w, h := min(a.width, b.width), min(a.height, b.height)
	for y := range h {
		ra, ga, ba := a.r[y*a.width:], a.g[y*a.width:], a.b[y*a.width:]
		rb, gb, bb := b.r[y*b.width:], b.g[y*b.width:], b.b[y*b.width:]
		for x := range w {
			dr, dg, db := absdiff(ra[x], rb[x]), absdiff(ga[x], gb[x]), absdiff(ba[x], bb[x])
			ans.Absolute += uint64(dr) + uint64(dg) + uint64(db)
			ans.MaxR = max(ans.MaxR, dr)
			ans.MaxG = max(ans.MaxG, dg)
			ans.MaxB = max(ans.MaxB, db)
		}
	}
	return
}

// PerceptualDifference returns the mean and maximum CIE76 colour difference
// over the overlap of a and b, treating samples as sRGB encoded.
func PerceptualDifference(a, b *Raster) (mean, maxDE float64) {
	w, h := min(a.width, b.width), min(a.height, b.height)
	if w == 0 || h == 0 {
		return 0, 0
	}
	const n = 1.0 / MaxValue
	var sum float64
	for y := range h {
		for x := range w {
			ar, ag, ab := a.RGB(x, y)
			br, bg, bb := b.RGB(x, y)
			if ar == br && ag == bg && ab == bb {
				continue
			}
			l1, a1, b1 := colorconv.SRGBToLab_D50(float64(ar)*n, float64(ag)*n, float64(ab)*n)
			l2, a2, b2 := colorconv.SRGBToLab_D50(float64(br)*n, float64(bg)*n, float64(bb)*n)
			de := colorconv.DeltaE76(l1, a1, b1, l2, a2, b2)
			sum += de
			maxDE = math.Max(maxDE, de)
		}
	}
	return sum / float64(w*h), maxDE
}
