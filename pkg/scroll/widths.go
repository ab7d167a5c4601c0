package scroll

// Distribute shrinks a column-width vector so it sums exactly to target.
//
// When the vector already fits (sum <= target) a copy is returned unchanged.
// Otherwise every column loses ceil(overflow/n) and the first
// n*ceil(overflow/n) - overflow columns get one back, so the result sums to
// target, no column grows, and rounding is confined to a leading prefix:
//
//	Distribute([]int{100, 100, 100}, 270) // [90 90 90]
//	Distribute([]int{100, 100, 100}, 271) // [91 90 90]
func Distribute(widths []int, target int) []int {
	out := make([]int, len(widths))
	copy(out, widths)

	n := len(out)
	if n == 0 {
		return out
	}
	over := sum(out) - target
	if over <= 0 {
		return out
	}

	minus := (over + n - 1) / n
	giveBack := minus*n - over
	for i := range out {
		out[i] -= minus
		if i < giveBack {
			out[i]++
		}
	}
	return out
}

// SpanWidths maps a column-width vector onto a row whose cells span the given
// numbers of columns. Cells consume the vector left to right; a cell spanning
// k columns gets the sum of the next k entries. Cells that start past the end
// of the vector get no entry, so the result may be shorter than spans.
func SpanWidths(spans []int, widths []int) []int {
	var out []int
	i := 0
	for _, span := range spans {
		if i >= len(widths) {
			break
		}
		w := 0
		for j := 0; j < span && i < len(widths); j++ {
			w += widths[i]
			i++
		}
		out = append(out, w)
	}
	return out
}

func sum(v []int) int {
	n := 0
	for _, x := range v {
		n += x
	}
	return n
}
