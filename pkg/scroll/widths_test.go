package scroll

import (
	"fmt"
	"testing"
)

func TestDistribute(t *testing.T) {
	tests := []struct {
		name   string
		widths []int
		target int
		want   []int
	}{
		{"even overflow", []int{100, 100, 100}, 270, []int{90, 90, 90}},
		{"remainder to leading columns", []int{100, 100, 100}, 271, []int{91, 90, 90}},
		{"two pixel give back", []int{100, 100, 100}, 272, []int{91, 91, 90}},
		{"fits exactly", []int{50, 60}, 110, []int{50, 60}},
		{"fits with room", []int{50, 60}, 200, []int{50, 60}},
		{"single column", []int{40}, 33, []int{33}},
		{"empty", nil, 10, []int{}},
		{"overflow smaller than columns", []int{10, 10, 10, 10}, 39, []int{10, 10, 10, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distribute(tt.widths, tt.target)
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Errorf("Distribute(%v, %d) = %v, want %v", tt.widths, tt.target, got, tt.want)
			}
		})
	}
}

func TestDistributeInvariants(t *testing.T) {
	vectors := [][]int{
		{100, 100, 100},
		{7, 13, 2, 41, 9},
		{1, 1},
		{250, 3, 88, 17, 17, 64, 5},
	}
	for _, v := range vectors {
		total := sum(v)
		for target := 0; target <= total+3; target++ {
			got := Distribute(v, target)
			if target < total && sum(got) != target {
				t.Fatalf("Distribute(%v, %d) sums to %d", v, target, sum(got))
			}
			if target >= total && sum(got) != total {
				t.Fatalf("Distribute(%v, %d) changed a fitting vector: %v", v, target, got)
			}
			for i := range got {
				if got[i] > v[i] {
					t.Fatalf("Distribute(%v, %d)[%d] = %d grew past %d", v, target, i, got[i], v[i])
				}
			}
		}
	}
}

func TestDistributeDoesNotMutateInput(t *testing.T) {
	in := []int{100, 100, 100}
	Distribute(in, 200)
	if fmt.Sprint(in) != "[100 100 100]" {
		t.Errorf("input mutated: %v", in)
	}
}

func TestSpanWidths(t *testing.T) {
	tests := []struct {
		name   string
		spans  []int
		widths []int
		want   []int
	}{
		{"one to one", []int{1, 1, 1}, []int{5, 3, 5}, []int{5, 3, 5}},
		{"colspan two", []int{2}, []int{50, 60}, []int{110}},
		{"mixed", []int{2, 1}, []int{5, 3, 5}, []int{8, 5}},
		{"extra cells get nothing", []int{1, 1, 1}, []int{4, 4}, []int{4, 4}},
		{"span past the end", []int{1, 3}, []int{4, 4, 4}, []int{4, 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SpanWidths(tt.spans, tt.widths)
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Errorf("SpanWidths(%v, %v) = %v, want %v", tt.spans, tt.widths, got, tt.want)
			}
		})
	}
}
