package hiring

import "testing"

func TestSnapshotRate(t *testing.T) {
	cases := []struct {
		name string
		snap Snapshot
		want int
	}{
		{"no applications", Snapshot{Hired: 0, Total: 0}, 0},
		{"none hired", Snapshot{Hired: 0, Total: 4}, 0},
		{"single hired", Snapshot{Hired: 1, Total: 1}, 100},
		{"two of three", Snapshot{Hired: 2, Total: 3}, 67},
		{"one of three", Snapshot{Hired: 1, Total: 3}, 33},
		{"half", Snapshot{Hired: 1, Total: 2}, 50},
		{"exact half-up boundary", Snapshot{Hired: 1, Total: 8}, 13},
		{"one of two hundred", Snapshot{Hired: 1, Total: 200}, 1},
		{"one of two hundred one", Snapshot{Hired: 1, Total: 201}, 0},
		{"hired exceeds total", Snapshot{Hired: 5, Total: 3}, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.snap.Rate(); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestGrowth(t *testing.T) {
	cases := []struct {
		current, previous, want int
	}{
		{0, 0, 0},
		{5, 0, 100},
		{10, 10, 0},
		{15, 10, 50},
		{5, 10, -50},
		{3, 8, -62},
		{11, 8, 38},
	}
	for _, tc := range cases {
		if got := Growth(tc.current, tc.previous); got != tc.want {
			t.Fatalf("Growth(%d, %d): expected %d, got %d", tc.current, tc.previous, tc.want, got)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(3, 4); got != 75 {
		t.Fatalf("expected 75, got %d", got)
	}
	if got := Percent(1, 0); got != 0 {
		t.Fatalf("expected 0 for empty whole, got %d", got)
	}
}
