package domain

import "testing"

func TestTotalPagesFor(t *testing.T) {
	cases := []struct {
		items, pageSize, want int
	}{
		{23, 10, 3},
		{20, 10, 2},
		{1, 10, 1},
		{0, 10, 1},
		{5, 0, 1},
	}
	for _, tc := range cases {
		if got := TotalPagesFor(tc.items, tc.pageSize); got != tc.want {
			t.Fatalf("TotalPagesFor(%d, %d): expected %d, got %d", tc.items, tc.pageSize, tc.want, got)
		}
	}
}

func TestHistoryQueryNormalized(t *testing.T) {
	q := HistoryQuery{Page: 0, PageSize: -5}.Normalized()
	if q.Page != 1 || q.PageSize != 20 {
		t.Fatalf("unexpected normalization: %+v", q)
	}

	q = HistoryQuery{Page: 3, PageSize: 50}.Normalized()
	if q.Page != 3 || q.PageSize != 50 {
		t.Fatalf("explicit values must survive: %+v", q)
	}
}

func TestActorIsZero(t *testing.T) {
	if !(Actor{}).IsZero() {
		t.Fatalf("empty actor must be zero")
	}
	if (Actor{IP: "10.0.0.1"}).IsZero() {
		t.Fatalf("actor with an IP is not zero")
	}
}
