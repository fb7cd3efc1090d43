package baf

import (
	"errors"
	"testing"
)

func collectZones(c *coverage) []span {
	var out []span

	for z := range c.freeZones() {
		out = append(out, z)
	}

	return out
}

func Test_Coverage_FreeZones_Are_The_Gaps_Between_Used_Ranges(t *testing.T) {
	t.Parallel()

	c := newCoverage(100)

	mustMark := func(start, length uint64) {
		t.Helper()

		if err := c.markUsed(start, length); err != nil {
			t.Fatalf("markUsed(%d, %d): %v", start, length, err)
		}
	}

	mustMark(0, 10)
	mustMark(30, 20)
	mustMark(50, 10) // adjacent to previous, no gap between them

	want := []span{
		{start: 10, length: 20},
		{start: 60, length: 40},
	}

	got := collectZones(&c)

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("zone %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func Test_Coverage_MarkUsed_Rejects_Overlap(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name          string
		start, length uint64
	}{
		{name: "overlaps tail of previous", start: 15, length: 10},
		{name: "overlaps head of next", start: 5, length: 10},
		{name: "exact duplicate", start: 10, length: 10},
		{name: "contained in existing", start: 12, length: 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := newCoverage(100)

			if err := c.markUsed(10, 10); err != nil {
				t.Fatal(err)
			}

			err := c.markUsed(tc.start, tc.length)
			if !errors.Is(err, ErrCorrupt) {
				t.Fatalf("markUsed(%d, %d) = %v, want ErrCorrupt", tc.start, tc.length, err)
			}
		})
	}
}

func Test_Coverage_MarkFree_Requires_Exact_Match(t *testing.T) {
	t.Parallel()

	c := newCoverage(100)

	if err := c.markUsed(10, 10); err != nil {
		t.Fatal(err)
	}

	if err := c.markFree(10, 5); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("partial free = %v, want ErrCorrupt", err)
	}

	if err := c.markFree(10, 10); err != nil {
		t.Fatalf("exact free: %v", err)
	}

	if got := len(c.spans); got != 0 {
		t.Fatalf("spans remaining after free: %d", got)
	}
}

func Test_Coverage_BestFit_Picks_Smallest_Zone_Lowest_Address_First(t *testing.T) {
	t.Parallel()

	c := newCoverage(200)

	for _, s := range []span{{0, 10}, {20, 10}, {45, 10}, {70, 10}, {95, 10}} {
		if err := c.markUsed(s.start, s.length); err != nil {
			t.Fatal(err)
		}
	}

	// Gaps: [10,20) len 10, [30,45) len 15, [55,70) len 15, [80,95) len 15,
	// [105,200) len 95.
	cases := []struct {
		capacity  uint64
		wantStart uint64
		wantFound bool
	}{
		{capacity: 5, wantStart: 10, wantFound: true},  // smallest zone wins
		{capacity: 12, wantStart: 30, wantFound: true}, // tie on 15 broken by address
		{capacity: 50, wantStart: 105, wantFound: true},
		{capacity: 1000, wantFound: false},
		{capacity: 0, wantStart: 10, wantFound: true},
	}

	for _, tc := range cases {
		z, found := c.bestFit(tc.capacity)
		if found != tc.wantFound {
			t.Fatalf("bestFit(%d) found = %v, want %v", tc.capacity, found, tc.wantFound)
		}

		if found && z.start != tc.wantStart {
			t.Fatalf("bestFit(%d) start = %d, want %d", tc.capacity, z.start, tc.wantStart)
		}
	}
}

func Test_Coverage_NextWritableAddr_Is_One_Past_Highest_Used_Byte(t *testing.T) {
	t.Parallel()

	c := newCoverage(0)

	if got := c.nextWritableAddr(); got != 0 {
		t.Fatalf("empty coverage: got %d, want 0", got)
	}

	c.growTo(100)

	if err := c.markUsed(40, 20); err != nil {
		t.Fatal(err)
	}

	if got := c.nextWritableAddr(); got != 60 {
		t.Fatalf("got %d, want 60", got)
	}
}

func Test_Coverage_Zero_Length_Ranges_Are_Ignored(t *testing.T) {
	t.Parallel()

	c := newCoverage(10)

	if err := c.markUsed(5, 0); err != nil {
		t.Fatal(err)
	}

	if len(c.spans) != 0 {
		t.Fatal("zero-length markUsed inserted a span")
	}

	if err := c.markFree(5, 0); err != nil {
		t.Fatal(err)
	}
}

func Test_Coverage_GrowTo_Panics_On_Shrink(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()

	c := newCoverage(10)
	c.growTo(5)
}
