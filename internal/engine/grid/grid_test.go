package grid

import "testing"

func TestWrapToroidal(t *testing.T) {
	g := New(8)
	g.Set(3, 5, 7)

	cases := []struct {
		x, y int
	}{
		{3, 5},
		{3 + 8, 5},
		{3 - 8, 5},
		{3, 5 + 8},
		{3 - 16, 5 - 24},
		{3 + 80, 5 + 80},
	}
	for _, c := range cases {
		if got := g.Wrap(c.x, c.y); got != 7 {
			t.Errorf("Wrap(%d, %d) = %d, want 7", c.x, c.y, got)
		}
	}
}

func TestWrapMatchesModulo(t *testing.T) {
	g := New(5)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			g.Set(x, y, byte(y*5+x))
		}
	}

	mod := func(c int) int {
		c %= 5
		if c < 0 {
			c += 5
		}
		return c
	}
	for y := -12; y <= 12; y++ {
		for x := -12; x <= 12; x++ {
			want := g.Wrap(mod(x), mod(y))
			if got := g.Wrap(x, y); got != want {
				t.Fatalf("Wrap(%d, %d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestAtOutOfBounds(t *testing.T) {
	g := New(4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			g.Set(x, y, 9)
		}
	}

	outside := []struct{ x, y int }{
		{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {-10, -10}, {100, 100},
	}
	for _, c := range outside {
		if got := g.At(c.x, c.y); got != 0 {
			t.Errorf("At(%d, %d) = %d, want 0", c.x, c.y, got)
		}
	}
	if got := g.At(2, 2); got != 9 {
		t.Errorf("At(2, 2) = %d, want 9", got)
	}
}

func TestSetWraps(t *testing.T) {
	g := New(4)
	g.Set(-1, 0, 3)
	if got := g.At(3, 0); got != 3 {
		t.Errorf("Set(-1, 0) should wrap to (3, 0), got %d there", got)
	}
}

func TestEqual(t *testing.T) {
	a := New(3)
	b := New(3)
	if !a.Equal(b) {
		t.Error("zeroed grids should be equal")
	}
	b.Set(1, 1, 1)
	if a.Equal(b) {
		t.Error("grids with different contents should not be equal")
	}
	if a.Equal(New(4)) {
		t.Error("grids with different sides should not be equal")
	}
}
