package cursor

import "testing"

func TestLeft(t *testing.T) {
	d := doc("ab\ncd")

	tests := []struct {
		name     string
		in, want Cursor
	}{
		{"within line", Cursor{1, 2}, Cursor{1, 1}},
		{"wraps to previous line end", Cursor{1, 0}, Cursor{0, 2}},
		{"document start is a no-op", Cursor{0, 0}, Cursor{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Left(d); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRight(t *testing.T) {
	d := doc("ab\ncd")

	tests := []struct {
		name     string
		in, want Cursor
	}{
		{"within line", Cursor{0, 0}, Cursor{0, 1}},
		{"onto terminator", Cursor{0, 1}, Cursor{0, 2}},
		{"wraps to next line", Cursor{0, 2}, Cursor{1, 0}},
		{"to end of document", Cursor{1, 1}, Cursor{1, 2}},
		{"document end is a no-op", Cursor{1, 2}, Cursor{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Right(d); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRightAtEndOfSingleLine(t *testing.T) {
	d := doc("ab")
	c := Cursor{0, 2}.Right(d)
	if c != (Cursor{0, 2}) {
		t.Errorf("expected cursor to stay at 0:2, got %v", c)
	}
}

func TestDown(t *testing.T) {
	d := doc("a\nb")
	c := Cursor{0, 0}.Down(d)
	if c != (Cursor{1, 0}) {
		t.Fatalf("expected 1:0, got %v", c)
	}
	if c2 := c.Down(d); c2 != c {
		t.Errorf("Down on last line should be a no-op, got %v", c2)
	}
}

func TestUpAtTopIsNoop(t *testing.T) {
	d := doc("abc\nd")
	c := Cursor{0, 2}
	if got := c.Up(d); got != c {
		t.Errorf("expected %v, got %v", c, got)
	}
}

func TestVerticalMovementDoesNotRememberColumn(t *testing.T) {
	d := doc("long line\nab\nlong line")

	c := Cursor{0, 7}.Down(d)
	if c != (Cursor{1, 2}) {
		t.Fatalf("expected snap to 1:2, got %v", c)
	}
	c = c.Down(d)
	if c != (Cursor{2, 2}) {
		t.Errorf("expected column to stay snapped at 2, got %v", c)
	}
}

func TestMovementClampsStaleCursor(t *testing.T) {
	d := doc("ab")
	if got := (Cursor{5, 9}).Left(d); got != (Cursor{0, 1}) {
		t.Errorf("expected 0:1 from stale cursor, got %v", got)
	}
	if got := (Cursor{5, 9}).Up(d); got != (Cursor{0, 2}) {
		t.Errorf("expected 0:2 from stale cursor, got %v", got)
	}
}
