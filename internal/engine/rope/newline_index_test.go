package rope

import (
	"strings"
	"testing"
)

func TestNewlineIndexEmpty(t *testing.T) {
	idx := ComputeNewlineIndex("")
	if idx.Count() != 0 {
		t.Errorf("expected count 0, got %d", idx.Count())
	}
	if pos := idx.Position(0); pos != -1 {
		t.Errorf("expected position -1, got %d", pos)
	}
	if n := idx.CountBefore(10); n != 0 {
		t.Errorf("expected 0 newlines before 10, got %d", n)
	}
}

func TestNewlineIndexInline(t *testing.T) {
	idx := ComputeNewlineIndex("a\nb\nc\nd\ne")
	if idx.Count() != 4 {
		t.Fatalf("expected count 4, got %d", idx.Count())
	}
	if idx.positions != nil {
		t.Error("expected inline storage for 4 newlines")
	}

	expected := []int{1, 3, 5, 7}
	for i, exp := range expected {
		if pos := idx.Position(uint32(i)); pos != exp {
			t.Errorf("Position(%d) = %d, want %d", i, pos, exp)
		}
	}
}

func TestNewlineIndexHeap(t *testing.T) {
	s := strings.Repeat("x\n", 100)
	idx := ComputeNewlineIndex(s)
	if idx.Count() != 100 {
		t.Fatalf("expected count 100, got %d", idx.Count())
	}
	for i := uint32(0); i < 100; i++ {
		if pos := idx.Position(i); pos != int(2*i+1) {
			t.Errorf("Position(%d) = %d, want %d", i, pos, 2*i+1)
		}
	}
}

func TestNewlineIndexAllNewlines(t *testing.T) {
	s := strings.Repeat("\n", MaxChunkSize)
	idx := ComputeNewlineIndex(s)
	if idx.Count() != MaxChunkSize {
		t.Errorf("expected count %d, got %d", MaxChunkSize, idx.Count())
	}
}

func TestNewlineIndexSearchLine(t *testing.T) {
	idx := ComputeNewlineIndex("abc\ndef\nghi")

	tests := []struct {
		line uint32
		want int
	}{
		{0, 0},
		{1, 4},
		{2, 8},
		{3, -1},
	}
	for _, tt := range tests {
		if got := idx.SearchLine(tt.line); got != tt.want {
			t.Errorf("SearchLine(%d) = %d, want %d", tt.line, got, tt.want)
		}
	}
}

func TestNewlineIndexCountBefore(t *testing.T) {
	s := "ab\ncd\n\nef\ngh\nij"
	idx := ComputeNewlineIndex(s)

	for off := 0; off <= len(s); off++ {
		want := uint32(strings.Count(s[:off], "\n"))
		if got := idx.CountBefore(off); got != want {
			t.Errorf("CountBefore(%d) = %d, want %d", off, got, want)
		}
	}
}
