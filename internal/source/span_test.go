package source

import "testing"

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", Span{File: 1, Start: 2, End: 4}, Span{File: 1, Start: 8, End: 10}, Span{File: 1, Start: 2, End: 10}},
		{"nested", Span{File: 1, Start: 0, End: 10}, Span{File: 1, Start: 3, End: 4}, Span{File: 1, Start: 0, End: 10}},
		{"reversed", Span{File: 1, Start: 8, End: 10}, Span{File: 1, Start: 2, End: 4}, Span{File: 1, Start: 2, End: 10}},
		{"other file", Span{File: 1, Start: 2, End: 4}, Span{File: 2, Start: 0, End: 10}, Span{File: 1, Start: 2, End: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Fatalf("Cover() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanBasics(t *testing.T) {
	s := Span{File: 3, Start: 5, End: 9}
	if s.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", s.Len())
	}
	if s.Empty() {
		t.Fatal("span should not be empty")
	}
	if !s.Contains(5) || s.Contains(9) {
		t.Fatal("Contains should be half-open")
	}
	if got := s.String(); got != "3:5-9" {
		t.Fatalf("String() = %q", got)
	}
}
