package source

import "testing"

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", Span{Start: 2, End: 4}, Span{Start: 8, End: 9}, Span{Start: 2, End: 9}},
		{"nested", Span{Start: 2, End: 10}, Span{Start: 4, End: 5}, Span{Start: 2, End: 10}},
		{"empty other", Span{Start: 2, End: 4}, Span{}, Span{Start: 2, End: 4}},
		{"empty self", Span{}, Span{Start: 3, End: 7}, Span{Start: 3, End: 7}},
		{"other file", Span{File: 1, Start: 2, End: 4}, Span{File: 2, Start: 0, End: 9}, Span{File: 1, Start: 2, End: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Fatalf("Cover = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanContains(t *testing.T) {
	outer := Span{Start: 0, End: 10}
	if !outer.Contains(Span{Start: 3, End: 10}) {
		t.Fatal("expected containment")
	}
	if outer.Contains(Span{Start: 3, End: 11}) {
		t.Fatal("unexpected containment")
	}
}
