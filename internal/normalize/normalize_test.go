package normalize

import (
	"reflect"
	"testing"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "comma and conjunction mix",
			in:   "A, B i C",
			want: []string{"A", "B", "C"},
		},
		{
			name: "only separators",
			in:   "  , , ",
			want: nil,
		},
		{
			name: "no separators",
			in:   "mlijeko",
			want: []string{"mlijeko"},
		},
		{
			name: "corrections applied",
			in:   "mljeko i kruč",
			want: []string{"mlijeko", "kruh"},
		},
		{
			name: "conjunction not matched inside words",
			in:   "kivi, sir i vino",
			want: []string{"kivi", "sir", "vino"},
		},
		{
			name: "case-insensitive conjunction",
			in:   "jaja I maslac",
			want: []string{"jaja", "maslac"},
		},
		{
			name: "multi-word names survive",
			in:   "maslinovo ulje i toalet papir",
			want: []string{"maslinovo ulje", "toalet papir"},
		},
		{
			name: "whitespace around commas",
			in:   " kruh ,  mlijeko ,jaja",
			want: []string{"kruh", "mlijeko", "jaja"},
		},
		{
			name: "correction is case-insensitive",
			in:   "Mljeko",
			want: []string{"mlijeko"},
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
		{
			name: "leading conjunction dropped",
			in:   "i kruh",
			want: []string{"kruh"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segment(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Segment(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSegmentRestartable(t *testing.T) {
	// No hidden state: same input, same output, every time.
	for i := 0; i < 3; i++ {
		got := Segment("mljeko i kruč")
		if len(got) != 2 || got[0] != "mlijeko" || got[1] != "kruh" {
			t.Fatalf("run %d: got %#v", i, got)
		}
	}
}
