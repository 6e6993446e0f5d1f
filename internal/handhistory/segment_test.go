package handhistory

import "testing"

func TestSplitHands(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "empty input", input: "", want: 0},
		{name: "no marker", input: "just some text\nwith lines\n", want: 0},
		{name: "single hand", input: "Poker Hand #RC1: Hold'em\nSeat 1: A ($1.00 in chips)\n", want: 1},
		{
			name: "multiple hands",
			input: "Poker Hand #RC1: Hold'em\nbody one\n\n" +
				"Poker Hand #RC2: Hold'em\nbody two\n\n" +
				"Poker Hand #RC3: Hold'em\nbody three\n",
			want: 3,
		},
		{
			name:  "leading junk discarded",
			input: "export header line\n\nPoker Hand #RC9: Hold'em\nbody\n",
			want:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitHands(tt.input)
			if len(got) != tt.want {
				t.Errorf("SplitHands() returned %d segments, want %d", len(got), tt.want)
			}
			for i, seg := range got {
				if seg == "" {
					t.Errorf("segment %d is empty", i)
				}
			}
		})
	}
}

func TestSplitHandsStripsMarker(t *testing.T) {
	segments := SplitHands("Poker Hand #RC42: Hold'em No Limit\nSeat 1: A ($1.00 in chips)\n")
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if got := extractHandID(segments[0]); got != "RC42" {
		t.Errorf("extractHandID() = %q, want %q", got, "RC42")
	}
}
