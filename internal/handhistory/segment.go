package handhistory

import "strings"

// handStartMarker begins every hand in supported site formats.
const handStartMarker = "Poker Hand #"

// SplitHands splits a raw multi-hand blob into individual hand-text
// segments. Each segment has its leading marker token stripped; downstream
// extraction tolerates that. Text before the first marker is discarded, and
// a blob with no marker yields zero segments.
func SplitHands(text string) []string {
	parts := strings.Split(text, handStartMarker)
	if len(parts) <= 1 {
		return nil
	}

	segments := make([]string, 0, len(parts)-1)
	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}
