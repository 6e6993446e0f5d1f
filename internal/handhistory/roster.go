package handhistory

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/lukefish591/cardsharpner/internal/deck"
)

var (
	seatLineRe = regexp.MustCompile(`^Seat (\d+): (.+?) \(\$([\d,.]+) in chips\)`)
	dealtToRe  = regexp.MustCompile(`^Dealt to (.+?)\s*\[([^\]]+)\]`)
)

// Position label sequences. Tables with six or fewer players use the short
// set, larger tables the nine-handed set.
var (
	sixMaxPositions  = []string{"Button", "Small Blind", "Big Blind", "UTG", "Hijack", "Cutoff"}
	nineMaxPositions = []string{"Button", "SB", "BB", "UTG", "UTG+1", "MP", "MP+1", "HJ", "CO"}
)

// extractPlayers builds the roster from "Seat N: name ($X in chips)" lines
// in file order, sorted by seat number. The hero is identified by a literal
// name match against the configured marker.
func extractPlayers(text, hero string) []PlayerSeat {
	var players []PlayerSeat
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		m := seatLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		seat, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		name := strings.TrimSpace(m[2])
		stack := parseAmount(m[3])
		players = append(players, PlayerSeat{
			Seat:          seat,
			Name:          name,
			StartingStack: stack,
			IsHero:        name == hero,
		})
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Seat < players[j].Seat })
	return players
}

// assignPositions labels every player relative to the button. The label
// index is (seat - button_seat) mod player_count, clamped to the last label
// when the offset runs past the sequence. The clamp can mis-assign labels
// on 7-8 handed tables; it is retained for parity with existing consumers
// of the position column.
func assignPositions(players []PlayerSeat, buttonSeat int) {
	if len(players) == 0 {
		return
	}
	labels := sixMaxPositions
	if len(players) > 6 {
		labels = nineMaxPositions
	}
	for i := range players {
		offset := ((players[i].Seat-buttonSeat)%len(players) + len(players)) % len(players)
		if offset >= len(labels) {
			offset = len(labels) - 1
		}
		players[i].Position = labels[offset]
	}
}

// attachHoleCards scans "Dealt to <name> [<cards>]" lines and attaches the
// cards to the matching roster entry. Cards are marked visible only for the
// hero; a site that logs opponents' deals keeps them hidden in replay.
func attachHoleCards(text string, players []PlayerSeat) {
	for _, line := range strings.Split(text, "\n") {
		m := dealtToRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		cards, err := deck.ParseCards(m[2])
		if err != nil || len(cards) == 0 {
			continue
		}
		for i := range players {
			if players[i].Name == name {
				players[i].HoleCards = cards
				players[i].CardsVisible = players[i].IsHero
				break
			}
		}
	}
}

// parseAmount converts a dollar figure like "1,234.56" to a float. Returns
// zero on malformed input.
func parseAmount(s string) float64 {
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
