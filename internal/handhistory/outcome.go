package handhistory

import (
	"regexp"
	"strings"

	"github.com/lukefish591/cardsharpner/internal/deck"
)

var (
	showsRe       = regexp.MustCompile(`([^:]+): shows \[([^\]]+)\] \(([^)]+)\)`)
	summaryShowRe = regexp.MustCompile(`Seat \d+: ([^(\[]+?) (?:\([^)]+\) )?showed \[([^\]]+)\]`)
	wonSeatRe     = regexp.MustCompile(`Seat \d+: ([^(]+?) .*? won \(\$([\d,.]+)\)(?: with (.+))?`)
	wonBareRe     = regexp.MustCompile(`(.+?) won \(\$([\d,.]+)\)`)
	totalPotRe    = regexp.MustCompile(`Total pot \$([\d,.]+)`)
	// Summary fee line: "Total pot $X | Rake $Y | Jackpot $Z | Bingo $A | Fortune $B | Tax $C"
	// with every section after Rake optional.
	summaryFeesRe = regexp.MustCompile(`(?i)Total pot\s*\$([\d,.]+)\s*\|\s*Rake\s*\$([\d,.]+)(?:\s*\|\s*Jackpot\s*\$([\d,.]+))?(?:\s*\|\s*Bingo\s*\$([\d,.]+))?(?:\s*\|\s*Fortune\s*\$([\d,.]+))?(?:\s*\|\s*Tax\s*\$([\d,.]+))?`)
	rakeRe        = regexp.MustCompile(`(?i)Rake \$([\d,.]+)`)
	jackpotRe     = regexp.MustCompile(`(?i)Jackpot \$([\d,.]+)`)
)

// extractOutcome fills the summary-derived fields of a HandRecord: pot,
// fees, winner, and the set of players whose hole cards were revealed.
// Every field defaults rather than failing; a hand with no summary section
// simply keeps zero values.
func extractOutcome(text string, rec *HandRecord) {
	extractPotAndFees(text, rec)
	extractShowdown(text, rec)
	extractWinner(text, rec)
}

func extractPotAndFees(text string, rec *HandRecord) {
	if m := summaryFeesRe.FindStringSubmatch(text); m != nil {
		rec.FinalPot = parseAmount(m[1])
		rec.Rake = parseAmount(m[2])
		rec.Jackpot = optionalAmount(m[3])
		rec.TotalFees = rec.Rake + rec.Jackpot + optionalAmount(m[4]) + optionalAmount(m[5]) + optionalAmount(m[6])
		return
	}

	if m := totalPotRe.FindStringSubmatch(text); m != nil {
		rec.FinalPot = parseAmount(m[1])
	}
	if m := rakeRe.FindStringSubmatch(text); m != nil {
		rec.Rake = parseAmount(m[1])
	}
	if m := jackpotRe.FindStringSubmatch(text); m != nil {
		rec.Jackpot = parseAmount(m[1])
	}
	rec.TotalFees = rec.Rake + rec.Jackpot
}

// extractShowdown records whether the hand reached showdown and which
// players revealed cards, in the showdown section ("name: shows [..]") and
// the summary ("Seat N: name showed [..]"). Revealed cards are attached to
// the roster face-up.
func extractShowdown(text string, rec *HandRecord) {
	if i := strings.Index(text, "*** SHOWDOWN ***"); i >= 0 {
		rec.SawShowdown = true
		for _, line := range strings.Split(text[i:], "\n") {
			if !strings.Contains(line, "shows") || !strings.Contains(line, "with") {
				continue
			}
			m := showsRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			name := strings.TrimSpace(m[1])
			rec.addShownPlayer(name, m[2])
			if rec.Winner == "" {
				rec.Winner = name
				rec.WinningHand = strings.TrimSpace(m[3])
			}
		}
	}

	if i := strings.Index(text, "*** SUMMARY ***"); i >= 0 {
		for _, line := range strings.Split(text[i:], "\n") {
			m := summaryShowRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			rec.addShownPlayer(strings.TrimSpace(m[1]), m[2])
		}
	}
}

// extractWinner scans summary lines containing "won" and a dollar amount.
// The richer seat-line pattern is tried first, then a bare name pattern.
// No match leaves the winner from the showdown scan, possibly empty.
func extractWinner(text string, rec *HandRecord) {
	i := strings.Index(text, "*** SUMMARY ***")
	if i < 0 {
		return
	}
	for _, line := range strings.Split(text[i:], "\n") {
		if !strings.Contains(line, "won") || !strings.Contains(line, "$") {
			continue
		}
		if m := wonSeatRe.FindStringSubmatch(line); m != nil {
			rec.Winner = strings.TrimSpace(m[1])
			rec.WinAmount = parseAmount(m[2])
			if desc := strings.TrimSpace(m[3]); desc != "" {
				rec.WinningHand = desc
			}
			return
		}
		if m := wonBareRe.FindStringSubmatch(line); m != nil {
			rec.Winner = strings.TrimSpace(m[1])
			rec.WinAmount = parseAmount(m[2])
			return
		}
	}
}

// addShownPlayer records a showdown reveal and attaches the cards to the
// matching roster entry face-up.
func (h *HandRecord) addShownPlayer(name, cardsText string) {
	for _, p := range h.ShowdownPlayers {
		if p == name {
			return
		}
	}
	h.ShowdownPlayers = append(h.ShowdownPlayers, name)

	cards, err := deck.ParseCards(cardsText)
	if err != nil || len(cards) == 0 {
		return
	}
	for i := range h.Players {
		if h.Players[i].Name == name {
			h.Players[i].HoleCards = cards
			h.Players[i].CardsVisible = true
			return
		}
	}
}

func optionalAmount(s string) float64 {
	if s == "" {
		return 0
	}
	return parseAmount(s)
}
