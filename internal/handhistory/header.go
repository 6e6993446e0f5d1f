package handhistory

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/coder/quartz"
)

const timestampLayout = "2006/01/02 15:04:05"

var (
	handIDRe     = regexp.MustCompile(`(?:Poker Hand #)?([A-Za-z0-9-]+):`)
	timestampRe  = regexp.MustCompile(`(\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2})`)
	tableNameRe  = regexp.MustCompile(`Table '([^']+)'`)
	maxSeatsRe   = regexp.MustCompile(`(\d+)-max`)
	stakesRe     = regexp.MustCompile(`\(\$([\d.]+)/\$([\d.]+)\)`)
	buttonSeatRe = regexp.MustCompile(`(?i)Seat #(\d+) is the button`)
)

// sitePatterns maps a site label to the text that identifies it. Checked in
// order; the first match wins.
var sitePatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"PokerStars", regexp.MustCompile(`(?i)PokerStars`)},
	{"888poker", regexp.MustCompile(`(?i)888poker|888 Poker`)},
	{"ACR", regexp.MustCompile(`(?i)Americas Cardroom|ACR`)},
	{"GGPoker", regexp.MustCompile(`(?i)GGPoker|GG Poker`)},
	{"PartyPoker", regexp.MustCompile(`(?i)PartyPoker|Party Poker`)},
	{"Winamax", regexp.MustCompile(`(?i)Winamax`)},
	{"Unibet", regexp.MustCompile(`(?i)Unibet`)},
	{"Bet365", regexp.MustCompile(`(?i)Bet365`)},
	{"William Hill", regexp.MustCompile(`(?i)William Hill`)},
}

// extractHandID pulls the hand's alphanumeric/dash id. Segments arrive with
// their leading "Poker Hand #" marker already stripped, so the bare form at
// the start of the first line is accepted too.
func extractHandID(text string) string {
	firstLine := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		firstLine = text[:i]
	}
	if m := handIDRe.FindStringSubmatch(firstLine); m != nil {
		return m[1]
	}
	return ""
}

// extractTimestamp parses the fixed YYYY/MM/DD HH:MM:SS pattern, falling
// back to the current wall-clock time if absent. The fallback is a
// deliberate default, not a failure.
func extractTimestamp(text string, clock quartz.Clock) time.Time {
	if m := timestampRe.FindStringSubmatch(text); m != nil {
		if ts, err := time.Parse(timestampLayout, m[1]); err == nil {
			return ts
		}
	}
	return clock.Now()
}

func extractTableName(text string) string {
	if m := tableNameRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// extractMaxSeats reads the table size from markers like "6-max".
// Defaults to 6 when absent.
func extractMaxSeats(text string) int {
	if m := maxSeatsRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n
		}
	}
	return 6
}

// extractStakes reads the ($X/$Y) blind pair. Both values default to zero
// when the pattern is absent.
func extractStakes(text string) (smallBlind, bigBlind float64) {
	if m := stakesRe.FindStringSubmatch(text); m != nil {
		smallBlind, _ = strconv.ParseFloat(m[1], 64)
		bigBlind, _ = strconv.ParseFloat(m[2], 64)
	}
	return smallBlind, bigBlind
}

func extractButtonSeat(text string) int {
	if m := buttonSeatRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return 1
}

func extractSite(text string) string {
	for _, sp := range sitePatterns {
		if sp.re.MatchString(text) {
			return sp.name
		}
	}
	return "Unknown"
}
