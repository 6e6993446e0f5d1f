package handhistory

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/coder/quartz"
)

// cbetHand is a three-handed hand where the hero raises preflop and
// continuation-bets the flop to win without showdown.
const cbetHand = `Poker Hand #RC1216293178: Hold'em No Limit ($0.02/$0.05) - 2023/03/01 20:59:55
Table 'GoldDust3' 6-max Seat #3 is the button
Seat 1: VillainA ($5.00 in chips)
Seat 2: VillainB ($5.12 in chips)
Seat 3: Hero ($6.30 in chips)
VillainA: posts small blind $0.02
VillainB: posts big blind $0.05
*** HOLE CARDS ***
Dealt to Hero [Ah Kh]
Hero: raises $0.15 to $0.20
VillainA: folds
VillainB: calls $0.15
*** FLOP *** [7c 2d Qs]
VillainB: checks
Hero: bets $0.25
VillainB: folds
Hero collected $0.47 from pot
*** SUMMARY ***
Total pot $0.47 | Rake $0.02
Seat 3: Hero (button) collected ($0.47)
`

// showdownHand reaches showdown with both players showing cards.
const showdownHand = `Poker Hand #RC2222222222: Hold'em No Limit ($0.02/$0.05) - 2023/03/02 10:00:00
Table 'GoldDust3' 6-max Seat #1 is the button
Seat 1: Villain ($5.00 in chips)
Seat 2: Hero ($5.00 in chips)
Villain: posts small blind $0.02
Hero: posts big blind $0.05
*** HOLE CARDS ***
Dealt to Hero [Ah Kh]
Villain: calls $0.03
Hero: checks
*** FLOP *** [Ad 7c 2d]
Hero: checks
Villain: checks
*** TURN *** [Ad 7c 2d] [5s]
Hero: bets $0.10
Villain: calls $0.10
*** RIVER *** [Ad 7c 2d 5s] [9h]
Hero: checks
Villain: checks
*** SHOWDOWN ***
Hero: shows [Ah Kh] (a pair of Aces)
Villain: shows [Kc Qc] (high card Ace)
Hero collected $0.29 from pot
*** SUMMARY ***
Total pot $0.30 | Rake $0.01
Seat 2: Hero (big blind) showed [Ah Kh] and won ($0.29) with a pair of Aces
Seat 1: Villain (button) showed [Kc Qc] and lost with high card Ace
`

// uncalledHand ends with an uncalled bet returned to the hero.
const uncalledHand = `Poker Hand #RC3333333333: Hold'em No Limit ($0.02/$0.05) - 2023/03/03 09:30:00
Table 'GoldDust3' 6-max Seat #2 is the button
Seat 1: Hero ($5.00 in chips)
Seat 2: Villain ($5.00 in chips)
Hero: posts small blind $0.02
Villain: posts big blind $0.05
*** HOLE CARDS ***
Dealt to Hero [Qs Qd]
Hero: raises $0.10 to $0.15
Villain: folds
Uncalled bet $0.10 returned to Hero
Hero collected $0.10 from pot
*** SUMMARY ***
Total pot $0.10 | Rake $0.00
`

func mustParseHand(t *testing.T, text string) *HandRecord {
	t.Helper()
	segments := SplitHands(text)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	rec, err := New(Config{}).ParseHand(segments[0])
	if err != nil {
		t.Fatalf("ParseHand() error: %v", err)
	}
	return rec
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestParseHandHeader(t *testing.T) {
	rec := mustParseHand(t, cbetHand)

	if rec.HandID != "RC1216293178" {
		t.Errorf("HandID = %q", rec.HandID)
	}
	want := time.Date(2023, 3, 1, 20, 59, 55, 0, time.UTC)
	if !rec.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", rec.Timestamp, want)
	}
	if rec.TableName != "GoldDust3" {
		t.Errorf("TableName = %q", rec.TableName)
	}
	if !almostEqual(rec.SmallBlind, 0.02) || !almostEqual(rec.BigBlind, 0.05) {
		t.Errorf("blinds = %v/%v", rec.SmallBlind, rec.BigBlind)
	}
	if rec.Stakes != "$0.02/$0.05" {
		t.Errorf("Stakes = %q", rec.Stakes)
	}
	if rec.ButtonSeat != 3 {
		t.Errorf("ButtonSeat = %d", rec.ButtonSeat)
	}
	if rec.MaxSeats != 6 {
		t.Errorf("MaxSeats = %d", rec.MaxSeats)
	}
}

func TestParseHandRoster(t *testing.T) {
	rec := mustParseHand(t, cbetHand)

	if len(rec.Players) != 3 {
		t.Fatalf("expected 3 players, got %d", len(rec.Players))
	}
	hero := rec.Hero()
	if hero == nil {
		t.Fatal("no hero found")
	}
	if hero.Seat != 3 || hero.Position != "Button" {
		t.Errorf("hero seat/position = %d/%q", hero.Seat, hero.Position)
	}
	if !almostEqual(hero.StartingStack, 6.30) {
		t.Errorf("hero stack = %v", hero.StartingStack)
	}
	if got := len(hero.HoleCards); got != 2 {
		t.Fatalf("hero hole cards = %d", got)
	}
	if !hero.CardsVisible {
		t.Error("hero cards should be visible")
	}
	// Three players: label index is (seat - button) mod 3.
	if sb := rec.PlayerBySeat(1); sb == nil || sb.Position != "Small Blind" {
		t.Errorf("seat 1 position = %+v", sb)
	}
}

// Button at seat 3 of a six-seated table labels seat 3 Button and seat 4
// Small Blind, cycling mod 6.
func TestPositionLabelsSixHanded(t *testing.T) {
	players := []PlayerSeat{
		{Seat: 1, Name: "P1"}, {Seat: 2, Name: "P2"}, {Seat: 3, Name: "P3"},
		{Seat: 4, Name: "P4"}, {Seat: 5, Name: "P5"}, {Seat: 6, Name: "P6"},
	}
	assignPositions(players, 3)

	want := map[int]string{
		3: "Button",
		4: "Small Blind",
		5: "Big Blind",
		6: "UTG",
		1: "Hijack",
		2: "Cutoff",
	}
	for _, p := range players {
		if p.Position != want[p.Seat] {
			t.Errorf("seat %d position = %q, want %q", p.Seat, p.Position, want[p.Seat])
		}
	}
}

// Tables larger than six players use the nine-position label set; offsets
// past its end clamp to the last label, so a ten-handed table assigns
// "CO" twice. This mirrors the position column produced for existing
// exports, mislabels included.
func TestPositionLabelClamp(t *testing.T) {
	players := make([]PlayerSeat, 10)
	for i := range players {
		players[i] = PlayerSeat{Seat: i + 1}
	}
	assignPositions(players, 1)

	if players[0].Position != "Button" {
		t.Errorf("seat 1 = %q", players[0].Position)
	}
	if players[6].Position != "MP+1" {
		t.Errorf("seat 7 = %q, want MP+1", players[6].Position)
	}
	if players[8].Position != "CO" {
		t.Errorf("seat 9 = %q, want CO", players[8].Position)
	}
	if players[9].Position != "CO" {
		t.Errorf("seat 10 = %q, want clamped CO", players[9].Position)
	}
}

func TestParseHandActions(t *testing.T) {
	rec := mustParseHand(t, cbetHand)

	if len(rec.Actions) != 9 {
		t.Fatalf("expected 9 actions, got %d", len(rec.Actions))
	}
	for i, a := range rec.Actions {
		if a.Number != i+1 {
			t.Errorf("action %d has number %d", i, a.Number)
		}
	}

	raise := rec.Actions[2]
	if raise.Kind != Raise || raise.Player != "Hero" {
		t.Fatalf("action 3 = %+v", raise)
	}
	if !almostEqual(raise.Amount, 0.15) || !almostEqual(raise.StreetTotal, 0.20) {
		t.Errorf("raise amount/total = %v/%v", raise.Amount, raise.StreetTotal)
	}
	// The pot counter credits the literal "raises $A" term.
	if !almostEqual(raise.PotBefore, 0.07) || !almostEqual(raise.PotAfter, 0.22) {
		t.Errorf("raise pot %v -> %v", raise.PotBefore, raise.PotAfter)
	}

	flopBet := rec.Actions[6]
	if flopBet.Street != Flop || flopBet.Kind != Bet {
		t.Fatalf("action 7 = %+v", flopBet)
	}
	if len(flopBet.Board) != 3 {
		t.Errorf("flop bet board = %v", flopBet.Board)
	}
}

// The collect event's pot_before is written as pot_after minus the award
// even though the running pot counter is untouched. Downstream consumers
// depend on the literal arithmetic.
func TestCollectPotBookkeeping(t *testing.T) {
	rec := mustParseHand(t, cbetHand)

	collect := rec.Actions[len(rec.Actions)-1]
	if collect.Kind != Collect || collect.Player != "Hero" {
		t.Fatalf("last action = %+v", collect)
	}
	if !almostEqual(collect.Amount, 0.47) {
		t.Errorf("collect amount = %v", collect.Amount)
	}
	if !almostEqual(collect.PotAfter, 0.62) {
		t.Errorf("collect pot_after = %v, want running pot 0.62", collect.PotAfter)
	}
	if !almostEqual(collect.PotBefore, collect.PotAfter-collect.Amount) {
		t.Errorf("collect pot_before = %v, want %v", collect.PotBefore, collect.PotAfter-collect.Amount)
	}
}

func TestUncalledBetReturn(t *testing.T) {
	rec := mustParseHand(t, uncalledHand)

	var ret *ActionEvent
	for i := range rec.Actions {
		if rec.Actions[i].Kind == ReturnUncalled {
			ret = &rec.Actions[i]
		}
	}
	if ret == nil {
		t.Fatal("no return event parsed")
	}
	if ret.Player != "Hero" || !almostEqual(ret.Amount, 0.10) {
		t.Errorf("return event = %+v", ret)
	}
	// Pot before posts+raise: 0.02+0.05+0.10 = 0.17; the return removes 0.10.
	if !almostEqual(ret.PotBefore, 0.17) || !almostEqual(ret.PotAfter, 0.07) {
		t.Errorf("return pot %v -> %v", ret.PotBefore, ret.PotAfter)
	}
	if ret.StreetTotal != 0 {
		t.Errorf("return street total = %v", ret.StreetTotal)
	}
}

// On a well-formed hand with no raise lines the running pot matches the
// summary's total pot.
func TestFinalPotMatchesSummary(t *testing.T) {
	rec := mustParseHand(t, showdownHand)

	last := rec.Actions[len(rec.Actions)-1]
	if !almostEqual(last.PotAfter, rec.FinalPot) {
		t.Errorf("last pot_after = %v, final pot = %v", last.PotAfter, rec.FinalPot)
	}
}

func TestParseHandBoard(t *testing.T) {
	rec := mustParseHand(t, showdownHand)

	if got := len(rec.Flop); got != 3 {
		t.Fatalf("flop has %d cards", got)
	}
	if len(rec.Turn) != 1 || rec.Turn[0].Notation() != "5s" {
		t.Errorf("turn = %v", rec.Turn)
	}
	if len(rec.River) != 1 || rec.River[0].Notation() != "9h" {
		t.Errorf("river = %v", rec.River)
	}
}

func TestParseHandOutcome(t *testing.T) {
	rec := mustParseHand(t, showdownHand)

	if !almostEqual(rec.FinalPot, 0.30) {
		t.Errorf("FinalPot = %v", rec.FinalPot)
	}
	if !almostEqual(rec.Rake, 0.01) || !almostEqual(rec.TotalFees, 0.01) {
		t.Errorf("Rake/TotalFees = %v/%v", rec.Rake, rec.TotalFees)
	}
	if !rec.SawShowdown {
		t.Error("SawShowdown = false")
	}
	if len(rec.ShowdownPlayers) != 2 {
		t.Errorf("ShowdownPlayers = %v", rec.ShowdownPlayers)
	}
	if rec.Winner != "Hero" {
		t.Errorf("Winner = %q", rec.Winner)
	}
	if !almostEqual(rec.WinAmount, 0.29) {
		t.Errorf("WinAmount = %v", rec.WinAmount)
	}
	if rec.WinningHand != "a pair of Aces" {
		t.Errorf("WinningHand = %q", rec.WinningHand)
	}

	villain := rec.PlayerBySeat(1)
	if villain == nil || len(villain.HoleCards) != 2 || !villain.CardsVisible {
		t.Errorf("villain showdown cards not attached: %+v", villain)
	}
}

func TestParseHandItemizedFees(t *testing.T) {
	text := cbetHand[:len(cbetHand)-len("Seat 3: Hero (button) collected ($0.47)\n")]
	text = text[:len(text)-len("Total pot $0.47 | Rake $0.02\n")] +
		"Total pot $0.47 | Rake $0.02 | Jackpot $0.01 | Bingo $0.01 | Fortune $0.01 | Tax $0.01\n"
	rec := mustParseHand(t, text)

	if !almostEqual(rec.Rake, 0.02) {
		t.Errorf("Rake = %v", rec.Rake)
	}
	if !almostEqual(rec.Jackpot, 0.01) {
		t.Errorf("Jackpot = %v", rec.Jackpot)
	}
	if !almostEqual(rec.TotalFees, 0.06) {
		t.Errorf("TotalFees = %v", rec.TotalFees)
	}
}

func TestTimestampFallback(t *testing.T) {
	mClock := quartz.NewMock(t)
	p := New(Config{Clock: mClock})

	rec, err := p.ParseHand("RC9: Hold'em No Limit\nSeat 1: Hero ($1.00 in chips)\n")
	if err != nil {
		t.Fatalf("ParseHand() error: %v", err)
	}
	if !rec.Timestamp.Equal(mClock.Now()) {
		t.Errorf("Timestamp = %v, want mock clock time %v", rec.Timestamp, mClock.Now())
	}
}

func TestParseTextMalformedInput(t *testing.T) {
	p := New(Config{})

	for _, input := range []string{"", "no markers at all\njust text\n"} {
		hands, skipped := p.ParseText(input)
		if len(hands) != 0 || len(skipped) != 0 {
			t.Errorf("ParseText(%q) = %d hands, %d skipped", input, len(hands), len(skipped))
		}
	}
}

func TestParseTextSkipsBadHand(t *testing.T) {
	p := New(Config{})
	blob := "Poker Hand #BAD1: garbage with no seats\n\n" + "Poker Hand #" + cbetHand

	hands, skipped := p.ParseText(blob)
	if len(hands) != 1 {
		t.Fatalf("expected 1 hand, got %d", len(hands))
	}
	if len(skipped) != 1 {
		t.Fatalf("expected 1 skipped, got %d", len(skipped))
	}
	if skipped[0].HandID != "BAD1" {
		t.Errorf("skipped hand id = %q", skipped[0].HandID)
	}
	if skipped[0].Err == nil {
		t.Error("skipped hand has no diagnostic")
	}
}

func TestParseBatchMergesAndSorts(t *testing.T) {
	p := New(Config{})
	inputs := []Input{
		{Name: "b.txt", Text: "Poker Hand #" + showdownHand},
		{Name: "a.txt", Text: "Poker Hand #" + cbetHand},
		{Name: "empty.txt", Text: "nothing here"},
	}

	result, err := p.ParseBatch(context.Background(), inputs, 2)
	if err != nil {
		t.Fatalf("ParseBatch() error: %v", err)
	}
	if len(result.Hands) != 2 {
		t.Fatalf("expected 2 hands, got %d", len(result.Hands))
	}
	if result.Sources != 2 {
		t.Errorf("Sources = %d", result.Sources)
	}
	if !result.Hands[0].Timestamp.Before(result.Hands[1].Timestamp) {
		t.Error("hands not sorted by timestamp")
	}
	if result.Hands[0].HandID != "RC1216293178" {
		t.Errorf("first hand = %q", result.Hands[0].HandID)
	}
}

// Colon-bearing lines with no recognized verb are skipped without error.
func TestUnrecognizedLinesTolerated(t *testing.T) {
	withChat := "Poker Hand #RC7777777777: Hold'em No Limit ($0.02/$0.05) - 2023/03/04 12:00:00\n" +
		"Table 'GoldDust3' 6-max Seat #1 is the button\n" +
		"Seat 1: Hero ($5.00 in chips)\n" +
		"Seat 2: Villain ($5.00 in chips)\n" +
		"Hero: posts small blind $0.02\n" +
		"Villain: posts big blind $0.05\n" +
		"Villain: said, \"nice hand folks\"\n" +
		"Hero: folds\n" +
		"*** SUMMARY ***\n" +
		"Total pot $0.07 | Rake $0.00\n"

	rec := mustParseHand(t, withChat)
	if len(rec.Actions) != 3 {
		t.Errorf("expected 3 actions, got %d", len(rec.Actions))
	}
}
