package handhistory

import (
	"time"

	"github.com/lukefish591/cardsharpner/internal/deck"
)

// Street identifies a betting round or terminal phase of a hand.
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

// String returns the lowercase street tag used in tabular output.
func (s Street) String() string {
	switch s {
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case Showdown:
		return "showdown"
	default:
		return "unknown"
	}
}

// ActionKind classifies a single line of the action log.
type ActionKind int

const (
	PostSmallBlind ActionKind = iota
	PostBigBlind
	Fold
	Check
	Call
	Bet
	Raise
	Collect
	ReturnUncalled
)

// String returns the verb used in action descriptions.
func (k ActionKind) String() string {
	switch k {
	case PostSmallBlind:
		return "posts small blind"
	case PostBigBlind:
		return "posts big blind"
	case Fold:
		return "folds"
	case Check:
		return "checks"
	case Call:
		return "calls"
	case Bet:
		return "bets"
	case Raise:
		return "raises"
	case Collect:
		return "collected"
	case ReturnUncalled:
		return "uncalled bet returned"
	default:
		return "unknown"
	}
}

// Contributes reports whether the action moves chips from the player into the pot.
func (k ActionKind) Contributes() bool {
	switch k {
	case PostSmallBlind, PostBigBlind, Call, Bet, Raise:
		return true
	default:
		return false
	}
}

// ActionEvent is one entry of a hand's ordered action log. The list is
// append-only during parsing and read-only afterwards.
type ActionEvent struct {
	Number int
	Street Street
	Player string
	Seat   int
	Kind   ActionKind

	// Amount is the chips moved by this event. For a raise it is the
	// "raises $A to $B" A term as written in the text.
	Amount float64

	// StreetTotal is the player's cumulative commitment on the current
	// street after this event. Zero for collect and return events.
	StreetTotal float64

	PotBefore float64
	PotAfter  float64

	// Board is a snapshot of the community cards known when the event occurred.
	Board []deck.Card

	Description string
}

// PlayerSeat describes one seated player at hand start. Entries are created
// during roster build and never mutated afterwards, except that showdown
// extraction may attach revealed hole cards.
type PlayerSeat struct {
	Seat          int
	Name          string
	StartingStack float64
	Position      string
	IsHero        bool

	// HoleCards is populated only when the cards were revealed: the hero's
	// own deal, or a showdown reveal. CardsVisible is true only for cards
	// the hero is entitled to see in a live replay.
	HoleCards    []deck.Card
	CardsVisible bool
}

// HandRecord is the fully parsed form of one hand segment. It is owned by
// the parse call that produced it and read-only downstream.
type HandRecord struct {
	HandID    string
	Site      string
	Timestamp time.Time
	TableName string
	Stakes    string

	SmallBlind float64
	BigBlind   float64
	ButtonSeat int
	MaxSeats   int

	Players []PlayerSeat
	Actions []ActionEvent

	Flop  []deck.Card
	Turn  []deck.Card
	River []deck.Card

	FinalPot float64
	Rake     float64
	Jackpot  float64
	// TotalFees sums every fee label found in the summary (rake, jackpot,
	// bingo, fortune, tax) for sites that itemize deductions.
	TotalFees float64

	Winner      string
	WinAmount   float64
	WinningHand string

	SawShowdown     bool
	ShowdownPlayers []string
}

// Board returns the full community board in deal order.
func (h *HandRecord) Board() []deck.Card {
	board := make([]deck.Card, 0, 5)
	board = append(board, h.Flop...)
	board = append(board, h.Turn...)
	board = append(board, h.River...)
	return board
}

// Hero returns the hero's seat entry, or nil if no hero was seated.
func (h *HandRecord) Hero() *PlayerSeat {
	for i := range h.Players {
		if h.Players[i].IsHero {
			return &h.Players[i]
		}
	}
	return nil
}

// PlayerBySeat returns the seat entry for a seat number, or nil.
func (h *HandRecord) PlayerBySeat(seat int) *PlayerSeat {
	for i := range h.Players {
		if h.Players[i].Seat == seat {
			return &h.Players[i]
		}
	}
	return nil
}

// SkippedHand is the diagnostic record for a hand segment that could not
// produce a plausible HandRecord. It never aborts sibling hands.
type SkippedHand struct {
	Index  int
	HandID string
	Err    error
}
