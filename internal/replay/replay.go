// Package replay reconstructs table state at any point of a parsed hand.
package replay

import (
	"fmt"

	"github.com/lukefish591/cardsharpner/internal/deck"
	"github.com/lukefish591/cardsharpner/internal/handhistory"
)

// PlayerState is one player's live state at a point in the hand.
type PlayerState struct {
	Seat      int
	Name      string
	Position  string
	IsHero    bool
	Stack     float64
	StreetBet float64
	Invested  float64
	Active    bool

	// HoleCards is populated only for cards a viewer is entitled to see:
	// the hero's own deal or a showdown reveal.
	HoleCards []deck.Card
}

// TableState is a complete snapshot immediately before a given action
// index is applied. Snapshots are value copies; callers may retain them.
type TableState struct {
	HandID      string
	ActionIndex int
	Street      handhistory.Street
	Pot         float64
	Board       []deck.Card
	Players     []PlayerState

	// Next is the action that would be applied at this index, nil at the
	// end of the hand.
	Next *handhistory.ActionEvent
}

// StateAt computes the table state immediately before action index i by a
// single forward scan of the action log. 0 <= i <= len(actions); i equal
// to the action count yields the hand's final state. The scan never
// mutates the HandRecord, so concurrent calls at any indices are safe.
func StateAt(hand *handhistory.HandRecord, i int) (*TableState, error) {
	if hand == nil {
		return nil, fmt.Errorf("replay: nil hand")
	}
	if i < 0 || i > len(hand.Actions) {
		return nil, fmt.Errorf("replay: action index %d out of range [0, %d]", i, len(hand.Actions))
	}

	state := &TableState{
		HandID:      hand.HandID,
		ActionIndex: i,
		Street:      handhistory.Preflop,
		Players:     make([]PlayerState, len(hand.Players)),
	}
	byName := make(map[string]*PlayerState, len(hand.Players))
	for j, p := range hand.Players {
		state.Players[j] = PlayerState{
			Seat:     p.Seat,
			Name:     p.Name,
			Position: p.Position,
			IsHero:   p.IsHero,
			Stack:    p.StartingStack,
			Active:   true,
		}
		if p.CardsVisible {
			state.Players[j].HoleCards = append([]deck.Card(nil), p.HoleCards...)
		}
		byName[p.Name] = &state.Players[j]
	}

	for _, ev := range hand.Actions[:i] {
		state.Street = ev.Street
		state.Pot = ev.PotAfter
		state.Board = append([]deck.Card(nil), ev.Board...)

		ps := byName[ev.Player]
		if ps == nil {
			continue
		}
		switch ev.Kind {
		case handhistory.Fold:
			ps.Active = false
		case handhistory.Collect, handhistory.ReturnUncalled:
			ps.Stack += ev.Amount
		default:
			if ev.Kind.Contributes() {
				ps.Stack -= ev.Amount
				ps.StreetBet = ev.StreetTotal
				ps.Invested += ev.Amount
			}
		}
	}

	if i < len(hand.Actions) {
		next := hand.Actions[i]
		state.Next = &next
	}

	return state, nil
}
