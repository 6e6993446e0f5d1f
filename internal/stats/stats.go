// Package stats derives per-hand statistical features from parsed hands.
package stats

import (
	"errors"
	"fmt"
	"time"

	"github.com/lukefish591/cardsharpner/internal/deck"
	"github.com/lukefish591/cardsharpner/internal/handhistory"
)

// Pot type categories, in classification priority order.
const (
	PotPreflopOnly = "Preflop Only"
	PotLimped      = "Limped Pot"
	PotSRP         = "SRP"
	Pot3Bet        = "3-Bet Pot"
	Pot4Bet        = "4-Bet Pot"
	Pot5BetPlus    = "5+ Bet Pot"
)

// PotTypeOrder returns the pot type categories in escalation order, for
// stable report output.
func PotTypeOrder() []string {
	return []string{PotPreflopOnly, PotLimped, PotSRP, Pot3Bet, Pot4Bet, Pot5BetPlus}
}

// DerivedStats is the per-hand feature vector consumed by aggregation and
// export. Computed once from a HandRecord; never mutated after.
type DerivedStats struct {
	HandID    string
	Timestamp time.Time
	Site      string
	Stakes    string
	TableName string
	Position  string
	HoleCards string

	VPIP           bool
	PreflopRaised  bool
	PreflopCalled  bool
	SawFlop        bool
	WentToShowdown bool
	WonAtShowdown  bool
	WonWhenSawFlop bool

	ThreeBet            bool
	ThreeBetOpportunity bool
	FourBet             bool
	FourBetOpportunity  bool

	CBetFlop             bool
	CBetTurn             bool
	CBetRiver            bool
	CBetFlopOpportunity  bool
	CBetTurnOpportunity  bool
	CBetRiverOpportunity bool

	PotType string

	TotalContributed    float64
	TotalCollected      float64
	NetProfit           float64
	NetProfitBeforeRake float64
	RakeAmount          float64
	TotalPotSize        float64

	PreflopActions int
	FlopActions    int
	TurnActions    int
	RiverActions   int

	FlopCards string
	TurnCard  string
	RiverCard string
}

// ErrInconsistentActions reports a hand whose action sequence numbers are
// not strictly increasing. Production parsing never constructs such a
// hand; hitting this is a programmer error.
var ErrInconsistentActions = errors.New("action sequence numbers not strictly increasing")

// Derive computes the feature vector for one hand. A hand without a hero
// on the roster yields a record with identity fields only, which is a data
// condition, not an error.
func Derive(hand *handhistory.HandRecord) (*DerivedStats, error) {
	if err := checkSequence(hand.Actions); err != nil {
		return nil, err
	}

	d := &DerivedStats{
		HandID:       hand.HandID,
		Timestamp:    hand.Timestamp,
		Site:         hand.Site,
		Stakes:       hand.Stakes,
		TableName:    hand.TableName,
		Position:     "Unknown",
		PotType:      potType(hand),
		RakeAmount:   hand.TotalFees,
		TotalPotSize: hand.FinalPot,
		FlopCards:    deck.Notation(hand.Flop),
		TurnCard:     deck.Notation(hand.Turn),
		RiverCard:    deck.Notation(hand.River),
	}

	hero := hand.Hero()
	if hero == nil {
		return d, nil
	}
	d.Position = hero.Position
	d.HoleCards = deck.Notation(hero.HoleCards)

	heroFolded, foldStreet := heroFold(hand.Actions, hero.Name)
	derivePreflop(hand.Actions, hero.Name, d)
	deriveCBets(hand.Actions, hero.Name, d)
	deriveTotals(hand, hero.Name, d)

	d.SawFlop = len(hand.Flop) == 3 && !(heroFolded && foldStreet == handhistory.Preflop)
	d.WentToShowdown = hand.SawShowdown && !heroFolded
	d.WonAtShowdown = d.WentToShowdown && len(hand.ShowdownPlayers) >= 2 && d.TotalCollected > 0
	// Winning when seeing the flop is judged on net result, so chopping a
	// raked pot for a loss does not count. W$SD above is judged on gross
	// collection instead.
	d.WonWhenSawFlop = d.SawFlop && d.NetProfit > 0

	return d, nil
}

func checkSequence(actions []handhistory.ActionEvent) error {
	if len(actions) > 0 && actions[0].Number != 1 {
		return fmt.Errorf("first action numbered %d: %w", actions[0].Number, ErrInconsistentActions)
	}
	prev := 0
	for _, a := range actions {
		if a.Number <= prev {
			return fmt.Errorf("action %d after %d: %w", a.Number, prev, ErrInconsistentActions)
		}
		prev = a.Number
	}
	return nil
}

func heroFold(actions []handhistory.ActionEvent, hero string) (bool, handhistory.Street) {
	for _, a := range actions {
		if a.Player == hero && a.Kind == handhistory.Fold {
			return true, a.Street
		}
	}
	return false, 0
}

// derivePreflop walks the preflop betting sequence once, tracking how many
// raises the hero has faced at each of their decision points. Facing
// exactly one prior raise is a 3-bet opportunity, exactly two a 4-bet
// opportunity; re-raising in that spot scores the bet itself. Blind posts
// are not decisions.
func derivePreflop(actions []handhistory.ActionEvent, hero string, d *DerivedStats) {
	raises := 0
	for _, a := range actions {
		if a.Street != handhistory.Preflop {
			break
		}
		if a.Player == hero {
			switch a.Kind {
			case handhistory.Call:
				d.VPIP = true
				if !d.PreflopRaised {
					d.PreflopCalled = true
				}
			case handhistory.Bet:
				d.VPIP = true
			case handhistory.Raise:
				d.VPIP = true
				d.PreflopRaised = true
				d.PreflopCalled = false
			}
			if isDecision(a.Kind) {
				switch raises {
				case 1:
					d.ThreeBetOpportunity = true
					if a.Kind == handhistory.Raise {
						d.ThreeBet = true
					}
				case 2:
					d.FourBetOpportunity = true
					if a.Kind == handhistory.Raise {
						d.FourBet = true
					}
				}
			}
		}
		if a.Kind == handhistory.Raise {
			raises++
		}
	}
}

func isDecision(k handhistory.ActionKind) bool {
	switch k {
	case handhistory.Fold, handhistory.Check, handhistory.Call, handhistory.Bet, handhistory.Raise:
		return true
	default:
		return false
	}
}

// deriveCBets scores continuation betting per postflop street. The
// aggressor of a street is the last player to bet or raise on it; the hero
// has a c-bet opportunity on the next street when they were that aggressor
// and face no bet or raise before their own first action there. Checks
// ahead of the hero do not void the opportunity, and a hero who folded
// earlier never reaches a decision point on the street.
func deriveCBets(actions []handhistory.ActionEvent, hero string, d *DerivedStats) {
	streets := []handhistory.Street{handhistory.Flop, handhistory.Turn, handhistory.River}
	for _, street := range streets {
		opp, cbet := cbetOnStreet(actions, hero, street)
		switch street {
		case handhistory.Flop:
			d.CBetFlopOpportunity, d.CBetFlop = opp, cbet
		case handhistory.Turn:
			d.CBetTurnOpportunity, d.CBetTurn = opp, cbet
		case handhistory.River:
			d.CBetRiverOpportunity, d.CBetRiver = opp, cbet
		}
	}
}

func cbetOnStreet(actions []handhistory.ActionEvent, hero string, street handhistory.Street) (opportunity, cbet bool) {
	if lastAggressor(actions, street-1) != hero {
		return false, false
	}
	for _, a := range actions {
		if a.Street != street {
			continue
		}
		if a.Player == hero && isDecision(a.Kind) {
			return true, a.Kind == handhistory.Bet
		}
		if a.Kind == handhistory.Bet || a.Kind == handhistory.Raise {
			// Someone bet into the hero first; no bet option remained.
			return false, false
		}
	}
	return false, false
}

// lastAggressor returns the name of the last player to bet or raise on a
// street, or empty when the street was checked through or never reached.
func lastAggressor(actions []handhistory.ActionEvent, street handhistory.Street) string {
	name := ""
	for _, a := range actions {
		if a.Street != street {
			continue
		}
		if a.Kind == handhistory.Bet || a.Kind == handhistory.Raise {
			name = a.Player
		}
	}
	return name
}

// deriveTotals sums the hero's chip flows and per-street action counts.
// A raise contributes the delta between its "to" total and the hero's
// prior commitment on the street, not the pot counter's literal term.
// Uncalled-bet refunds count as collected; the profit math nets them
// against the contributions they refund.
func deriveTotals(hand *handhistory.HandRecord, hero string, d *DerivedStats) {
	var (
		round      float64
		lastStreet = handhistory.Preflop
	)
	for _, a := range hand.Actions {
		if a.Player != hero {
			continue
		}
		if a.Street != lastStreet {
			round = 0
			lastStreet = a.Street
		}
		switch a.Street {
		case handhistory.Preflop:
			d.PreflopActions++
		case handhistory.Flop:
			d.FlopActions++
		case handhistory.Turn:
			d.TurnActions++
		case handhistory.River:
			d.RiverActions++
		}
		switch {
		case a.Kind == handhistory.Raise:
			additional := a.StreetTotal - round
			if additional < 0 {
				additional = 0
			}
			d.TotalContributed += additional
			round = a.StreetTotal
		case a.Kind.Contributes():
			d.TotalContributed += a.Amount
			round = a.StreetTotal
		case a.Kind == handhistory.Collect || a.Kind == handhistory.ReturnUncalled:
			d.TotalCollected += a.Amount
		}
	}

	d.NetProfit = d.TotalCollected - d.TotalContributed
	d.NetProfitBeforeRake = d.NetProfit
	if d.TotalCollected > 0 {
		// Fees came out of the hero's winnings; add them back for the
		// before-rake figure. A losing hero never paid them.
		d.NetProfitBeforeRake += d.RakeAmount
	}
}

// potType classifies the hand by its preflop betting shape.
func potType(hand *handhistory.HandRecord) string {
	if len(hand.Flop) == 0 {
		return PotPreflopOnly
	}

	raises := 0
	voluntary := map[string]bool{}
	for _, a := range hand.Actions {
		if a.Street != handhistory.Preflop {
			break
		}
		switch a.Kind {
		case handhistory.Raise:
			raises++
			voluntary[a.Player] = true
		case handhistory.Call, handhistory.Bet:
			voluntary[a.Player] = true
		case handhistory.Check:
			// A big blind checking the option is still in the pot.
			voluntary[a.Player] = true
		}
	}

	switch {
	case raises == 0 && len(voluntary) >= 2:
		return PotLimped
	case raises == 0:
		return PotPreflopOnly
	case raises == 1:
		return PotSRP
	case raises == 2:
		return Pot3Bet
	case raises == 3:
		return Pot4Bet
	default:
		return Pot5BetPlus
	}
}
