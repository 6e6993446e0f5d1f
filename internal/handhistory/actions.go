package handhistory

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lukefish591/cardsharpner/internal/deck"
)

var (
	boardRe       = regexp.MustCompile(`\[([^\]]+)\]`)
	newCardRe     = regexp.MustCompile(`\[[^\]]+\]\s*\[([^\]]+)\]`)
	amountRe      = regexp.MustCompile(`\$([\d,.]+)`)
	callsRe       = regexp.MustCompile(`calls \$([\d,.]+)`)
	raisesRe      = regexp.MustCompile(`raises \$([\d,.]+) to \$([\d,.]+)`)
	betsRe        = regexp.MustCompile(`bets \$([\d,.]+)`)
	collectedRe   = regexp.MustCompile(`collected\s*\(?\$([\d,.]+)\)?`)
	bareCollectRe = regexp.MustCompile(`^(.+?) collected \(?\$([\d,.]+)\)? from (?:the )?pot`)
	uncalledRe    = regexp.MustCompile(`Uncalled bet \(?\$([\d,.]+)\)? returned to (.+)`)
)

// actionKeywords gates line dispatch: a colon-bearing line is only treated
// as an action when it contains one of these verbs.
var actionKeywords = []string{"folds", "calls", "raises", "bets", "checks", "posts", "collected"}

// boardState carries the street/pot/board accumulators of one hand parse.
// Each hand starts from a fresh value; nothing leaks between hands.
type boardState struct {
	street     Street
	pot        float64
	board      []deck.Card
	streetBets map[string]float64
	number     int
}

// extractActions walks the hand body as a state machine over streets and
// produces the ordered action log with running pot bookkeeping. Scanning
// stops at the summary marker; summary lines are never actions.
func extractActions(text string, players []PlayerSeat) []ActionEvent {
	st := boardState{streetBets: make(map[string]float64, len(players))}
	for _, p := range players {
		st.streetBets[p.Name] = 0
	}

	var actions []ActionEvent
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if done := st.applyMarker(line); done {
			break
		} else if strings.HasPrefix(line, "*** ") {
			continue
		}

		if ev, ok := st.parseActionLine(line, players); ok {
			actions = append(actions, ev)
			continue
		}

		if ev, ok := st.parseUncalledReturn(line, players); ok {
			actions = append(actions, ev)
		}
	}
	return actions
}

// applyMarker handles street-transition markers. Each flop/turn/river
// transition appends the newly revealed cards to the running board and
// resets every player's street commitment. Returns true at the summary
// marker, which terminates scanning.
func (st *boardState) applyMarker(line string) bool {
	switch {
	case strings.Contains(line, "*** FLOP ***") || strings.Contains(line, "*** FIRST FLOP ***"):
		st.street = Flop
		if m := boardRe.FindStringSubmatch(line); m != nil {
			if cards, err := deck.ParseCards(m[1]); err == nil {
				st.board = cards
			}
		}
		st.resetStreetBets()
	case strings.Contains(line, "*** TURN ***") || strings.Contains(line, "*** FIRST TURN ***"):
		st.street = Turn
		st.appendNewCard(line)
		st.resetStreetBets()
	case strings.Contains(line, "*** RIVER ***") || strings.Contains(line, "*** FIRST RIVER ***"):
		st.street = River
		st.appendNewCard(line)
		st.resetStreetBets()
	case strings.Contains(line, "*** SHOWDOWN ***"):
		st.street = Showdown
	case strings.Contains(line, "*** SUMMARY ***"):
		return true
	}
	return false
}

// appendNewCard pulls the newly dealt card from a turn/river marker line,
// which repeats the prior board in its first bracket group.
func (st *boardState) appendNewCard(line string) {
	m := newCardRe.FindStringSubmatch(line)
	if m == nil {
		return
	}
	if cards, err := deck.ParseCards(m[1]); err == nil {
		st.board = append(st.board, cards...)
	}
}

func (st *boardState) resetStreetBets() {
	for name := range st.streetBets {
		st.streetBets[name] = 0
	}
}

// parseActionLine dispatches one "name: text" action line. Lines whose
// verb is unrecognized, or whose actor is not in the roster, are skipped
// without error; that is deliberate tolerance for incidental colon-bearing
// chat or site notices.
func (st *boardState) parseActionLine(line string, players []PlayerSeat) (ActionEvent, bool) {
	name, actionText, ok := splitActorLine(line)
	if !ok {
		// Some sites write the pot award without a colon.
		if m := bareCollectRe.FindStringSubmatch(line); m != nil {
			name = strings.TrimSpace(m[1])
			actionText = line[len(name)+1:]
		} else {
			return ActionEvent{}, false
		}
	}

	player := findPlayer(players, name)
	if player == nil {
		return ActionEvent{}, false
	}

	kind, amount, streetTotal, desc, ok := st.applyAction(name, actionText)
	if !ok {
		return ActionEvent{}, false
	}

	st.number++
	potBefore := st.pot
	if amount > 0 {
		potBefore = st.pot - amount
	}
	return ActionEvent{
		Number:      st.number,
		Street:      st.street,
		Player:      name,
		Seat:        player.Seat,
		Kind:        kind,
		Amount:      amount,
		StreetTotal: streetTotal,
		PotBefore:   potBefore,
		PotAfter:    st.pot,
		Board:       append([]deck.Card(nil), st.board...),
		Description: desc,
	}, true
}

// applyAction mutates the pot and street-commitment accumulators for one
// recognized verb and reports the event fields. The raise arm credits the
// pot with the literal "raises $A to $B" A term as written, not A
// recomputed from the player's prior commitment.
func (st *boardState) applyAction(name, actionText string) (kind ActionKind, amount, streetTotal float64, desc string, ok bool) {
	switch {
	case strings.Contains(actionText, "posts small blind"):
		kind = PostSmallBlind
		if m := amountRe.FindStringSubmatch(actionText); m != nil {
			amount = parseAmount(m[1])
			st.streetBets[name] = amount
			st.pot += amount
		}
		desc = fmt.Sprintf("posts small blind $%.2f", amount)

	case strings.Contains(actionText, "posts big blind"):
		kind = PostBigBlind
		if m := amountRe.FindStringSubmatch(actionText); m != nil {
			amount = parseAmount(m[1])
			st.streetBets[name] = amount
			st.pot += amount
		}
		desc = fmt.Sprintf("posts big blind $%.2f", amount)

	case strings.Contains(actionText, "folds"):
		kind = Fold
		desc = "folds"

	case strings.Contains(actionText, "calls"):
		kind = Call
		if m := callsRe.FindStringSubmatch(actionText); m != nil {
			amount = parseAmount(m[1])
			st.streetBets[name] += amount
			st.pot += amount
		}
		desc = fmt.Sprintf("calls $%.2f", amount)

	case strings.Contains(actionText, "raises"):
		kind = Raise
		var to float64
		if m := raisesRe.FindStringSubmatch(actionText); m != nil {
			amount = parseAmount(m[1])
			to = parseAmount(m[2])
			st.streetBets[name] = to
			st.pot += amount
		}
		desc = fmt.Sprintf("raises to $%.2f", to)

	case strings.Contains(actionText, "bets"):
		kind = Bet
		if m := betsRe.FindStringSubmatch(actionText); m != nil {
			amount = parseAmount(m[1])
			st.streetBets[name] = amount
			st.pot += amount
		}
		desc = fmt.Sprintf("bets $%.2f", amount)

	case strings.Contains(actionText, "checks"):
		kind = Check
		desc = "checks"

	case strings.Contains(actionText, "collected"):
		// The pot counter is already final here; the award is not added.
		kind = Collect
		if m := collectedRe.FindStringSubmatch(actionText); m != nil {
			amount = parseAmount(m[1])
		}
		desc = fmt.Sprintf("collected $%.2f", amount)

	default:
		return 0, 0, 0, "", false
	}

	return kind, amount, st.streetBets[name], desc, true
}

// parseUncalledReturn handles the site's "Uncalled bet $A returned to
// name" notice, which carries no colon. The amount leaves the pot and the
// event is attributed to no street commitment.
func (st *boardState) parseUncalledReturn(line string, players []PlayerSeat) (ActionEvent, bool) {
	if !strings.Contains(line, "Uncalled bet") || !strings.Contains(line, "returned to") {
		return ActionEvent{}, false
	}
	m := uncalledRe.FindStringSubmatch(line)
	if m == nil {
		return ActionEvent{}, false
	}
	amount := parseAmount(m[1])
	name := strings.TrimSpace(m[2])
	player := findPlayer(players, name)
	if player == nil {
		return ActionEvent{}, false
	}

	st.pot -= amount
	st.number++
	return ActionEvent{
		Number:      st.number,
		Street:      st.street,
		Player:      name,
		Seat:        player.Seat,
		Kind:        ReturnUncalled,
		Amount:      amount,
		StreetTotal: 0,
		PotBefore:   st.pot + amount,
		PotAfter:    st.pot,
		Board:       append([]deck.Card(nil), st.board...),
		Description: fmt.Sprintf("uncalled bet $%.2f returned", amount),
	}, true
}

// splitActorLine splits a "name: text" line when the text carries a known
// action verb.
func splitActorLine(line string) (name, actionText string, ok bool) {
	i := strings.Index(line, ":")
	if i < 0 {
		return "", "", false
	}
	lower := strings.ToLower(line)
	matched := false
	for _, kw := range actionKeywords {
		if strings.Contains(lower, kw) {
			matched = true
			break
		}
	}
	if !matched {
		return "", "", false
	}
	return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:]), true
}

func findPlayer(players []PlayerSeat, name string) *PlayerSeat {
	for i := range players {
		if players[i].Name == name {
			return &players[i]
		}
	}
	return nil
}
