package handhistory

import (
	"errors"
	"fmt"

	"github.com/coder/quartz"

	"github.com/lukefish591/cardsharpner/internal/deck"
)

// DefaultHeroMarker is the literal player name used to identify the hero
// unless a parser is configured otherwise.
const DefaultHeroMarker = "Hero"

// Config configures a Parser. Zero values select the defaults.
type Config struct {
	// Hero is the literal name that marks the tracked player.
	Hero string
	// Clock supplies the timestamp fallback for hands without one.
	Clock quartz.Clock
}

// Parser turns raw hand-history text into HandRecords.
type Parser struct {
	hero  string
	clock quartz.Clock
}

// New creates a Parser, applying defaults for unset config fields.
func New(cfg Config) *Parser {
	if cfg.Hero == "" {
		cfg.Hero = DefaultHeroMarker
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	return &Parser{hero: cfg.Hero, clock: cfg.Clock}
}

// ErrNoHandContent reports a segment with nothing recognizable in it.
var ErrNoHandContent = errors.New("no recognizable hand content")

// ParseHand parses one hand segment into a HandRecord. Field extraction is
// best-effort: a missing header field defaults rather than failing. An
// error is returned only when the segment cannot produce a plausible
// record at all.
func (p *Parser) ParseHand(text string) (*HandRecord, error) {
	rec := &HandRecord{
		HandID:     extractHandID(text),
		Site:       extractSite(text),
		Timestamp:  extractTimestamp(text, p.clock),
		TableName:  extractTableName(text),
		ButtonSeat: extractButtonSeat(text),
		MaxSeats:   extractMaxSeats(text),
	}
	rec.SmallBlind, rec.BigBlind = extractStakes(text)
	if rec.BigBlind > 0 {
		rec.Stakes = fmt.Sprintf("$%v/$%v", rec.SmallBlind, rec.BigBlind)
	}

	rec.Players = extractPlayers(text, p.hero)
	if len(rec.Players) == 0 {
		return nil, fmt.Errorf("hand %q: %w", rec.HandID, ErrNoHandContent)
	}
	assignPositions(rec.Players, rec.ButtonSeat)
	attachHoleCards(text, rec.Players)

	rec.Actions = extractActions(text, rec.Players)
	rec.Flop, rec.Turn, rec.River = splitBoard(rec.Actions)

	extractOutcome(text, rec)
	return rec, nil
}

// ParseText segments a raw blob and parses every hand in it. Hands that
// cannot be parsed are reported as SkippedHand diagnostics and never abort
// their siblings. A blob with no hand marker yields empty results.
func (p *Parser) ParseText(text string) ([]*HandRecord, []SkippedHand) {
	var (
		records []*HandRecord
		skipped []SkippedHand
	)
	for i, segment := range SplitHands(text) {
		rec, err := p.ParseHand(segment)
		if err != nil {
			skipped = append(skipped, SkippedHand{
				Index:  i,
				HandID: extractHandID(segment),
				Err:    err,
			})
			continue
		}
		records = append(records, rec)
	}
	return records, skipped
}

// splitBoard derives the flop/turn/river card groups from the last board
// snapshot in the action log.
func splitBoard(actions []ActionEvent) (flop, turn, river []deck.Card) {
	var board []deck.Card
	for i := len(actions) - 1; i >= 0; i-- {
		if len(actions[i].Board) > 0 {
			board = actions[i].Board
			break
		}
	}
	if len(board) >= 3 {
		flop = append(flop, board[:3]...)
	}
	if len(board) >= 4 {
		turn = append(turn, board[3])
	}
	if len(board) >= 5 {
		river = append(river, board[4])
	}
	return flop, turn, river
}
