package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lukefish591/cardsharpner/internal/deck"
	"github.com/lukefish591/cardsharpner/internal/handhistory"
	"github.com/lukefish591/cardsharpner/internal/replay"
)

// ReplayCmd reconstructs table state at each point of a hand.
type ReplayCmd struct {
	File        string `arg:"" help:"Hand history file" type:"path"`
	Hand        string `help:"Hand ID to replay (default: first hand in the file)"`
	Step        int    `default:"-1" help:"Show only the state before this action index"`
	Interactive bool   `short:"i" help:"Open the interactive viewer"`
	Hero        string `help:"Player name tracked as the hero (overrides config)"`
}

func (cmd *ReplayCmd) Run(cli *CLI) error {
	cfg, err := LoadConfig(cli.Config)
	if err != nil {
		return err
	}
	if cmd.Hero != "" {
		cfg.Hero = cmd.Hero
	}

	data, err := os.ReadFile(filepath.Clean(cmd.File))
	if err != nil {
		return err
	}
	parser := handhistory.New(handhistory.Config{Hero: cfg.Hero})
	hands, skipped := parser.ParseText(string(data))
	if len(hands) == 0 {
		if len(skipped) > 0 {
			return fmt.Errorf("no parseable hands in %s (%d skipped)", cmd.File, len(skipped))
		}
		return fmt.Errorf("no hands found in %s", cmd.File)
	}

	hand, err := selectHand(hands, cmd.Hand)
	if err != nil {
		return err
	}

	if cmd.Interactive {
		program := tea.NewProgram(newReplayModel(hand), tea.WithAltScreen())
		_, err := program.Run()
		return err
	}

	if cmd.Step >= 0 {
		state, err := replay.StateAt(hand, cmd.Step)
		if err != nil {
			return err
		}
		fmt.Println(renderState(state))
		return nil
	}

	for i := 0; i <= len(hand.Actions); i++ {
		state, err := replay.StateAt(hand, i)
		if err != nil {
			return err
		}
		fmt.Println(renderState(state))
	}
	return nil
}

func selectHand(hands []*handhistory.HandRecord, id string) (*handhistory.HandRecord, error) {
	if id == "" {
		return hands[0], nil
	}
	for _, hand := range hands {
		if hand.HandID == id {
			return hand, nil
		}
	}
	return nil, fmt.Errorf("hand %q not found", id)
}

// renderState formats a single table snapshot for terminal display.
func renderState(state *replay.TableState) string {
	var b strings.Builder

	title := fmt.Sprintf(" Hand %s — action %d — %s ", state.HandID, state.ActionIndex, state.Street)
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")

	b.WriteString(handInfoStyle.Render(fmt.Sprintf("Pot: $%.2f", state.Pot)))
	if len(state.Board) > 0 {
		b.WriteString("  Board: ")
		b.WriteString(renderCards(state.Board))
	}
	b.WriteString("\n")

	for _, player := range state.Players {
		style := playerStyle
		if player.IsHero {
			style = heroStyle
		}
		if !player.Active {
			style = foldedStyle
		}
		line := fmt.Sprintf("  Seat %d %-12s %-12s stack $%.2f", player.Seat, player.Name, player.Position, player.Stack)
		if player.StreetBet > 0 {
			line += fmt.Sprintf("  bet $%.2f", player.StreetBet)
		}
		if !player.Active {
			line += "  (folded)"
		}
		b.WriteString(style.Render(line))
		if len(player.HoleCards) > 0 {
			b.WriteString("  ")
			b.WriteString(renderCards(player.HoleCards))
			if pct, ok := deck.HandPercentile(player.HoleCards); ok {
				b.WriteString(infoStyle.Render(fmt.Sprintf(" (top %.0f%%)", (1-pct)*100)))
			}
		}
		b.WriteString("\n")
	}

	if state.Next != nil {
		b.WriteString(actionStyle.Render(fmt.Sprintf("Next: %s", state.Next.Description)))
	} else {
		b.WriteString(infoStyle.Render("End of hand"))
	}
	b.WriteString("\n")
	return b.String()
}

func renderCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		if card.IsRed() {
			parts[i] = redCardStyle.Render(card.Notation())
		} else {
			parts[i] = blackCardStyle.Render(card.Notation())
		}
	}
	return strings.Join(parts, " ")
}
