package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/lukefish591/cardsharpner/internal/fileutil"
	"github.com/lukefish591/cardsharpner/internal/handhistory"
	"github.com/lukefish591/cardsharpner/internal/stats"
)

// AnalyzeCmd parses hand history files and writes per-hand statistics to CSV.
type AnalyzeCmd struct {
	Paths   []string `arg:"" name:"path" help:"Hand history files or directories" type:"path"`
	Output  string   `short:"o" help:"CSV output path (overrides config)"`
	Hero    string   `help:"Player name tracked as the hero (overrides config)"`
	Workers int      `help:"Parallel parse workers (overrides config)"`
	Summary bool     `default:"true" negatable:"" help:"Print the session summary"`
}

func (cmd *AnalyzeCmd) Run(cli *CLI) error {
	cfg, err := LoadConfig(cli.Config)
	if err != nil {
		return err
	}
	if cmd.Hero != "" {
		cfg.Hero = cmd.Hero
	}
	if cmd.Workers > 0 {
		cfg.Workers = cmd.Workers
	}
	if cmd.Output != "" {
		cfg.Output = cmd.Output
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}
	logger := setupLogger(cfg.LogLevel)

	inputs, err := collectInputs(cmd.Paths, cfg.Pattern)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no hand history files found in %s", strings.Join(cmd.Paths, ", "))
	}
	logger.Info("Parsing hand histories", "files", len(inputs), "hero", cfg.Hero, "workers", cfg.Workers)

	parser := handhistory.New(handhistory.Config{Hero: cfg.Hero})
	result, err := parser.ParseBatch(context.Background(), inputs, cfg.Workers)
	if err != nil {
		return err
	}
	for _, skipped := range result.Skipped {
		logger.Warn("Skipped malformed hand", "hand", skipped.HandID, "index", skipped.Index, "error", skipped.Err)
	}
	logger.Info("Parsed hands", "hands", len(result.Hands), "sources", result.Sources, "skipped", len(result.Skipped))

	session := stats.NewSession()
	rows := make([][]string, 0, len(result.Hands))
	for _, hand := range result.Hands {
		derived, err := stats.Derive(hand)
		if err != nil {
			logger.Warn("Skipping hand with inconsistent actions", "hand", hand.HandID, "error", err)
			continue
		}
		session.Add(derived)
		rows = append(rows, derived.Row())
	}

	if err := writeCSV(cfg.Output, rows); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.Output, err)
	}
	logger.Info("Wrote statistics", "path", cfg.Output, "rows", len(rows))

	if cmd.Summary {
		printSummary(session)
	}
	return nil
}

// collectInputs expands files and directories into named inputs. Walking
// a directory picks up files whose lowercased name matches the lowercased
// pattern; explicit file arguments are read regardless.
func collectInputs(paths []string, pattern string) ([]handhistory.Input, error) {
	pattern = strings.ToLower(pattern)
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			match, err := filepath.Match(pattern, strings.ToLower(d.Name()))
			if err != nil {
				return err
			}
			if match {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	inputs := make([]handhistory.Input, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(filepath.Clean(file))
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, handhistory.Input{Name: file, Text: string(data)})
	}
	return inputs, nil
}

// writeCSV renders the full table in memory and writes it atomically, so
// a concurrent reader never sees a half-written export.
func writeCSV(path string, rows [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(stats.Columns()); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(filepath.Clean(path), buf.Bytes(), 0o644)
}

func printSummary(s *stats.Session) {
	fmt.Println()
	fmt.Println(headerStyle.Render(" Session Summary "))
	fmt.Printf("%s %d\n", handInfoStyle.Render("Hands:"), s.Hands)
	if s.Hands == 0 {
		return
	}

	fmt.Printf("%s %.1f%%  %s %.1f%%\n",
		handInfoStyle.Render("VPIP:"), s.VPIPRate(),
		handInfoStyle.Render("PFR:"), s.PFRRate())
	fmt.Printf("%s %.1f%% (%d/%d)  %s %.1f%% (%d/%d)\n",
		handInfoStyle.Render("3-Bet:"), s.ThreeBetRate(), s.ThreeBets, s.ThreeBetOpportunities,
		handInfoStyle.Render("4-Bet:"), s.FourBetRate(), s.FourBets, s.FourBetOpportunities)
	fmt.Printf("%s flop %.1f%%, turn %.1f%%, river %.1f%%\n",
		handInfoStyle.Render("C-Bet:"), s.CBetFlopRate(), s.CBetTurnRate(), s.CBetRiverRate())
	fmt.Printf("%s %.1f%%  %s %.1f%%\n",
		handInfoStyle.Render("WTSD:"), s.WTSDRate(),
		handInfoStyle.Render("W$SD:"), s.WSDRate())

	profit := s.SumProfit
	style := profitStyle
	if profit < 0 {
		style = lossStyle
	}
	fmt.Printf("%s %s  %s %s\n",
		handInfoStyle.Render("Net:"), style.Render(fmt.Sprintf("$%.2f", profit)),
		handInfoStyle.Render("Before rake:"), fmt.Sprintf("$%.2f", s.SumProfitBeforeRake))
	fmt.Printf("%s mean $%.4f, median $%.4f, stddev $%.4f\n",
		handInfoStyle.Render("Per hand:"), s.MeanProfit(), s.Median(), s.StdDev())

	if len(s.PotTypes) > 0 {
		fmt.Println(handInfoStyle.Render("Pot types:"))
		for _, potType := range stats.PotTypeOrder() {
			if n := s.PotTypes[potType]; n > 0 {
				fmt.Printf("  %s %d\n", infoStyle.Render(potType+":"), n)
			}
		}
	}
}
