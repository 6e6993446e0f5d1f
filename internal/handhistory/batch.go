package handhistory

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Input is one already-read source of hand-history text. The caller owns
// all I/O; Name is carried through for diagnostics only.
type Input struct {
	Name string
	Text string
}

// BatchResult aggregates the output of a multi-source parse.
type BatchResult struct {
	Hands   []*HandRecord
	Skipped []SkippedHand
	// Sources counts the inputs that contributed at least one hand.
	Sources int
}

// ParseBatch parses every input concurrently and merges the results,
// sorted by hand timestamp. Inputs are independent so workers share no
// state; workers bounds the parallelism (<=0 means one worker per input).
// The context cancels remaining inputs, returning what was parsed so far
// alongside ctx.Err.
func (p *Parser) ParseBatch(ctx context.Context, inputs []Input, workers int) (*BatchResult, error) {
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	var (
		mu     sync.Mutex
		result BatchResult
	)
	for _, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			hands, skipped := p.ParseText(in.Text)

			mu.Lock()
			defer mu.Unlock()
			result.Hands = append(result.Hands, hands...)
			result.Skipped = append(result.Skipped, skipped...)
			if len(hands) > 0 {
				result.Sources++
			}
			return nil
		})
	}
	err := g.Wait()

	sort.SliceStable(result.Hands, func(i, j int) bool {
		return result.Hands[i].Timestamp.Before(result.Hands[j].Timestamp)
	})
	return &result, err
}
