package stats

import (
	"fmt"
	"math"
	"sort"
)

// Session accumulates per-hand records into aggregate rates and profit
// distribution figures for a whole batch.
type Session struct {
	Hands     int
	SumProfit float64
	// SumProfit2 is the sum of squared profits for variance calculation.
	SumProfit2 float64
	Profits    []float64

	SumProfitBeforeRake float64
	SumRake             float64

	VPIPCount    int
	PFRCount     int
	SawFlopCount int

	ThreeBets             int
	ThreeBetOpportunities int
	FourBets              int
	FourBetOpportunities  int

	CBetsFlop              int
	CBetFlopOpportunities  int
	CBetsTurn              int
	CBetTurnOpportunities  int
	CBetsRiver             int
	CBetRiverOpportunities int

	WentToShowdown int
	WonAtShowdown  int
	WonWhenSawFlop int

	PotTypes map[string]int
}

// NewSession returns an empty accumulator.
func NewSession() *Session {
	return &Session{PotTypes: make(map[string]int)}
}

// Add incorporates one hand's record into the session.
func (s *Session) Add(d *DerivedStats) {
	s.Hands++
	s.SumProfit += d.NetProfit
	s.SumProfit2 += d.NetProfit * d.NetProfit
	s.Profits = append(s.Profits, d.NetProfit)
	s.SumProfitBeforeRake += d.NetProfitBeforeRake
	s.SumRake += d.RakeAmount

	count(&s.VPIPCount, d.VPIP)
	count(&s.PFRCount, d.PreflopRaised)
	count(&s.SawFlopCount, d.SawFlop)
	count(&s.ThreeBets, d.ThreeBet)
	count(&s.ThreeBetOpportunities, d.ThreeBetOpportunity)
	count(&s.FourBets, d.FourBet)
	count(&s.FourBetOpportunities, d.FourBetOpportunity)
	count(&s.CBetsFlop, d.CBetFlop)
	count(&s.CBetFlopOpportunities, d.CBetFlopOpportunity)
	count(&s.CBetsTurn, d.CBetTurn)
	count(&s.CBetTurnOpportunities, d.CBetTurnOpportunity)
	count(&s.CBetsRiver, d.CBetRiver)
	count(&s.CBetRiverOpportunities, d.CBetRiverOpportunity)
	count(&s.WentToShowdown, d.WentToShowdown)
	count(&s.WonAtShowdown, d.WonAtShowdown)
	count(&s.WonWhenSawFlop, d.WonWhenSawFlop)

	if d.PotType != "" {
		s.PotTypes[d.PotType]++
	}
}

func count(c *int, b bool) {
	if b {
		*c++
	}
}

// VPIPRate and friends return percentages over the relevant denominator.
func (s *Session) VPIPRate() float64     { return rate(s.VPIPCount, s.Hands) }
func (s *Session) PFRRate() float64      { return rate(s.PFRCount, s.Hands) }
func (s *Session) ThreeBetRate() float64 { return rate(s.ThreeBets, s.ThreeBetOpportunities) }
func (s *Session) FourBetRate() float64  { return rate(s.FourBets, s.FourBetOpportunities) }
func (s *Session) CBetFlopRate() float64 { return rate(s.CBetsFlop, s.CBetFlopOpportunities) }
func (s *Session) CBetTurnRate() float64 { return rate(s.CBetsTurn, s.CBetTurnOpportunities) }
func (s *Session) CBetRiverRate() float64 {
	return rate(s.CBetsRiver, s.CBetRiverOpportunities)
}

// WTSDRate is the share of flop-seeing hands that reached showdown.
func (s *Session) WTSDRate() float64 { return rate(s.WentToShowdown, s.SawFlopCount) }

// WSDRate is the share of showdowns won (the W$SD figure).
func (s *Session) WSDRate() float64 { return rate(s.WonAtShowdown, s.WentToShowdown) }

func rate(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

// MeanProfit returns the arithmetic mean profit per hand.
func (s *Session) MeanProfit() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumProfit / float64(s.Hands)
}

// Variance returns the sample variance of per-hand profit.
func (s *Session) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.MeanProfit()
	return (s.SumProfit2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of per-hand profit.
func (s *Session) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// Median returns the median per-hand profit.
func (s *Session) Median() float64 {
	if len(s.Profits) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Profits))
	copy(sorted, s.Profits)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the per-hand profit at the given percentile (0.0 to 1.0).
func (s *Session) Percentile(p float64) float64 {
	if len(s.Profits) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Profits))
	copy(sorted, s.Profits)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate performs consistency checks on the accumulated data.
func (s *Session) Validate() error {
	if s.Hands < 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Profits) != s.Hands {
		return fmt.Errorf("profits array length (%d) does not match hands count (%d)",
			len(s.Profits), s.Hands)
	}
	if s.ThreeBets > s.ThreeBetOpportunities {
		return fmt.Errorf("3-bets (%d) exceed opportunities (%d)", s.ThreeBets, s.ThreeBetOpportunities)
	}
	if s.FourBets > s.FourBetOpportunities {
		return fmt.Errorf("4-bets (%d) exceed opportunities (%d)", s.FourBets, s.FourBetOpportunities)
	}
	if s.WonAtShowdown > s.WentToShowdown {
		return fmt.Errorf("showdown wins (%d) exceed showdowns (%d)", s.WonAtShowdown, s.WentToShowdown)
	}
	return nil
}
