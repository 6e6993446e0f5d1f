package stats

import (
	"fmt"
	"strconv"
)

// tableColumns is the stable flat projection consumed by CSV export and
// aggregate math. Order and names are a compatibility contract; do not
// reorder or rename without versioning the export.
var tableColumns = []string{
	"Hand_ID",
	"Timestamp",
	"Site",
	"Stakes",
	"Table_Name",
	"Position",
	"Hole_Cards",
	"Went_to_Showdown",
	"Won_at_Showdown",
	"Won_When_Saw_Flop",
	"Saw_Flop",
	"Total_Contributed",
	"Total_Collected",
	"Net_Profit",
	"Rake_Amount",
	"Net_Profit_Before_Rake",
	"Total_Pot_Size",
	"Preflop_Actions",
	"Flop_Actions",
	"Turn_Actions",
	"River_Actions",
	"Flop_Cards",
	"Turn_Card",
	"River_Card",
	"Preflop_Raised",
	"Preflop_Called",
	"VPIP",
	"Three_Bet",
	"Four_Bet",
	"Three_Bet_Opportunity",
	"Four_Bet_Opportunity",
	"Pot_Type",
	"CBet_Flop",
	"CBet_Turn",
	"CBet_River",
	"CBet_Flop_Opportunity",
	"CBet_Turn_Opportunity",
	"CBet_River_Opportunity",
}

// Columns returns the projection's column names in row order.
func Columns() []string {
	return append([]string(nil), tableColumns...)
}

// Row renders one record as strings aligned with Columns. Dollar amounts
// use two decimals, booleans render as true/false.
func (d *DerivedStats) Row() []string {
	return []string{
		d.HandID,
		d.Timestamp.Format("2006/01/02 15:04:05"),
		d.Site,
		d.Stakes,
		d.TableName,
		d.Position,
		d.HoleCards,
		strconv.FormatBool(d.WentToShowdown),
		strconv.FormatBool(d.WonAtShowdown),
		strconv.FormatBool(d.WonWhenSawFlop),
		strconv.FormatBool(d.SawFlop),
		dollars(d.TotalContributed),
		dollars(d.TotalCollected),
		dollars(d.NetProfit),
		dollars(d.RakeAmount),
		dollars(d.NetProfitBeforeRake),
		dollars(d.TotalPotSize),
		strconv.Itoa(d.PreflopActions),
		strconv.Itoa(d.FlopActions),
		strconv.Itoa(d.TurnActions),
		strconv.Itoa(d.RiverActions),
		d.FlopCards,
		d.TurnCard,
		d.RiverCard,
		strconv.FormatBool(d.PreflopRaised),
		strconv.FormatBool(d.PreflopCalled),
		strconv.FormatBool(d.VPIP),
		strconv.FormatBool(d.ThreeBet),
		strconv.FormatBool(d.FourBet),
		strconv.FormatBool(d.ThreeBetOpportunity),
		strconv.FormatBool(d.FourBetOpportunity),
		d.PotType,
		strconv.FormatBool(d.CBetFlop),
		strconv.FormatBool(d.CBetTurn),
		strconv.FormatBool(d.CBetRiver),
		strconv.FormatBool(d.CBetFlopOpportunity),
		strconv.FormatBool(d.CBetTurnOpportunity),
		strconv.FormatBool(d.CBetRiverOpportunity),
	}
}

func dollars(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
