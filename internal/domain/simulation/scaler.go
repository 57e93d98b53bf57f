// Package simulation holds the pure transfer-scaling transform and its
// result shapes. Nothing here touches storage or transport.
package simulation

import "math"

// Params tune the scaling transform.
//
// Sensitivity amplifies rating differences (1.0 linear, 2.0 squared, 3.0
// cubed). PositionWeight softens the cohort-context ratios relative to the
// rating exponent. MultiplierMin/Max bound the final multiplier so rating
// outliers cannot extrapolate pathologically.
type Params struct {
	Sensitivity    float64
	PositionWeight float64
	MultiplierMin  float64
	MultiplierMax  float64
}

func DefaultParams() Params {
	return Params{
		Sensitivity:    2.0,
		PositionWeight: 0.4,
		MultiplierMin:  0.3,
		MultiplierMax:  3.0,
	}
}

// RatingPair carries the source and destination rating of one dimension.
type RatingPair struct {
	From float64
	To   float64
}

// CohortAverages carries the four position-group means backing one metric's
// context adjustment. A nil side means that cohort was unavailable.
type CohortAverages struct {
	FromTeam   *float64
	ToTeam     *float64
	FromLeague *float64
	ToLeague   *float64
}

// Multiplier computes the clamped scaling multiplier for one metric.
//
// The team ratio is To/From while the league ratio is From/To: moving to a
// stronger team amplifies output directly, moving to a weaker-rated league
// amplifies it inversely. Zero or missing ratings fall back to ratio 1.0
// instead of dividing by zero. Each cohort pair contributes only when both
// sides are present and positive.
func Multiplier(team, league RatingPair, averages CohortAverages, usePosition bool, p Params) float64 {
	teamRatio := 1.0
	if team.From > 0 {
		teamRatio = team.To / team.From
	}
	leagueRatio := 1.0
	if league.To > 0 {
		leagueRatio = league.From / league.To
	}

	multiplier := math.Pow(teamRatio, p.Sensitivity) * math.Pow(leagueRatio, p.Sensitivity)

	if usePosition {
		contextEffect := 1.0
		if usablePair(averages.FromTeam, averages.ToTeam) {
			contextEffect *= math.Pow(*averages.ToTeam / *averages.FromTeam, p.PositionWeight)
		}
		if usablePair(averages.FromLeague, averages.ToLeague) {
			contextEffect *= math.Pow(*averages.ToLeague / *averages.FromLeague, p.PositionWeight)
		}
		multiplier *= contextEffect
	}

	if multiplier < p.MultiplierMin {
		return p.MultiplierMin
	}
	if multiplier > p.MultiplierMax {
		return p.MultiplierMax
	}

	return multiplier
}

// Scale converts one current metric value into its predicted value at the
// destination. A nil value stays nil and never reaches the multiplier.
func Scale(value *float64, team, league RatingPair, averages CohortAverages, usePosition bool, p Params) *float64 {
	if value == nil {
		return nil
	}
	scaled := Round2(*value * Multiplier(team, league, averages, usePosition, p))
	return &scaled
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func usablePair(from, to *float64) bool {
	return from != nil && to != nil && *from > 0 && *to > 0
}
