package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/gridiron/internal/football"
)

// GameResult is the summary of one simulated game from the home side's
// point of view.
type GameResult struct {
	Seed      int64  // RNG seed for this game (for replay)
	Score     [2]int // Final score, indexed by football.Side
	Overtime  int    // Overtime periods played
	Drives    int
	Plays     int
	Turnovers int
	// DriveResults counts how each drive ended.
	DriveResults map[football.DriveResult]int
}

// Margin is home points minus away points.
func (r GameResult) Margin() int {
	return r.Score[football.Home] - r.Score[football.Away]
}

// FromResult summarises a finished game.
func FromResult(seed int64, res *football.Result) GameResult {
	r := GameResult{
		Seed:         seed,
		Score:        res.Game.Score,
		Overtime:     res.Game.Overtime,
		Drives:       len(res.Drives),
		DriveResults: make(map[football.DriveResult]int),
	}
	for _, d := range res.Drives {
		r.Plays += len(d.Plays)
		r.DriveResults[d.Result]++
		if d.Result == football.DriveInterception || d.Result == football.DriveFumble {
			r.Turnovers++
		}
	}
	return r
}

// SideStats tracks one side's scoring.
type SideStats struct {
	Wins   int
	Points int
	SumPts float64
	SumSq  float64
}

// Statistics accumulates results across many games.
type Statistics struct {
	Games       int
	SumMargin   float64
	SumMargin2  float64   // Sum of squares for variance calculation
	Values      []float64 // All margins for median/percentile calculation
	Sides       [2]SideStats
	Overtimes   int // Games that needed overtime
	OTPeriods   int
	Drives      int
	Plays       int
	Turnovers   int
	Blowouts    int // Games decided by more than 21
	OneScore    int // Games decided by 8 or fewer
	Shutouts    int
	MaxMargin   int
	HighScoring int // Games with 60 or more combined points

	DriveResults map[football.DriveResult]int
}

// Add incorporates a game result.
func (s *Statistics) Add(r GameResult) {
	margin := float64(r.Margin())
	s.Games++
	s.SumMargin += margin
	s.SumMargin2 += margin * margin
	s.Values = append(s.Values, margin)

	for side := range 2 {
		pts := r.Score[side]
		s.Sides[side].Points += pts
		s.Sides[side].SumPts += float64(pts)
		s.Sides[side].SumSq += float64(pts * pts)
		if pts == 0 {
			s.Shutouts++
		}
	}
	switch {
	case r.Margin() > 0:
		s.Sides[football.Home].Wins++
	case r.Margin() < 0:
		s.Sides[football.Away].Wins++
	}

	if r.Overtime > 0 {
		s.Overtimes++
		s.OTPeriods += r.Overtime
	}
	s.Drives += r.Drives
	s.Plays += r.Plays
	s.Turnovers += r.Turnovers

	abs := r.Margin()
	if abs < 0 {
		abs = -abs
	}
	if abs > 21 {
		s.Blowouts++
	}
	if abs <= 8 {
		s.OneScore++
	}
	s.MaxMargin = max(s.MaxMargin, abs)
	if r.Score[0]+r.Score[1] >= 60 {
		s.HighScoring++
	}

	if s.DriveResults == nil {
		s.DriveResults = make(map[football.DriveResult]int)
	}
	for k, v := range r.DriveResults {
		s.DriveResults[k] += v
	}
}

// Merge folds other into s. Values keep s's order followed by other's.
func (s *Statistics) Merge(other *Statistics) {
	s.Games += other.Games
	s.SumMargin += other.SumMargin
	s.SumMargin2 += other.SumMargin2
	s.Values = append(s.Values, other.Values...)
	for side := range 2 {
		s.Sides[side].Wins += other.Sides[side].Wins
		s.Sides[side].Points += other.Sides[side].Points
		s.Sides[side].SumPts += other.Sides[side].SumPts
		s.Sides[side].SumSq += other.Sides[side].SumSq
	}
	s.Overtimes += other.Overtimes
	s.OTPeriods += other.OTPeriods
	s.Drives += other.Drives
	s.Plays += other.Plays
	s.Turnovers += other.Turnovers
	s.Blowouts += other.Blowouts
	s.OneScore += other.OneScore
	s.Shutouts += other.Shutouts
	s.MaxMargin = max(s.MaxMargin, other.MaxMargin)
	s.HighScoring += other.HighScoring
	if len(other.DriveResults) > 0 && s.DriveResults == nil {
		s.DriveResults = make(map[football.DriveResult]int)
	}
	for k, v := range other.DriveResults {
		s.DriveResults[k] += v
	}
}

// Mean returns the mean home margin per game.
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumMargin / float64(s.Games)
}

// Variance returns the sample variance of the margin.
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumMargin2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of the margin.
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean margin.
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean margin.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate returns the fraction of games side won.
func (s *Statistics) WinRate(side football.Side) float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Sides[side].Wins) / float64(s.Games)
}

// WinRateCI95 returns the normal-approximation 95% interval for WinRate.
func (s *Statistics) WinRateCI95(side football.Side) (float64, float64) {
	if s.Games == 0 {
		return 0, 0
	}
	p := s.WinRate(side)
	margin := 1.96 * math.Sqrt(p*(1-p)/float64(s.Games))
	return math.Max(0, p-margin), math.Min(1, p+margin)
}

// PointsPerGame returns side's mean score.
func (s *Statistics) PointsPerGame(side football.Side) float64 {
	if s.Games == 0 {
		return 0
	}
	return s.Sides[side].SumPts / float64(s.Games)
}

// OvertimeRate returns the fraction of games that went to overtime.
func (s *Statistics) OvertimeRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Overtimes) / float64(s.Games)
}

// DrivesPerGame returns the mean number of drives.
func (s *Statistics) DrivesPerGame() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Drives) / float64(s.Games)
}

// PlaysPerGame returns the mean number of plays.
func (s *Statistics) PlaysPerGame() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Plays) / float64(s.Games)
}

// Median returns the median margin.
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the margin at percentile p (0.0 to 1.0).
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
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

// IsLedgerBalanced checks the margin sum against the per-side points.
func (s *Statistics) IsLedgerBalanced() bool {
	diff := float64(s.Sides[football.Home].Points - s.Sides[football.Away].Points)
	return math.Abs(s.SumMargin-diff) <= 1e-6
}

// Validate checks the accumulated data for consistency.
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: margin=%.0f, home=%d, away=%d",
			s.SumMargin, s.Sides[football.Home].Points, s.Sides[football.Away].Points)
	}
	if len(s.Values) != s.Games {
		return fmt.Errorf("values length (%d) does not match games count (%d)", len(s.Values), s.Games)
	}
	if wins := s.Sides[0].Wins + s.Sides[1].Wins; wins != s.Games {
		return fmt.Errorf("wins (%d) do not match games (%d): a game ended tied", wins, s.Games)
	}
	if s.Overtimes > s.Games || s.OTPeriods < s.Overtimes {
		return fmt.Errorf("overtime counts inconsistent: games=%d periods=%d", s.Overtimes, s.OTPeriods)
	}
	total := 0
	for _, v := range s.DriveResults {
		total += v
	}
	if total != s.Drives {
		return fmt.Errorf("drive results total (%d) does not match drives (%d)", total, s.Drives)
	}
	return nil
}
