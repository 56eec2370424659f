package football

import "fmt"

// Tuning collects the hand-tuned constants of the clock, outcome and
// play-calling models. DefaultTuning returns the calibrated set; league files
// may override individual fields.
type Tuning struct {
	// Game structure. OvertimeStart is measured from the offense's own
	// goal line, so the default 75 is the opponent's 25.
	QuarterSeconds    int `json:"quarter_seconds"`
	FirstDownDistance int `json:"first_down_distance"`
	OvertimeStart     int `json:"overtime_start"`
	MaxDrivePlays     int `json:"max_drive_plays"`
	MaxGameDrives     int `json:"max_game_drives"`

	// Ratings.
	HomeFieldBonus int     `json:"home_field_bonus"`
	RatingScale    float64 `json:"rating_scale"`
	MultiplierMin  float64 `json:"multiplier_min"`
	MultiplierMax  float64 `json:"multiplier_max"`

	// Yardage. Positive draws are amplified by x + x*x/Amplify.
	RunMean     float64 `json:"run_mean"`
	RunStdDev   float64 `json:"run_std_dev"`
	PassMean    float64 `json:"pass_mean"`
	PassStdDev  float64 `json:"pass_std_dev"`
	Amplify     float64 `json:"amplify"`
	MaxPlayGain int     `json:"max_play_gain"`

	// Discrete events: base rate, execution swing and clamp band.
	SackRate          float64 `json:"sack_rate"`
	SackSwing         float64 `json:"sack_swing"`
	CompletionRate    float64 `json:"completion_rate"`
	CompletionSwing   float64 `json:"completion_swing"`
	InterceptionRate  float64 `json:"interception_rate"`
	InterceptionSwing float64 `json:"interception_swing"`
	FumbleRate        float64 `json:"fumble_rate"`
	FumbleSwing       float64 `json:"fumble_swing"`
	RateBand          float64 `json:"rate_band"`
	RateCeiling       float64 `json:"rate_ceiling"`
	OutOfBoundsRate   float64 `json:"out_of_bounds_rate"`

	// Kicking.
	FieldGoalAllowance   int     `json:"field_goal_allowance"`
	PuntNet              int     `json:"punt_net"`
	Touchback            int     `json:"touchback"`
	KickoffTouchback     int     `json:"kickoff_touchback"`
	KickoffTouchbackRate float64 `json:"kickoff_touchback_rate"`
	KickoffReturnMin     int     `json:"kickoff_return_min"`
	KickoffReturnMax     int     `json:"kickoff_return_max"`

	// Clock windows in seconds left in the quarter.
	LateHalfWindow int `json:"late_half_window"`
	LateGameWindow int `json:"late_game_window"`

	// Play calling.
	PassWeightBase       float64 `json:"pass_weight_base"`
	PassWeightMin        float64 `json:"pass_weight_min"`
	PassWeightMax        float64 `json:"pass_weight_max"`
	AvgPossessionSeconds int     `json:"avg_possession_seconds"`
	MinFieldGoalChance   float64 `json:"min_field_goal_chance"`
	LongYardage          int     `json:"long_yardage"`
	MediumYardage        int     `json:"medium_yardage"`
	ShortYardage         int     `json:"short_yardage"`
	LongBonus            float64 `json:"long_bonus"`
	MediumBonus          float64 `json:"medium_bonus"`
	ShortPenalty         float64 `json:"short_penalty"`
	TrailingLateBonus    float64 `json:"trailing_late_bonus"`
	LeadingLatePenalty   float64 `json:"leading_late_penalty"`
	LastSecondsKick      int     `json:"last_seconds_kick"`

	// Fourth down table, by field position.
	OwnTerritoryLine      int `json:"own_territory_line"`
	ScoringTerritoryLine  int `json:"scoring_territory_line"`
	GoalToGoLine          int `json:"goal_to_go_line"`
	DesperationLine       int `json:"desperation_line"`
	MidfieldGoDistance    int `json:"midfield_go_distance"`
	ShortGoDistance       int `json:"short_go_distance"`
	GoalToGoGoDistance    int `json:"goal_to_go_go_distance"`
	DesperationGoDistance int `json:"desperation_go_distance"`
}

// DefaultTuning returns the calibrated constants.
func DefaultTuning() Tuning {
	return Tuning{
		QuarterSeconds:    900,
		FirstDownDistance: 10,
		OvertimeStart:     75,
		MaxDrivePlays:     200,
		MaxGameDrives:     400,

		HomeFieldBonus: 3,
		RatingScale:    0.012,
		MultiplierMin:  0.6,
		MultiplierMax:  1.6,

		RunMean:     3.0,
		RunStdDev:   4.2,
		PassMean:    7.5,
		PassStdDev:  6.5,
		Amplify:     25,
		MaxPlayGain: 99,

		SackRate:          0.065,
		SackSwing:         0.10,
		CompletionRate:    0.63,
		CompletionSwing:   0.25,
		InterceptionRate:  0.07,
		InterceptionSwing: 0.10,
		FumbleRate:        0.012,
		FumbleSwing:       0.02,
		RateBand:          0.6,
		RateCeiling:       0.95,
		OutOfBoundsRate:   0.12,

		FieldGoalAllowance:   17,
		PuntNet:              40,
		Touchback:            20,
		KickoffTouchback:     25,
		KickoffTouchbackRate: 0.62,
		KickoffReturnMin:     12,
		KickoffReturnMax:     40,

		LateHalfWindow: 120,
		LateGameWindow: 300,

		PassWeightBase:       0.55,
		PassWeightMin:        0.15,
		PassWeightMax:        0.90,
		AvgPossessionSeconds: 150,
		MinFieldGoalChance:   0.30,
		LongYardage:          7,
		MediumYardage:        4,
		ShortYardage:         2,
		LongBonus:            0.25,
		MediumBonus:          0.10,
		ShortPenalty:         0.20,
		TrailingLateBonus:    0.20,
		LeadingLatePenalty:   0.25,
		LastSecondsKick:      10,

		OwnTerritoryLine:      40,
		ScoringTerritoryLine:  60,
		GoalToGoLine:          90,
		DesperationLine:       65,
		MidfieldGoDistance:    1,
		ShortGoDistance:       2,
		GoalToGoGoDistance:    3,
		DesperationGoDistance: 4,
	}
}

// Validate rejects tunings the engine cannot run with.
func (t Tuning) Validate() error {
	switch {
	case t.QuarterSeconds <= 0:
		return fmt.Errorf("quarter_seconds must be positive, got %d", t.QuarterSeconds)
	case t.FirstDownDistance <= 0 || t.FirstDownDistance >= 100:
		return fmt.Errorf("first_down_distance must be in 1-99, got %d", t.FirstDownDistance)
	case t.OvertimeStart <= 0 || t.OvertimeStart >= 100:
		return fmt.Errorf("overtime_start must be in 1-99, got %d", t.OvertimeStart)
	case t.Touchback <= 0 || t.Touchback >= 100:
		return fmt.Errorf("touchback must be in 1-99, got %d", t.Touchback)
	case t.KickoffTouchback <= 0 || t.KickoffTouchback >= 100:
		return fmt.Errorf("kickoff_touchback must be in 1-99, got %d", t.KickoffTouchback)
	case t.KickoffReturnMin <= 0 || t.KickoffReturnMax >= 100 || t.KickoffReturnMin > t.KickoffReturnMax:
		return fmt.Errorf("kickoff return range %d-%d is invalid", t.KickoffReturnMin, t.KickoffReturnMax)
	case t.MultiplierMin <= 0 || t.MultiplierMin > t.MultiplierMax:
		return fmt.Errorf("multiplier range %.2f-%.2f is invalid", t.MultiplierMin, t.MultiplierMax)
	case t.PassWeightMin < 0 || t.PassWeightMax > 1 || t.PassWeightMin > t.PassWeightMax:
		return fmt.Errorf("pass weight range %.2f-%.2f is invalid", t.PassWeightMin, t.PassWeightMax)
	case t.Amplify <= 0:
		return fmt.Errorf("amplify must be positive, got %.2f", t.Amplify)
	case t.AvgPossessionSeconds <= 0:
		return fmt.Errorf("avg_possession_seconds must be positive, got %d", t.AvgPossessionSeconds)
	case t.MaxDrivePlays <= 0 || t.MaxGameDrives <= 0:
		return fmt.Errorf("play and drive limits must be positive")
	case t.OwnTerritoryLine > t.ScoringTerritoryLine || t.ScoringTerritoryLine > t.GoalToGoLine:
		return fmt.Errorf("fourth down lines %d/%d/%d must ascend", t.OwnTerritoryLine, t.ScoringTerritoryLine, t.GoalToGoLine)
	case t.OwnTerritoryLine <= 0 || t.GoalToGoLine >= 100 || t.DesperationLine <= 0 || t.DesperationLine >= 100:
		return fmt.Errorf("fourth down lines must be in 1-99")
	case t.RateCeiling <= 0 || t.RateCeiling >= 1:
		return fmt.Errorf("rate_ceiling must be in (0,1), got %.2f", t.RateCeiling)
	case t.PuntNet <= 0:
		return fmt.Errorf("punt_net must be positive, got %d", t.PuntNet)
	case t.FieldGoalAllowance < 0:
		return fmt.Errorf("field_goal_allowance must not be negative, got %d", t.FieldGoalAllowance)
	case t.MaxPlayGain <= 0:
		return fmt.Errorf("max_play_gain must be positive, got %d", t.MaxPlayGain)
	case t.RunStdDev < 0 || t.PassStdDev < 0:
		return fmt.Errorf("yardage deviations must not be negative")
	case t.LateHalfWindow < 0 || t.LateGameWindow < 0:
		return fmt.Errorf("clock windows must not be negative")
	}
	for _, r := range []struct {
		name string
		v    float64
	}{
		{"sack_rate", t.SackRate},
		{"completion_rate", t.CompletionRate},
		{"interception_rate", t.InterceptionRate},
		{"fumble_rate", t.FumbleRate},
		{"out_of_bounds_rate", t.OutOfBoundsRate},
		{"kickoff_touchback_rate", t.KickoffTouchbackRate},
		{"pass_weight_base", t.PassWeightBase},
		{"min_field_goal_chance", t.MinFieldGoalChance},
	} {
		if r.v < 0 || r.v > 1 {
			return fmt.Errorf("%s must be in [0,1], got %.3f", r.name, r.v)
		}
	}
	return nil
}
