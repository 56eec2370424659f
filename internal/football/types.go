package football

import "fmt"

// Side identifies one of the two teams in a matchup.
type Side int

const (
	Home Side = iota
	Away
)

// Other returns the opposing side.
func (s Side) Other() Side {
	return 1 - s
}

func (s Side) String() string {
	switch s {
	case Home:
		return "home"
	case Away:
		return "away"
	default:
		return "unknown"
	}
}

// Team is the immutable view of a team the simulation reads from.
type Team struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Offense int    `json:"offense"`
	Defense int    `json:"defense"`
}

// Position is a roster slot used for descriptions and stat attribution.
type Position string

const (
	QB Position = "QB"
	RB Position = "RB"
	WR Position = "WR"
	TE Position = "TE"
	OL Position = "OL"
	DL Position = "DL"
	LB Position = "LB"
	CB Position = "CB"
	S  Position = "S"
	K  Position = "K"
	P  Position = "P"
)

// Positions lists every position in display order.
var Positions = []Position{QB, RB, WR, TE, OL, DL, LB, CB, S, K, P}

// Player is a starter eligible to appear in the play log.
type Player struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Position Position `json:"position"`
	Rating   int      `json:"rating"`
}

// Lineup holds a team's starters keyed by position.
type Lineup map[Position][]Player

// Starter returns the highest rated player at pos. Ties keep roster order.
func (l Lineup) Starter(pos Position) (Player, bool) {
	players := l[pos]
	if len(players) == 0 {
		return Player{}, false
	}
	best := players[0]
	for _, p := range players[1:] {
		if p.Rating > best.Rating {
			best = p
		}
	}
	return best, true
}

// Matchup is everything the engine needs from the schedule and roster
// collaborators for one game.
type Matchup struct {
	ID      string    `json:"id"`
	Teams   [2]Team   `json:"teams"`
	Lineups [2]Lineup `json:"lineups"`
	Neutral bool      `json:"neutral"`
}

// PlayType is the kind of snap the offense runs.
type PlayType string

const (
	PlayRun       PlayType = "run"
	PlayPass      PlayType = "pass"
	PlayPunt      PlayType = "punt"
	PlayFieldGoal PlayType = "field_goal"
)

// PlayResult is the football outcome of a single snap.
type PlayResult string

const (
	ResultGain            PlayResult = "gain"
	ResultComplete        PlayResult = "complete"
	ResultIncomplete      PlayResult = "incomplete"
	ResultSack            PlayResult = "sack"
	ResultInterception    PlayResult = "interception"
	ResultFumble          PlayResult = "fumble"
	ResultTouchdown       PlayResult = "touchdown"
	ResultSafety          PlayResult = "safety"
	ResultPunt            PlayResult = "punt"
	ResultFieldGoalGood   PlayResult = "field_goal_good"
	ResultFieldGoalMissed PlayResult = "field_goal_missed"
)

// DriveResult is how a possession ended. The empty value marks a drive
// still in progress.
type DriveResult string

const (
	DriveInProgress      DriveResult = ""
	DriveTouchdown       DriveResult = "touchdown"
	DriveFieldGoal       DriveResult = "field_goal"
	DriveMissedFieldGoal DriveResult = "missed_field_goal"
	DrivePunt            DriveResult = "punt"
	DriveTurnoverOnDowns DriveResult = "turnover_on_downs"
	DriveInterception    DriveResult = "interception"
	DriveFumble          DriveResult = "fumble"
	DriveSafety          DriveResult = "safety"
	DriveEndOfHalf       DriveResult = "end_of_half"
	DriveEndOfGame       DriveResult = "end_of_game"
)

// Points returns the points the result is worth and whether they go to the
// defense.
func (r DriveResult) Points() (points int, toDefense bool) {
	switch r {
	case DriveTouchdown:
		return 7, false
	case DriveFieldGoal:
		return 3, false
	case DriveSafety:
		return 2, true
	default:
		return 0, false
	}
}

// Scoring reports whether the result put points on the board.
func (r DriveResult) Scoring() bool {
	p, _ := r.Points()
	return p > 0
}

// Tempo is the pace the offense plays at.
type Tempo string

const (
	TempoNormal Tempo = "normal"
	TempoFast   Tempo = "fast"
	TempoChew   Tempo = "chew"
)

// Call is a play-calling decision for one snap.
type Call string

const (
	CallAuto      Call = "auto"
	CallRun       Call = "run"
	CallPass      Call = "pass"
	CallPunt      Call = "punt"
	CallFieldGoal Call = "field_goal"
)

// Calls lists the decisions a caller can submit.
var Calls = []Call{CallRun, CallPass, CallPunt, CallFieldGoal, CallAuto}

// ParseCall accepts the canonical names plus the short forms used at a
// prompt.
func ParseCall(s string) (Call, error) {
	switch s {
	case "run", "r":
		return CallRun, nil
	case "pass", "p":
		return CallPass, nil
	case "punt":
		return CallPunt, nil
	case "field_goal", "fg", "kick":
		return CallFieldGoal, nil
	case "auto", "a", "":
		return CallAuto, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownCall)
}

func (c Call) playType() (PlayType, bool) {
	switch c {
	case CallRun:
		return PlayRun, true
	case CallPass:
		return PlayPass, true
	case CallPunt:
		return PlayPunt, true
	case CallFieldGoal:
		return PlayFieldGoal, true
	}
	return "", false
}
