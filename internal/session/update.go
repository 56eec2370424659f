package session

import "github.com/lox/gridiron/internal/football"

// Update is what a session call produced, plus where the game now stands.
type Update struct {
	Plays      []football.Play  `json:"plays,omitempty"`
	Drives     []football.Drive `json:"drives,omitempty"`
	Scoreboard Scoreboard       `json:"scoreboard"`
	// Prompt is set when the next snap is the human team's to call.
	Prompt *Prompt `json:"prompt,omitempty"`
}

// Scoreboard is the game state a caller displays between plays.
type Scoreboard struct {
	Teams  [2]string      `json:"teams"`
	Score  [2]int         `json:"score"`
	Period string         `json:"period"`
	Clock  string         `json:"clock"`
	Final  bool           `json:"final"`
	Winner *football.Side `json:"winner,omitempty"`

	// Ball is unset once the game is final.
	Ball     *football.Side `json:"ball,omitempty"`
	Down     int            `json:"down,omitempty"`
	ToGo     int            `json:"to_go,omitempty"`
	Position int            `json:"position,omitempty"`
}

// Prompt describes the decision the human coach faces.
type Prompt struct {
	Down            int             `json:"down"`
	ToGo            int             `json:"to_go"`
	Position        int             `json:"position"`
	Calls           []football.Call `json:"calls"`
	FieldGoalChance float64         `json:"field_goal_chance"`
	PointsNeeded    int             `json:"points_needed"`
	// Advice is what the automatic caller would do on fourth down. It is
	// empty on other downs, where the policy flips a weighted coin.
	Advice football.Call `json:"advice,omitempty"`
}

// Prompt returns the pending decision, or nil when the human team does not
// have the ball.
func (s *Session) Prompt() *Prompt {
	if !s.started || s.game.Final || s.err != nil || !s.coached || s.cursor.Drive.Offense != s.human {
		return nil
	}
	sit := s.game.Situation(s.cursor)
	policy := s.engine.Policy()
	p := &Prompt{
		Down:            s.cursor.Down,
		ToGo:            s.cursor.ToGo,
		Position:        s.cursor.Position,
		Calls:           football.Calls,
		FieldGoalChance: s.engine.Outcome().FieldGoalChance(s.cursor.Position),
		PointsNeeded:    policy.PointsNeeded(sit),
	}
	if s.cursor.Down == 4 {
		p.Advice = policy.FourthDown(sit)
	}
	return p
}

func (s *Session) update(plays []football.Play, drives []football.Drive) Update {
	g := s.game
	sb := Scoreboard{
		Teams:  [2]string{g.Teams[football.Home].Name, g.Teams[football.Away].Name},
		Score:  g.Score,
		Period: g.Period(),
		Clock:  g.Clock(),
		Final:  g.Final,
	}
	if g.Final {
		winner := g.Winner
		sb.Winner = &winner
	} else if s.started {
		ball := s.cursor.Drive.Offense
		sb.Ball = &ball
		sb.Down = s.cursor.Down
		sb.ToGo = s.cursor.ToGo
		sb.Position = s.cursor.Position
	}
	return Update{
		Plays:      plays,
		Drives:     drives,
		Scoreboard: sb,
		Prompt:     s.Prompt(),
	}
}
