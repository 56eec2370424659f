package football

import "fmt"

var fallbackNames = map[Position]string{
	QB: "the quarterback",
	RB: "the running back",
	K:  "the kicker",
	P:  "the punter",
}

// name returns the starter's name at pos for side, or a generic phrase
// when the lineup has nobody there.
func (g *Game) name(side Side, pos Position) string {
	if p, ok := g.Lineups[side].Starter(pos); ok && p.Name != "" {
		return p.Name
	}
	return fallbackNames[pos]
}

// describe renders the play-by-play line. It reads only finished play data
// and never draws from the random stream.
func (e *Engine) describe(g *Game, p Play) string {
	off := p.Offense
	switch p.Type {
	case PlayRun:
		rb := g.name(off, RB)
		switch p.Result {
		case ResultTouchdown:
			return fmt.Sprintf("%s runs %d yards for a touchdown", rb, p.Yards)
		case ResultSafety:
			return fmt.Sprintf("%s is tackled in the end zone for a safety", rb)
		case ResultFumble:
			return fmt.Sprintf("%s fumbles after %s, recovered by the defense", rb, yardsPhrase(p.Yards))
		}
		return fmt.Sprintf("%s runs for %s", rb, yardsPhrase(p.Yards)) + firstDownSuffix(p)

	case PlayPass:
		qb := g.name(off, QB)
		switch p.Result {
		case ResultTouchdown:
			return fmt.Sprintf("%s throws a %d-yard touchdown pass", qb, p.Yards)
		case ResultSafety:
			return fmt.Sprintf("%s is sacked in the end zone for a safety", qb)
		case ResultSack:
			return fmt.Sprintf("%s is sacked for a loss of %d", qb, -p.Yards)
		case ResultIncomplete:
			return fmt.Sprintf("%s throws incomplete", qb)
		case ResultInterception:
			return fmt.Sprintf("%s is intercepted", qb)
		}
		return fmt.Sprintf("%s completes a pass for %s", qb, yardsPhrase(p.Yards)) + firstDownSuffix(p)

	case PlayPunt:
		punter := g.name(off, P)
		if p.Position+p.Kick >= 100 {
			return fmt.Sprintf("%s punts into the end zone for a touchback", punter)
		}
		return fmt.Sprintf("%s punts %d yards", punter, p.Kick)

	default:
		kicker := g.name(off, K)
		verdict := "is good"
		if p.Result == ResultFieldGoalMissed {
			verdict = "is no good"
		}
		return fmt.Sprintf("%s's %d-yard field goal %s", kicker, p.Kick, verdict)
	}
}

func yardsPhrase(yards int) string {
	switch {
	case yards == 0:
		return "no gain"
	case yards == 1:
		return "1 yard"
	case yards == -1:
		return "a loss of 1 yard"
	case yards < 0:
		return fmt.Sprintf("a loss of %d yards", -yards)
	}
	return fmt.Sprintf("%d yards", yards)
}

func firstDownSuffix(p Play) string {
	switch {
	case p.FirstDown:
		return ", first down"
	case p.OutOfBounds:
		return ", out of bounds"
	}
	return ""
}
