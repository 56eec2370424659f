package config

import "github.com/lox/gridiron/internal/football"

// DefaultLeague returns a four-team league with one week scheduled.
func DefaultLeague() *League {
	l := &League{
		Name: "Coastal League",
		Seed: 1,
		Teams: []TeamConfig{
			defaultTeam("hbr", "Harbor Pilots", 82, 74, []string{
				"Ray Okafor", "Dante Mills", "Cole Brandt", "Isaac Ferro", "Owen Tully",
				"Marcus Hale", "Jonah Reyes", "Tariq Vance", "Eli Sutter", "Nate Ballard", "Sam Whitlock",
			}),
			defaultTeam("rdg", "Ridge Rams", 77, 80, []string{
				"Luca Brennan", "Andre Poole", "Kofi Mensah", "Wes Carrow", "Brody Lund",
				"Victor Osei", "Caleb Dunn", "Ronan Pike", "Theo Grange", "Milo Carter", "Jude Fenn",
			}),
			defaultTeam("mes", "Mesa Coyotes", 75, 73, []string{
				"Quentin Shaw", "Rico Alvarez", "Devin Marsh", "Pat Kowalski", "Hugo Lindqvist",
				"Gabe Morrow", "Tyrell Banks", "Shane Ocampo", "Luis Herrera", "Drew Castle", "Finn Abbott",
			}),
			defaultTeam("frt", "Fort Sentinels", 70, 78, []string{
				"Miles Varga", "Jamal Price", "Aaron Blythe", "Kurt Ellison", "Reid Navarro",
				"Omar Kaya", "Beau Saxton", "Colin Nash", "Ivan Petrov", "Grant Tolliver", "Ben Acosta",
			}),
		},
		Games: []GameConfig{
			{ID: "week1-1", Home: "hbr", Away: "rdg"},
			{ID: "week1-2", Home: "mes", Away: "frt"},
		},
	}
	l.applyDefaults()
	return l
}

// defaultTeam assigns names to positions in football.Positions order. Skill
// players are rated off the offense, the rest off the defense.
func defaultTeam(id, name string, offense, defense int, names []string) TeamConfig {
	t := TeamConfig{ID: id, Name: name, Offense: offense, Defense: defense}
	for i, pos := range football.Positions {
		if i >= len(names) {
			break
		}
		rating := defense
		switch pos {
		case football.QB, football.RB, football.WR, football.TE, football.OL, football.K, football.P:
			rating = offense
		}
		t.Players = append(t.Players, PlayerConfig{
			Name:     names[i],
			Position: string(pos),
			Rating:   min(rating+(i%3)-1, MaxRating),
		})
	}
	return t
}
