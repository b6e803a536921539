package main

// Time of day markers
const (
	TimeNight = "night"
	TimeDay   = "day"
)

// Player is one seat at the table.
type Player struct {
	Name  string
	Role  Role
	Alive bool
}

// GameState is the bookkeeping for one run. Only the day counter and the
// time-of-day marker ever change; votes and night actions are recorded as the
// raw text each player produced and are never applied.
type GameState struct {
	DayCount     int
	TimeOfDay    string
	Players      []Player
	Dead         []string
	Votes        map[string]string
	NightActions map[string]string
	GameOver     bool
	Winner       string
}

func newGameState(players []Player) *GameState {
	return &GameState{
		TimeOfDay:    TimeNight,
		Players:      players,
		Votes:        make(map[string]string),
		NightActions: make(map[string]string),
	}
}

// beginDay advances the counter and clears the per-day records.
func (s *GameState) beginDay() {
	s.DayCount++
	s.TimeOfDay = TimeNight
	clear(s.Votes)
	clear(s.NightActions)
}

func (s *GameState) alivePlayers() []Player {
	var alive []Player
	for _, p := range s.Players {
		if p.Alive {
			alive = append(alive, p)
		}
	}
	return alive
}

func (s *GameState) aliveNames() []string {
	var names []string
	for _, p := range s.alivePlayers() {
		names = append(names, p.Name)
	}
	return names
}

func (s *GameState) playersWithRole(role Role) []Player {
	var out []Player
	for _, p := range s.Players {
		if p.Role == role {
			out = append(out, p)
		}
	}
	return out
}

func (s *GameState) aliveWithRole(role Role) []Player {
	var out []Player
	for _, p := range s.playersWithRole(role) {
		if p.Alive {
			out = append(out, p)
		}
	}
	return out
}
