package structs

import "time"

// Position is one cell on the game field.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Direction is a movement direction on the field.
type Direction int

const (
	DirNone Direction = iota
	DirLeft
	DirRight
	DirUp
	DirDown
)

// Delta returns the unit vector for one step in this direction.
// DirNone moves nowhere.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	}
	return 0, 0
}

// Opposite returns the direct reverse of this direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	}
	return DirNone
}

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	}
	return "none"
}

// Why a session ended, stored with every score row.
const (
	CauseWall = "wall-collision"
	CauseSelf = "self-collision"
	CauseQuit = "quit"
)

// ScoreRecord is one finished session as kept in the Scores table.
type ScoreRecord struct {
	ID       int64     `json:"id"`
	Score    int       `json:"score"`
	Length   int       `json:"length"`
	Ticks    int64     `json:"ticks"`
	Cause    string    `json:"cause"`
	PlayedAt time.Time `json:"played_at"`
}

// Snapshot is the final board of a finished session.
type Snapshot struct {
	Width   int        `json:"width"`
	Height  int        `json:"height"`
	Body    []Position `json:"body"` // front is the head
	Food    Position   `json:"food"`
	Score   int        `json:"score"`
	Ticks   int64      `json:"ticks"`
	Cause   string     `json:"cause"`
	EndedAt time.Time  `json:"ended_at"`
}
