package snake

import (
	"math/rand"
	"testing"

	"github.com/hoshinonyaruko/snake-term/structs"
	"github.com/hoshinonyaruko/snake-term/terminal"
)

// scriptScreen feeds a fixed key sequence to the loop and counts the
// frames it is asked to draw.
type scriptScreen struct {
	keys   []terminal.KeyEvent
	frames int
	closed bool
}

func (s *scriptScreen) Flush(string) { s.frames++ }

func (s *scriptScreen) PollKey() (terminal.KeyEvent, bool) {
	if len(s.keys) == 0 {
		return terminal.KeyEvent{}, false
	}
	k := s.keys[0]
	s.keys = s.keys[1:]
	return k, true
}

func (s *scriptScreen) Close() { s.closed = true }

func loopGame() *Game {
	// 8x5 field, head at (4,2), food out of the running line
	return &Game{
		Width:       8,
		Height:      5,
		Body:        []structs.Position{{X: 4, Y: 2}, {X: 3, Y: 2}, {X: 2, Y: 2}},
		Dir:         structs.DirRight,
		Food:        structs.Position{X: 0, Y: 0},
		baseDelayMs: 1,
		minDelayMs:  1,
		rng:         rand.New(rand.NewSource(1)),
	}
}

func TestRunSessionQuitKeySkipsAdvance(t *testing.T) {
	g := loopGame()
	scr := &scriptScreen{keys: []terminal.KeyEvent{{Ch: 'q'}}}

	RunSession(g, scr)

	if !g.Over || g.Cause != structs.CauseQuit {
		t.Fatalf("expected quit, got over=%v cause=%q", g.Over, g.Cause)
	}
	if g.Ticks != 0 {
		t.Errorf("quit still advanced the game, ticks %d", g.Ticks)
	}
	if scr.frames != 1 {
		t.Errorf("expected 1 frame, got %d", scr.frames)
	}
	if scr.closed {
		t.Error("loop closed the screen, that is the driver's job")
	}
}

func TestRunSessionCtrlCQuits(t *testing.T) {
	g := loopGame()
	scr := &scriptScreen{keys: []terminal.KeyEvent{{Ch: terminal.CtrlC}}}

	RunSession(g, scr)

	if !g.Over || g.Cause != structs.CauseQuit {
		t.Fatalf("expected quit, got over=%v cause=%q", g.Over, g.Cause)
	}
}

func TestRunSessionRunsIntoWall(t *testing.T) {
	g := loopGame()
	scr := &scriptScreen{}

	RunSession(g, scr)

	if g.Cause != structs.CauseWall {
		t.Fatalf("expected wall collision, got %q", g.Cause)
	}
	// head moves 5,6,7 and dies entering 8
	if g.Ticks != 4 {
		t.Errorf("expected 4 ticks, got %d", g.Ticks)
	}
	if scr.frames != 4 {
		t.Errorf("expected 4 frames, got %d", scr.frames)
	}
	if head := g.Body[0]; head != (structs.Position{X: 7, Y: 2}) {
		t.Errorf("expected head frozen at (7,2), got %v", head)
	}
}

func TestRunSessionArrowKeyTurns(t *testing.T) {
	g := loopGame()
	scr := &scriptScreen{keys: []terminal.KeyEvent{{Dir: structs.DirDown}}}

	RunSession(g, scr)

	if g.Cause != structs.CauseWall {
		t.Fatalf("expected wall collision, got %q", g.Cause)
	}
	// turned down at (4,2): rows 3 and 4 pass, row 5 is the wall
	if g.Ticks != 3 {
		t.Errorf("expected 3 ticks, got %d", g.Ticks)
	}
	if head := g.Body[0]; head != (structs.Position{X: 4, Y: 4}) {
		t.Errorf("expected head frozen at (4,4), got %v", head)
	}
}

func TestRunSessionLetterKeyTurns(t *testing.T) {
	g := loopGame()
	scr := &scriptScreen{keys: []terminal.KeyEvent{{Ch: 'W'}}}

	RunSession(g, scr)

	if g.Cause != structs.CauseWall {
		t.Fatalf("expected wall collision, got %q", g.Cause)
	}
	// turned up at (4,2): rows 1 and 0 pass, row -1 is the wall
	if g.Ticks != 3 {
		t.Errorf("expected 3 ticks, got %d", g.Ticks)
	}
	if head := g.Body[0]; head != (structs.Position{X: 4, Y: 0}) {
		t.Errorf("expected head frozen at (4,0), got %v", head)
	}
}

func TestRunSessionIgnoresUnknownKeys(t *testing.T) {
	g := loopGame()
	scr := &scriptScreen{keys: []terminal.KeyEvent{{Ch: 'x'}, {Ch: '!'}, {}}}

	RunSession(g, scr)

	if g.Cause != structs.CauseWall {
		t.Fatalf("unknown keys changed the outcome, cause %q", g.Cause)
	}
	if g.Ticks != 4 {
		t.Errorf("expected 4 ticks, got %d", g.Ticks)
	}
}
