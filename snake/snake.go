// Core rules for one snake session.
package snake

import (
	"math/rand"
	"time"

	"github.com/hoshinonyaruko/snake-term/structs"
)

const (
	DefaultWidth       = 40
	DefaultHeight      = 20
	DefaultBaseDelayMs = 120
	DefaultMinDelayMs  = 40

	scorePerFood = 10
	startLength  = 3
)

// Options configures a new game. Zero values fall back to the defaults;
// a zero Seed draws one from the clock.
type Options struct {
	Width       int
	Height      int
	BaseDelayMs int
	MinDelayMs  int
	Seed        int64
}

// Game is the whole state of one running session. It is not safe for
// concurrent use; exactly one goroutine drives it.
type Game struct {
	Width  int
	Height int
	Body   []structs.Position // front is the head
	Food   structs.Position
	Dir    structs.Direction
	Score  int
	Ticks  int64
	Over   bool
	Cause  string

	baseDelayMs int
	minDelayMs  int
	rng         *rand.Rand
}

// NewGame builds a session: a three-segment snake centered on the
// field, heading right, with the first food already placed.
func NewGame(opts Options) *Game {
	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	if w < startLength+1 {
		w = startLength + 1
	}
	if h < 3 {
		h = 3
	}

	base := opts.BaseDelayMs
	if base <= 0 {
		base = DefaultBaseDelayMs
	}
	min := opts.MinDelayMs
	if min <= 0 {
		min = DefaultMinDelayMs
	}
	if min > base {
		min = base
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Game{
		Width:       w,
		Height:      h,
		Dir:         structs.DirRight,
		baseDelayMs: base,
		minDelayMs:  min,
		rng:         rand.New(rand.NewSource(seed)),
	}

	cx, cy := w/2, h/2
	g.Body = make([]structs.Position, 0, startLength)
	for i := 0; i < startLength; i++ {
		g.Body = append(g.Body, structs.Position{X: cx - i, Y: cy})
	}

	g.placeFood()
	return g
}

// ApplyDirection points the snake at d for the next advance. The direct
// reverse of the current direction is rejected so the head cannot fold
// onto the neck.
func (g *Game) ApplyDirection(d structs.Direction) {
	if d == structs.DirNone || d == g.Dir.Opposite() {
		return
	}
	g.Dir = d
}

// Advance moves the snake one cell. A wall or self collision ends the
// game and leaves the rest of the state untouched. Eating food grows
// the snake by one segment and places the next food.
func (g *Game) Advance() {
	if g.Over {
		return
	}
	g.Ticks++

	dx, dy := g.Dir.Delta()
	head := g.Body[0]
	next := structs.Position{X: head.X + dx, Y: head.Y + dy}

	if next.X < 0 || next.X >= g.Width || next.Y < 0 || next.Y >= g.Height {
		g.Over = true
		g.Cause = structs.CauseWall
		return
	}
	for _, seg := range g.Body {
		if seg == next {
			g.Over = true
			g.Cause = structs.CauseSelf
			return
		}
	}

	grown := make([]structs.Position, 1, len(g.Body)+1)
	grown[0] = next
	grown = append(grown, g.Body...)

	if next == g.Food {
		g.Body = grown
		g.Score += scorePerFood
		g.placeFood()
	} else {
		g.Body = grown[:len(grown)-1]
	}
}

// Quit ends the session immediately.
func (g *Game) Quit() {
	if g.Over {
		return
	}
	g.Over = true
	g.Cause = structs.CauseQuit
}

// TickDelay is how long the loop sleeps after the current tick. The
// delay shrinks as the score grows until it hits the floor.
func (g *Game) TickDelay() time.Duration {
	cut := g.Score / 5
	if limit := g.baseDelayMs - g.minDelayMs; cut > limit {
		cut = limit
	}
	return time.Duration(g.baseDelayMs-cut) * time.Millisecond
}

// TakeSnapshot copies the board for persistence and the web layer.
func (g *Game) TakeSnapshot() structs.Snapshot {
	body := make([]structs.Position, len(g.Body))
	copy(body, g.Body)
	return structs.Snapshot{
		Width:   g.Width,
		Height:  g.Height,
		Body:    body,
		Food:    g.Food,
		Score:   g.Score,
		Ticks:   g.Ticks,
		Cause:   g.Cause,
		EndedAt: time.Now(),
	}
}

// placeFood picks a random cell not covered by the snake. When the
// snake fills the whole field the food is parked off the board.
func (g *Game) placeFood() {
	if len(g.Body) >= g.Width*g.Height {
		g.Food = structs.Position{X: -1, Y: -1}
		return
	}
	for {
		p := structs.Position{X: g.rng.Intn(g.Width), Y: g.rng.Intn(g.Height)}
		if !g.occupied(p) {
			g.Food = p
			return
		}
	}
}

func (g *Game) occupied(p structs.Position) bool {
	for _, seg := range g.Body {
		if seg == p {
			return true
		}
	}
	return false
}
