package snake

import (
	"time"

	"github.com/hoshinonyaruko/snake-term/structs"
	"github.com/hoshinonyaruko/snake-term/terminal"
)

// RunSession drives one game to its end on the given screen. Each tick
// renders the current frame, consumes at most one pending keystroke,
// advances the game and sleeps for the current tick delay. The game is
// mutated only from this goroutine.
func RunSession(g *Game, scr terminal.Screen) {
	for !g.Over {
		scr.Flush(BuildFrame(g))

		if ev, ok := scr.PollKey(); ok {
			handleKey(g, ev)
			if g.Over {
				// quit key wins over any pending movement
				return
			}
		}

		g.Advance()
		if g.Over {
			return
		}

		time.Sleep(g.TickDelay())
	}
}

// handleKey maps one keystroke to a direction change or a quit. Keys
// outside the control set are dropped.
func handleKey(g *Game, ev terminal.KeyEvent) {
	if ev.Dir != structs.DirNone {
		g.ApplyDirection(ev.Dir)
		return
	}
	switch ev.Ch {
	case 'w', 'W':
		g.ApplyDirection(structs.DirUp)
	case 's', 'S':
		g.ApplyDirection(structs.DirDown)
	case 'a', 'A':
		g.ApplyDirection(structs.DirLeft)
	case 'd', 'D':
		g.ApplyDirection(structs.DirRight)
	case 'q', 'Q', terminal.CtrlC:
		g.Quit()
	}
}
