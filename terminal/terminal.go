// Thin screen adapter between the game loop and the terminal. It only
// redraws frames and decodes keystrokes; no game rules live here.
package terminal

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/hoshinonyaruko/snake-term/structs"
)

// CtrlC is the control rune delivered when the interrupt key is hit.
const CtrlC rune = 0x03

// KeyEvent is one decoded keystroke. Arrow keys arrive with Dir set,
// printable keys with Ch set.
type KeyEvent struct {
	Dir structs.Direction
	Ch  rune
}

// Screen is the display and input contract the game loop runs against.
type Screen interface {
	// Flush clears the display and redraws the full frame.
	Flush(frame string)
	// PollKey returns one pending keystroke without blocking.
	PollKey() (KeyEvent, bool)
	// Close restores the terminal. Call it on every exit path.
	Close()
}

// TcellScreen is the production Screen on top of tcell.
type TcellScreen struct {
	s      tcell.Screen
	events chan tcell.Event
}

var glyphStyles = map[rune]tcell.Style{
	'#': tcell.StyleDefault.Foreground(tcell.ColorGray),
	'@': tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
	'O': tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true),
	'o': tcell.StyleDefault.Foreground(tcell.ColorGreen),
}

// NewTcellScreen puts the terminal into raw, non-echoing mode and
// starts the event pump.
func NewTcellScreen() (*TcellScreen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault)
	s.HideCursor()
	s.Clear()

	t := &TcellScreen{s: s, events: make(chan tcell.Event, 32)}
	go t.pump()
	return t, nil
}

// pump feeds tcell events into a buffered channel so the game loop can
// poll without blocking. Keystrokes beyond the buffer are dropped.
// PollEvent returns nil once the screen is finalized, which ends the
// pump.
func (t *TcellScreen) pump() {
	for {
		ev := t.s.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		default:
		}
	}
}

// Flush redraws the whole frame, one rune per cell.
func (t *TcellScreen) Flush(frame string) {
	t.s.Clear()
	for row, line := range strings.Split(frame, "\n") {
		col := 0
		for _, r := range line {
			style, ok := glyphStyles[r]
			if !ok {
				style = tcell.StyleDefault
			}
			t.s.SetContent(col, row, r, nil, style)
			col++
		}
	}
	t.s.Show()
}

// PollKey returns the next pending keystroke, if any. Resize events in
// the queue are consumed along the way.
func (t *TcellScreen) PollKey() (KeyEvent, bool) {
	for {
		select {
		case ev := <-t.events:
			switch e := ev.(type) {
			case *tcell.EventKey:
				return decodeKey(e), true
			case *tcell.EventResize:
				t.s.Sync()
			}
		default:
			return KeyEvent{}, false
		}
	}
}

// Close releases the terminal back to cooked mode.
func (t *TcellScreen) Close() {
	t.s.Fini()
}

// decodeKey translates a tcell key event. Keys outside the control set
// come out as the zero KeyEvent and are dropped by the loop.
func decodeKey(e *tcell.EventKey) KeyEvent {
	switch e.Key() {
	case tcell.KeyUp:
		return KeyEvent{Dir: structs.DirUp}
	case tcell.KeyDown:
		return KeyEvent{Dir: structs.DirDown}
	case tcell.KeyLeft:
		return KeyEvent{Dir: structs.DirLeft}
	case tcell.KeyRight:
		return KeyEvent{Dir: structs.DirRight}
	case tcell.KeyCtrlC:
		return KeyEvent{Ch: CtrlC}
	case tcell.KeyRune:
		return KeyEvent{Ch: e.Rune()}
	}
	return KeyEvent{}
}
