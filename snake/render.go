package snake

import (
	"fmt"
	"strings"

	"github.com/hoshinonyaruko/snake-term/structs"
)

// Field glyphs, fixed by the classic terminal look.
const (
	GlyphBorder = '#'
	GlyphFood   = '@'
	GlyphHead   = 'O'
	GlyphBody   = 'o'
	GlyphBlank  = ' '
)

// Hint is the control line printed under the score.
const Hint = "Controls: W A S D or arrow keys. Press 'q' to quit."

// BuildFrame renders the full field as text: a border ring around the
// playfield, then the score line and the control hint. Every tick
// rebuilds the frame from scratch.
func BuildFrame(g *Game) string {
	var b strings.Builder

	border := strings.Repeat(string(GlyphBorder), g.Width+2)
	b.WriteString(border)
	b.WriteByte('\n')

	for y := 0; y < g.Height; y++ {
		b.WriteRune(GlyphBorder)
		for x := 0; x < g.Width; x++ {
			b.WriteRune(g.cellGlyph(x, y))
		}
		b.WriteRune(GlyphBorder)
		b.WriteByte('\n')
	}

	b.WriteString(border)
	b.WriteByte('\n')
	fmt.Fprintf(&b, "Score: %d\n", g.Score)
	b.WriteString(Hint)
	b.WriteByte('\n')
	return b.String()
}

func (g *Game) cellGlyph(x, y int) rune {
	p := structs.Position{X: x, Y: y}
	if p == g.Food {
		return GlyphFood
	}
	for i, seg := range g.Body {
		if seg == p {
			if i == 0 {
				return GlyphHead
			}
			return GlyphBody
		}
	}
	return GlyphBlank
}
