// Package render writes game transcripts for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/TwiN/go-color"

	"github.com/evanmacbride/beat-wordle/internal/game"
	"github.com/evanmacbride/beat-wordle/internal/sim"
	"github.com/evanmacbride/beat-wordle/internal/solver"
)

const (
	verboseHeader = "T  GUESS  SCORE        REMAINING" + "%*s" + "SIZE\n" +
		"_  _____  ___________  _________" + "%*s" + "____\n"
	quietHeader = "T  GUESS  SCORE\n_  _____  ___________\n"

	previewWidth = 75
)

// Tile colours, darkest for Absent and brightest for Exact.
var tileColors = [...]string{
	game.Absent:  color.Red,
	game.Present: color.Blue,
	game.Exact:   color.Cyan,
}

// Printer writes transcripts to w. It is not safe for concurrent use.
type Printer struct {
	w       io.Writer
	verbose bool
	plain   bool
}

// New returns a Printer. Verbose adds mode banners and candidate previews;
// plain drops the ANSI colours.
func New(w io.Writer, verbose, plain bool) *Printer {
	return &Printer{w: w, verbose: verbose, plain: plain}
}

// Tiles renders guess in upper case, one colour per feedback code.
func Tiles(guess game.Word, fb game.Feedback, plain bool) string {
	up := strings.ToUpper(string(guess))
	if plain {
		return up
	}
	var b strings.Builder
	for i := 0; i < len(up); i++ {
		c := color.Reset
		if i < len(fb) && int(fb[i]) < len(tileColors) {
			c = tileColors[fb[i]]
		}
		b.WriteString(color.Ize(c, up[i:i+1]))
	}
	return b.String()
}

// Banner names the rule behind a policy decision, e.g.
// "***BREAKER MODE*** too many words remain". The opening and default rules
// have no banner.
func Banner(d solver.Decision) string {
	switch d.Reason {
	case solver.ReasonOpening, solver.ReasonDefault:
		return ""
	}
	return fmt.Sprintf("***%s MODE*** %s", strings.ToUpper(d.Mode.String()), d.Reason)
}

// Preview lists the candidates shown next to a guess: the first few words,
// then the set size.
func Preview(words []game.Word, size int) string {
	ss := make([]string, len(words))
	for i, w := range words {
		ss[i] = string(w)
	}
	s := strings.Join(ss, ", ")
	if size > len(words) {
		return fmt.Sprintf("%s... %4d", s, size)
	}
	return fmt.Sprintf("%-*s%d", previewWidth, s, size)
}

// Header writes the column header.
func (p *Printer) Header() {
	if p.verbose {
		fmt.Fprintf(p.w, verboseHeader, previewWidth-len("REMAINING")+2, "", previewWidth-len("_________")+2, "")
		return
	}
	fmt.Fprint(p.w, quietHeader)
}

// Turn writes one guess line, preceded by its banner in verbose mode.
func (p *Printer) Turn(t sim.Turn) {
	if p.verbose {
		if b := Banner(t.Move.Decision); b != "" {
			fmt.Fprintln(p.w, b)
		}
	}
	line := fmt.Sprintf("%d: %s %v", t.TurnsRemaining, Tiles(t.Move.Word, t.Feedback, p.plain), t.Feedback.Ints())
	if p.verbose {
		line += " " + Preview(t.Preview, t.Candidates)
	}
	fmt.Fprintln(p.w, line)
}

// Game writes a whole game: header (verbose only), turns and the outcome.
func (p *Printer) Game(r sim.Result) {
	if p.verbose {
		p.Header()
	}
	for _, t := range r.Turns {
		p.Turn(t)
	}
	if r.Won {
		fmt.Fprintln(p.w, "YOU WIN")
	} else {
		fmt.Fprintln(p.w, "YOU LOSE")
		fmt.Fprintln(p.w, "SOLN WAS:", strings.ToUpper(string(r.Solution)))
		fmt.Fprintln(p.w, "Remaining words:")
		for _, w := range r.Remaining {
			fmt.Fprintln(p.w, w)
		}
	}
	fmt.Fprintln(p.w)
}

// Summary writes the batch statistics and the lost solutions.
func (p *Printer) Summary(s *sim.Summary) {
	fmt.Fprintf(p.w, "%d / %d ... WIN RATE: %.4f  AVG TURNS PLAYED: %.4f\n",
		s.Wins, s.Games, s.WinRate, s.AvgTurns)
	if len(s.Lost) > 0 {
		fmt.Fprintln(p.w, "LOST ON:")
		for _, w := range s.Lost {
			fmt.Fprintln(p.w, w)
		}
	}
}
