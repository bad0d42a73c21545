package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/campus-ai/tutor/core/chat"
)

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	tutorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	sourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// renderer incrementally prints the transcript snapshots the surface
// publishes. Text deltas of the in-progress assistant turn are appended in
// place for a typewriter effect; closeLine finishes the open line and
// prints the turn's sources once the stream has settled.
type renderer struct {
	out io.Writer

	turn    int // index of the first turn not fully printed
	partial int // bytes of that turn already printed
}

func newRenderer(out io.Writer) *renderer {
	return &renderer{out: out}
}

// render prints everything the last snapshot added. Safe against the
// transcript being replaced wholesale (new session) or the active turn's
// text being rewritten (error substitution).
func (r *renderer) render(turns []chat.Turn) {
	if len(turns) <= r.turn {
		// transcript replaced by a fresh session
		if r.partial > 0 {
			fmt.Fprintln(r.out)
		}
		r.turn, r.partial = 0, 0
	}

	for i := r.turn; i < len(turns); i++ {
		turn := turns[i]

		if r.partial == 0 {
			fmt.Fprint(r.out, r.prefix(turn.Role))
		}
		if len(turn.Text) < r.partial {
			// active turn text was rewritten; start the line over
			fmt.Fprint(r.out, "\n"+r.prefix(turn.Role))
			r.partial = 0
		}
		fmt.Fprint(r.out, turn.Text[r.partial:])

		if i < len(turns)-1 {
			fmt.Fprintln(r.out)
			r.turn = i + 1
			r.partial = 0
		} else {
			r.turn = i
			r.partial = len(turn.Text)
		}
	}
}

// closeLine terminates the in-progress line after a turn has settled and
// lists the cited sources, if any.
func (r *renderer) closeLine(turns []chat.Turn) {
	if len(turns) == 0 {
		return
	}

	if r.partial > 0 || r.turn < len(turns) {
		fmt.Fprintln(r.out)
	}

	last := turns[len(turns)-1]
	for _, source := range last.Sources {
		fmt.Fprintln(r.out, sourceStyle.Render(fmt.Sprintf("  - %s: %s", source.Title, source.URI)))
	}

	r.turn = len(turns)
	r.partial = 0
}

func (r *renderer) prefix(role chat.Role) string {
	if role == chat.RoleUser {
		return userStyle.Render("You: ")
	}
	return tutorStyle.Render("Tutor: ")
}
