package model

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

const (
	gridPosBlock = "█"
	gridPosEmpty = " "

	ansiClear = "\033[H\033[2J"
)

// Renderer draws one generation of a grid
type Renderer interface {
	Display(g *Grid, generation int, status string) error
	Close() error
}

// Control is a user request coming from an interactive renderer
type Control int

const (
	ControlQuit Control = iota
	ControlPause
)

// Controller is implemented by renderers that accept keyboard input
type Controller interface {
	Controls() <-chan Control
}

// TerminalRenderer draws a framed grid as plain text
type TerminalRenderer struct {
	Out       io.Writer
	AliveChar string
	DeadChar  string
	// NoClear skips the clear-screen sequence before each frame
	NoClear bool
}

// NewTerminalRenderer returns a renderer writing to out with the default characters
func NewTerminalRenderer(out io.Writer) *TerminalRenderer {
	return &TerminalRenderer{Out: out, AliveChar: gridPosBlock, DeadChar: gridPosEmpty}
}

// Display renders the grid inside a box with a generation header
func (r *TerminalRenderer) Display(g *Grid, generation int, status string) error {
	var (
		sb  strings.Builder
		bar = strings.Repeat("═", g.width)
	)

	if !r.NoClear {
		sb.WriteString(ansiClear)
	}
	sb.WriteString("╔" + bar + "╗\n")
	fmt.Fprintf(&sb, "║%-*s║\n", g.width, fmt.Sprintf(" Generation: %d", generation))
	sb.WriteString("╠" + bar + "╣\n")
	for y := range g.height {
		sb.WriteString("║")
		for x := range g.width {
			if g.cells[g.index(x, y)] == Alive {
				sb.WriteString(r.AliveChar)
			} else {
				sb.WriteString(r.DeadChar)
			}
		}
		sb.WriteString("║\n")
	}
	sb.WriteString("╚" + bar + "╝\n")
	if status != "" {
		sb.WriteString(status + "\n")
	}

	if _, err := io.WriteString(r.Out, sb.String()); err != nil {
		return errors.Wrap(err, "[TerminalRenderer.Display] failed to write frame")
	}
	return nil
}

// Close is a no-op; the writer belongs to the caller
func (r *TerminalRenderer) Close() error { return nil }

// ScreenRenderer draws generations on a full-screen tcell display
type ScreenRenderer struct {
	screen     tcell.Screen
	aliveStyle tcell.Style
	textStyle  tcell.Style
	controls   chan Control
	closeOnce  sync.Once
}

// NewScreenRenderer initialises screen, or the real terminal when screen is nil
func NewScreenRenderer(screen tcell.Screen) (*ScreenRenderer, error) {
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return nil, errors.Wrap(err, "[NewScreenRenderer] creating screen")
		}
	}
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "[NewScreenRenderer] initializing screen")
	}
	screen.HideCursor()
	screen.Clear()

	r := &ScreenRenderer{
		screen:     screen,
		aliveStyle: tcell.StyleDefault.Foreground(tcell.ColorGreen),
		textStyle:  tcell.StyleDefault.Bold(true),
		controls:   make(chan Control, 8),
	}
	go r.pollEvents()
	return r, nil
}

// Controls reports quit and pause key presses
func (r *ScreenRenderer) Controls() <-chan Control { return r.controls }

// pollEvents runs until the screen is finalized, when PollEvent returns nil
func (r *ScreenRenderer) pollEvents() {
	defer close(r.controls)
	for {
		switch ev := r.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			r.screen.Sync()
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
				r.send(ControlQuit)
			case ev.Rune() == ' ':
				r.send(ControlPause)
			}
		}
	}
}

// send drops the control when nobody is reading, so polling never blocks
func (r *ScreenRenderer) send(c Control) {
	select {
	case r.controls <- c:
	default:
	}
}

// Display draws a header line then the grid, two screen columns per cell
func (r *ScreenRenderer) Display(g *Grid, generation int, status string) error {
	r.screen.Clear()

	header := fmt.Sprintf("Generation: %d", generation)
	if status != "" {
		header += " | " + status
	}
	for i, ch := range []rune(header) {
		r.screen.SetContent(i, 0, ch, nil, r.textStyle)
	}

	for y := range g.height {
		for x := range g.width {
			if g.cells[g.index(x, y)] != Alive {
				continue
			}
			r.screen.SetContent(x*2, y+1, '█', nil, r.aliveStyle)
			r.screen.SetContent(x*2+1, y+1, '█', nil, r.aliveStyle)
		}
	}
	r.screen.Show()
	return nil
}

// Close restores the terminal
func (r *ScreenRenderer) Close() error {
	r.closeOnce.Do(r.screen.Fini)
	return nil
}
