package ui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/monsterarena/internal/cli"
)

// maxLog bounds the kept narration.
const maxLog = 500

// App runs a shell inside a full-screen terminal.
type App struct {
	term     Terminal
	renderer *Renderer
	shell    *cli.Shell
	editor   Editor
	log      []string
	running  bool
}

// NewApp creates an app drawing on term and feeding commands to shell.
func NewApp(term Terminal, palette *Palette, shell *cli.Shell) *App {
	return &App{
		term:     term,
		renderer: NewRenderer(term, palette),
		shell:    shell,
		log:      []string{"Type a command, e.g. \"competition Emberling Tidecub\". Esc quits."},
		running:  true,
	}
}

// Run executes the main loop until the operator quits.
func (a *App) Run(ctx context.Context) error {
	for a.running && !a.shell.Done() {
		a.renderer.Render(a.view())

		switch ev := a.term.PollEvent().(type) {
		case *tcell.EventKey:
			a.handleKey(ctx, ev.Key(), ev.Rune())
		case *tcell.EventResize:
			a.term.Sync()
		case nil:
			// The screen was finalized.
			a.running = false
		}
	}
	return nil
}

func (a *App) view() View {
	v := View{Log: a.log, Input: a.editor.Text()}
	if c := a.shell.Competition(); c != nil {
		v.Standings = c.Standings()
	}
	return v
}

// handleKey processes keyboard input.
func (a *App) handleKey(ctx context.Context, key tcell.Key, ch rune) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a.running = false
	case tcell.KeyEnter:
		a.submit(ctx)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.editor.Backspace()
	case tcell.KeyRune:
		a.editor.Insert(ch)
	}
}

func (a *App) submit(ctx context.Context) {
	line := a.editor.Submit()
	a.append(inputPrefix + line)
	lines, err := a.shell.Handle(ctx, line)
	if err != nil {
		a.append(fmt.Sprintf("Error, %v", err))
	}
	a.append(lines...)
}

func (a *App) append(lines ...string) {
	a.log = append(a.log, lines...)
	if len(a.log) > maxLog {
		a.log = append([]string(nil), a.log[len(a.log)-maxLog:]...)
	}
}
