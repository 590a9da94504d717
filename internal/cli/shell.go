// Package cli is the line-oriented front end: it parses commands, drives a
// competition and prints its narration.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/samdwyer/monsterarena/internal/entity"
	"github.com/samdwyer/monsterarena/internal/game"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrNoCompetition  = errors.New("there is no competition yet")
	ErrAnswerPending  = errors.New("you cannot use this command while a value is requested")
	ErrUsage          = errors.New("wrong number of arguments")
)

// Shell holds the loaded setup and the running competition.
type Shell struct {
	setup   *game.Setup
	cfg     game.Config
	logger  *zap.Logger
	options []game.Option
	comp    *game.Competition
	done    bool
}

// Option configures a Shell.
type Option func(*Shell)

// WithLogger sets the logger for the shell and its competitions.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Shell) { s.logger = logger }
}

// WithCompetitionOptions passes options to every competition the shell starts.
func WithCompetitionOptions(opts ...game.Option) Option {
	return func(s *Shell) { s.options = append(s.options, opts...) }
}

// NewShell creates a shell over the given setup.
func NewShell(setup *game.Setup, cfg game.Config, opts ...Option) *Shell {
	s := &Shell{setup: setup, cfg: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Done reports whether the operator quit.
func (s *Shell) Done() bool { return s.done }

// Competition returns the current competition, if any.
func (s *Shell) Competition() *game.Competition { return s.comp }

// Handle executes one input line and returns the output lines. On error the
// lines may still hold a repeated question.
func (s *Shell) Handle(ctx context.Context, line string) ([]string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}

	switch fields[0] {
	case "quit":
		if len(fields) != 1 {
			return nil, ErrUsage
		}
		s.done = true
		return nil, nil
	case "load":
		return s.load(fields[1:])
	case "competition":
		return s.start(ctx, fields[1:])
	case "show":
		return s.show(fields[1:])
	case "action":
		return s.action(ctx, fields[1:])
	case "pass":
		if len(fields) != 1 {
			return nil, ErrUsage
		}
		return s.pass(ctx)
	}

	if s.pending() {
		return s.answer(ctx, strings.TrimSpace(line))
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, fields[0])
}

// Run reads commands from in until quit or end of input. Narration goes to
// out and errors to errOut.
func (s *Shell) Run(ctx context.Context, in io.Reader, out, errOut io.Writer) error {
	scanner := bufio.NewScanner(in)
	for !s.done && scanner.Scan() {
		lines, err := s.Handle(ctx, scanner.Text())
		if err != nil {
			s.logger.Debug("command rejected", zap.String("input", scanner.Text()), zap.Error(err))
			fmt.Fprintf(errOut, "Error, %v\n", err)
		}
		for _, l := range lines {
			fmt.Fprintln(out, l)
		}
	}
	return scanner.Err()
}

func (s *Shell) pending() bool {
	return s.comp != nil && s.comp.Phase() == game.PhaseSuspended
}

func (s *Shell) running() bool {
	return s.comp != nil && s.comp.Phase() != game.PhaseDecided
}

func (s *Shell) load(args []string) ([]string, error) {
	if len(args) != 1 {
		return nil, ErrUsage
	}
	if s.pending() {
		return nil, ErrAnswerPending
	}
	setup, err := game.LoadSetup(args[0])
	if err != nil {
		return nil, err
	}
	s.setup = setup
	s.comp = nil
	s.logger.Info("configuration loaded",
		zap.String("path", args[0]),
		zap.Int("actions", setup.Catalog().ActionCount()),
		zap.Int("monsters", setup.Catalog().MonsterCount()),
	)
	return []string{fmt.Sprintf("Loaded %d actions, %d monsters.",
		setup.Catalog().ActionCount(), setup.Catalog().MonsterCount())}, nil
}

func (s *Shell) start(ctx context.Context, names []string) ([]string, error) {
	if s.pending() {
		return nil, ErrAnswerPending
	}
	opts := append([]game.Option{game.WithLogger(s.logger)}, s.options...)
	comp, err := game.NewCompetition(s.setup, names, s.cfg, opts...)
	if err != nil {
		return nil, err
	}
	s.comp = comp
	return render(comp.Start(ctx)), nil
}

func (s *Shell) show(args []string) ([]string, error) {
	if len(args) == 0 {
		if !s.running() {
			return nil, ErrNoCompetition
		}
		var lines []string
		for _, st := range s.comp.Standings() {
			lines = append(lines, standingLine(st))
		}
		return lines, nil
	}
	if len(args) != 1 {
		return nil, ErrUsage
	}

	switch args[0] {
	case "monsters":
		var lines []string
		for _, m := range s.setup.Catalog().Monsters() {
			lines = append(lines, monsterLine(m))
		}
		return lines, nil
	case "actions":
		m, err := s.chooser()
		if err != nil {
			return nil, err
		}
		lines := []string{"ACTIONS OF " + m.Name()}
		for _, name := range m.Actions() {
			lines = append(lines, s.setup.Action(name).Info())
		}
		return lines, nil
	case "stats":
		m, err := s.chooser()
		if err != nil {
			return nil, err
		}
		return statsLines(m.Snapshot()), nil
	}
	return nil, fmt.Errorf("%w: show %s", ErrUnknownCommand, args[0])
}

func (s *Shell) chooser() (*entity.Monster, error) {
	if !s.running() {
		return nil, ErrNoCompetition
	}
	m, ok := s.comp.Chooser()
	if !ok {
		return nil, game.ErrNotCollecting
	}
	return m, nil
}

func (s *Shell) action(ctx context.Context, args []string) ([]string, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, ErrUsage
	}
	if !s.running() {
		return nil, ErrNoCompetition
	}
	if s.pending() {
		return nil, ErrAnswerPending
	}
	target := ""
	if len(args) == 2 {
		target = args[1]
	}
	r, err := s.comp.Choose(ctx, args[0], target)
	if err != nil {
		return nil, err
	}
	return render(r), nil
}

func (s *Shell) pass(ctx context.Context) ([]string, error) {
	if !s.running() {
		return nil, ErrNoCompetition
	}
	if s.pending() {
		return nil, ErrAnswerPending
	}
	r, err := s.comp.Pass(ctx)
	if err != nil {
		return nil, err
	}
	return render(r), nil
}

func (s *Shell) answer(ctx context.Context, text string) ([]string, error) {
	session, ok := s.comp.Session()
	if !ok {
		return nil, ErrUnknownCommand
	}
	r, err := session.Supply(ctx, text)
	return render(r), err
}

// render appends what the competition waits for to the report's narration.
func render(r game.Report) []string {
	lines := append([]string(nil), r.Lines...)
	switch {
	case r.Query != nil:
		lines = append(lines, r.Query.Question())
	case r.Prompt != "":
		lines = append(lines, r.Prompt)
	}
	return lines
}
