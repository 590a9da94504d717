// Package game runs competitions: it collects each monster's choice, resolves
// rounds in speed order and decides the winner.
package game

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/samdwyer/monsterarena/internal/combat"
	"github.com/samdwyer/monsterarena/internal/decision"
	"github.com/samdwyer/monsterarena/internal/entity"
	"github.com/samdwyer/monsterarena/internal/gamedata"
	"github.com/samdwyer/monsterarena/internal/telemetry"
)

var (
	ErrTooFewMonsters = errors.New("a competition needs at least two monsters")
	ErrUnknownMonster = errors.New("unknown monster")
	ErrNotCollecting  = errors.New("no monster is choosing an action")
	ErrNotSuspended   = errors.New("no value is requested")
	ErrUnknownAction  = errors.New("unknown action")
	ErrUnknownTarget  = errors.New("unknown target")
	ErrTargetRequired = errors.New("a target is required")
)

// recoverChance is the percentage chance a status condition ends at the
// start of the afflicted monster's turn.
const recoverChance = 100.0 / 3

// Phase represents the current phase of a competition.
type Phase int

const (
	// PhaseCollecting - waiting for the next monster's choice
	PhaseCollecting Phase = iota
	// PhaseResolving - the round is being played out
	PhaseResolving
	// PhaseSuspended - a debug answer is needed to continue the round
	PhaseSuspended
	// PhaseDecided - at most one monster is left standing
	PhaseDecided
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseCollecting:
		return "collecting"
	case PhaseResolving:
		return "resolving"
	case PhaseSuspended:
		return "suspended"
	case PhaseDecided:
		return "decided"
	default:
		return "unknown"
	}
}

// Entrant is a monster taking part in a competition.
type Entrant struct {
	Number  int
	Monster *entity.Monster
}

// Query is a pending debug request with the decision it concerns.
type Query struct {
	decision.Request
	Label string
}

// Question renders the prompt shown to the operator.
func (q Query) Question() string {
	return q.Request.Question(q.Label)
}

// Report is what a competition call produced: the narration that is new since
// the previous call and what the competition waits for next.
type Report struct {
	Lines []string
	// Query is set while a debug answer is needed.
	Query *Query
	// Prompt asks for the next monster's choice while collecting.
	Prompt string
	// Decided is set once the competition has ended; Winner is empty if
	// every monster fainted.
	Decided bool
	Winner  string
}

type choice struct {
	action *combat.Action
	target *entity.Monster
}

type stage int

const (
	stageStart stage = iota
	stageRecover
	stageAct
	stageBurn
	stageDone
)

// turn is one monster's part of a round. It keeps the stage the turn reached
// so a resumed round skips straight to where it stopped.
type turn struct {
	entrant *Entrant
	choice  choice
	stage   stage
	run     *combat.Run
}

// Option configures a Competition.
type Option func(*Competition)

// WithLogger sets the logger used for competition events.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Competition) { c.logger = logger }
}

// WithTracer sets the tracer used for competition spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Competition) { c.tracer = tracer }
}

// WithSource replaces the decision source built from the config.
func WithSource(src *decision.Source) Option {
	return func(c *Competition) { c.source = src }
}

// Competition is a match between two or more monsters.
type Competition struct {
	id       string
	setup    *Setup
	source   *decision.Source
	logger   *zap.Logger
	tracer   trace.Tracer
	entrants []*Entrant
	active   []*Entrant
	choices  []choice
	turns    []*turn
	round    int
	phase    Phase
	query    *Query
	winner   string
}

// NewCompetition enters the named monsters. A monster may be named more than
// once; its copies are told apart as Name#1, Name#2 and so on.
func NewCompetition(setup *Setup, names []string, cfg Config, opts ...Option) (*Competition, error) {
	if len(names) < 2 {
		return nil, ErrTooFewMonsters
	}

	count := make(map[string]int, len(names))
	for _, name := range names {
		if setup.Catalog().Monster(name) == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownMonster, name)
		}
		count[name]++
	}

	c := &Competition{
		id:     uuid.NewString(),
		setup:  setup,
		logger: zap.NewNop(),
		tracer: telemetry.Tracer("competition"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.source == nil {
		src, err := newSource(cfg)
		if err != nil {
			return nil, err
		}
		c.source = src
	}

	seen := make(map[string]int, len(names))
	for i, name := range names {
		display := name
		if count[name] > 1 {
			seen[name]++
			display = fmt.Sprintf("%s#%d", name, seen[name])
		}
		def := setup.Catalog().Monster(name)
		c.entrants = append(c.entrants, &Entrant{Number: i + 1, Monster: entity.New(*def, display)})
	}
	c.active = append([]*Entrant(nil), c.entrants...)
	return c, nil
}

func newSource(cfg Config) (*decision.Source, error) {
	if cfg.Debug {
		return decision.NewDebug(), nil
	}
	seed := cfg.Seed
	if seed == 0 {
		var err error
		if seed, err = decision.NewSeed(); err != nil {
			return nil, err
		}
	}
	return decision.NewSeeded(seed), nil
}

// ID returns the competition's unique identifier.
func (c *Competition) ID() string { return c.id }

// Phase returns the current phase.
func (c *Competition) Phase() Phase { return c.phase }

// Round returns the number of the current round, starting at 1.
func (c *Competition) Round() int { return c.round }

// Debug reports whether the operator supplies chance outcomes.
func (c *Competition) Debug() bool { return c.source.Debug() }

// Pending returns the debug request the competition is waiting for.
func (c *Competition) Pending() (Query, bool) {
	if c.query == nil {
		return Query{}, false
	}
	return *c.query, true
}

// Start announces the competition and opens the first round.
func (c *Competition) Start(ctx context.Context) Report {
	_, span := c.tracer.Start(ctx, "competition.start")
	span.SetAttributes(
		attribute.String("competition.id", c.id),
		attribute.Int("monster_count", len(c.entrants)),
		attribute.Bool("debug", c.source.Debug()),
	)
	defer span.End()

	c.logger.Info("competition started",
		zap.String("competition", c.id),
		zap.Int("monsters", len(c.entrants)),
		zap.Bool("debug", c.source.Debug()),
	)

	lines := []string{fmt.Sprintf("The %d monsters enter the competition!", len(c.entrants))}
	c.beginRound(&lines)
	return c.report(lines)
}

// Chooser returns the monster whose choice is expected.
func (c *Competition) Chooser() (*entity.Monster, bool) {
	if c.phase != PhaseCollecting {
		return nil, false
	}
	return c.active[len(c.choices)].Monster, true
}

// Choose records the chooser's action. The target is ignored for actions that
// only affect the user and may be left empty when exactly two monsters remain.
func (c *Competition) Choose(ctx context.Context, actionName, targetName string) (Report, error) {
	m, ok := c.Chooser()
	if !ok {
		return Report{}, ErrNotCollecting
	}
	if !m.Knows(actionName) {
		return Report{}, fmt.Errorf("%w: %s has no action named %s", ErrUnknownAction, m.Name(), actionName)
	}
	action := c.setup.Action(actionName)
	if action == nil {
		return Report{}, fmt.Errorf("%w: %s", ErrUnknownAction, actionName)
	}

	ch := choice{action: action}
	if action.RequiresTarget() {
		target, err := c.findTarget(m, targetName)
		if err != nil {
			return Report{}, err
		}
		ch.target = target
	}
	c.choices = append(c.choices, ch)
	return c.advance(ctx), nil
}

// Pass records that the chooser does nothing this round.
func (c *Competition) Pass(ctx context.Context) (Report, error) {
	if _, ok := c.Chooser(); !ok {
		return Report{}, ErrNotCollecting
	}
	c.choices = append(c.choices, choice{})
	return c.advance(ctx), nil
}

// Answer supplies the pending debug value and resumes the round. A rejected
// answer leaves the competition waiting for the same request.
func (c *Competition) Answer(ctx context.Context, a decision.Answer) (Report, error) {
	if c.phase != PhaseSuspended {
		return Report{}, ErrNotSuspended
	}
	if err := c.source.Submit(a); err != nil {
		return c.report(nil), err
	}
	c.logger.Debug("answer accepted",
		zap.String("competition", c.id),
		zap.String("label", c.query.Label),
		zap.Stringer("kind", a.Kind),
	)
	c.query = nil
	c.phase = PhaseResolving
	return c.resolve(ctx), nil
}

// Resume resolves the current round again from its first monster. Turns that
// already finished are skipped and emit nothing.
func (c *Competition) Resume(ctx context.Context) (Report, error) {
	if c.phase != PhaseResolving && c.phase != PhaseSuspended {
		return Report{}, ErrNotSuspended
	}
	return c.resolve(ctx), nil
}

func (c *Competition) findTarget(user *entity.Monster, name string) (*entity.Monster, error) {
	if name == "" {
		if len(c.active) != 2 {
			return nil, ErrTargetRequired
		}
		for _, e := range c.active {
			if e.Monster != user {
				return e.Monster, nil
			}
		}
	}
	for _, e := range c.active {
		if e.Monster.Name() == name {
			return e.Monster, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownTarget, name)
}

func (c *Competition) advance(ctx context.Context) Report {
	if len(c.choices) < len(c.active) {
		return c.report(nil)
	}

	order := SpeedOrder(c.active)
	c.turns = make([]*turn, 0, len(order))
	for _, e := range order {
		c.turns = append(c.turns, &turn{entrant: e, choice: c.choices[c.indexOf(e)]})
	}
	c.phase = PhaseResolving
	return c.resolve(ctx)
}

func (c *Competition) indexOf(e *Entrant) int {
	for i, a := range c.active {
		if a == e {
			return i
		}
	}
	panic("entrant is not active")
}

// SpeedOrder sorts entrants by descending effective speed; ties go to the
// lower entrant number.
func SpeedOrder(entrants []*Entrant) []*Entrant {
	order := append([]*Entrant(nil), entrants...)
	sort.SliceStable(order, func(i, j int) bool {
		si := order[i].Monster.Stat(gamedata.StatSPD)
		sj := order[j].Monster.Stat(gamedata.StatSPD)
		if si != sj {
			return si > sj
		}
		return order[i].Number < order[j].Number
	})
	return order
}

// resolve plays the round from its first turn. Finished turns are skipped;
// the first unfinished one resumes at the stage it stopped in.
func (c *Competition) resolve(ctx context.Context) Report {
	ctx, span := c.tracer.Start(ctx, "competition.resolve")
	span.SetAttributes(
		attribute.String("competition.id", c.id),
		attribute.Int("round", c.round),
	)
	defer span.End()

	var lines []string
	for _, t := range c.turns {
		if t.stage == stageDone {
			continue
		}
		if label, done := c.play(ctx, t, &lines); !done {
			req, _ := c.source.Pending()
			c.query = &Query{Request: req, Label: label}
			c.phase = PhaseSuspended
			span.AddEvent("competition.suspended", trace.WithAttributes(
				attribute.String("actor", t.entrant.Monster.Name()),
				attribute.String("label", label),
			))
			c.logger.Debug("waiting for answer",
				zap.String("competition", c.id),
				zap.String("actor", t.entrant.Monster.Name()),
				zap.String("label", label),
			)
			return c.report(lines)
		}
	}

	for _, e := range c.active {
		if e.Monster.Fainted() {
			continue
		}
		if line := e.Monster.NextRound(); line != "" {
			lines = append(lines, line)
		}
	}
	c.turns = nil
	c.beginRound(&lines)
	return c.report(lines)
}

// play advances one turn as far as it goes. It returns false with the label
// of the pending draw when the turn is waiting for an answer.
func (c *Competition) play(ctx context.Context, t *turn, lines *[]string) (string, bool) {
	m := t.entrant.Monster
	_, span := c.tracer.Start(ctx, "competition.turn")
	span.SetAttributes(
		attribute.String("actor", m.Name()),
		attribute.Int("round", c.round),
	)
	if t.choice.action != nil {
		span.SetAttributes(attribute.String("action", t.choice.action.Name()))
	}
	defer span.End()

	for t.stage != stageDone {
		switch t.stage {
		case stageStart:
			if m.Fainted() {
				t.stage = stageDone
				continue
			}
			*lines = append(*lines, fmt.Sprintf("It's %s's turn.", m.Name()))
			t.stage = stageRecover

		case stageRecover:
			if status := m.Status(); status != gamedata.StatusOK {
				c.source.Rewind()
				recovered, ok := c.source.DrawBool(recoverChance)
				if !ok {
					return fmt.Sprintf("end %s condition", strings.ToLower(status.String())), false
				}
				if recovered {
					*lines = append(*lines, m.Recover(c.source.IsFirstExecution()))
				} else {
					*lines = append(*lines, m.StatusLine())
				}
				c.source.ResetDecisionPoint()
			}
			t.stage = stageAct

		case stageAct:
			if t.choice.action == nil {
				*lines = append(*lines, fmt.Sprintf("%s passes!", m.Name()))
				t.stage = stageBurn
				continue
			}
			if t.run == nil {
				t.run = t.choice.action.NewRun()
			}
			var target combat.Combatant
			if t.choice.target != nil {
				target = t.choice.target
			}
			o := t.run.Execute(m, target, c.source)
			*lines = append(*lines, o.Lines...)
			if o.Result == combat.NeedsInput {
				return o.Label, false
			}
			span.SetAttributes(attribute.String("result", o.Result.String()))
			t.stage = stageBurn

		case stageBurn:
			if m.Status() == gamedata.StatusBurn && !m.Fainted() {
				*lines = append(*lines, m.Burn(c.source.IsFirstExecution()))
				if m.Fainted() {
					*lines = append(*lines, fmt.Sprintf("%s faints!", m.Name()))
				}
			}
			t.stage = stageDone
		}
	}
	return "", true
}

// beginRound drops fainted monsters and either opens the next round for
// choices or decides the competition.
func (c *Competition) beginRound(lines *[]string) {
	standing := c.active[:0:0]
	for _, e := range c.active {
		if !e.Monster.Fainted() {
			standing = append(standing, e)
		}
	}
	c.active = standing
	c.choices = nil
	c.query = nil

	switch len(c.active) {
	case 0:
		*lines = append(*lines, "All monsters have fainted. The competition ends without a winner!")
		c.phase = PhaseDecided
	case 1:
		c.winner = c.active[0].Monster.Name()
		*lines = append(*lines, fmt.Sprintf("%s has no opponents left and wins the competition!", c.winner))
		c.phase = PhaseDecided
	default:
		c.round++
		c.phase = PhaseCollecting
		c.logger.Debug("round started",
			zap.String("competition", c.id),
			zap.Int("round", c.round),
			zap.Int("standing", len(c.active)),
		)
		return
	}

	c.logger.Info("competition decided",
		zap.String("competition", c.id),
		zap.String("winner", c.winner),
		zap.Int("rounds", c.round),
	)
}

func (c *Competition) report(lines []string) Report {
	r := Report{Lines: lines}
	switch c.phase {
	case PhaseSuspended:
		q := *c.query
		r.Query = &q
	case PhaseCollecting:
		m, _ := c.Chooser()
		r.Prompt = fmt.Sprintf("What should %s do?", m.Name())
	case PhaseDecided:
		r.Decided = true
		r.Winner = c.winner
	}
	return r
}

// Standing is one entrant's state for display.
type Standing struct {
	Number   int
	Monster  entity.Snapshot
	Choosing bool
	Out      bool
}

// Standings returns every entrant in entry order.
func (c *Competition) Standings() []Standing {
	chooser, _ := c.Chooser()
	out := make([]Standing, 0, len(c.entrants))
	for _, e := range c.entrants {
		out = append(out, Standing{
			Number:   e.Number,
			Monster:  e.Monster.Snapshot(),
			Choosing: e.Monster == chooser,
			Out:      !c.isActive(e),
		})
	}
	return out
}

func (c *Competition) isActive(e *Entrant) bool {
	for _, a := range c.active {
		if a == e {
			return true
		}
	}
	return false
}

// Setup returns the setup the competition draws its actions from.
func (c *Competition) Setup() *Setup {
	return c.setup
}
