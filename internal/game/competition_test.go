package game

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/samdwyer/monsterarena/internal/decision"
	"github.com/samdwyer/monsterarena/internal/entity"
	"github.com/samdwyer/monsterarena/internal/gamedata"
	"github.com/samdwyer/monsterarena/internal/telemetry"
)

func hitTarget(kind gamedata.EffectKind, value int) gamedata.EffectDef {
	return gamedata.EffectDef{Kind: kind, Subject: gamedata.SubjectTarget, Strength: gamedata.StrengthAbs, Value: value, HitRate: 100}
}

func testSetup(t *testing.T) *Setup {
	t.Helper()
	all := []string{"Punch", "Nap", "Ignite", "Flurry"}
	file := gamedata.File{
		Actions: []gamedata.ActionDef{
			{Name: "Punch", Element: gamedata.ElementNormal, Effects: []gamedata.EffectDef{hitTarget(gamedata.EffectDamage, 20)}},
			{Name: "Nap", Element: gamedata.ElementNormal, Effects: []gamedata.EffectDef{
				{Kind: gamedata.EffectInflictStatus, Subject: gamedata.SubjectTarget, Status: gamedata.StatusSleep, HitRate: 100}}},
			{Name: "Ignite", Element: gamedata.ElementFire, Effects: []gamedata.EffectDef{
				{Kind: gamedata.EffectInflictStatus, Subject: gamedata.SubjectTarget, Status: gamedata.StatusBurn, HitRate: 100}}},
			{Name: "Flurry", Element: gamedata.ElementNormal, Effects: []gamedata.EffectDef{
				{Kind: gamedata.EffectRepeat, Range: &gamedata.Range{Min: 2, Max: 4}, Effects: []gamedata.EffectDef{hitTarget(gamedata.EffectDamage, 10)}}}},
			{Name: "Guard", Element: gamedata.ElementNormal, Effects: []gamedata.EffectDef{
				{Kind: gamedata.EffectProtect, Guard: gamedata.GuardHealth, Value: 1, HitRate: 100}}},
			{Name: "Blast", Element: gamedata.ElementNormal, Effects: []gamedata.EffectDef{
				hitTarget(gamedata.EffectDamage, 50),
				{Kind: gamedata.EffectDamage, Subject: gamedata.SubjectUser, Strength: gamedata.StrengthAbs, Value: 50, HitRate: 100}}},
		},
		Monsters: []gamedata.MonsterDef{
			{Name: "Rock", Element: gamedata.ElementNormal, HP: 100, Attack: 10, Defense: 10, Speed: 10, Actions: []string{"Punch", "Flurry", "Guard"}},
			{Name: "Swift", Element: gamedata.ElementNormal, HP: 100, Attack: 10, Defense: 10, Speed: 30, Actions: all},
			{Name: "Mid", Element: gamedata.ElementNormal, HP: 100, Attack: 10, Defense: 10, Speed: 20, Actions: all},
			{Name: "Frail", Element: gamedata.ElementNormal, HP: 10, Attack: 10, Defense: 10, Speed: 5, Actions: []string{"Punch", "Blast"}},
		},
	}
	catalog, err := gamedata.NewCatalog(file)
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	setup, err := NewSetup(catalog)
	if err != nil {
		t.Fatalf("NewSetup() error = %v", err)
	}
	return setup
}

func newTestCompetition(t *testing.T, src *decision.Source, names ...string) *Competition {
	t.Helper()
	c, err := NewCompetition(testSetup(t), names, Config{}, WithSource(src), WithTracer(telemetry.NoopTracer()))
	if err != nil {
		t.Fatalf("NewCompetition() error = %v", err)
	}
	return c
}

func must(t *testing.T) func(Report, error) Report {
	return func(r Report, err error) Report {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return r
	}
}

func monster(c *Competition, number int) *entity.Monster {
	return c.entrants[number-1].Monster
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase    Phase
		expected string
	}{
		{PhaseCollecting, "collecting"},
		{PhaseResolving, "resolving"},
		{PhaseSuspended, "suspended"},
		{PhaseDecided, "decided"},
		{Phase(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.expected {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.expected)
		}
	}
}

func TestNewCompetitionErrors(t *testing.T) {
	setup := testSetup(t)

	if _, err := NewCompetition(setup, []string{"Rock"}, Config{Seed: 1}); !errors.Is(err, ErrTooFewMonsters) {
		t.Errorf("NewCompetition(1 monster) error = %v, want ErrTooFewMonsters", err)
	}
	if _, err := NewCompetition(setup, []string{"Rock", "Ghost"}, Config{Seed: 1}); !errors.Is(err, ErrUnknownMonster) {
		t.Errorf("NewCompetition(unknown) error = %v, want ErrUnknownMonster", err)
	}
	c, err := NewCompetition(setup, []string{"Rock", "Mid"}, Config{Debug: true})
	if err != nil {
		t.Fatalf("NewCompetition() error = %v", err)
	}
	if !c.Debug() {
		t.Error("Debug() = false for a debug config")
	}
	if _, ok := c.Session(); !ok {
		t.Error("Session() ok = false in debug mode")
	}
	if c.ID() == "" {
		t.Error("ID() is empty")
	}
}

func TestDuplicateMonstersAreNumbered(t *testing.T) {
	c := newTestCompetition(t, decision.NewSeeded(1), "Rock", "Swift", "Rock")

	var names []string
	for _, s := range c.Standings() {
		names = append(names, s.Monster.Name)
	}
	want := []string{"Rock#1", "Swift", "Rock#2"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Standings() names = %q, want %q", names, want)
	}
}

func TestSpeedOrder(t *testing.T) {
	c := newTestCompetition(t, decision.NewSeeded(1), "Rock", "Swift", "Mid", "Rock")

	var numbers []int
	for _, e := range SpeedOrder(c.entrants) {
		numbers = append(numbers, e.Number)
	}
	want := []int{2, 3, 1, 4}
	if !reflect.DeepEqual(numbers, want) {
		t.Errorf("SpeedOrder() numbers = %v, want %v", numbers, want)
	}
}

func TestAutonomousRound(t *testing.T) {
	ctx := context.Background()
	c := newTestCompetition(t, decision.NewSeeded(9), "Rock", "Mid")

	r := c.Start(ctx)
	if want := []string{"The 2 monsters enter the competition!"}; !reflect.DeepEqual(r.Lines, want) {
		t.Errorf("Start().Lines = %q, want %q", r.Lines, want)
	}
	if r.Prompt != "What should Rock do?" {
		t.Errorf("Start().Prompt = %q", r.Prompt)
	}

	r = must(t)(c.Choose(ctx, "Punch", ""))
	if r.Prompt != "What should Mid do?" || len(r.Lines) != 0 {
		t.Errorf("Choose() = %+v, want prompt for Mid", r)
	}

	r = must(t)(c.Pass(ctx))
	want := []string{
		"It's Mid's turn.",
		"Mid passes!",
		"It's Rock's turn.",
		"Rock uses Punch!",
		"Mid takes 20 damage!",
	}
	if !reflect.DeepEqual(r.Lines, want) {
		t.Errorf("Pass().Lines = %q, want %q", r.Lines, want)
	}
	if got := monster(c, 2).HP(); got != 80 {
		t.Errorf("Mid HP = %d, want 80", got)
	}
	if c.Round() != 2 || r.Prompt != "What should Rock do?" {
		t.Errorf("after round: Round() = %d, Prompt = %q", c.Round(), r.Prompt)
	}
}

func TestDebugRoundSuspendsAndResumes(t *testing.T) {
	ctx := context.Background()
	c := newTestCompetition(t, decision.NewDebug(), "Rock", "Mid")
	c.Start(ctx)
	must(t)(c.Choose(ctx, "Punch", ""))

	r := must(t)(c.Choose(ctx, "Punch", ""))
	if r.Query == nil || r.Query.Label != "attack hit" || r.Query.Kind != decision.KindBool {
		t.Fatalf("Choose().Query = %+v, want boolean \"attack hit\"", r.Query)
	}
	if r.Query.Question() != "Decide attack hit: yes or no? (y/n)" {
		t.Errorf("Question() = %q", r.Query.Question())
	}
	if want := []string{"It's Mid's turn.", "Mid uses Punch!"}; !reflect.DeepEqual(r.Lines, want) {
		t.Errorf("Lines = %q, want %q", r.Lines, want)
	}
	if c.Phase() != PhaseSuspended {
		t.Errorf("Phase() = %v, want suspended", c.Phase())
	}

	// Asking again without an answer repeats the question and nothing else.
	again := must(t)(c.Resume(ctx))
	if len(again.Lines) != 0 || again.Query == nil || again.Query.Label != "attack hit" {
		t.Errorf("Resume() = %+v, want the same question and no lines", again)
	}

	r = must(t)(c.Answer(ctx, decision.BoolAnswer(true)))
	want := []string{"Rock takes 20 damage!", "It's Rock's turn.", "Rock uses Punch!"}
	if !reflect.DeepEqual(r.Lines, want) {
		t.Errorf("Answer() lines = %q, want %q", r.Lines, want)
	}
	if got := monster(c, 1).HP(); got != 80 {
		t.Errorf("Rock HP = %d, want 80", got)
	}

	r = must(t)(c.Answer(ctx, decision.BoolAnswer(false)))
	if want := []string{"The action failed..."}; !reflect.DeepEqual(r.Lines, want) {
		t.Errorf("Answer() lines = %q, want %q", r.Lines, want)
	}
	if got := monster(c, 1).HP(); got != 80 {
		t.Errorf("Rock HP after replays = %d, want 80", got)
	}
	if got := monster(c, 2).HP(); got != 100 {
		t.Errorf("Mid HP = %d, want 100", got)
	}
	if r.Prompt != "What should Rock do?" {
		t.Errorf("Prompt = %q", r.Prompt)
	}
}

func TestRejectedAnswerKeepsQuestion(t *testing.T) {
	ctx := context.Background()
	c := newTestCompetition(t, decision.NewDebug(), "Rock", "Mid")
	c.Start(ctx)
	must(t)(c.Choose(ctx, "Flurry", ""))
	must(t)(c.Pass(ctx))

	session, _ := c.Session()
	q, ok := session.Expected()
	if !ok || q.Label != "repeat count" || q.Kind != decision.KindInt {
		t.Fatalf("Expected() = %+v, %v, want integer \"repeat count\"", q, ok)
	}

	if _, err := session.Supply(ctx, "5"); !errors.Is(err, decision.ErrOutOfRange) {
		t.Errorf("Supply(\"5\") error = %v, want ErrOutOfRange", err)
	}
	if _, err := session.Supply(ctx, "y"); !errors.Is(err, decision.ErrWrongKind) {
		t.Errorf("Supply(\"y\") error = %v, want ErrWrongKind", err)
	}
	if after, _ := session.Expected(); after != q {
		t.Errorf("Expected() after rejections = %+v, want %+v", after, q)
	}

	r := must(t)(session.Supply(ctx, "3"))
	if r.Query == nil || r.Query.Label != "attack hit" {
		t.Errorf("Supply(\"3\").Query = %+v, want \"attack hit\"", r.Query)
	}
}

func TestDebugMatchesAutonomousRound(t *testing.T) {
	ctx := context.Background()
	play := func(c *Competition) []string {
		lines := c.Start(ctx).Lines
		lines = append(lines, must(t)(c.Choose(ctx, "Flurry", "")).Lines...)
		return append(lines, must(t)(c.Choose(ctx, "Punch", "")).Lines...)
	}

	auto := newTestCompetition(t, decision.NewAutonomous(&decision.Sequence{
		Bools: []bool{true, true, false, true},
		Ints:  []int{3},
	}), "Rock", "Mid")
	autoLines := play(auto)

	debug := newTestCompetition(t, decision.NewDebug(), "Rock", "Mid")
	debugLines := play(debug)
	for _, a := range []decision.Answer{
		decision.BoolAnswer(true),
		decision.IntAnswer(3),
		decision.BoolAnswer(true),
		decision.BoolAnswer(false),
		decision.BoolAnswer(true),
	} {
		r, err := debug.Answer(ctx, a)
		if err != nil {
			t.Fatalf("Answer(%+v) error = %v", a, err)
		}
		debugLines = append(debugLines, r.Lines...)
	}

	if !reflect.DeepEqual(debugLines, autoLines) {
		t.Errorf("debug lines = %q\nautonomous lines = %q", debugLines, autoLines)
	}
	if !reflect.DeepEqual(debug.Standings(), auto.Standings()) {
		t.Errorf("debug standings = %+v\nautonomous standings = %+v", debug.Standings(), auto.Standings())
	}
	if got := monster(debug, 2).HP(); got != 80 {
		t.Errorf("Mid HP = %d, want 80", got)
	}
	if got := monster(debug, 1).HP(); got != 80 {
		t.Errorf("Rock HP = %d, want 80", got)
	}
}

func TestWinner(t *testing.T) {
	ctx := context.Background()
	c := newTestCompetition(t, decision.NewSeeded(2), "Frail", "Rock")
	c.Start(ctx)
	must(t)(c.Pass(ctx))

	r := must(t)(c.Choose(ctx, "Punch", ""))
	want := []string{
		"It's Rock's turn.",
		"Rock uses Punch!",
		"Frail takes 20 damage!",
		"Frail faints!",
		"Rock has no opponents left and wins the competition!",
	}
	if !reflect.DeepEqual(r.Lines, want) {
		t.Errorf("Lines = %q, want %q", r.Lines, want)
	}
	if !r.Decided || r.Winner != "Rock" || c.Phase() != PhaseDecided {
		t.Errorf("Report = %+v, phase %v; want Rock decided", r, c.Phase())
	}
	if _, err := c.Pass(ctx); !errors.Is(err, ErrNotCollecting) {
		t.Errorf("Pass() after the end error = %v, want ErrNotCollecting", err)
	}
	if s := c.Standings(); !s[0].Out || s[1].Out {
		t.Errorf("Standings() = %+v, want Frail out and Rock in", s)
	}
}

func TestNoWinner(t *testing.T) {
	ctx := context.Background()
	c := newTestCompetition(t, decision.NewSeeded(2), "Frail", "Frail")
	c.Start(ctx)
	must(t)(c.Choose(ctx, "Blast", ""))

	r := must(t)(c.Choose(ctx, "Blast", ""))
	want := []string{
		"It's Frail#1's turn.",
		"Frail#1 uses Blast!",
		"Frail#2 takes 50 damage!",
		"Frail#2 faints!",
		"Frail#1 takes 50 damage!",
		"Frail#1 faints!",
		"All monsters have fainted. The competition ends without a winner!",
	}
	if !reflect.DeepEqual(r.Lines, want) {
		t.Errorf("Lines = %q, want %q", r.Lines, want)
	}
	if !r.Decided || r.Winner != "" {
		t.Errorf("Report = %+v, want decided without winner", r)
	}
}

func TestSleepRecoveryIsAsked(t *testing.T) {
	ctx := context.Background()
	c := newTestCompetition(t, decision.NewDebug(), "Rock", "Swift")
	c.Start(ctx)
	must(t)(c.Choose(ctx, "Punch", ""))
	must(t)(c.Choose(ctx, "Nap", ""))
	must(t)(c.Answer(ctx, decision.BoolAnswer(true)))

	q, ok := c.Pending()
	if !ok || q.Label != "end sleep condition" {
		t.Fatalf("Pending() = %+v, %v, want \"end sleep condition\"", q, ok)
	}
	r := must(t)(c.Answer(ctx, decision.BoolAnswer(false)))
	want := []string{"Rock is asleep!", "Rock uses Punch!"}
	if !reflect.DeepEqual(r.Lines, want) {
		t.Errorf("Lines = %q, want %q", r.Lines, want)
	}
	if got := monster(c, 2).HP(); got != 100 {
		t.Errorf("Swift HP = %d, want 100", got)
	}
}

func TestBurnAndRecovery(t *testing.T) {
	ctx := context.Background()
	// Ignite hits, Rock stays burning, then recovers next round.
	src := decision.NewAutonomous(&decision.Sequence{Bools: []bool{true, false, true, true}})
	c := newTestCompetition(t, src, "Rock", "Swift")
	c.Start(ctx)
	must(t)(c.Pass(ctx))

	r := must(t)(c.Choose(ctx, "Ignite", ""))
	want := []string{
		"It's Swift's turn.",
		"Swift uses Ignite!",
		"Rock caught on fire!",
		"It's Rock's turn.",
		"Rock is burning!",
		"Rock passes!",
		"Rock takes 10 damage from burning!",
	}
	if !reflect.DeepEqual(r.Lines, want) {
		t.Errorf("round 1 lines = %q, want %q", r.Lines, want)
	}

	must(t)(c.Pass(ctx))
	r = must(t)(c.Pass(ctx))
	want = []string{
		"It's Swift's turn.",
		"Swift passes!",
		"It's Rock's turn.",
		"Rock's burning has faded!",
		"Rock passes!",
	}
	if !reflect.DeepEqual(r.Lines, want) {
		t.Errorf("round 2 lines = %q, want %q", r.Lines, want)
	}
	if got := monster(c, 1).HP(); got != 90 {
		t.Errorf("Rock HP = %d, want 90", got)
	}
}

func TestProtectionFades(t *testing.T) {
	ctx := context.Background()
	c := newTestCompetition(t, decision.NewSeeded(4), "Rock", "Mid")
	c.Start(ctx)
	must(t)(c.Choose(ctx, "Guard", ""))
	must(t)(c.Choose(ctx, "Punch", ""))
	// Mid moves first, so the guard is raised after its punch lands.
	if got := monster(c, 1).HP(); got != 80 {
		t.Errorf("Rock HP after round 1 = %d, want 80", got)
	}

	must(t)(c.Pass(ctx))
	r := must(t)(c.Choose(ctx, "Punch", ""))
	want := []string{
		"It's Mid's turn.",
		"Mid uses Punch!",
		"Rock is protected and takes no damage!",
		"It's Rock's turn.",
		"Rock passes!",
		"Rock's protection fades away...",
	}
	if !reflect.DeepEqual(r.Lines, want) {
		t.Errorf("round 2 lines = %q, want %q", r.Lines, want)
	}
}

func TestChooseErrors(t *testing.T) {
	ctx := context.Background()
	c := newTestCompetition(t, decision.NewSeeded(1), "Rock", "Mid", "Swift")
	c.Start(ctx)

	tests := []struct {
		action, target string
		wantErr        error
	}{
		{"Punch", "", ErrTargetRequired},
		{"Punch", "Nobody", ErrUnknownTarget},
		{"Nap", "Mid", ErrUnknownAction},
		{"Fly", "Mid", ErrUnknownAction},
	}
	for _, tt := range tests {
		if _, err := c.Choose(ctx, tt.action, tt.target); !errors.Is(err, tt.wantErr) {
			t.Errorf("Choose(%q, %q) error = %v, want %v", tt.action, tt.target, err, tt.wantErr)
		}
	}
	if _, err := c.Answer(ctx, decision.BoolAnswer(true)); !errors.Is(err, ErrNotSuspended) {
		t.Errorf("Answer() while collecting error = %v, want ErrNotSuspended", err)
	}

	r := must(t)(c.Choose(ctx, "Punch", "Swift"))
	if r.Prompt != "What should Mid do?" {
		t.Errorf("Prompt = %q, want Mid next", r.Prompt)
	}
}
