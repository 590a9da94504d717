package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/samdwyer/monsterarena/internal/decision"
	"github.com/samdwyer/monsterarena/internal/game"
)

func newShell(t *testing.T, cfg game.Config) *Shell {
	t.Helper()
	setup, err := game.DefaultSetup()
	if err != nil {
		t.Fatalf("DefaultSetup() error = %v", err)
	}
	return NewShell(setup, cfg)
}

func handle(t *testing.T, s *Shell, line string) []string {
	t.Helper()
	lines, err := s.Handle(context.Background(), line)
	if err != nil {
		t.Fatalf("Handle(%q) error = %v", line, err)
	}
	return lines
}

func TestShowMonsters(t *testing.T) {
	s := newShell(t, game.Config{Seed: 1})

	lines := handle(t, s, "show monsters")
	if len(lines) != 4 {
		t.Fatalf("show monsters returned %d lines, want 4", len(lines))
	}
	if want := "Emberling: ELEMENT FIRE, HP 90, ATK 12, DEF 9, SPD 11"; lines[0] != want {
		t.Errorf("lines[0] = %q, want %q", lines[0], want)
	}
}

func TestCommandsWithoutCompetition(t *testing.T) {
	s := newShell(t, game.Config{Seed: 1})
	ctx := context.Background()

	tests := []struct {
		line    string
		wantErr error
	}{
		{"show", ErrNoCompetition},
		{"show stats", ErrNoCompetition},
		{"pass", ErrNoCompetition},
		{"action Tackle", ErrNoCompetition},
		{"fly away", ErrUnknownCommand},
		{"y", ErrUnknownCommand},
		{"show everything", ErrUnknownCommand},
		{"load", ErrUsage},
		{"competition Emberling", game.ErrTooFewMonsters},
		{"competition Emberling Ghost", game.ErrUnknownMonster},
	}

	for _, tt := range tests {
		if _, err := s.Handle(ctx, tt.line); !errors.Is(err, tt.wantErr) {
			t.Errorf("Handle(%q) error = %v, want %v", tt.line, err, tt.wantErr)
		}
	}
	if lines, err := s.Handle(ctx, "   "); err != nil || lines != nil {
		t.Errorf("Handle(blank) = %q, %v, want nothing", lines, err)
	}
}

func TestCompetitionShow(t *testing.T) {
	s := newShell(t, game.Config{Seed: 1})

	lines := handle(t, s, "competition Emberling Tidecub")
	want := []string{"The 2 monsters enter the competition!", "What should Emberling do?"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("competition = %q, want %q", lines, want)
	}

	lines = handle(t, s, "show")
	want = []string{
		"[XXXXXXXXXXXXXXXXXXXX] 1 *Emberling (OK)",
		"[XXXXXXXXXXXXXXXXXXXX] 2 Tidecub (OK)",
	}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("show = %q, want %q", lines, want)
	}

	lines = handle(t, s, "show stats")
	want = []string{"STATS OF Emberling", "HP 90/90, ATK 12, DEF 9, SPD 11, PRC 1, AGL 1"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("show stats = %q, want %q", lines, want)
	}

	lines = handle(t, s, "show actions")
	if len(lines) != 5 || lines[0] != "ACTIONS OF Emberling" {
		t.Errorf("show actions = %q", lines)
	}
	if !strings.HasPrefix(lines[1], "Ember: ELEMENT FIRE, Damage b40, HitRate 90") {
		t.Errorf("show actions first action = %q", lines[1])
	}
}

func TestDebugAnswers(t *testing.T) {
	s := newShell(t, game.Config{Debug: true})
	ctx := context.Background()
	handle(t, s, "competition Emberling Tidecub")
	handle(t, s, "action Tackle")

	lines := handle(t, s, "pass")
	want := []string{"It's Emberling's turn.", "Emberling uses Tackle!", "Decide attack hit: yes or no? (y/n)"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("pass = %q, want %q", lines, want)
	}

	for _, line := range []string{"load other.txt", "competition Emberling Pebblet", "pass", "action Tackle"} {
		if _, err := s.Handle(ctx, line); !errors.Is(err, ErrAnswerPending) {
			t.Errorf("Handle(%q) while pending error = %v, want ErrAnswerPending", line, err)
		}
	}

	lines, err := s.Handle(ctx, "maybe")
	if !errors.Is(err, decision.ErrWrongKind) {
		t.Errorf("Handle(\"maybe\") error = %v, want ErrWrongKind", err)
	}
	if want := []string{"Decide attack hit: yes or no? (y/n)"}; !reflect.DeepEqual(lines, want) {
		t.Errorf("Handle(\"maybe\") = %q, want the question again", lines)
	}

	if got := handle(t, s, "show"); len(got) != 2 {
		t.Errorf("show while pending = %q", got)
	}

	lines = handle(t, s, "n")
	want = []string{"The action failed...", "It's Tidecub's turn.", "Tidecub passes!", "What should Emberling do?"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("n = %q, want %q", lines, want)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.txt")
	content := `action Jab NORMAL
damage target abs 5 100
end action

monster Ant NORMAL 10 1 1 1 Jab
monster Bee NORMAL 10 1 1 2 Jab
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	s := newShell(t, game.Config{Seed: 3})
	handle(t, s, "competition Emberling Tidecub")

	lines := handle(t, s, "load "+path)
	if want := []string{"Loaded 1 actions, 2 monsters."}; !reflect.DeepEqual(lines, want) {
		t.Errorf("load = %q, want %q", lines, want)
	}
	if s.Competition() != nil {
		t.Error("load kept the previous competition")
	}
	if got := handle(t, s, "show monsters"); len(got) != 2 {
		t.Errorf("show monsters after load = %q", got)
	}

	if _, err := s.Handle(context.Background(), "load "+filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("load of a missing file succeeded")
	}
	if got := handle(t, s, "show monsters"); len(got) != 2 {
		t.Errorf("failed load changed the setup: %q", got)
	}
}

func TestRun(t *testing.T) {
	s := newShell(t, game.Config{Seed: 1})
	in := strings.NewReader("show monsters\nbogus\nquit\nshow monsters\n")
	var out, errOut bytes.Buffer

	if err := s.Run(context.Background(), in, &out, &errOut); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !s.Done() {
		t.Error("Done() = false after quit")
	}
	if got := strings.Count(out.String(), "ELEMENT"); got != 4 {
		t.Errorf("Run() printed %d monster lines, want 4 (nothing after quit)", got)
	}
	if want := "Error, unknown command: bogus\n"; errOut.String() != want {
		t.Errorf("errOut = %q, want %q", errOut.String(), want)
	}
}

func TestHealthBar(t *testing.T) {
	tests := []struct {
		hp, maxHP int
		want      string
	}{
		{100, 100, "[XXXXXXXXXXXXXXXXXXXX]"},
		{0, 100, "[____________________]"},
		{1, 100, "[X___________________]"},
		{50, 100, "[XXXXXXXXXX__________]"},
	}

	for _, tt := range tests {
		if got := healthBar(tt.hp, tt.maxHP); got != tt.want {
			t.Errorf("healthBar(%d, %d) = %q, want %q", tt.hp, tt.maxHP, got, tt.want)
		}
	}
}
