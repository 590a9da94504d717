package game

import (
	"context"
	"strings"

	"github.com/samdwyer/monsterarena/internal/decision"
)

// Session is the operator's handle on a debug-mode competition: it tells what
// kind of value is requested and feeds typed answers back in.
type Session struct {
	c *Competition
}

// Session returns the debug session, or false if the competition is not in
// debug mode.
func (c *Competition) Session() (*Session, bool) {
	if !c.source.Debug() {
		return nil, false
	}
	return &Session{c: c}, true
}

// Expected returns the pending request, if any.
func (s *Session) Expected() (Query, bool) {
	return s.c.Pending()
}

// Supply parses the operator's text as the expected kind of value and
// resumes the round with it.
func (s *Session) Supply(ctx context.Context, text string) (Report, error) {
	q, ok := s.c.Pending()
	if !ok {
		return Report{}, ErrNotSuspended
	}
	a, err := decision.ParseAnswer(q.Kind, strings.TrimSpace(text))
	if err != nil {
		return s.c.report(nil), err
	}
	return s.c.Answer(ctx, a)
}
