package assistant

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/kevo-dev/Portfolio2/internal/gateway"
	"github.com/kevo-dev/Portfolio2/internal/model"
	"github.com/kevo-dev/Portfolio2/internal/profile"
)

// SignalLost is shown when a reply never arrived.
const SignalLost = "Signal lost. Please verify connection."

type Conversant interface {
	Converse(ctx context.Context, message string) gateway.Reply
}

// Session is one visitor's chat transcript. Only one message is in flight
// at a time; sends while busy are rejected.
type Session struct {
	conv         Conversant
	quickReplies []string

	mu         sync.Mutex
	transcript []model.Message
	busy       bool
}

func NewSession(conv Conversant, p *profile.Profile) *Session {
	return &Session{
		conv:         conv,
		quickReplies: append([]string(nil), p.Assistant.QuickReplies...),
		transcript:   []model.Message{{Role: model.RoleModel, Text: p.Assistant.Greeting}},
	}
}

// Send appends text and the model's reply to the transcript. It reports
// false without doing anything when text is blank or a reply is pending.
func (s *Session) Send(ctx context.Context, text string) (accepted bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return false
	}
	s.busy = true
	s.transcript = append(s.transcript, model.Message{Role: model.RoleUser, Text: text})
	s.mu.Unlock()

	answer := SignalLost
	defer func() {
		if r := recover(); r != nil {
			slog.Error("recovered from panic in assistant reply", "panic", r)
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.transcript = append(s.transcript, model.Message{Role: model.RoleModel, Text: answer})
		s.busy = false
		accepted = true
	}()

	reply := s.conv.Converse(ctx, text)
	if reply.Text != "" && ctx.Err() == nil {
		answer = reply.Text
	}

	return true
}

// SendQuickReply sends the i-th canned prompt.
func (s *Session) SendQuickReply(ctx context.Context, i int) bool {
	if i < 0 || i >= len(s.quickReplies) {
		return false
	}
	return s.Send(ctx, s.quickReplies[i])
}

func (s *Session) QuickReplies() []string {
	return append([]string(nil), s.quickReplies...)
}

func (s *Session) Transcript() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Message(nil), s.transcript...)
}

func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}
