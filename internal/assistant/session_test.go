package assistant

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
	"github.com/kevo-dev/Portfolio2/internal/gateway"
	"github.com/kevo-dev/Portfolio2/internal/model"
	"github.com/kevo-dev/Portfolio2/internal/profile"
)

type fakeConversant struct {
	reply   gateway.Reply
	got     []string
	started chan struct{}
	release chan struct{}
}

func (f *fakeConversant) Converse(ctx context.Context, message string) gateway.Reply {
	f.got = append(f.got, message)
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}
	return f.reply
}

func TestNewSession_Greets(t *testing.T) {
	p := profile.Default()
	s := NewSession(&fakeConversant{}, p)

	tr := s.Transcript()
	assert.Equal(t, 1, len(tr))
	assert.Equal(t, model.RoleModel, tr[0].Role)
	assert.Equal(t, p.Assistant.Greeting, tr[0].Text)
	assert.Equal(t, false, s.Busy())
}

func TestSend_AppendsExchange(t *testing.T) {
	conv := &fakeConversant{reply: gateway.Reply{Text: "Mostly Go and React.", Outcome: gateway.OutcomeOK}}
	s := NewSession(conv, profile.Default())

	ok := s.Send(context.Background(), "  What's his stack?  ")

	assert.Equal(t, true, ok)
	assert.Equal(t, []string{"What's his stack?"}, conv.got)
	tr := s.Transcript()
	assert.Equal(t, 3, len(tr))
	assert.Equal(t, model.Message{Role: model.RoleUser, Text: "What's his stack?"}, tr[1])
	assert.Equal(t, model.Message{Role: model.RoleModel, Text: "Mostly Go and React."}, tr[2])
	assert.Equal(t, false, s.Busy())
}

func TestSend_BlankIgnored(t *testing.T) {
	conv := &fakeConversant{}
	s := NewSession(conv, profile.Default())

	assert.Equal(t, false, s.Send(context.Background(), " \n "))
	assert.Equal(t, 0, len(conv.got))
	assert.Equal(t, 1, len(s.Transcript()))
}

func TestSend_FallbackReplyIsShown(t *testing.T) {
	conv := &fakeConversant{reply: gateway.Reply{Text: gateway.FallbackReply, Outcome: gateway.OutcomeTransportError}}
	s := NewSession(conv, profile.Default())

	s.Send(context.Background(), "hi")

	tr := s.Transcript()
	assert.Equal(t, gateway.FallbackReply, tr[len(tr)-1].Text)
}

func TestSend_EmptyReplyBecomesSignalLost(t *testing.T) {
	s := NewSession(&fakeConversant{}, profile.Default())

	s.Send(context.Background(), "hi")

	tr := s.Transcript()
	assert.Equal(t, SignalLost, tr[len(tr)-1].Text)
}

func TestSend_CancelledContextBecomesSignalLost(t *testing.T) {
	conv := &fakeConversant{reply: gateway.Reply{Text: "late"}}
	s := NewSession(conv, profile.Default())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s.Send(ctx, "hi")

	tr := s.Transcript()
	assert.Equal(t, SignalLost, tr[len(tr)-1].Text)
}

func TestSend_RejectedWhileBusy(t *testing.T) {
	conv := &fakeConversant{
		reply:   gateway.Reply{Text: "done"},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := NewSession(conv, profile.Default())

	done := make(chan bool)
	go func() { done <- s.Send(context.Background(), "first") }()

	select {
	case <-conv.started:
	case <-time.After(time.Second):
		t.Fatal("first send never reached the model")
	}

	assert.Equal(t, true, s.Busy())
	assert.Equal(t, false, s.Send(context.Background(), "second"))
	assert.Equal(t, false, s.SendQuickReply(context.Background(), 0))

	close(conv.release)
	assert.Equal(t, true, <-done)

	tr := s.Transcript()
	assert.Equal(t, 3, len(tr))
	assert.Equal(t, "first", tr[1].Text)
	assert.Equal(t, "done", tr[2].Text)
}

func TestSendQuickReply(t *testing.T) {
	p := profile.Default()
	conv := &fakeConversant{reply: gateway.Reply{Text: "ok"}}
	s := NewSession(conv, p)

	assert.Equal(t, p.Assistant.QuickReplies, s.QuickReplies())
	assert.Equal(t, true, s.SendQuickReply(context.Background(), 1))
	assert.Equal(t, []string{p.Assistant.QuickReplies[1]}, conv.got)

	assert.Equal(t, false, s.SendQuickReply(context.Background(), -1))
	assert.Equal(t, false, s.SendQuickReply(context.Background(), len(p.Assistant.QuickReplies)))
}

type panickingConversant struct {
	calls int
}

func (p *panickingConversant) Converse(ctx context.Context, message string) gateway.Reply {
	p.calls++
	if p.calls == 1 {
		panic("provider exploded")
	}
	return gateway.Reply{Text: "recovered"}
}

func TestSend_PanicReleasesBusy(t *testing.T) {
	conv := &panickingConversant{}
	s := NewSession(conv, profile.Default())

	ok := s.Send(context.Background(), "first")

	assert.Equal(t, true, ok)
	assert.Equal(t, false, s.Busy())
	tr := s.Transcript()
	assert.Equal(t, 3, len(tr))
	assert.Equal(t, model.Message{Role: model.RoleModel, Text: SignalLost}, tr[2])

	ok = s.Send(context.Background(), "second")

	assert.Equal(t, true, ok)
	tr = s.Transcript()
	assert.Equal(t, 5, len(tr))
	assert.Equal(t, "recovered", tr[4].Text)
}
