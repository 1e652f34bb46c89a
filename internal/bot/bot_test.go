package bot

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/kapu/plex-request-bot-go/internal/adapter"
	"github.com/kapu/plex-request-bot-go/internal/domain"
	"github.com/kapu/plex-request-bot-go/internal/iris"
	"go.uber.org/zap"
)

type fakeSource struct {
	messages []*iris.Message
	runErr   error
	closed   bool
}

func (s *fakeSource) Run(ctx context.Context, handler iris.MessageHandler) error {
	for _, m := range s.messages {
		handler(m)
	}
	if s.runErr != nil {
		return s.runErr
	}
	<-ctx.Done()
	return nil
}

func (s *fakeSource) Close() error {
	s.closed = true
	return nil
}

func (s *fakeSource) IsConnected() bool { return !s.closed }

type recordingProcessor struct {
	mu       sync.Mutex
	commands []*domain.CommandContext
	panicOn  domain.Verb
}

func (p *recordingProcessor) Process(_ context.Context, cmdCtx *domain.CommandContext) error {
	if cmdCtx.Verb == p.panicOn {
		panic("handler exploded")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.commands = append(p.commands, cmdCtx)
	return nil
}

func (p *recordingProcessor) verbs() map[domain.Verb]int {
	p.mu.Lock()
	defer p.mu.Unlock()
	counts := make(map[domain.Verb]int)
	for _, c := range p.commands {
		counts[c.Verb]++
	}
	return counts
}

func msg(text string) *iris.Message {
	sender := "Alice"
	return &iris.Message{Msg: text, Room: "18398338829933", Sender: &sender}
}

func newTestBot(t *testing.T, source *fakeSource, processor *recordingProcessor) *Bot {
	t.Helper()
	b, err := NewBot(&Dependencies{
		Logger:         zap.NewNop(),
		Source:         source,
		MessageAdapter: adapter.NewMessageAdapter("!plex"),
		Processor:      processor,
		Workers:        2,
	})
	if err != nil {
		t.Fatalf("new bot: %v", err)
	}
	return b
}

func TestNewBotRequiresCollaborators(t *testing.T) {
	if _, err := NewBot(nil); err == nil {
		t.Fatalf("expected error for nil dependencies")
	}
	if _, err := NewBot(&Dependencies{}); err == nil {
		t.Fatalf("expected error for missing collaborators")
	}
}

func TestBotDispatchesPrefixedMessagesOnly(t *testing.T) {
	source := &fakeSource{messages: []*iris.Message{
		msg("!plex ping"),
		msg("just chatting"),
		msg("!plex request Heat"),
		nil,
	}}
	processor := &recordingProcessor{}
	b := newTestBot(t, source, processor)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- b.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	if err := <-errCh; err != nil {
		t.Fatalf("expected clean stop, got %v", err)
	}
	if err := b.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	counts := processor.verbs()
	if counts[domain.VerbPing] != 1 || counts[domain.VerbRequest] != 1 || len(processor.commands) != 2 {
		t.Fatalf("unexpected processed commands: %v", counts)
	}
	for _, c := range processor.commands {
		if c.Sender != "Alice" || c.Room != "18398338829933" {
			t.Fatalf("unexpected context: %+v", c)
		}
		if c.Verb == domain.VerbRequest && (c.Message != "request Heat" || len(c.Args) != 1 || c.Args[0] != "Heat") {
			t.Fatalf("unexpected request context: %+v", c)
		}
	}
	if !source.closed {
		t.Fatalf("expected source closed on shutdown")
	}
}

func TestBotRecoversFromHandlerPanic(t *testing.T) {
	processor := &recordingProcessor{panicOn: domain.VerbList}
	b := newTestBot(t, &fakeSource{}, processor)

	b.HandleMessage(msg("!plex list"))
	b.HandleMessage(msg("!plex ping"))
	b.HandleMessage(msg("!plex popular 5"))

	if err := b.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	counts := processor.verbs()
	if counts[domain.VerbPing] != 1 || counts[domain.VerbPopular] != 1 || counts[domain.VerbList] != 0 {
		t.Fatalf("expected the other commands to survive the panic, got %v", counts)
	}
}

func TestBotDropsMessagesAfterShutdown(t *testing.T) {
	processor := &recordingProcessor{}
	b := newTestBot(t, &fakeSource{}, processor)

	if err := b.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	b.HandleMessage(msg("!plex ping"))
	if len(processor.verbs()) != 0 {
		t.Fatalf("expected no commands after shutdown")
	}
	if err := b.Shutdown(context.Background()); err != nil {
		t.Fatalf("second shutdown should be a no-op, got %v", err)
	}
}

func TestBotStartReturnsSourceError(t *testing.T) {
	b := newTestBot(t, &fakeSource{runErr: fmt.Errorf("giving up")}, &recordingProcessor{})

	if err := b.Start(context.Background()); err == nil {
		t.Fatalf("expected listener error")
	}
}
