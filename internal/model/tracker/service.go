package tracker

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

type responseSender interface {
	SendMessage(text string) error
}

type CommandHandler interface {
	HandleCommand(ctx context.Context, text string) (string, error)
}

// Service dispatches one command at a time: every operation, persistence
// included, runs to completion before the next command is accepted.
type Service struct {
	sender  responseSender
	handler CommandHandler
}

func NewService(sender responseSender, session sessionController, store recordStore) *Service {
	return &Service{
		sender:  sender,
		handler: newHandler(session, store),
	}
}

type Command struct {
	Text string
}

func (s *Service) IncomingCommand(ctx context.Context, cmd Command) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "handleCommand")
	defer span.Finish()

	start := time.Now()
	err := s.handle(ctx, cmd)
	elapsed := time.Since(start)

	observeResponse(elapsed, err != nil)
	if err != nil {
		ext.Error.Set(span, true)
	}
	return err
}

func (s *Service) handle(ctx context.Context, cmd Command) error {
	resp, err := s.handler.HandleCommand(ctx, cmd.Text)
	if err != nil {
		_ = s.sender.SendMessage("Sorry, something went wrong...\n" + resp)
		return err
	}
	return s.sender.SendMessage(resp)
}
