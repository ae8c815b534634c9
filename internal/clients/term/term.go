// Package term is the terminal presentation client. It solicits one
// command line at a time and renders the textual response, driving the
// command service the same way a chat client would.
package term

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/pranusri1903/expense-tracker/internal/logger"
	"github.com/pranusri1903/expense-tracker/internal/model/tracker"
)

const (
	prompt         = "> "
	timeoutSeconds = 5
	quitCommand    = "/quit"
)

type Client struct {
	in  io.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Client {
	return &Client{in: in, out: out}
}

func (c *Client) SendMessage(text string) error {
	_, err := fmt.Fprintln(c.out, text)
	return errors.Wrap(err, "write response")
}

// Listen reads command lines until EOF, /quit or context cancellation.
// Commands run strictly one at a time.
func (c *Client) Listen(ctx context.Context, svc *tracker.Service) {
	logger.Info("Start listening for commands")

	scanner := bufio.NewScanner(c.in)
	for {
		fmt.Fprint(c.out, prompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				logger.Error("reading input failed", zap.Error(err))
			}
			logger.Info("Stop listening for commands")
			return
		}
		select {
		case <-ctx.Done():
			logger.Info("Stop listening for commands")
			return
		default:
		}

		line := scanner.Text()
		if line == quitCommand {
			logger.Info("Stop listening for commands")
			return
		}
		c.listenOnce(ctx, line, svc)
	}
}

func (c *Client) listenOnce(ctx context.Context, line string, svc *tracker.Service) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*timeoutSeconds)
	defer cancel()

	if err := svc.IncomingCommand(ctx, tracker.Command{Text: line}); err != nil {
		logger.Error("error processing command", zap.Error(err))
	}
}
