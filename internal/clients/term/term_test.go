package term

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranusri1903/expense-tracker/internal/model/tracker"
)

type recordingSession struct {
	user string
}

func (s *recordingSession) Register(_ context.Context, _, _ string) error { return nil }
func (s *recordingSession) Login(_ context.Context, username, _ string) error {
	s.user = username
	return nil
}
func (s *recordingSession) Logout(_ context.Context) error { s.user = ""; return nil }
func (s *recordingSession) ActiveUser() (string, bool)     { return s.user, s.user != "" }

func Test_OnSendMessage_ShouldWriteLine(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader(""), &out)

	require.NoError(t, c.SendMessage("hello"))
	assert.Equal(t, "hello\n", out.String())
}

func Test_OnListen_ShouldDispatchUntilEOF(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("/help\n"), &out)
	svc := tracker.NewService(c, &recordingSession{}, nil)

	c.Listen(context.Background(), svc)

	assert.Contains(t, out.String(), "/register")
}

func Test_OnQuitCommand_ShouldStopWithoutDispatching(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("/quit\n/help\n"), &out)
	svc := tracker.NewService(c, &recordingSession{}, nil)

	c.Listen(context.Background(), svc)

	assert.NotContains(t, out.String(), "/register")
}
