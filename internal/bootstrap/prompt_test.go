package bootstrap

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfirmContinue_DefaultsToYesOnTimeout(t *testing.T) {
	var out bytes.Buffer
	// A reader that never produces a line: simulates an operator who
	// walked away.
	release := make(chan struct{})
	defer close(release)

	got := confirmContinue(blockingReader{release}, &out, "low disk space", 50*time.Millisecond)
	assert.True(t, got)
	assert.Contains(t, out.String(), "WARNING: low disk space")
}

func TestConfirmContinue_ExplicitYes(t *testing.T) {
	var out bytes.Buffer
	got := confirmContinue(strings.NewReader("y\n"), &out, "low disk space", time.Second)
	assert.True(t, got)
}

func TestConfirmContinue_EmptyAnswerContinues(t *testing.T) {
	var out bytes.Buffer
	got := confirmContinue(strings.NewReader("\n"), &out, "low disk space", time.Second)
	assert.True(t, got)
}

func TestConfirmContinue_Decline(t *testing.T) {
	var out bytes.Buffer
	for _, answer := range []string{"n\n", "N\n", "no\n", " NO \n"} {
		got := confirmContinue(strings.NewReader(answer), &out, "low disk space", time.Second)
		assert.False(t, got, "answer %q should decline", answer)
	}
}

func TestConfirmContinue_ClosedInputContinues(t *testing.T) {
	var out bytes.Buffer
	got := confirmContinue(strings.NewReader(""), &out, "low disk space", time.Second)
	assert.True(t, got, "EOF on stdin means unattended; continue")
}

// blockingReader blocks Read until the channel is closed.
type blockingReader struct {
	ch chan struct{}
}

func (r blockingReader) Read(p []byte) (int, error) {
	<-r.ch
	return 0, nil
}
