package telegram

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func TestNotifier_Notify(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifierWithSender(sender, -100123)

	require.NoError(t, n.Notify(context.Background(), "EMP001 Jean Dupont: entrée 08:15"))

	require.Len(t, sender.sent, 1)
	msg, ok := sender.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(-100123), msg.ChatID)
	assert.Equal(t, "EMP001 Jean Dupont: entrée 08:15", msg.Text)
}

func TestNotifier_WrapsSendError(t *testing.T) {
	boom := errors.New("boom")
	n := NewNotifierWithSender(&fakeSender{err: boom}, 1)

	err := n.Notify(context.Background(), "hello")
	assert.ErrorIs(t, err, boom)
}

func TestNotifier_CancelledContext(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifierWithSender(sender, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, n.Notify(ctx, "hello"), context.Canceled)
	assert.Empty(t, sender.sent)
}
