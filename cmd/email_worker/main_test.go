package main

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/icook-api/pkg/mailer"
)

type fakeSender struct {
	sent []mailer.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, m mailer.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m)
	return nil
}

func newWorker(s mailer.Sender) *worker {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &worker{sender: s, logger: l}
}

func TestHandle_SendsRenderedTemplate(t *testing.T) {
	s := &fakeSender{}
	got := newWorker(s).handle(context.Background(),
		[]byte(`{"to":"bob@example.com","template":"new_follower","data":{"Name":"Bob","FollowerName":"Alice"}}`))

	assert.Equal(t, ack, got)
	require.Len(t, s.sent, 1)
	assert.Equal(t, "bob@example.com", s.sent[0].To)
	assert.Contains(t, s.sent[0].Subject, "Alice")
	assert.Equal(t, "new_follower", s.sent[0].Tag)
}

func TestHandle_DropsUnusableJobs(t *testing.T) {
	w := newWorker(&fakeSender{})
	assert.Equal(t, drop, w.handle(context.Background(), []byte(`{not json`)))
	assert.Equal(t, drop, w.handle(context.Background(), []byte(`{"to":"bob@example.com","template":"nope"}`)))
	assert.Equal(t, drop, w.handle(context.Background(), []byte(`{"text":"no recipient"}`)))
}

func TestHandle_RetriesSendFailures(t *testing.T) {
	w := newWorker(&fakeSender{err: errors.New("mailgun 503")})
	assert.Equal(t, retry, w.handle(context.Background(), []byte(`{"to":"bob@example.com","text":"hi"}`)))
}
