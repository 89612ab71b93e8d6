package mailqueue

import (
	"SimOCRBackend/pkg/smtp"
	"errors"
	"io"
	"testing"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) Enqueue(task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Queue: QueueName}, nil
}

type fakeSMTP struct {
	enabled bool
	err     error
	sent    []Payload
}

func (f *fakeSMTP) Enabled() bool { return f.enabled }

func (f *fakeSMTP) SendHTML(to, subject, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, Payload{To: to, Subject: subject, HTML: html})
	return nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestMailerEnqueues(t *testing.T) {
	q := &fakeEnqueuer{}
	m := NewMailer(q, &fakeSMTP{enabled: true}, quietLogger())

	require.NoError(t, m.SendHTML("a@example.com", "Hi", "<p>hi</p>"))
	require.Len(t, q.tasks, 1)
	assert.Equal(t, TypeSendEmail, q.tasks[0].Type())

	var p Payload
	require.NoError(t, jsoniter.Unmarshal(q.tasks[0].Payload(), &p))
	assert.Equal(t, Payload{To: "a@example.com", Subject: "Hi", HTML: "<p>hi</p>"}, p)
}

func TestMailerDisabled(t *testing.T) {
	q := &fakeEnqueuer{}
	m := NewMailer(q, &fakeSMTP{}, quietLogger())

	assert.False(t, m.Enabled())
	assert.ErrorIs(t, m.SendHTML("a@example.com", "Hi", ""), smtp.ErrNotConfigured)
	assert.Empty(t, q.tasks)
}

func TestMailerEnqueueFailure(t *testing.T) {
	m := NewMailer(&fakeEnqueuer{err: errors.New("redis down")}, &fakeSMTP{enabled: true}, quietLogger())
	assert.Error(t, m.SendHTML("a@example.com", "Hi", ""))
}

func TestWorkerSendsPayload(t *testing.T) {
	mailer := &fakeSMTP{enabled: true}
	w := &Worker{smtp: mailer, log: quietLogger()}

	payload, err := jsoniter.Marshal(Payload{To: "b@example.com", Subject: "S", HTML: "<b>x</b>"})
	require.NoError(t, err)

	require.NoError(t, w.handleSendEmail(t.Context(), asynq.NewTask(TypeSendEmail, payload)))
	assert.Equal(t, []Payload{{To: "b@example.com", Subject: "S", HTML: "<b>x</b>"}}, mailer.sent)
}

func TestWorkerSkipsRetryOnPermanentErrors(t *testing.T) {
	w := &Worker{smtp: &fakeSMTP{err: smtp.ErrNotConfigured}, log: quietLogger()}

	err := w.handleSendEmail(t.Context(), asynq.NewTask(TypeSendEmail, []byte("not json")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	payload, _ := jsoniter.Marshal(Payload{To: "b@example.com"})
	err = w.handleSendEmail(t.Context(), asynq.NewTask(TypeSendEmail, payload))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.ErrorIs(t, err, smtp.ErrNotConfigured)

	transient := errors.New("connection reset")
	w.smtp = &fakeSMTP{err: transient}
	err = w.handleSendEmail(t.Context(), asynq.NewTask(TypeSendEmail, payload))
	assert.ErrorIs(t, err, transient)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestRedisOpt(t *testing.T) {
	t.Setenv("REDIS_ADDRESS", "cache:6380")
	t.Setenv("REDIS_PASSWORD", "pw")
	t.Setenv("REDIS_DB", "2")

	assert.Equal(t, asynq.RedisClientOpt{Addr: "cache:6380", Password: "pw", DB: 2}, RedisOpt())
}
