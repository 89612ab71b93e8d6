// Package mailqueue moves e-mail delivery out of the request path. Messages are
// enqueued as asynq tasks in Redis and sent by a worker through the SMTP mailer.
package mailqueue

import (
	"SimOCRBackend/pkg/smtp"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

const (
	TypeSendEmail = "email:send"
	QueueName     = "mail"

	maxRetry    = 5
	sendTimeout = 30 * time.Second
)

type Payload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Mailer satisfies smtp.ItfSmtp. SendHTML only enqueues, delivery errors are
// retried by the worker.
type Mailer struct {
	client enqueuer
	smtp   smtp.ItfSmtp
	log    *logrus.Logger
}

func NewMailer(client enqueuer, smtpMailer smtp.ItfSmtp, log *logrus.Logger) *Mailer {
	return &Mailer{client: client, smtp: smtpMailer, log: log}
}

func (m *Mailer) Enabled() bool {
	return m.smtp.Enabled()
}

func (m *Mailer) SendHTML(to string, subject string, html string) error {
	if !m.smtp.Enabled() {
		return smtp.ErrNotConfigured
	}

	payload, err := jsoniter.Marshal(Payload{To: to, Subject: subject, HTML: html})
	if err != nil {
		return fmt.Errorf("encode mail payload: %w", err)
	}

	task := asynq.NewTask(TypeSendEmail, payload)
	info, err := m.client.Enqueue(task,
		asynq.Queue(QueueName),
		asynq.MaxRetry(maxRetry),
		asynq.Timeout(sendTimeout),
	)
	if err != nil {
		return fmt.Errorf("enqueue mail: %w", err)
	}

	m.log.WithFields(logrus.Fields{
		"task_id": info.ID,
		"queue":   info.Queue,
	}).Debug("Mail enqueued")
	return nil
}

type Worker struct {
	server *asynq.Server
	smtp   smtp.ItfSmtp
	log    *logrus.Logger
}

func NewWorker(opt asynq.RedisConnOpt, smtpMailer smtp.ItfSmtp, log *logrus.Logger, concurrency int) *Worker {
	if concurrency <= 0 {
		concurrency = 2
	}

	w := &Worker{smtp: smtpMailer, log: log}
	w.server = asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{QueueName: 1},
		Logger:      log,
		ErrorHandler: asynq.ErrorHandlerFunc(func(_ context.Context, task *asynq.Task, err error) {
			log.WithFields(logrus.Fields{
				"type":  task.Type(),
				"error": err.Error(),
			}).Error("Mail task failed")
		}),
	})
	return w
}

// Start runs the worker in the background. Stop with Shutdown.
func (w *Worker) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSendEmail, w.handleSendEmail)
	return w.server.Start(mux)
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

func (w *Worker) handleSendEmail(_ context.Context, task *asynq.Task) error {
	var p Payload
	if err := jsoniter.Unmarshal(task.Payload(), &p); err != nil {
		return fmt.Errorf("decode mail payload: %w: %w", err, asynq.SkipRetry)
	}

	if err := w.smtp.SendHTML(p.To, p.Subject, p.HTML); err != nil {
		if errors.Is(err, smtp.ErrNotConfigured) {
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}
		return err
	}

	w.log.WithFields(logrus.Fields{
		"to": p.To,
	}).Info("Mail sent")
	return nil
}

// Enabled reports whether MAIL_QUEUE_ENABLED is set to a true value.
func Enabled() bool {
	on, _ := strconv.ParseBool(os.Getenv("MAIL_QUEUE_ENABLED"))
	return on
}

// RedisOpt builds the asynq connection from the REDIS_* variables shared
// with the cache client.
func RedisOpt() asynq.RedisClientOpt {
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		addr = "localhost:6379"
	}
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))

	return asynq.RedisClientOpt{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	}
}
