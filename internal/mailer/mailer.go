// Package mailer sends transactional email from a background queue.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Queue accepts messages for asynchronous delivery.
type Queue interface {
	Enqueue(msg Message)
}

// --------------------------------------------------
// SMTP
// --------------------------------------------------

type SMTPSender struct {
	addr string
	from string
	auth smtp.Auth

	// swapped in tests
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
		auth: auth,
		send: smtp.SendMail,
	}
}

func (s *SMTPSender) Send(_ context.Context, msg Message) error {
	if err := s.send(s.addr, s.auth, s.from, []string{msg.To}, s.build(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}

func (s *SMTPSender) build(msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTMLBody)
	return []byte(b.String())
}

// --------------------------------------------------
// Log
// --------------------------------------------------

// LogSender writes messages to the log instead of delivering them.
type LogSender struct {
	log logrus.FieldLogger
}

func NewLogSender(log logrus.FieldLogger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.log.WithFields(logrus.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info("email not sent: no SMTP host configured")
	return nil
}

// --------------------------------------------------
// Dispatcher
// --------------------------------------------------

const sendTimeout = 30 * time.Second

type Dispatcher struct {
	sender Sender
	log    logrus.FieldLogger
	queue  chan Message

	done chan struct{}

	// mu guards closed; senders hold it shared so Close cannot close the
	// queue under them.
	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(sender Sender, log logrus.FieldLogger, size int) *Dispatcher {
	if size <= 0 {
		size = 100
	}
	d := &Dispatcher{
		sender: sender,
		log:    log.WithField("component", "mailer"),
		queue:  make(chan Message, size),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		if err := d.sender.Send(ctx, msg); err != nil {
			d.log.WithError(err).WithField("to", msg.To).Error("email delivery failed")
		}
		cancel()
	}
}

// Enqueue never blocks; a full or closed queue drops the message.
func (d *Dispatcher) Enqueue(msg Message) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.WithField("to", msg.To).Warn("mail queue closed, dropping message")
		return
	}
	select {
	case d.queue <- msg:
	default:
		d.log.WithField("to", msg.To).Warn("mail queue full, dropping message")
	}
}

// Close stops accepting messages and waits for queued ones to be sent.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	<-d.done
}
