// Package mailer sends plain-text notification mail over SMTP. Every
// send is synchronous: the calling request blocks until the exchange
// completes or the configured timeout fires.
package mailer

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/camden-git/portfoliobackend/config"
)

// ErrNotConfigured is returned when the SMTP transport is missing a
// required setting; callers surface it as a configuration error.
var ErrNotConfigured = errors.New("mail transport is not fully configured")

// Mailer holds the resolved SMTP settings for outbound notifications.
type Mailer struct {
	host     string
	port     int
	useTLS   bool
	useSSL   bool
	username string
	password string
	timeout  time.Duration
}

// New builds a Mailer from configuration. Construction never fails;
// missing settings surface on Send so an unconfigured deployment can
// still serve everything except the contact form.
func New(cfg config.Config) *Mailer {
	useTLS := cfg.MailUseTLS
	useSSL := cfg.MailUseSSL
	if useTLS && useSSL {
		log.Printf("mailer: both STARTTLS and implicit SSL enabled; using SSL and disabling STARTTLS")
		useTLS = false
	}
	return &Mailer{
		host:     cfg.MailServer,
		port:     cfg.MailPort,
		useTLS:   useTLS,
		useSSL:   useSSL,
		username: cfg.MailUsername,
		password: cfg.MailPassword,
		timeout:  cfg.MailTimeout,
	}
}

// Send delivers a plain-text message to the given address. It fails
// fast with ErrNotConfigured when host, port, credentials or the
// destination are missing.
func (m *Mailer) Send(subject, body, to string) error {
	if m.host == "" || m.port == 0 || m.username == "" || m.password == "" || to == "" {
		return ErrNotConfigured
	}

	msg := mail.NewMsg()
	if err := msg.From(m.username); err != nil {
		return fmt.Errorf("invalid sender address '%s': %w", m.username, err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid destination address '%s': %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.username),
		mail.WithPassword(m.password),
		mail.WithTimeout(m.timeout),
	}
	if m.useSSL {
		opts = append(opts, mail.WithSSL())
	} else if m.useTLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(m.host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client for %s: %w", m.host, err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail via %s:%d: %w", m.host, m.port, err)
	}
	return nil
}
