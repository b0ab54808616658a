// Copyright (c) 2026 Undervalued Books. All rights reserved.

/*
Package mailer sends plain-text notification emails over SMTP.

It is used exclusively by the moderation workflow: review requests to the
master account and approval/rejection notices back to submitters. Delivery
failures surface as errors to the caller; the mailer never retries.
*/
package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// Sender is the outbound-mail contract consumed by the moderation service.
type Sender interface {
	// Send delivers a plain-text message to a single recipient.
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPConfig holds the connection settings for the SMTP relay.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// SMTPMailer implements [Sender] over a standard SMTP relay with STARTTLS.
type SMTPMailer struct {
	config      SMTPConfig
	dialTimeout time.Duration
}

// NewSMTPMailer creates a mailer for the given relay configuration.
func NewSMTPMailer(config SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		config:      config,
		dialTimeout: 30 * time.Second,
	}
}

// Send delivers a plain-text message to a single recipient.
func (mailer *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	message := mailer.buildMessage(to, subject, body)
	return mailer.sendSMTP(ctx, to, message)
}

// buildMessage constructs the RFC 5322 message with headers.
func (mailer *SMTPMailer) buildMessage(to, subject, body string) string {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("From: Undervalued Books <%s>\r\n", mailer.config.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	return msg.String()
}

// sendSMTP performs the SMTP conversation: connect, STARTTLS, auth, send.
func (mailer *SMTPMailer) sendSMTP(ctx context.Context, to, message string) error {
	addr := fmt.Sprintf("%s:%d", mailer.config.Host, mailer.config.Port)

	// Create connection with timeout
	dialer := &net.Dialer{Timeout: mailer.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("mailer: failed to connect to SMTP server: %w", err)
	}
	defer func() { _ = conn.Close() }()

	client, err := smtp.NewClient(conn, mailer.config.Host)
	if err != nil {
		return fmt.Errorf("mailer: failed to create SMTP client: %w", err)
	}
	defer func() { _ = client.Close() }()

	// Opportunistic STARTTLS: required by virtually every relay on port 587.
	if ok, _ := client.Extension("STARTTLS"); ok {
		tlsConfig := &tls.Config{
			ServerName: mailer.config.Host,
			MinVersion: tls.VersionTLS12,
		}
		if err := client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("mailer: failed to start TLS: %w", err)
		}
	}

	// Authenticate if credentials provided
	if mailer.config.User != "" && mailer.config.Password != "" {
		auth := smtp.PlainAuth("", mailer.config.User, mailer.config.Password, mailer.config.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("mailer: SMTP authentication failed: %w", err)
		}
	}

	if err := client.Mail(mailer.config.From); err != nil {
		return fmt.Errorf("mailer: failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("mailer: failed to set recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("mailer: failed to start message: %w", err)
	}
	if _, err := writer.Write([]byte(message)); err != nil {
		return fmt.Errorf("mailer: failed to write message: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("mailer: failed to close message: %w", err)
	}

	// Quit gracefully; the message is already accepted at this point.
	if err := client.Quit(); err != nil {
		return nil
	}

	return nil
}
