package notifier

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"StockNewsAlert/internal/model"
)

// EmailNotifier sends notifications over SMTP with a mandatory STARTTLS upgrade.
type EmailNotifier struct {
	Host     string
	Port     int
	From     string
	To       string
	Password string
	Timeout  time.Duration
	// TLSConfig overrides the default {ServerName: Host}.
	TLSConfig *tls.Config
}

// NewEmailNotifier creates an EmailNotifier for one sender and one recipient.
func NewEmailNotifier(host string, port int, from, to, password string, timeout time.Duration) *EmailNotifier {
	return &EmailNotifier{
		Host:     host,
		Port:     port,
		From:     from,
		To:       to,
		Password: password,
		Timeout:  timeout,
	}
}

// Send delivers n in a single SMTP session. It does not retry.
func (e *EmailNotifier) Send(ctx context.Context, n *model.Notification) error {
	addr := net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	dialer := &net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return fmt.Errorf("set deadline: %w", err)
	}

	c, err := smtp.NewClient(conn, e.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp greeting: %w", err)
	}
	defer c.Close()

	tlsCfg := e.TLSConfig
	if tlsCfg == nil {
		tlsCfg = &tls.Config{ServerName: e.Host}
	}
	if err := c.StartTLS(tlsCfg); err != nil {
		return fmt.Errorf("starttls: %w", err)
	}
	if err := c.Auth(smtp.PlainAuth("", e.From, e.Password, e.Host)); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := c.Mail(e.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := c.Rcpt(e.To); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(BuildMessage(e.From, e.To, n)); err != nil {
		w.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp end data: %w", err)
	}
	if err := c.Quit(); err != nil {
		// The message was accepted at this point.
		log.Printf("[WARN] smtp quit: %v", err)
	}
	log.Printf("[INFO] email sent successfully to %s", e.To)
	return nil
}

// BuildMessage renders an RFC 5322 message with CRLF line endings.
func BuildMessage(from, to string, n *model.Notification) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", n.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	b.WriteString("\r\n")
	body := strings.ReplaceAll(n.Body, "\r\n", "\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return b.Bytes()
}
