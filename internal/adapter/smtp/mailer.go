// Package smtp sends the owner-facing order email over implicit TLS (port
// 465) with plain authentication. Delivery is best effort: the outcome is
// reported to the caller and never fails an order.
package smtp

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/lucybakery/bakeshop/internal/config"
	"github.com/lucybakery/bakeshop/internal/interfaces"
)

type Mailer struct {
	cfg        config.SMTPConfig
	recipients []string
}

func NewMailer(cfg config.SMTPConfig, recipients ...string) *Mailer {
	var to []string
	for _, r := range recipients {
		if r = strings.TrimSpace(r); r != "" {
			to = append(to, r)
		}
	}
	return &Mailer{cfg: cfg, recipients: to}
}

// Send delivers the order notification email. It returns (false, reason)
// instead of an error: callers surface the outcome as a warning.
func (m *Mailer) Send(ctx context.Context, msg interfaces.OrderNotificationMessage) (bool, string) {
	if m.cfg.User == "" || m.cfg.Password == "" || len(m.recipients) == 0 {
		return false, "SMTP credentials or recipients not configured"
	}

	body := buildBody(msg)
	mail := buildMessage(m.cfg.User, m.recipients, fmt.Sprintf("[%s] order notification #%s", msg.ShopName, msg.OrderID), body)

	if err := m.send(mail); err != nil {
		return false, err.Error()
	}
	return true, ""
}

func (m *Mailer) send(mail []byte) error {
	addr := m.cfg.Host + ":" + strconv.Itoa(m.cfg.Port)

	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.cfg.Host})
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}

	if err := client.Mail(m.cfg.User); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, to := range m.recipients {
		if err := client.Rcpt(to); err != nil {
			return fmt.Errorf("failed to set recipient: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open message body: %w", err)
	}
	if _, err := w.Write(mail); err != nil {
		return fmt.Errorf("failed to write message body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish message body: %w", err)
	}

	return client.Quit()
}

func buildMessage(from string, to []string, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

func buildBody(msg interfaces.OrderNotificationMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] A new order has been received.\n", msg.ShopName)
	fmt.Fprintf(&b, "Order: %s\n", msg.OrderID)
	b.WriteString("---- Items ----\n")
	for _, line := range msg.Lines {
		fmt.Fprintf(&b, "- %s x%d (%s)\n", line.Name, line.Quantity, FormatWon(line.UnitPrice))
	}
	b.WriteString("---------------\n")
	fmt.Fprintf(&b, "Subtotal: %s\n", FormatWon(msg.Subtotal))
	if msg.DiscountAmount > 0 {
		fmt.Fprintf(&b, "Discount: %s (%s)\n", FormatWon(msg.DiscountAmount), msg.DiscountType)
	} else {
		b.WriteString("Discount: none\n")
	}
	fmt.Fprintf(&b, "Total: %s\n", FormatWon(msg.FinalTotal))
	note := msg.Note
	if note == "" {
		note = "-"
	}
	fmt.Fprintf(&b, "Note: %s\n", note)
	fmt.Fprintf(&b, "Time: %s\n", msg.OrderedAt)
	return b.String()
}

// FormatWon renders minor-unit prices as "12,500원".
func FormatWon(amount int) string {
	s := strconv.Itoa(amount)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out + "원"
}
