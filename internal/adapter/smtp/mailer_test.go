package smtp

import (
	"context"
	"strings"
	"testing"

	"github.com/lucybakery/bakeshop/internal/config"
	"github.com/lucybakery/bakeshop/internal/domain"
	"github.com/lucybakery/bakeshop/internal/interfaces"
)

func TestFormatWon(t *testing.T) {
	tests := []struct {
		amount int
		want   string
	}{
		{0, "0원"},
		{500, "500원"},
		{3500, "3,500원"},
		{12500, "12,500원"},
		{1234567, "1,234,567원"},
		{-2000, "-2,000원"},
	}

	for _, tt := range tests {
		if got := FormatWon(tt.amount); got != tt.want {
			t.Errorf("FormatWon(%d) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func sampleMessage() interfaces.OrderNotificationMessage {
	return interfaces.OrderNotificationMessage{
		OrderID:  "ord-1",
		ShopName: "Lucy Bakery",
		Lines: []interfaces.OrderLineMessage{
			{Name: "americano", Quantity: 2, UnitPrice: 3000},
			{Name: "choco muffin", Quantity: 1, UnitPrice: 3500},
		},
		Subtotal:       9500,
		DiscountType:   domain.DiscountMonetary,
		DiscountAmount: 2000,
		FinalTotal:     7500,
		Note:           "less sugar please",
		OrderedAt:      "2026-08-30T12:00:00Z",
	}
}

func TestBuildBody(t *testing.T) {
	body := buildBody(sampleMessage())

	for _, want := range []string{
		"[Lucy Bakery] A new order has been received.",
		"Order: ord-1",
		"- americano x2 (3,000원)",
		"- choco muffin x1 (3,500원)",
		"Subtotal: 9,500원",
		"Discount: 2,000원 (monetary)",
		"Total: 7,500원",
		"Note: less sugar please",
		"Time: 2026-08-30T12:00:00Z",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}

func TestBuildBodyWithoutDiscountOrNote(t *testing.T) {
	msg := sampleMessage()
	msg.DiscountType = domain.DiscountNone
	msg.DiscountAmount = 0
	msg.Note = ""

	body := buildBody(msg)

	if !strings.Contains(body, "Discount: none") {
		t.Errorf("body missing zero-discount line:\n%s", body)
	}
	if !strings.Contains(body, "Note: -") {
		t.Errorf("body missing note placeholder:\n%s", body)
	}
}

func TestBuildMessageHeaders(t *testing.T) {
	mail := string(buildMessage("owner@example.com", []string{"a@example.com", "b@example.com"}, "hello", "body"))

	for _, want := range []string{
		"From: owner@example.com\r\n",
		"To: a@example.com, b@example.com\r\n",
		"Subject: hello\r\n",
		"Content-Type: text/plain; charset=utf-8\r\n",
		"\r\n\r\nbody",
	} {
		if !strings.Contains(mail, want) {
			t.Errorf("message missing %q:\n%s", want, mail)
		}
	}
}

func TestSendWithoutCredentials(t *testing.T) {
	m := NewMailer(config.SMTPConfig{Host: "smtp.example.com", Port: 465}, "owner@example.com")

	ok, reason := m.Send(context.Background(), sampleMessage())
	if ok {
		t.Fatal("send must fail without credentials")
	}
	if reason == "" {
		t.Error("failure must carry a reason")
	}
}

func TestSendWithoutRecipients(t *testing.T) {
	m := NewMailer(config.SMTPConfig{Host: "smtp.example.com", Port: 465, User: "u", Password: "p"}, "   ")

	if ok, _ := m.Send(context.Background(), sampleMessage()); ok {
		t.Fatal("send must fail without recipients")
	}
}
