package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/order"
)

// Sender delivers a rendered message.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// Notifier sends order confirmations through a Sender.
type Notifier struct {
	sender Sender
	logger *zap.Logger
}

func New(sender Sender, logger *zap.Logger) *Notifier {
	return &Notifier{sender: sender, logger: logger.Named("notify")}
}

// OrderConfirmation mails the confirmation to the shipping email. Checkouts
// without an email are skipped.
func (n *Notifier) OrderConfirmation(ctx context.Context, c order.Confirmation) error {
	if c.Shipping.Email == "" {
		n.logger.Debug("no email on checkout, confirmation skipped", zap.String("token", c.Token))
		return nil
	}
	m, err := ConfirmationMessage(c)
	if err != nil {
		return err
	}
	if err := n.sender.Send(ctx, m); err != nil {
		return fmt.Errorf("send confirmation: %w", err)
	}
	return nil
}

// LogSender writes messages to the log instead of sending them.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger.Named("mail")}
}

func (s *LogSender) Send(ctx context.Context, m Message) error {
	s.logger.Info("mail not sent, no provider configured",
		zap.String("to", m.To),
		zap.String("subject", m.Subject))
	return nil
}
