package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

type sendgridAPI interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type SendGridSender struct {
	client   sendgridAPI
	from     string
	fromName string
	logger   *zap.Logger
}

func NewSendGridSender(apiKey, from string, logger *zap.Logger) (*SendGridSender, error) {
	if apiKey == "" {
		return nil, errors.New("sendgrid api key is empty")
	}
	if from == "" {
		return nil, errors.New("from address is empty")
	}
	return &SendGridSender{
		client:   sendgrid.NewSendClient(apiKey),
		from:     from,
		fromName: "Space Coderz",
		logger:   logger.Named("sendgrid"),
	}, nil
}

func (s *SendGridSender) Send(ctx context.Context, m Message) error {
	if m.To == "" {
		return errors.New("to address is empty")
	}

	message := mail.NewSingleEmail(
		mail.NewEmail(s.fromName, s.from),
		m.Subject,
		mail.NewEmail(m.ToName, m.To),
		m.Text,
		m.HTML,
	)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		s.logger.Warn("sendgrid rejected mail", zap.Int("status", resp.StatusCode), zap.String("body", resp.Body))
		return fmt.Errorf("sendgrid send failed: status=%d", resp.StatusCode)
	}

	s.logger.Debug("mail sent", zap.Int("status", resp.StatusCode), zap.String("subject", m.Subject))
	return nil
}
