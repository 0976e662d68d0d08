package inquiry

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/apperr"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/logging"
)

type Validator interface {
	Struct(s any) error
}

type Service struct {
	repo     Repository
	validate Validator
	logger   *zap.Logger
}

func NewService(repo Repository, validate Validator, logger *zap.Logger) *Service {
	return &Service{repo: repo, validate: validate, logger: logger.Named("inquiry")}
}

func (s *Service) SubmitJoinRequest(ctx context.Context, j JoinRequest) (JoinRequest, error) {
	j.Email = strings.TrimSpace(j.Email)
	if err := s.validate.Struct(j); err != nil {
		return JoinRequest{}, err
	}
	if err := s.repo.CreateJoinRequest(ctx, &j); err != nil {
		s.logger.Error("save join request failed", zap.Error(err))
		return JoinRequest{}, apperr.General("failed to submit application", err)
	}
	s.logger.Info("join request submitted", logging.Success(), zap.Int64("id", j.ID), zap.String("field", j.Field))
	return j, nil
}

func (s *Service) ListJoinRequests(ctx context.Context) ([]JoinRequest, error) {
	out, err := s.repo.ListJoinRequests(ctx)
	if err != nil {
		s.logger.Error("list join requests failed", zap.Error(err))
		return nil, apperr.General("failed to load applications", err)
	}
	return out, nil
}

func (s *Service) SubmitContactMessage(ctx context.Context, m ContactMessage) (ContactMessage, error) {
	m.Email = strings.TrimSpace(m.Email)
	if err := s.validate.Struct(m); err != nil {
		return ContactMessage{}, err
	}
	if err := s.repo.CreateContactMessage(ctx, &m); err != nil {
		s.logger.Error("save contact message failed", zap.Error(err))
		return ContactMessage{}, apperr.General("failed to send message", err)
	}
	s.logger.Info("contact message received", logging.Success(), zap.Int64("id", m.ID))
	return m, nil
}

func (s *Service) ListContactMessages(ctx context.Context) ([]ContactMessage, error) {
	out, err := s.repo.ListContactMessages(ctx)
	if err != nil {
		s.logger.Error("list contact messages failed", zap.Error(err))
		return nil, apperr.General("failed to load messages", err)
	}
	return out, nil
}
