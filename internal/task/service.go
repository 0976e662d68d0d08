package task

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/apperr"
	"github.com/Jana-alazzeh/ASP-KIT.Space-Coderz/internal/logging"
)

type Validator interface {
	Struct(s any) error
}

// Service is the personal task dashboard. Every call acts for one owner.
type Service struct {
	repo     Repository
	validate Validator
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(repo Repository, validate Validator, logger *zap.Logger) *Service {
	return &Service{repo: repo, validate: validate, logger: logger.Named("task"), now: time.Now}
}

func (s *Service) Dashboard(ctx context.Context, ownerID string) (Stats, error) {
	if ownerID == "" {
		return Stats{}, apperr.Unauthorized("")
	}
	total, done, err := s.repo.Counts(ctx, ownerID)
	if err != nil {
		s.logger.Error("count tasks failed", zap.String("ownerId", ownerID), zap.Error(err))
		return Stats{}, apperr.General("failed to load task statistics", err)
	}
	return newStats(total, done), nil
}

func (s *Service) List(ctx context.Context, ownerID string, f Filter) ([]Task, error) {
	if ownerID == "" {
		return nil, apperr.Unauthorized("")
	}
	tasks, err := s.repo.List(ctx, ownerID, f.window(s.now()))
	if err != nil {
		s.logger.Error("list tasks failed", zap.String("ownerId", ownerID), zap.Error(err))
		return nil, apperr.General("failed to load tasks", err)
	}
	return tasks, nil
}

// QuickCreate adds a pending task and returns the refreshed stats. A missing
// due date means today.
func (s *Service) QuickCreate(ctx context.Context, ownerID string, in QuickCreateInput) (Task, Stats, error) {
	if ownerID == "" {
		return Task{}, Stats{}, apperr.Unauthorized("")
	}
	if err := s.validate.Struct(in); err != nil {
		return Task{}, Stats{}, err
	}

	due := s.now()
	if in.DueDate != nil {
		due = *in.DueDate
	}
	t := Task{
		OwnerID: ownerID,
		Title:   in.Title,
		DueDate: time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC),
		Status:  StatusPending,
	}
	if err := s.repo.Create(ctx, &t); err != nil {
		s.logger.Error("create task failed", zap.String("ownerId", ownerID), zap.Error(err))
		return Task{}, Stats{}, apperr.General("failed to create task", err)
	}
	s.logger.Info("task created", logging.Success(), zap.Int64("taskId", t.ID))

	stats, err := s.Dashboard(ctx, ownerID)
	return t, stats, err
}

func (s *Service) Update(ctx context.Context, ownerID string, id int64, in UpdateInput) (Task, error) {
	if ownerID == "" {
		return Task{}, apperr.Unauthorized("")
	}
	if err := s.validate.Struct(in); err != nil {
		return Task{}, err
	}
	t := Task{
		ID:          id,
		OwnerID:     ownerID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      in.Status,
	}
	if err := s.repo.Update(ctx, &t); err != nil {
		return Task{}, s.mapErr("update", id, err)
	}
	return t, nil
}

func (s *Service) Toggle(ctx context.Context, ownerID string, id int64) (Status, Stats, error) {
	if ownerID == "" {
		return "", Stats{}, apperr.Unauthorized("")
	}
	status, err := s.repo.Toggle(ctx, ownerID, id)
	if err != nil {
		return "", Stats{}, s.mapErr("toggle", id, err)
	}
	stats, err := s.Dashboard(ctx, ownerID)
	return status, stats, err
}

func (s *Service) Delete(ctx context.Context, ownerID string, id int64) (Stats, error) {
	if ownerID == "" {
		return Stats{}, apperr.Unauthorized("")
	}
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return Stats{}, s.mapErr("delete", id, err)
	}
	s.logger.Info("task deleted", logging.Success(), zap.Int64("taskId", id))
	return s.Dashboard(ctx, ownerID)
}

func (s *Service) mapErr(op string, id int64, err error) error {
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound("Task", id)
	}
	s.logger.Error(op+" task failed", zap.Int64("taskId", id), zap.Error(err))
	return apperr.General("failed to "+op+" task", err)
}
