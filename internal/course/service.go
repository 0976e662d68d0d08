package course

import (
	"context"
	"errors"

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
	return &Service{repo: repo, validate: validate, logger: logger.Named("course")}
}

func (s *Service) List(ctx context.Context) ([]Course, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("list courses failed", zap.Error(err))
		return nil, apperr.General("failed to load courses", err)
	}
	return courses, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Course, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return Course{}, s.mapErr("get", id, err)
	}
	return c, nil
}

func (s *Service) Create(ctx context.Context, in Input) (Course, error) {
	if err := s.check(in); err != nil {
		return Course{}, err
	}
	var c Course
	in.apply(&c)
	if err := s.repo.Create(ctx, &c); err != nil {
		s.logger.Error("create course failed", zap.Error(err))
		return Course{}, apperr.General("failed to create course", err)
	}
	s.logger.Info("course created", logging.Success(), zap.Int64("courseId", c.ID))
	return c, nil
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (Course, error) {
	if err := s.check(in); err != nil {
		return Course{}, err
	}
	c := Course{ID: id}
	in.apply(&c)
	if err := s.repo.Update(ctx, &c); err != nil {
		return Course{}, s.mapErr("update", id, err)
	}
	s.logger.Info("course updated", logging.Success(), zap.Int64("courseId", id))
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapErr("delete", id, err)
	}
	s.logger.Info("course deleted", logging.Success(), zap.Int64("courseId", id))
	return nil
}

func (s *Service) check(in Input) error {
	if err := s.validate.Struct(in); err != nil {
		return err
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return apperr.ValidationFields(map[string][]string{"endDate": {"must not be before startDate"}})
	}
	return nil
}

func (s *Service) mapErr(op string, id int64, err error) error {
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound("Course", id)
	}
	s.logger.Error(op+" course failed", zap.Int64("courseId", id), zap.Error(err))
	return apperr.General("failed to "+op+" course", err)
}
