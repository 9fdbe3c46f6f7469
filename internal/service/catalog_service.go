package service

import (
	"context"
	"strings"
	"sync"

	"github.com/haierkeys/bitshared-cli/internal/domain"
	"github.com/haierkeys/bitshared-cli/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
)

// CatalogService 专业与课程目录
type CatalogService interface {
	FetchMajors(ctx context.Context) ([]*domain.Major, error)
	// SearchMajors filters the last fetched list by a case-insensitive
	// substring of the major name. An empty query matches nothing.
	SearchMajors(query string) []*domain.Major
	FetchCourses(ctx context.Context, majorNo int64) ([]*domain.Course, error)
}

type catalogAPI interface {
	Majors(ctx context.Context) ([]*domain.Major, error)
	Courses(ctx context.Context, majorNo int64) ([]*domain.Course, error)
}

type catalogService struct {
	api    catalogAPI
	logger *zap.Logger

	mu     sync.RWMutex
	majors []*domain.Major
}

func NewCatalogService(api catalogAPI, lg *zap.Logger) CatalogService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &catalogService{api: api, logger: lg, majors: []*domain.Major{}}
}

func (s *catalogService) FetchMajors(ctx context.Context) ([]*domain.Major, error) {
	majors, err := s.api.Majors(ctx)
	if err != nil {
		s.logger.Warn("fetch majors failed", zap.Error(err))
		return nil, err
	}
	s.mu.Lock()
	s.majors = majors
	s.mu.Unlock()
	return majors, nil
}

func (s *catalogService) SearchMajors(query string) []*domain.Major {
	result := []*domain.Major{}
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(query))
	if q == "" {
		return result
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.majors {
		if strings.Contains(fold.String(m.MajorName), q) {
			result = append(result, m)
		}
	}
	return result
}

func (s *catalogService) FetchCourses(ctx context.Context, majorNo int64) ([]*domain.Course, error) {
	courses, err := s.api.Courses(ctx, majorNo)
	if err != nil {
		s.logger.Warn("fetch courses failed", zap.Int64(logger.FieldMajorNo, majorNo), zap.Error(err))
		return nil, err
	}
	return courses, nil
}
