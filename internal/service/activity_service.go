package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/NGOKrooz/SPIN-sub000/internal/dto"
	"github.com/NGOKrooz/SPIN-sub000/internal/repository"
)

// ActivityService exposes the audit trail, read-only.
type ActivityService interface {
	List(ctx context.Context, req *dto.ActivityLogListRequest) ([]dto.ActivityLogResponse, int64, error)
}

type activityService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewActivityService creates the activity service.
func NewActivityService(repo *repository.Repository, logger *zap.Logger) ActivityService {
	return &activityService{repo: repo, logger: logger}
}

func (s *activityService) List(ctx context.Context, req *dto.ActivityLogListRequest) ([]dto.ActivityLogResponse, int64, error) {
	entries, total, err := s.repo.ActivityLog.List(ctx, req.ActivityType, req.InternID, req.GetOffset(), req.GetPageSize())
	if err != nil {
		return nil, 0, fmt.Errorf("list activity: %w", err)
	}

	resps := make([]dto.ActivityLogResponse, 0, len(entries))
	for _, e := range entries {
		resps = append(resps, dto.ActivityLogResponse{
			ID:           e.ActivityLogID,
			ActivityType: e.ActivityType,
			InternID:     e.InternID,
			UnitID:       e.UnitID,
			Description:  e.Description,
			CreatedAt:    e.CreatedAt.Format(time.RFC3339),
		})
	}
	return resps, total, nil
}
