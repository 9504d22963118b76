package services

import (
	"context"
	"fmt"

	"restaurant_backend/internal/models"
	"restaurant_backend/internal/repositories"
)

// StatsService aggregates the admin dashboard counters.
type StatsService interface {
	GetSummary(ctx context.Context) (*models.StatsSummary, error)
}

type statsService struct {
	statsRepo repositories.StatsRepository
}

// NewStatsService creates a new instance of StatsService.
func NewStatsService(repo repositories.StatsRepository) StatsService {
	return &statsService{statsRepo: repo}
}

func (s *statsService) GetSummary(ctx context.Context) (*models.StatsSummary, error) {
	summary, err := s.statsRepo.GetSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats summary: %w", err)
	}
	return summary, nil
}
