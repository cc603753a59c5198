package service

import (
	"context"

	"microblog/internal/models"
	"microblog/internal/repository"
)

type StatsService interface {
	GetCountTablesBD(ctx context.Context) (int, error)
	GetRowCounts(ctx context.Context) (models.RowCounts, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
}

func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) GetCountTablesBD(ctx context.Context) (int, error) {
	return s.statsRepo.CountTablesDB(ctx)
}

func (s *statsService) GetRowCounts(ctx context.Context) (models.RowCounts, error) {
	return s.statsRepo.CountRows(ctx)
}
