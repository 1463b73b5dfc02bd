package service

import (
	"context"
	"time"

	"github.com/spec-kit/happyfarm/internal/domain"
	"github.com/spec-kit/happyfarm/internal/repository"
)

// FarmSnapshot is a farm with statistics computed at a single instant.
type FarmSnapshot struct {
	Farm       *domain.Farm
	Statistics domain.FarmStatistics
}

// FarmService serves the caller's farm and its derived statistics.
type FarmService struct {
	farms   repository.FarmRepository
	animals repository.AnimalRepository
	now     func() time.Time
}

// NewFarmService builds the service. A nil clock uses time.Now.
func NewFarmService(farms repository.FarmRepository, animals repository.AnimalRepository, clock func() time.Time) *FarmService {
	if clock == nil {
		clock = time.Now
	}
	return &FarmService{farms: farms, animals: animals, now: clock}
}

// Snapshot loads the caller's farm and aggregates its animals.
func (s *FarmService) Snapshot(ctx context.Context, userID string) (*FarmSnapshot, error) {
	farm, err := farmOf(ctx, s.farms, userID)
	if err != nil {
		return nil, err
	}
	animals, err := s.animals.ListByFarm(ctx, farm.ID)
	if err != nil {
		return nil, err
	}
	return &FarmSnapshot{
		Farm:       farm,
		Statistics: domain.ComputeStatistics(animals, s.now()),
	}, nil
}
