package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/spec-kit/happyfarm/internal/domain"
	"github.com/spec-kit/happyfarm/internal/events"
	"github.com/spec-kit/happyfarm/internal/observability"
	"github.com/spec-kit/happyfarm/internal/repository"
	apperrors "github.com/spec-kit/happyfarm/pkg/util/errorutil"
)

const (
	animalNotFoundMessage = "Animal not found"
	farmNotFoundMessage   = "No farm found for user"
)

// CreateAnimalInput holds validated fields for a new animal.
type CreateAnimalInput struct {
	Species domain.Species
	Name    string
	Age     decimal.Decimal
}

// AnimalDependencies encapsulates collaborators of the animal service.
type AnimalDependencies struct {
	FarmRepo   repository.FarmRepository
	AnimalRepo repository.AnimalRepository
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
	Clock      func() time.Time
}

// AnimalService applies the lifecycle policy to the caller's animals.
type AnimalService struct {
	farms      repository.FarmRepository
	animals    repository.AnimalRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// NewAnimalService builds the service.
func NewAnimalService(deps AnimalDependencies) *AnimalService {
	svc := &AnimalService{
		farms:      deps.FarmRepo,
		animals:    deps.AnimalRepo,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		now:        deps.Clock,
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc
}

// List returns every animal on the caller's farm, sacrificed ones included.
func (s *AnimalService) List(ctx context.Context, userID string) ([]domain.Animal, error) {
	farm, err := farmOf(ctx, s.farms, userID)
	if err != nil {
		return nil, err
	}
	return s.animals.ListByFarm(ctx, farm.ID)
}

// Create adds an animal to the caller's farm.
func (s *AnimalService) Create(ctx context.Context, userID string, input CreateAnimalInput) (*domain.Animal, error) {
	farm, err := farmOf(ctx, s.farms, userID)
	if err != nil {
		return nil, err
	}

	animal := &domain.Animal{
		ID:      uuid.NewString(),
		FarmID:  farm.ID,
		Species: input.Species,
		Name:    input.Name,
		Age:     input.Age,
	}
	if err := s.animals.Create(ctx, animal); err != nil {
		return nil, err
	}

	s.metrics.RecordLifecycle(string(events.EventAnimalCreated), string(animal.Species))
	s.publish(ctx, events.EventAnimalCreated, userID, animal, events.AnimalCreatedPayload{
		Name: animal.Name,
		Age:  animal.Age.StringFixed(2),
	})
	return animal, nil
}

// Get returns one of the caller's animals.
func (s *AnimalService) Get(ctx context.Context, userID, animalID string) (*domain.Animal, error) {
	animal, err := s.animals.GetOwned(ctx, userID, animalID)
	if err != nil {
		return nil, mapAnimalError(err)
	}
	return animal, nil
}

// Feed stamps fedAt. Sacrificed animals cannot be fed.
func (s *AnimalService) Feed(ctx context.Context, userID, animalID string) (*domain.Animal, error) {
	return s.mutate(ctx, "feed", events.EventAnimalFed, userID, animalID, func(a *domain.Animal) error {
		_, err := domain.Feed(a, s.now())
		return err
	})
}

// Groom stamps groomedAt. Sacrificed animals cannot be groomed.
func (s *AnimalService) Groom(ctx context.Context, userID, animalID string) (*domain.Animal, error) {
	return s.mutate(ctx, "groom", events.EventAnimalGroomed, userID, animalID, func(a *domain.Animal) error {
		_, err := domain.Groom(a, s.now())
		return err
	})
}

// Sacrifice performs the one-way sacrifice transition when the animal is eligible.
func (s *AnimalService) Sacrifice(ctx context.Context, userID, animalID string) (*domain.Animal, error) {
	return s.mutate(ctx, "sacrifice", events.EventAnimalSacrificed, userID, animalID, func(a *domain.Animal) error {
		_, err := domain.Sacrifice(a, s.now())
		return err
	})
}

func (s *AnimalService) mutate(ctx context.Context, operation string, eventType events.EventType, userID, animalID string, fn repository.MutateFunc) (*domain.Animal, error) {
	animal, err := s.animals.MutateOwned(ctx, userID, animalID, fn)
	if err != nil {
		var policyErr *domain.PolicyError
		if errors.As(err, &policyErr) {
			s.metrics.RecordPolicyRejection(operation, rejectionReason(policyErr))
			s.logger.Debug("lifecycle rejected",
				zap.String("operation", operation),
				zap.String("animal_id", animalID),
				zap.String("reason", policyErr.Message))
		}
		return nil, mapAnimalError(err)
	}

	s.metrics.RecordLifecycle(string(eventType), string(animal.Species))
	var payload interface{}
	if eventType == events.EventAnimalSacrificed {
		payload = events.AnimalSacrificedPayload{Name: animal.Name, Age: animal.Age.StringFixed(2)}
	}
	s.publish(ctx, eventType, userID, animal, payload)
	return animal, nil
}

func (s *AnimalService) publish(ctx context.Context, eventType events.EventType, userID string, animal *domain.Animal, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		AnimalID:  animal.ID,
		FarmID:    animal.FarmID,
		ActorID:   userID,
		Species:   animal.Species,
		Timestamp: s.now(),
		Payload:   payload,
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}

func farmOf(ctx context.Context, farms repository.FarmRepository, userID string) (*domain.Farm, error) {
	farm, err := farms.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound(farmNotFoundMessage)
		}
		return nil, err
	}
	return farm, nil
}

func mapAnimalError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound(animalNotFoundMessage)
	}
	return err
}

func rejectionReason(err *domain.PolicyError) string {
	switch {
	case errors.Is(err, domain.ErrAlreadySacrificed):
		return "already_sacrificed"
	case errors.Is(err, domain.ErrNotEligible):
		return "not_eligible"
	default:
		return "lifecycle_violation"
	}
}
