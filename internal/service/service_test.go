package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/spec-kit/happyfarm/internal/domain"
	"github.com/spec-kit/happyfarm/internal/events"
	"github.com/spec-kit/happyfarm/internal/observability"
	"github.com/spec-kit/happyfarm/internal/repository"
)

var fixedNow = time.Date(2025, 6, 25, 12, 0, 0, 0, time.UTC)

// serviceSuite wires the services against a fresh in-memory store per test.
type serviceSuite struct {
	suite.Suite

	ctx        context.Context
	store      *repository.MemoryStore
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	published  []events.Event
	now        time.Time

	animals *AnimalService
	farms   *FarmService
	userID  string
	farmID  string
}

func (s *serviceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = repository.NewMemoryStore()
	s.dispatcher = events.NewInMemoryDispatcher()
	s.metrics = observability.NewMetrics()
	s.published = nil
	s.now = fixedNow

	record := func(_ context.Context, e events.Event) error {
		s.published = append(s.published, e)
		return nil
	}
	for _, t := range []events.EventType{events.EventAnimalCreated, events.EventAnimalFed, events.EventAnimalGroomed, events.EventAnimalSacrificed} {
		s.dispatcher.Subscribe(t, record)
	}

	clock := func() time.Time { return s.now }
	s.animals = NewAnimalService(AnimalDependencies{
		FarmRepo:   s.store.Farms(),
		AnimalRepo: s.store.Animals(),
		Dispatcher: s.dispatcher,
		Metrics:    s.metrics,
		Clock:      clock,
	})
	s.farms = NewFarmService(s.store.Farms(), s.store.Animals(), clock)
	s.userID, s.farmID = s.createOwner("Ali Eid", "ali@example.com")
}

func (s *serviceSuite) createOwner(name, email string) (string, string) {
	user := &domain.User{ID: uuid.NewString(), Name: name, Email: email, PasswordHash: "x"}
	farm := &domain.Farm{ID: uuid.NewString(), Name: domain.DefaultFarmName(name)}
	require.NoError(s.T(), s.store.Users().CreateWithFarm(s.ctx, user, farm))
	return user.ID, farm.ID
}

func (s *serviceSuite) addAnimal(species domain.Species, name, age string) *domain.Animal {
	animal, err := s.animals.Create(s.ctx, s.userID, CreateAnimalInput{
		Species: species,
		Name:    name,
		Age:     decimal.RequireFromString(age),
	})
	require.NoError(s.T(), err)
	return animal
}
