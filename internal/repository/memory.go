package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spec-kit/happyfarm/internal/domain"
)

// MemoryStore keeps users, farms and animals in process. It backs the API when
// no Postgres DSN is configured and is the store used by the test suites.
type MemoryStore struct {
	mu      sync.RWMutex
	now     func() time.Time
	users   map[string]domain.User
	emails  map[string]string
	farms   map[string]domain.Farm
	animals map[string]domain.Animal
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now:     func() time.Time { return time.Now().UTC() },
		users:   make(map[string]domain.User),
		emails:  make(map[string]string),
		farms:   make(map[string]domain.Farm),
		animals: make(map[string]domain.Animal),
	}
}

// Users exposes the store as a UserRepository.
func (s *MemoryStore) Users() UserRepository { return memoryUsers{s} }

// Farms exposes the store as a FarmRepository.
func (s *MemoryStore) Farms() FarmRepository { return memoryFarms{s} }

// Animals exposes the store as an AnimalRepository.
func (s *MemoryStore) Animals() AnimalRepository { return memoryAnimals{s} }

type memoryUsers struct{ s *MemoryStore }

func (m memoryUsers) CreateWithFarm(_ context.Context, user *domain.User, farm *domain.Farm) error {
	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(strings.TrimSpace(user.Email))
	if _, taken := s.emails[key]; taken {
		return ErrEmailTaken
	}

	now := s.now()
	user.CreatedAt, user.UpdatedAt = now, now
	farm.UserID = user.ID
	farm.CreatedAt, farm.UpdatedAt = now, now

	s.users[user.ID] = *user
	s.emails[key] = user.ID
	s.farms[farm.ID] = *farm
	return nil
}

func (m memoryUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	user, ok := m.s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (m memoryUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	id, ok := m.s.emails[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, ErrNotFound
	}
	user := m.s.users[id]
	return &user, nil
}

type memoryFarms struct{ s *MemoryStore }

func (m memoryFarms) GetByUserID(_ context.Context, userID string) (*domain.Farm, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	for _, farm := range m.s.farms {
		if farm.UserID == userID {
			f := farm
			return &f, nil
		}
	}
	return nil, ErrNotFound
}

type memoryAnimals struct{ s *MemoryStore }

func (m memoryAnimals) Create(_ context.Context, animal *domain.Animal) error {
	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.farms[animal.FarmID]; !ok {
		return ErrNotFound
	}
	now := s.now()
	animal.CreatedAt, animal.UpdatedAt = now, now
	s.animals[animal.ID] = cloneAnimal(*animal)
	return nil
}

func (m memoryAnimals) ListByFarm(_ context.Context, farmID string) ([]domain.Animal, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	out := []domain.Animal{}
	for _, a := range m.s.animals {
		if a.FarmID == farmID {
			out = append(out, cloneAnimal(a))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m memoryAnimals) GetOwned(_ context.Context, userID, animalID string) (*domain.Animal, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	a, ok := m.s.ownedLocked(userID, animalID)
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneAnimal(a)
	return &out, nil
}

func (m memoryAnimals) MutateOwned(_ context.Context, userID, animalID string, fn MutateFunc) (*domain.Animal, error) {
	s := m.s
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.ownedLocked(userID, animalID)
	if !ok {
		return nil, ErrNotFound
	}

	working := cloneAnimal(stored)
	if err := fn(&working); err != nil {
		return nil, err
	}
	if stored.IsSacrificed() {
		working.RestoreSacrifice(stored.SacrificedAt())
	}
	working.UpdatedAt = s.now()
	s.animals[working.ID] = cloneAnimal(working)
	return &working, nil
}

func (s *MemoryStore) ownedLocked(userID, animalID string) (domain.Animal, bool) {
	a, ok := s.animals[animalID]
	if !ok {
		return domain.Animal{}, false
	}
	farm, ok := s.farms[a.FarmID]
	if !ok || farm.UserID != userID {
		return domain.Animal{}, false
	}
	return a, true
}

func cloneAnimal(a domain.Animal) domain.Animal {
	out := a
	out.FedAt = cloneTime(a.FedAt)
	out.GroomedAt = cloneTime(a.GroomedAt)
	out.RestoreSacrifice(a.SacrificedAt())
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
