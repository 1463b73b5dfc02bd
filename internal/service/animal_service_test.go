package service

import (
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"github.com/spec-kit/happyfarm/internal/domain"
	"github.com/spec-kit/happyfarm/internal/events"
	apperrors "github.com/spec-kit/happyfarm/pkg/util/errorutil"
)

type AnimalServiceSuite struct {
	serviceSuite
}

func TestAnimalServiceSuite(t *testing.T) {
	suite.Run(t, new(AnimalServiceSuite))
}

func (s *AnimalServiceSuite) requireStatus(err error, status int, message string) {
	s.Require().Error(err)
	domainErr := apperrors.ToDomainError(err)
	s.Equal(status, domainErr.HTTPStatus)
	s.Equal(message, domainErr.Message)
}

func (s *AnimalServiceSuite) TestCreateAndList() {
	whitey := s.addAnimal(domain.SpeciesSheep, "Whitey", "1.5")
	s.addAnimal(domain.SpeciesCow, "Bessie", "3")

	s.NotEmpty(whitey.ID)
	s.Equal(s.farmID, whitey.FarmID)
	s.False(whitey.IsSacrificed())
	s.Nil(whitey.FedAt)

	animals, err := s.animals.List(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Len(animals, 2)

	s.Require().Len(s.published, 2)
	s.Equal(events.EventAnimalCreated, s.published[0].Type)
	s.Equal(whitey.ID, s.published[0].AnimalID)
}

func (s *AnimalServiceSuite) TestNoFarm() {
	_, err := s.animals.List(s.ctx, "4f1e2d3c-0000-4000-8000-000000000001")
	s.requireStatus(err, http.StatusNotFound, "No farm found for user")

	_, err = s.animals.Create(s.ctx, "4f1e2d3c-0000-4000-8000-000000000001", CreateAnimalInput{Species: domain.SpeciesGoat, Name: "Billy"})
	s.requireStatus(err, http.StatusNotFound, "No farm found for user")
}

func (s *AnimalServiceSuite) TestForeignAnimalIsNotFound() {
	animal := s.addAnimal(domain.SpeciesGoat, "Billy", "2")
	otherUser, _ := s.createOwner("Ahmad Farmer", "ahmad@example.com")

	_, err := s.animals.Get(s.ctx, otherUser, animal.ID)
	s.requireStatus(err, http.StatusNotFound, "Animal not found")

	_, err = s.animals.Feed(s.ctx, otherUser, animal.ID)
	s.requireStatus(err, http.StatusNotFound, "Animal not found")

	_, err = s.animals.Sacrifice(s.ctx, otherUser, "not-a-uuid")
	s.requireStatus(err, http.StatusNotFound, "Animal not found")
}

func (s *AnimalServiceSuite) TestFeedTwiceUpdatesTimestamp() {
	bessie := s.addAnimal(domain.SpeciesCow, "Bessie", "3")

	first, err := s.animals.Feed(s.ctx, s.userID, bessie.ID)
	s.Require().NoError(err)
	s.Require().NotNil(first.FedAt)
	s.True(first.FedAt.Equal(fixedNow))

	s.now = fixedNow.Add(time.Hour)
	second, err := s.animals.Feed(s.ctx, s.userID, bessie.ID)
	s.Require().NoError(err)
	s.True(second.FedAt.Equal(fixedNow.Add(time.Hour)))
	s.False(second.IsSacrificed())
}

func (s *AnimalServiceSuite) TestGroom() {
	humpy := s.addAnimal(domain.SpeciesCamel, "Humpy", "6")

	groomed, err := s.animals.Groom(s.ctx, s.userID, humpy.ID)
	s.Require().NoError(err)
	s.Require().NotNil(groomed.GroomedAt)
	s.True(groomed.GroomedAt.Equal(fixedNow))

	stored, err := s.animals.Get(s.ctx, s.userID, humpy.ID)
	s.Require().NoError(err)
	s.True(stored.GroomedAt.Equal(fixedNow))
}

func (s *AnimalServiceSuite) TestSacrificeTooYoung() {
	lamb := s.addAnimal(domain.SpeciesSheep, "Young Lamb", "0.33")

	_, err := s.animals.Sacrifice(s.ctx, s.userID, lamb.ID)
	s.requireStatus(err, http.StatusBadRequest, "Sheep must be at least 6 months old for sacrifice.")
	s.True(errors.Is(err, domain.ErrNotEligible))

	stored, err := s.animals.Get(s.ctx, s.userID, lamb.ID)
	s.Require().NoError(err)
	s.False(stored.IsSacrificed())
	s.Equal(1, testutil.CollectAndCount(s.metrics.Registry, "happyfarm_animal_policy_rejections_total"))
}

func (s *AnimalServiceSuite) TestSacrificedGoatRejectsFurtherCare() {
	billy := s.addAnimal(domain.SpeciesGoat, "Billy", "2")

	sacrificed, err := s.animals.Sacrifice(s.ctx, s.userID, billy.ID)
	s.Require().NoError(err)
	s.True(sacrificed.IsSacrificed())
	s.Require().NotNil(sacrificed.SacrificedAt())
	s.True(sacrificed.SacrificedAt().Equal(fixedNow))

	_, err = s.animals.Feed(s.ctx, s.userID, billy.ID)
	s.requireStatus(err, http.StatusBadRequest, "Cannot feed a sacrificed animal")

	_, err = s.animals.Groom(s.ctx, s.userID, billy.ID)
	s.requireStatus(err, http.StatusBadRequest, "Cannot groom a sacrificed animal")

	s.now = fixedNow.Add(time.Hour)
	_, err = s.animals.Sacrifice(s.ctx, s.userID, billy.ID)
	s.requireStatus(err, http.StatusBadRequest, "Animal has already been sacrificed")

	stored, err := s.animals.Get(s.ctx, s.userID, billy.ID)
	s.Require().NoError(err)
	s.Nil(stored.FedAt)
	s.True(stored.SacrificedAt().Equal(fixedNow), "sacrifice time never changes")
}

func (s *AnimalServiceSuite) TestConcurrentSacrifice() {
	whitey := s.addAnimal(domain.SpeciesSheep, "Whitey", "1.0")

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		already   int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.animals.Sacrifice(s.ctx, s.userID, whitey.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, domain.ErrAlreadySacrificed):
				already++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, successes)
	s.Equal(9, already)
}
