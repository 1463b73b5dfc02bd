package dto

import (
	"github.com/spec-kit/happyfarm/internal/domain"
	"github.com/spec-kit/happyfarm/internal/service"
)

// SpeciesCounts lists a count for every species, zeros included.
type SpeciesCounts struct {
	Sheep int `json:"sheep"`
	Goat  int `json:"goat"`
	Cow   int `json:"cow"`
	Camel int `json:"camel"`
}

func newSpeciesCounts(by map[domain.Species]int) SpeciesCounts {
	return SpeciesCounts{
		Sheep: by[domain.SpeciesSheep],
		Goat:  by[domain.SpeciesGoat],
		Cow:   by[domain.SpeciesCow],
		Camel: by[domain.SpeciesCamel],
	}
}

// FarmOverviewStatistics is the statistics block nested in GET /farm.
type FarmOverviewStatistics struct {
	TotalAnimals         int           `json:"total_animals"`
	ByType               SpeciesCounts `json:"by_type"`
	SacrificedAnimals    int           `json:"sacrificed_animals"`
	EligibleForSacrifice int           `json:"eligible_for_sacrifice"`
	RecentlyFed          int           `json:"recently_fed"`
	RecentlyGroomed      int           `json:"recently_groomed"`
}

// FarmResponse is returned by GET /farm.
type FarmResponse struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"name"`
	Owner      UserSummary            `json:"owner"`
	CreatedAt  string                 `json:"created_at"`
	Statistics FarmOverviewStatistics `json:"statistics"`
}

// NewFarmResponse maps a farm snapshot and its owner.
func NewFarmResponse(owner *domain.User, snap *service.FarmSnapshot) FarmResponse {
	stats := snap.Statistics
	return FarmResponse{
		ID:        snap.Farm.ID,
		Name:      snap.Farm.Name,
		Owner:     newUserSummary(owner),
		CreatedAt: FormatTime(snap.Farm.CreatedAt),
		Statistics: FarmOverviewStatistics{
			TotalAnimals:         stats.TotalAnimals,
			ByType:               newSpeciesCounts(stats.BySpecies),
			SacrificedAnimals:    stats.Sacrificed,
			EligibleForSacrifice: stats.EligibleForSacrifice,
			RecentlyFed:          stats.RecentlyFed,
			RecentlyGroomed:      stats.RecentlyGroomed,
		},
	}
}

// SacrificeStatus groups sacrifice counters.
type SacrificeStatus struct {
	AlreadySacrificed    int `json:"already_sacrificed"`
	EligibleForSacrifice int `json:"eligible_for_sacrifice"`
	NotYetEligible       int `json:"not_yet_eligible"`
}

// CareStatus groups feeding and grooming counters.
type CareStatus struct {
	RecentlyFed     int `json:"recently_fed"`
	RecentlyGroomed int `json:"recently_groomed"`
	NeedFeeding     int `json:"need_feeding"`
	NeedGrooming    int `json:"need_grooming"`
}

// FarmStatisticsResponse is returned by GET /farm/statistics.
type FarmStatisticsResponse struct {
	FarmName        string          `json:"farm_name"`
	TotalAnimals    int             `json:"total_animals"`
	AnimalsByType   SpeciesCounts   `json:"animals_by_type"`
	SacrificeStatus SacrificeStatus `json:"sacrifice_status"`
	CareStatus      CareStatus      `json:"care_status"`
}

// NewFarmStatisticsResponse maps a farm snapshot.
func NewFarmStatisticsResponse(snap *service.FarmSnapshot) FarmStatisticsResponse {
	stats := snap.Statistics
	return FarmStatisticsResponse{
		FarmName:      snap.Farm.Name,
		TotalAnimals:  stats.TotalAnimals,
		AnimalsByType: newSpeciesCounts(stats.BySpecies),
		SacrificeStatus: SacrificeStatus{
			AlreadySacrificed:    stats.Sacrificed,
			EligibleForSacrifice: stats.EligibleForSacrifice,
			NotYetEligible:       stats.NotYetEligible,
		},
		CareStatus: CareStatus{
			RecentlyFed:     stats.RecentlyFed,
			RecentlyGroomed: stats.RecentlyGroomed,
			NeedFeeding:     stats.NeedFeeding,
			NeedGrooming:    stats.NeedGrooming,
		},
	}
}
