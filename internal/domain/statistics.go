package domain

import "time"

const (
	// RecentCareWindow bounds "recently fed/groomed" and the feeding deadline.
	RecentCareWindow = 24 * time.Hour
	// GroomingInterval is how long an animal may go without grooming.
	GroomingInterval = 7 * 24 * time.Hour
)

// FarmStatistics is derived on demand from a farm's animals; it is never stored.
type FarmStatistics struct {
	TotalAnimals         int
	BySpecies            map[Species]int
	Sacrificed           int
	EligibleForSacrifice int
	NotYetEligible       int
	RecentlyFed          int
	RecentlyGroomed      int
	NeedFeeding          int
	NeedGrooming         int
}

// ComputeStatistics aggregates the animal set as of now.
func ComputeStatistics(animals []Animal, now time.Time) FarmStatistics {
	stats := FarmStatistics{BySpecies: make(map[Species]int, len(sacrificeRules))}
	for _, s := range AllSpecies() {
		stats.BySpecies[s] = 0
	}

	recentCutoff := now.Add(-RecentCareWindow)
	groomCutoff := now.Add(-GroomingInterval)

	for i := range animals {
		a := &animals[i]
		stats.TotalAnimals++
		stats.BySpecies[a.Species]++

		if withinWindow(a.FedAt, recentCutoff) {
			stats.RecentlyFed++
		}
		if withinWindow(a.GroomedAt, recentCutoff) {
			stats.RecentlyGroomed++
		}

		if a.IsSacrificed() {
			stats.Sacrificed++
			continue
		}

		if IsEligibleForSacrifice(a) {
			stats.EligibleForSacrifice++
		} else {
			stats.NotYetEligible++
		}
		if a.FedAt == nil || a.FedAt.Before(recentCutoff) {
			stats.NeedFeeding++
		}
		if a.GroomedAt == nil || a.GroomedAt.Before(groomCutoff) {
			stats.NeedGrooming++
		}
	}
	return stats
}

func withinWindow(ts *time.Time, cutoff time.Time) bool {
	return ts != nil && !ts.Before(cutoff)
}
