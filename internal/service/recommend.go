package service

import (
	"math/rand"
	"sort"
	"time"

	"travelbot/internal/model"
)

// Hotel filter dimensions
const (
	HotelDimensionBrand = "brand"
	HotelDimensionGrade = "grade"
)

const maxHotelPicks = 5

// RecommendationComposer picks hotel suggestions after a confirmed flight
// session. The random source is injected so tests can seed it.
type RecommendationComposer struct {
	hotels []model.Hotel
	rng    *rand.Rand
}

// NewRecommendationComposer creates a composer over the loaded hotel table.
// A nil rng gets a time-seeded source.
func NewRecommendationComposer(hotels []model.Hotel, rng *rand.Rand) *RecommendationComposer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RecommendationComposer{hotels: hotels, rng: rng}
}

// Brands returns the sorted distinct brand groups in the hotel table
func (r *RecommendationComposer) Brands() []string {
	return r.distinct(func(h model.Hotel) string { return h.Brand })
}

// Grades returns the sorted distinct star grades in the hotel table
func (r *RecommendationComposer) Grades() []string {
	return r.distinct(func(h model.Hotel) string { return h.Grade })
}

func (r *RecommendationComposer) distinct(key func(model.Hotel) string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, h := range r.hotels {
		v := key(h)
		if v != "" && !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	sort.Strings(values)
	return values
}

// SampleHotels filters the hotel table by exact match on the chosen dimension
// and returns a random sample of size min(5, candidates) without replacement,
// in sampled order. ErrNoMatches is returned when nothing qualifies; the
// caller surfaces the static fallback link instead of an empty list.
func (r *RecommendationComposer) SampleHotels(dimension, value string) ([]model.Hotel, error) {
	var candidates []model.Hotel
	for _, h := range r.hotels {
		switch dimension {
		case HotelDimensionBrand:
			if h.Brand == value {
				candidates = append(candidates, h)
			}
		default:
			if h.Grade == value {
				candidates = append(candidates, h)
			}
		}
	}

	if len(candidates) == 0 {
		return nil, ErrNoMatches
	}

	n := len(candidates)
	k := maxHotelPicks
	if n < k {
		k = n
	}

	picks := make([]model.Hotel, 0, k)
	for _, idx := range r.rng.Perm(n)[:k] {
		picks = append(picks, candidates[idx])
	}

	return picks, nil
}
