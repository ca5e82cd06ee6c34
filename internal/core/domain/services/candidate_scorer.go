package services

import (
	"math"
	"sort"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

const (
	loadScoreMax      = 20
	proximityScoreMax = 30
	ratingScoreMax    = 10

	// proximityRangeMeters is where the proximity component reaches zero.
	proximityRangeMeters = 5000

	// concurrentPenalty applies to candidates already holding a delivery.
	concurrentPenalty = -50
)

// distanceBuckets are the upper bounds, in kilometers, of the trip-distance
// buckets used by the vehicle suitability matrix: <1, 1-3, 3-5, 5-10, >10.
var distanceBuckets = []float64{1, 3, 5, 10}

// vehicleSuitability scores each vehicle class per trip-distance bucket.
// Walking is heavily penalized beyond 3 km; cars are penalized under 1 km
// where parking overhead dominates.
var vehicleSuitability = map[courier.Vehicle][5]int{
	courier.VehicleWalking:    {20, 10, -50, -100, -100},
	courier.VehicleBicycle:    {15, 20, 10, -30, -100},
	courier.VehicleEScooter:   {15, 20, 15, -20, -50},
	courier.VehicleMotorcycle: {5, 15, 20, 20, 10},
	courier.VehicleCar:        {-10, 5, 15, 20, 20},
}

// ScoreBreakdown itemizes the five scoring components so operators can see
// why a candidate ranked where it did.
type ScoreBreakdown struct {
	Load               int
	Proximity          int
	VehicleSuitability int
	Rating             int
	ConcurrentPenalty  int
}

// Total sums the five components. Totals may be negative.
func (b ScoreBreakdown) Total() int {
	return b.Load + b.Proximity + b.VehicleSuitability + b.Rating + b.ConcurrentPenalty
}

// ScoredCandidate pairs a courier with its total score and breakdown.
type ScoredCandidate struct {
	Courier   *courier.Courier
	Score     int
	Breakdown ScoreBreakdown
}

// CandidateScorer is a domain service that ranks couriers for a delivery.
//
// Each candidate gets five component scores: load balancing (fewer deliveries
// today scores higher, relative to the busiest candidate), proximity to the
// pickup point (linear falloff over 5 km, a neutral midpoint when the
// position is unknown), vehicle suitability for the total trip distance,
// rating, and a flat penalty for already holding a delivery. Ranking is
// deterministic: ties break by lower deliveries-today, then by courier ID.
type CandidateScorer struct{}

// NewCandidateScorer creates a new CandidateScorer instance.
func NewCandidateScorer() CandidateScorer {
	return CandidateScorer{}
}

// Suggest scores the candidates against the pickup point and the total
// pickup-to-dropoff trip distance, returning up to limit results sorted by
// descending score. An empty candidate set yields an empty list, not an
// error. A limit <= 0 means no cap.
func (s CandidateScorer) Suggest(candidates []*courier.Courier, pickup kernel.GeoPoint, totalTripKm float64, limit int) ([]ScoredCandidate, error) {
	if err := pickup.Validate(); err != nil {
		return nil, err
	}

	maxDeliveriesToday := 0
	for _, c := range candidates {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if c.DeliveriesToday() > maxDeliveriesToday {
			maxDeliveriesToday = c.DeliveriesToday()
		}
	}

	scored := make([]ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		breakdown, err := s.score(c, pickup, totalTripKm, maxDeliveriesToday)
		if err != nil {
			return nil, err
		}
		scored = append(scored, ScoredCandidate{
			Courier:   c,
			Score:     breakdown.Total(),
			Breakdown: breakdown,
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].Courier.DeliveriesToday() != scored[j].Courier.DeliveriesToday() {
			return scored[i].Courier.DeliveriesToday() < scored[j].Courier.DeliveriesToday()
		}
		return scored[i].Courier.ID().String() < scored[j].Courier.ID().String()
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

func (s CandidateScorer) score(c *courier.Courier, pickup kernel.GeoPoint, totalTripKm float64, maxDeliveriesToday int) (ScoreBreakdown, error) {
	proximity, err := proximityScore(c, pickup)
	if err != nil {
		return ScoreBreakdown{}, err
	}

	breakdown := ScoreBreakdown{
		Load:               loadScore(c.DeliveriesToday(), maxDeliveriesToday),
		Proximity:          proximity,
		VehicleSuitability: vehicleScore(c.Vehicle(), totalTripKm),
		Rating:             ratingScore(c.Rating()),
	}
	if c.HasActiveDelivery() {
		breakdown.ConcurrentPenalty = concurrentPenalty
	}
	return breakdown, nil
}

// loadScore rewards the less-loaded candidates relative to the busiest one.
// When nobody has delivered today everyone gets the maximum.
func loadScore(deliveriesToday, maxDeliveriesToday int) int {
	if maxDeliveriesToday == 0 {
		return loadScoreMax
	}
	ratio := float64(deliveriesToday) / float64(maxDeliveriesToday)
	return int(math.Round(loadScoreMax * (1 - ratio)))
}

// proximityScore falls off linearly from the pickup point over 5 km. A
// candidate with no known position scores the neutral midpoint.
func proximityScore(c *courier.Courier, pickup kernel.GeoPoint) (int, error) {
	position := c.Position()
	if position == nil {
		return int(math.Round(proximityScoreMax * 0.5)), nil
	}

	distance, err := position.DistanceTo(pickup)
	if err != nil {
		return 0, err
	}
	return int(math.Round(proximityScoreMax * math.Max(0, 1-distance/proximityRangeMeters))), nil
}

func vehicleScore(v courier.Vehicle, totalTripKm float64) int {
	bucket := len(distanceBuckets)
	for i, upper := range distanceBuckets {
		if totalTripKm < upper {
			bucket = i
			break
		}
	}
	return vehicleSuitability[v][bucket]
}

// ratingScore maps the 1..5 running average onto 0..10.
func ratingScore(rating float64) int {
	return int(math.Round(ratingScoreMax * (rating - 1) / 4))
}
