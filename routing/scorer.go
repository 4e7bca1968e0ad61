// routing/scorer.go
package routing

import (
	"sort"

	"github.com/joshmo01/FX-MS/model"
)

// Scorer normalizes cost and speed across a candidate set, combines the four
// dimensions under the objective's weights, and ranks the set.
type Scorer struct{}

func NewScorer() *Scorer {
	return &Scorer{}
}

// Score mutates the candidates in place and returns them ranked by overall
// score descending, ties broken by route ID ascending so ranking never
// depends on merge order.
func (s *Scorer) Score(routes []model.CandidateRoute, objective model.RoutingObjective) []model.CandidateRoute {
	if len(routes) == 0 {
		return routes
	}

	minFee, maxFee := routes[0].TotalFeeBps, routes[0].TotalFeeBps
	minTime, maxTime := routes[0].TotalSettlementSeconds, routes[0].TotalSettlementSeconds
	for _, r := range routes[1:] {
		if r.TotalFeeBps < minFee {
			minFee = r.TotalFeeBps
		}
		if r.TotalFeeBps > maxFee {
			maxFee = r.TotalFeeBps
		}
		if r.TotalSettlementSeconds < minTime {
			minTime = r.TotalSettlementSeconds
		}
		if r.TotalSettlementSeconds > maxTime {
			maxTime = r.TotalSettlementSeconds
		}
	}

	weights := model.WeightsFor(objective)
	for i := range routes {
		r := &routes[i]
		r.CostScore = normalize(r.TotalFeeBps, minFee, maxFee)
		r.SpeedScore = normalize(float64(r.TotalSettlementSeconds), float64(minTime), float64(maxTime))
		r.OverallScore = weights.Cost*r.CostScore +
			weights.Speed*r.SpeedScore +
			weights.Reliability*r.ReliabilityScore +
			weights.Compliance*r.ComplianceScore
	}

	sort.SliceStable(routes, func(i, j int) bool {
		if routes[i].OverallScore != routes[j].OverallScore {
			return routes[i].OverallScore > routes[j].OverallScore
		}
		return routes[i].ID < routes[j].ID
	})
	return routes
}

// normalize maps a value within [min, max] to [0, 100] where the minimum is
// best. A degenerate range scores everything 100.
func normalize(v, min, max float64) float64 {
	if max <= min {
		return 100
	}
	return (1 - (v-min)/(max-min)) * 100
}
