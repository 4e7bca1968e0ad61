// routing/scorer_test.go
package routing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshmo01/FX-MS/model"
	"github.com/joshmo01/FX-MS/refdata"
)

func candidate(id string, feeBps float64, settlementSeconds int, reliability, compliance float64) model.CandidateRoute {
	return model.CandidateRoute{
		ID:                     id,
		TotalFeeBps:            feeBps,
		TotalSettlementSeconds: settlementSeconds,
		ReliabilityScore:       reliability,
		ComplianceScore:        compliance,
	}
}

func TestScorer_NormalizationBounds(t *testing.T) {
	routes := []model.CandidateRoute{
		candidate("A", 10, 60, 95, 90),
		candidate("B", 55, 7200, 95, 90),
		candidate("C", 100, 86400, 95, 90),
	}

	ranked := NewScorer().Score(routes, model.ObjectiveAuto)

	byID := map[string]model.CandidateRoute{}
	for _, r := range ranked {
		byID[r.ID] = r
		assert.GreaterOrEqual(t, r.CostScore, 0.0)
		assert.LessOrEqual(t, r.CostScore, 100.0)
		assert.GreaterOrEqual(t, r.SpeedScore, 0.0)
		assert.LessOrEqual(t, r.SpeedScore, 100.0)
	}

	// Cheapest and fastest pin the top of the scale, costliest the bottom.
	assert.Equal(t, 100.0, byID["A"].CostScore)
	assert.Equal(t, 0.0, byID["C"].CostScore)
	assert.Equal(t, 100.0, byID["A"].SpeedScore)
	assert.Equal(t, 0.0, byID["C"].SpeedScore)
	assert.Greater(t, byID["B"].CostScore, byID["C"].CostScore)
	assert.Less(t, byID["B"].CostScore, byID["A"].CostScore)

	assert.Equal(t, "A", ranked[0].ID)
	assert.Equal(t, "C", ranked[2].ID)
}

func TestScorer_DegenerateRangeScoresFull(t *testing.T) {
	routes := []model.CandidateRoute{
		candidate("A", 40, 3600, 95, 90),
		candidate("B", 40, 3600, 95, 90),
	}

	ranked := NewScorer().Score(routes, model.ObjectiveLowestCost)
	for _, r := range ranked {
		assert.Equal(t, 100.0, r.CostScore)
		assert.Equal(t, 100.0, r.SpeedScore)
	}
}

func TestScorer_TieBreaksOnRouteID(t *testing.T) {
	routes := []model.CandidateRoute{
		candidate("ZULU", 40, 3600, 95, 90),
		candidate("ALFA", 40, 3600, 95, 90),
		candidate("MIKE", 40, 3600, 95, 90),
	}

	ranked := NewScorer().Score(routes, model.ObjectiveAuto)
	assert.Equal(t, "ALFA", ranked[0].ID)
	assert.Equal(t, "MIKE", ranked[1].ID)
	assert.Equal(t, "ZULU", ranked[2].ID)
}

func TestScorer_MergeOrderInvariance(t *testing.T) {
	build := func() []model.CandidateRoute {
		return []model.CandidateRoute{
			candidate("A", 13, 15, 98, 100),
			candidate("B", 35, 86400, 99, 90),
			candidate("C", 100, 7260, 95, 85),
		}
	}
	reversed := func() []model.CandidateRoute {
		routes := build()
		routes[0], routes[2] = routes[2], routes[0]
		return routes
	}

	first := NewScorer().Score(build(), model.ObjectiveFastest)
	second := NewScorer().Score(reversed(), model.ObjectiveFastest)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.InDelta(t, first[i].OverallScore, second[i].OverallScore, 1e-9)
	}
}

func TestScorer_ObjectiveShiftsRanking(t *testing.T) {
	// Cheap but slow versus expensive but instant.
	build := func() []model.CandidateRoute {
		return []model.CandidateRoute{
			candidate("CHEAP_SLOW", 10, 172800, 95, 90),
			candidate("COSTLY_FAST", 90, 10, 95, 90),
		}
	}

	byCost := NewScorer().Score(build(), model.ObjectiveLowestCost)
	assert.Equal(t, "CHEAP_SLOW", byCost[0].ID)

	bySpeed := NewScorer().Score(build(), model.ObjectiveFastest)
	assert.Equal(t, "COSTLY_FAST", bySpeed[0].ID)
}

func TestScorer_WeightedOverall(t *testing.T) {
	routes := []model.CandidateRoute{
		candidate("A", 10, 60, 98, 100),
		candidate("B", 50, 3600, 95, 90),
	}

	ranked := NewScorer().Score(routes, model.ObjectiveAuto)
	w := model.WeightsFor(model.ObjectiveAuto)
	for _, r := range ranked {
		expected := w.Cost*r.CostScore + w.Speed*r.SpeedScore +
			w.Reliability*r.ReliabilityScore + w.Compliance*r.ComplianceScore
		assert.InDelta(t, expected, r.OverallScore, 1e-9)
	}
}

func TestScorer_MBridgeWinsCorridor(t *testing.T) {
	snap := refdata.DefaultSnapshot()
	req := newRequest("CNY", "AED", 1_000_000)
	req.Providers = snap.ActiveProviders()

	var routes []model.CandidateRoute
	builders := []RouteBuilder{
		NewFiatBuilder(snap),
		NewCBDCBuilder(snap),
		NewBridgeBuilder(snap),
		NewStablecoinBuilder(snap),
	}
	for _, b := range builders {
		routes = append(routes, b.Build(context.Background(), req)...)
	}
	require.NotEmpty(t, routes)

	ranked := NewScorer().Score(routes, model.ObjectiveAuto)
	assert.Equal(t, "CBDC_MBRIDGE", ranked[0].RouteType,
		"atomic corridor is cheapest and fastest for participating pairs")
}
