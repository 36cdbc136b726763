package engine

import (
	"fmt"

	"github.com/piwi3910/quilting/internal/board"
	"github.com/piwi3910/quilting/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.FillSettings
}

// ComparisonResult holds the fill result and computed statistics for a
// single scenario.
type ComparisonResult struct {
	Scenario        ComparisonScenario
	Result          FillResult
	PlacedCount     int
	PlacedCells     int
	CoveragePercent float64
	Buttons         int
	UnplacedCount   int
}

// CompareScenarios fills b once per scenario and returns the results in
// scenario order. The board itself is never modified.
func CompareScenarios(scenarios []ComparisonScenario, b *board.Board, patches []model.Patch) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result := New(scenario.Settings).Fill(b, patches)
		results = append(results, ComparisonResult{
			Scenario:        scenario,
			Result:          result,
			PlacedCount:     len(result.Placed),
			PlacedCells:     result.PlacedCells(),
			CoveragePercent: result.Coverage(),
			Buttons:         result.Buttons(),
			UnplacedCount:   len(result.Unplaced),
		})
	}

	return results
}

// Best returns the result covering the most cells, preferring the earlier
// scenario on ties. It returns false for an empty slice.
func Best(results []ComparisonResult) (ComparisonResult, bool) {
	if len(results) == 0 {
		return ComparisonResult{}, false
	}
	best := results[0]
	for _, r := range results[1:] {
		if r.PlacedCells > best.PlacedCells {
			best = r
		}
	}
	return best, true
}

// BuildDefaultScenarios generates what-if alternatives around the current
// settings.
func BuildDefaultScenarios(baseSettings model.FillSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: baseSettings,
		},
	}

	altAlgo := baseSettings
	if baseSettings.Algorithm == model.AlgorithmGenetic {
		altAlgo.Algorithm = model.AlgorithmGreedy
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Greedy Fill",
			Settings: altAlgo,
		})

		reseeded := baseSettings
		reseeded.Seed = baseSettings.Seed + 1
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Genetic (seed %d)", reseeded.Seed),
			Settings: reseeded,
		})
	} else {
		altAlgo.Algorithm = model.AlgorithmGenetic
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Genetic Fill",
			Settings: altAlgo,
		})
	}

	toggled := baseSettings
	toggled.AllowRotation = !baseSettings.AllowRotation
	name := "No Rotation"
	if toggled.AllowRotation {
		name = "With Rotation"
	}
	scenarios = append(scenarios, ComparisonScenario{
		Name:     name,
		Settings: toggled,
	})

	return scenarios
}
