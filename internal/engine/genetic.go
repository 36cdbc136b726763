package engine

import (
	"math/rand"
	"sort"

	"github.com/piwi3910/quilting/internal/board"
	"github.com/piwi3910/quilting/internal/model"
)

// GeneticConfig holds parameters for the genetic algorithm optimizer.
type GeneticConfig struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	EliteCount     int
}

// DefaultGeneticConfig returns sensible default parameters.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 30,
		Generations:    60,
		MutationRate:   0.15,
		TournamentSize: 3,
		EliteCount:     2,
	}
}

// gene is one placement decision: which patch to place next and the
// rotation to try first.
type gene struct {
	patchIndex int
	rotation   model.Rotation
}

// chromosome is a candidate fill order.
type chromosome struct {
	genes   []gene
	fitness float64
}

type geneticOptimizer struct {
	settings model.FillSettings
	config   GeneticConfig
	board    *board.Board
	patches  []model.Patch
	free     int
	rng      *rand.Rand
}

func newGeneticOptimizer(settings model.FillSettings, config GeneticConfig, b *board.Board, patches []model.Patch) *geneticOptimizer {
	return &geneticOptimizer{
		settings: settings,
		config:   config,
		board:    b,
		patches:  patches,
		free:     b.FreeCells(),
		rng:      rand.New(rand.NewSource(settings.Seed)),
	}
}

// optimize runs the genetic algorithm and returns the best fill.
func (g *geneticOptimizer) optimize() FillResult {
	if len(g.patches) == 0 || g.config.PopulationSize <= 0 {
		return FillResult{Board: g.board.Clone()}
	}

	population := g.initPopulation()
	for i := range population {
		population[i].fitness = g.evaluate(population[i])
	}

	for gen := 0; gen < g.config.Generations; gen++ {
		sortByFitness(population)

		newPop := make([]chromosome, 0, g.config.PopulationSize)

		// Elitism: carry over the best individuals unchanged
		eliteCount := min(g.config.EliteCount, len(population))
		for i := 0; i < eliteCount; i++ {
			newPop = append(newPop, copyChromosome(population[i]))
		}

		for len(newPop) < g.config.PopulationSize {
			parent1 := g.tournamentSelect(population)
			parent2 := g.tournamentSelect(population)

			child := g.orderCrossover(parent1, parent2)
			g.mutate(&child)

			child.fitness = g.evaluate(child)
			newPop = append(newPop, child)
		}

		population = newPop
	}

	sortByFitness(population)
	return decode(g.settings, g.board, g.patches, population[0].genes)
}

func sortByFitness(population []chromosome) {
	sort.SliceStable(population, func(i, j int) bool {
		return population[i].fitness > population[j].fitness
	})
}

// initPopulation creates random orders plus one greedy order (largest
// patch first, unrotated) so the result is never worse than greedy.
func (g *geneticOptimizer) initPopulation() []chromosome {
	n := len(g.patches)
	population := make([]chromosome, g.config.PopulationSize)

	for i := range population {
		genes := make([]gene, n)
		perm := g.rng.Perm(n)
		for j := 0; j < n; j++ {
			genes[j] = gene{patchIndex: perm[j], rotation: g.randomRotation()}
		}
		population[i] = chromosome{genes: genes}
	}
	population[0] = g.createGreedyChromosome()

	return population
}

func (g *geneticOptimizer) randomRotation() model.Rotation {
	if !g.settings.AllowRotation {
		return model.R0
	}
	return model.Rotation(g.rng.Intn(4))
}

func (g *geneticOptimizer) createGreedyChromosome() chromosome {
	n := len(g.patches)
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(i, j int) bool {
		return g.patches[indices[i]].Cells() > g.patches[indices[j]].Cells()
	})

	genes := make([]gene, n)
	for i, idx := range indices {
		genes[i] = gene{patchIndex: idx, rotation: model.R0}
	}
	return chromosome{genes: genes}
}

// evaluate scores a chromosome by the share of free cells it covers, with
// a small penalty per patch left unplaced.
func (g *geneticOptimizer) evaluate(c chromosome) float64 {
	return g.score(decode(g.settings, g.board, g.patches, c.genes))
}

func (g *geneticOptimizer) score(result FillResult) float64 {
	if g.free == 0 {
		return 0
	}
	fill := float64(result.PlacedCells()) / float64(g.free)
	unplacedPenalty := float64(len(result.Unplaced)) * 0.01

	fitness := fill - unplacedPenalty
	if fitness < 0 {
		fitness = 0
	}
	return fitness
}

// tournamentSelect picks the best individual from a random tournament.
func (g *geneticOptimizer) tournamentSelect(population []chromosome) chromosome {
	best := population[g.rng.Intn(len(population))]
	for i := 1; i < g.config.TournamentSize; i++ {
		candidate := population[g.rng.Intn(len(population))]
		if candidate.fitness > best.fitness {
			best = candidate
		}
	}
	return copyChromosome(best)
}

// orderCrossover implements Order Crossover (OX1): a slice of parent1 is
// kept in place and the remaining genes follow parent2's order.
func (g *geneticOptimizer) orderCrossover(parent1, parent2 chromosome) chromosome {
	n := len(parent1.genes)
	if n <= 2 {
		return copyChromosome(parent1)
	}

	point1 := g.rng.Intn(n)
	point2 := g.rng.Intn(n)
	if point1 > point2 {
		point1, point2 = point2, point1
	}

	child := chromosome{genes: make([]gene, n)}

	inSegment := make(map[int]bool)
	for i := point1; i <= point2; i++ {
		child.genes[i] = parent1.genes[i]
		inSegment[parent1.genes[i].patchIndex] = true
	}

	childIdx := (point2 + 1) % n
	for _, pg := range parent2.genes {
		if !inSegment[pg.patchIndex] {
			child.genes[childIdx] = pg
			childIdx = (childIdx + 1) % n
		}
	}

	return child
}

func (g *geneticOptimizer) mutate(c *chromosome) {
	n := len(c.genes)
	if n < 2 {
		return
	}

	// Swap two genes
	if g.rng.Float64() < g.config.MutationRate {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		c.genes[i], c.genes[j] = c.genes[j], c.genes[i]
	}

	// Turn one patch's preferred rotation a quarter
	if g.settings.AllowRotation && g.rng.Float64() < g.config.MutationRate {
		i := g.rng.Intn(n)
		c.genes[i].rotation = c.genes[i].rotation.Add(model.R90)
	}

	// Reverse a segment (less frequent)
	if g.rng.Float64() < g.config.MutationRate*0.5 {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		if i > j {
			i, j = j, i
		}
		for i < j {
			c.genes[i], c.genes[j] = c.genes[j], c.genes[i]
			i++
			j--
		}
	}
}

func copyChromosome(c chromosome) chromosome {
	genes := make([]gene, len(c.genes))
	copy(genes, c.genes)
	return chromosome{genes: genes, fitness: c.fitness}
}

// FillGenetic evolves a fill order for patches on a copy of b. Runs with
// the same settings and seed produce the same result.
func FillGenetic(settings model.FillSettings, b *board.Board, patches []model.Patch) FillResult {
	config := DefaultGeneticConfig()
	if settings.Population > 0 {
		config.PopulationSize = settings.Population
	}
	if settings.Generations > 0 {
		config.Generations = settings.Generations
	}
	return newGeneticOptimizer(settings, config, b, patches).optimize()
}
