package montecarlo

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/de-tools/plan-analytics/pkg/analytics/numeric"
	"golang.org/x/sync/errgroup"
)

// IterationCap is the absolute limit on draws per run. Settings may lower it
// but never raise it.
const IterationCap = 50000

// ErrNonFiniteOutcome is returned when the model yields NaN or Inf for every draw.
var ErrNonFiniteOutcome = errors.New("model produced no finite outcome")

// Settings bounds and shapes a simulation run.
type Settings struct {
	// MaxIterations caps draws per run, bounded by IterationCap (default: 50000)
	MaxIterations int
	// DefaultIterations is used when a request does not ask for a count (default: 10000)
	DefaultIterations int
	// HistogramBins is the number of equal-width bins in the summary (default: 20)
	HistogramBins int
	// Workers bounds concurrent chunks (default: 4)
	Workers int
	// ChunkSize is the number of draws sharing one RNG stream (default: 1000)
	ChunkSize int
}

// DefaultSettings returns the default simulation settings.
func DefaultSettings() Settings {
	return Settings{
		MaxIterations:     50000,
		DefaultIterations: 10000,
		HistogramBins:     20,
		Workers:           4,
		ChunkSize:         1000,
	}
}

// DefaultConfidenceLevels are reported when a request names none.
var DefaultConfidenceLevels = []float64{5, 25, 50, 75, 95}

// Request describes one simulation.
type Request struct {
	Variables        []Variable
	Model            string
	Formula          string
	Iterations       int
	ConfidenceLevels []float64
	Seed             *uint64
}

// PercentilePoint is the outcome at one confidence level.
type PercentilePoint struct {
	Level float64
	Value float64
}

// Result is the simulation output and its summary.
type Result struct {
	Iterations          int
	Capped              bool
	NonFiniteDraws      int
	Seed                uint64
	Results             []float64
	Mean                float64
	StdDev              float64
	Min                 float64
	Max                 float64
	Percentiles         []PercentilePoint
	ProbabilityPositive float64
	Histogram           []numeric.Bin
}

// Engine performs Monte-Carlo simulations.
type Engine struct {
	settings Settings
}

func NewEngine(settings Settings) *Engine {
	return &Engine{settings: settings}
}

// Run draws every variable once per iteration, evaluates the model and
// summarizes the outcomes. Draws are split into fixed-size chunks, each with
// its own RNG stream derived from the seed and chunk index, so a seeded run
// is reproducible regardless of the worker count. Draws whose outcome is NaN
// or Inf are left out of the summary and counted in NonFiniteDraws.
func (e *Engine) Run(ctx context.Context, req Request) (*Result, error) {
	if len(req.Variables) == 0 {
		return nil, fmt.Errorf("at least one variable is required")
	}

	seen := make(map[string]bool, len(req.Variables))
	samplers := make([]Sampler, len(req.Variables))
	for i, v := range req.Variables {
		if v.Name == "" {
			return nil, fmt.Errorf("variable %d has no name", i)
		}
		if seen[v.Name] {
			return nil, fmt.Errorf("duplicate variable name %q", v.Name)
		}
		seen[v.Name] = true

		s, err := NewSampler(v)
		if err != nil {
			return nil, err
		}
		samplers[i] = s
	}

	model, err := NewModel(req.Model, req.Formula, req.Variables)
	if err != nil {
		return nil, err
	}

	levels := req.ConfidenceLevels
	if len(levels) == 0 {
		levels = DefaultConfidenceLevels
	}
	for _, l := range levels {
		if l < 0 || l > 100 {
			return nil, fmt.Errorf("confidence level %v outside [0, 100]", l)
		}
	}

	iterations, capped := e.iterations(req.Iterations)

	seed := uint64(time.Now().UnixNano())
	if req.Seed != nil {
		seed = *req.Seed
	}

	results, err := e.simulate(ctx, samplers, model, iterations, seed)
	if err != nil {
		return nil, err
	}

	finite := slices.DeleteFunc(results, func(v float64) bool { return !numeric.IsFinite(v) })
	if len(finite) == 0 {
		return nil, ErrNonFiniteOutcome
	}

	res := Summarize(finite, levels, e.settings.HistogramBins)
	res.Iterations = iterations
	res.NonFiniteDraws = iterations - len(finite)
	res.Capped = capped
	res.Seed = seed
	return res, nil
}

func (e *Engine) iterations(requested int) (int, bool) {
	if requested <= 0 {
		requested = e.settings.DefaultIterations
	}
	limit := min(e.settings.MaxIterations, IterationCap)
	if limit <= 0 {
		limit = IterationCap
	}
	if requested > limit {
		return limit, true
	}
	return requested, false
}

func (e *Engine) simulate(ctx context.Context, samplers []Sampler, model Model, iterations int, seed uint64) ([]float64, error) {
	chunk := max(1, e.settings.ChunkSize)
	results := make([]float64, iterations)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, e.settings.Workers))

	for start := 0; start < iterations; start += chunk {
		end := min(start+chunk, iterations)
		stream := uint64(start / chunk)

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			rng := rand.New(rand.NewPCG(seed, stream))
			values := make([]float64, len(samplers))
			for i := start; i < end; i++ {
				for j, s := range samplers {
					values[j] = s.Sample(rng)
				}
				results[i] = model.Evaluate(values)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summarize computes population moments, nearest-rank percentiles, the share
// of positive outcomes and an equal-width histogram. results is not modified.
func Summarize(results []float64, levels []float64, bins int) *Result {
	res := &Result{Results: results}
	if len(results) == 0 {
		return res
	}

	sorted := slices.Clone(results)
	slices.Sort(sorted)

	res.Mean, res.StdDev = numeric.PopMeanStdDev(results)
	res.Min = sorted[0]
	res.Max = sorted[len(sorted)-1]

	for _, l := range levels {
		res.Percentiles = append(res.Percentiles, PercentilePoint{Level: l, Value: numeric.Percentile(sorted, l)})
	}

	positive := 0
	for _, v := range results {
		if v > 0 {
			positive++
		}
	}
	res.ProbabilityPositive = float64(positive) / float64(len(results))
	res.Histogram = numeric.Histogram(results, bins)
	return res
}
