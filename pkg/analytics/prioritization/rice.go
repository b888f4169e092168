package prioritization

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/samber/lo"
)

const (
	minEffort      = 1e-6
	minDenominator = 0.1
	perturbation   = 0.10
)

var ErrNoInitiatives = errors.New("initiatives must not be empty")

// Factor names, in the order they are reported and tie-broken.
const (
	FactorReach      = "reach"
	FactorImpact     = "impact"
	FactorConfidence = "confidence"
	FactorEffort     = "effort"
)

var factors = []string{FactorReach, FactorImpact, FactorConfidence, FactorEffort}

type Weights struct {
	Reach      float64
	Impact     float64
	Confidence float64
	Effort     float64
}

func DefaultWeights() Weights {
	return Weights{Reach: 1, Impact: 2, Confidence: 1, Effort: 1}
}

// Settings tune scoring and the recommendation heuristics.
type Settings struct {
	EffortScale         float64
	QuickWinMaxEffort   float64
	HighConfidence      float64
	HighConfidenceDepth int
}

func DefaultSettings() Settings {
	return Settings{
		EffortScale:         10,
		QuickWinMaxEffort:   2,
		HighConfidence:      0.8,
		HighConfidenceDepth: 5,
	}
}

type Initiative struct {
	Name       string
	Reach      float64
	Impact     float64
	Confidence float64
	Effort     float64
}

func (i Initiative) with(factor string, scale float64) Initiative {
	switch factor {
	case FactorReach:
		i.Reach *= scale
	case FactorImpact:
		i.Impact *= scale
	case FactorConfidence:
		i.Confidence *= scale
	case FactorEffort:
		i.Effort *= scale
	}
	return i
}

type Ranked struct {
	Initiative
	Score float64
	Rank  int
}

// Recommendation is one heuristic suggestion. Initiatives lists the names it
// refers to, if any.
type Recommendation struct {
	Type        string
	Message     string
	Initiatives []string
}

type Summary struct {
	Count        int
	AverageScore float64
	MedianScore  float64
	MaxScore     float64
	MinScore     float64
	TotalEffort  float64
}

type Result struct {
	Ranked          []Ranked
	Sensitivity     map[string]float64
	MostSensitive   string
	Recommendations []Recommendation
	Summary         Summary
}

// Prioritizer scores and ranks initiatives.
type Prioritizer struct {
	settings Settings
}

func NewPrioritizer(settings Settings) *Prioritizer {
	if settings.EffortScale <= 0 {
		settings.EffortScale = DefaultSettings().EffortScale
	}
	return &Prioritizer{settings: settings}
}

// Score is (reach*wr * impact*wi * confidence*wc) / max(0.1, effort/scale*we)
// with confidence clamped to [0,1] and effort floored at 1e-6.
func (p *Prioritizer) Score(i Initiative, w Weights) float64 {
	confidence := math.Max(0, math.Min(1, i.Confidence))
	effort := math.Max(minEffort, i.Effort)

	numerator := i.Reach * w.Reach * i.Impact * w.Impact * confidence * w.Confidence
	denominator := math.Max(minDenominator, effort/p.settings.EffortScale*w.Effort)
	return numerator / denominator
}

// Prioritize ranks initiatives by descending score. Equal scores keep their
// input order.
func (p *Prioritizer) Prioritize(initiatives []Initiative, w Weights) (*Result, error) {
	if err := validate(initiatives); err != nil {
		return nil, err
	}

	ranked := lo.Map(initiatives, func(i Initiative, _ int) Ranked {
		return Ranked{Initiative: i, Score: p.Score(i, w)}
	})
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	res := &Result{
		Ranked:      ranked,
		Sensitivity: p.sensitivity(initiatives, w),
		Summary:     summarize(ranked),
	}
	res.MostSensitive = mostSensitive(res.Sensitivity)
	res.Recommendations = p.recommend(res)

	return res, nil
}

// sensitivity raises each factor by 10% in turn and averages the percentage
// score change over initiatives with a non-zero base score.
func (p *Prioritizer) sensitivity(initiatives []Initiative, w Weights) map[string]float64 {
	out := make(map[string]float64, len(factors))
	for _, f := range factors {
		var changes []float64
		for _, i := range initiatives {
			base := p.Score(i, w)
			if base == 0 {
				continue
			}
			moved := p.Score(i.with(f, 1+perturbation), w)
			changes = append(changes, (moved-base)/base*100)
		}
		if len(changes) > 0 {
			out[f] = lo.Sum(changes) / float64(len(changes))
		} else {
			out[f] = 0
		}
	}
	return out
}

func mostSensitive(sensitivity map[string]float64) string {
	best := ""
	bestAbs := -1.0
	for _, f := range factors {
		if v := math.Abs(sensitivity[f]); v > bestAbs {
			best, bestAbs = f, v
		}
	}
	return best
}

func (p *Prioritizer) recommend(res *Result) []Recommendation {
	var recs []Recommendation

	top := res.Ranked[0]
	recs = append(recs, Recommendation{
		Type:        "top_priority",
		Message:     fmt.Sprintf("Prioritize %q with RICE score %.2f", top.Name, top.Score),
		Initiatives: []string{top.Name},
	})

	quickWins := lo.FilterMap(res.Ranked, func(r Ranked, _ int) (string, bool) {
		return r.Name, r.Effort <= p.settings.QuickWinMaxEffort && r.Score > res.Summary.MedianScore
	})
	if len(quickWins) > 0 {
		recs = append(recs, Recommendation{
			Type:        "quick_wins",
			Message:     fmt.Sprintf("%d quick win(s) with low effort and above-median score", len(quickWins)),
			Initiatives: quickWins,
		})
	}

	depth := min(p.settings.HighConfidenceDepth, len(res.Ranked))
	confident := lo.FilterMap(res.Ranked[:depth], func(r Ranked, _ int) (string, bool) {
		return r.Name, r.Confidence >= p.settings.HighConfidence
	})
	if len(confident) > 0 {
		recs = append(recs, Recommendation{
			Type:        "high_confidence",
			Message:     fmt.Sprintf("%d top-ranked initiative(s) have confidence of at least %.0f%%", len(confident), p.settings.HighConfidence*100),
			Initiatives: confident,
		})
	}

	if res.MostSensitive != "" {
		recs = append(recs, Recommendation{
			Type:    "sensitivity",
			Message: fmt.Sprintf("Scores are most sensitive to %s (%.1f%% average change for a 10%% increase)", res.MostSensitive, res.Sensitivity[res.MostSensitive]),
		})
	}

	return recs
}

func summarize(ranked []Ranked) Summary {
	scores := stats.Float64Data(lo.Map(ranked, func(r Ranked, _ int) float64 { return r.Score }))

	// Errors only arise on empty input, which validate already rejects.
	median, _ := scores.Median()
	maxScore, _ := scores.Max()
	minScore, _ := scores.Min()
	mean, _ := scores.Mean()

	return Summary{
		Count:        len(ranked),
		AverageScore: mean,
		MedianScore:  median,
		MaxScore:     maxScore,
		MinScore:     minScore,
		TotalEffort:  lo.SumBy(ranked, func(r Ranked) float64 { return r.Effort }),
	}
}

func validate(initiatives []Initiative) error {
	if len(initiatives) == 0 {
		return ErrNoInitiatives
	}
	for idx, i := range initiatives {
		if i.Name == "" {
			return fmt.Errorf("initiatives[%d]: name is required", idx)
		}
		for _, v := range []float64{i.Reach, i.Impact, i.Confidence, i.Effort} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("initiatives[%d] %q: values must be finite", idx, i.Name)
			}
		}
		if i.Reach < 0 || i.Impact < 0 || i.Effort < 0 {
			return fmt.Errorf("initiatives[%d] %q: reach, impact and effort must not be negative", idx, i.Name)
		}
	}
	return nil
}
