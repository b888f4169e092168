package attribution

import (
	"errors"
	"fmt"
	"math/bits"
	"sort"
	"strings"

	"github.com/de-tools/plan-analytics/pkg/analytics/numeric"
	"github.com/samber/lo"
)

// DefaultMaxChannels bounds the exact enumeration to 2^(n-1) coalitions per
// channel.
const DefaultMaxChannels = 10

// maxChannelLimit keeps channel bitmasks inside a uint32.
const maxChannelLimit = 20

const topPathLimit = 10

var ErrNoPaths = errors.New("conversion_paths must not be empty")

// Path is one converting journey. Touch order is kept for reporting but the
// attribution itself only looks at set membership.
type Path []string

// Input is one attribution request.
type Input struct {
	Paths                []Path
	ChannelCosts         map[string]float64
	RevenuePerConversion float64
}

// PathCount is a distinct journey and how many times it was observed.
type PathCount struct {
	Path  string
	Count int
}

// PathAnalysis describes the observed journeys.
type PathAnalysis struct {
	TotalPaths       int
	UniqueChannels   int
	AvgPathLength    float64
	SingleTouch      int
	MultiTouch       int
	ChannelFrequency map[string]int
	TopPaths         []PathCount
	DroppedChannels  []string
}

// Result holds per-channel attribution. MarginalROAS is nil for channels with
// no recorded cost.
type Result struct {
	Channels           []string
	ShapleyValues      map[string]float64
	IncrementalRevenue map[string]float64
	MarginalROAS       map[string]*float64
	PathAnalysis       PathAnalysis
}

// Calculator computes exact Shapley values over conversion paths.
type Calculator struct {
	maxChannels int
}

// NewCalculator returns a calculator that keeps at most maxChannels of the
// most frequently touched channels. Values outside 1..20 fall back to the
// default of 10.
func NewCalculator(maxChannels int) *Calculator {
	if maxChannels <= 0 || maxChannels > maxChannelLimit {
		maxChannels = DefaultMaxChannels
	}
	return &Calculator{maxChannels: maxChannels}
}

// Attribute runs the attribution.
func (c *Calculator) Attribute(in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	rpc := in.RevenuePerConversion
	if rpc == 0 {
		rpc = 1
	}

	frequency := touchFrequency(in.Paths)
	channels, dropped := c.retain(frequency)

	index := make(map[string]int, len(channels))
	for i, ch := range channels {
		index[ch] = i
	}
	masks := pathMasks(in.Paths, index)

	raw := shapley(len(channels), masks)
	shares := normalize(raw)

	res := &Result{
		Channels:           channels,
		ShapleyValues:      make(map[string]float64, len(channels)),
		IncrementalRevenue: make(map[string]float64, len(channels)),
		MarginalROAS:       make(map[string]*float64, len(channels)),
		PathAnalysis:       analyzePaths(in.Paths, frequency, dropped),
	}

	totalRevenue := float64(len(in.Paths)) * rpc
	for i, ch := range channels {
		revenue := shares[i] * totalRevenue
		res.ShapleyValues[ch] = shares[i]
		res.IncrementalRevenue[ch] = revenue

		if cost, ok := in.ChannelCosts[ch]; ok && cost != 0 {
			roas := revenue / cost
			res.MarginalROAS[ch] = &roas
		} else {
			res.MarginalROAS[ch] = nil
		}
	}

	return res, nil
}

// retain keeps the most frequent channels, ties broken by name, and returns
// them sorted by name along with the channels that were cut.
func (c *Calculator) retain(frequency map[string]int) ([]string, []string) {
	all := lo.Keys(frequency)
	sort.Slice(all, func(i, j int) bool {
		if frequency[all[i]] != frequency[all[j]] {
			return frequency[all[i]] > frequency[all[j]]
		}
		return all[i] < all[j]
	})

	if len(all) <= c.maxChannels {
		sort.Strings(all)
		return all, nil
	}

	kept := append([]string(nil), all[:c.maxChannels]...)
	dropped := append([]string(nil), all[c.maxChannels:]...)
	sort.Strings(kept)
	sort.Strings(dropped)
	return kept, dropped
}

func touchFrequency(paths []Path) map[string]int {
	return lo.CountValues(lo.Flatten(lo.Map(paths, func(p Path, _ int) []string {
		return []string(p)
	})))
}

// pathMasks reduces every path to the bitmask of retained channels it
// touched, counting identical masks together.
func pathMasks(paths []Path, index map[string]int) map[uint32]int {
	masks := make(map[uint32]int)
	for _, p := range paths {
		var m uint32
		for _, ch := range p {
			if i, ok := index[ch]; ok {
				m |= 1 << i
			}
		}
		masks[m]++
	}
	return masks
}

// shapley computes exact Shapley values over channel coalitions. The marginal
// contribution of c to S is the number of paths whose touch-set covers S+{c}
// minus the number of paths covering S that never touch c. Raw values can be
// negative; normalize deals with the total.
func shapley(n int, masks map[uint32]int) []float64 {
	values := make([]float64, n)
	if n == 0 {
		return values
	}

	full := uint32(1)<<n - 1
	for c := 0; c < n; c++ {
		bit := uint32(1) << c
		others := full &^ bit
		for s := others; ; s = (s - 1) & others {
			coalition := s | bit
			with, without := 0, 0
			for m, count := range masks {
				switch {
				case m&coalition == coalition:
					with += count
				case m&s == s && m&bit == 0:
					without += count
				}
			}
			values[c] += numeric.ShapleyWeight(n, bits.OnesCount32(s)) * float64(with-without)

			if s == 0 {
				break
			}
		}
	}
	return values
}

// normalize scales the raw values to sum to one. A non-positive total splits
// the credit evenly.
func normalize(raw []float64) []float64 {
	out := make([]float64, len(raw))
	if len(raw) == 0 {
		return out
	}
	total := lo.Sum(raw)
	for i, v := range raw {
		if total > 0 {
			out[i] = v / total
		} else {
			out[i] = 1 / float64(len(raw))
		}
	}
	return out
}

func analyzePaths(paths []Path, frequency map[string]int, dropped []string) PathAnalysis {
	pa := PathAnalysis{
		TotalPaths:       len(paths),
		UniqueChannels:   len(frequency),
		ChannelFrequency: frequency,
		DroppedChannels:  dropped,
	}

	touches := 0
	journeys := make(map[string]int)
	for _, p := range paths {
		touches += len(p)
		switch {
		case len(p) == 1:
			pa.SingleTouch++
		case len(p) > 1:
			pa.MultiTouch++
		}
		journeys[journey(p)]++
	}
	pa.AvgPathLength = float64(touches) / float64(len(paths))

	pa.TopPaths = lo.MapToSlice(journeys, func(path string, count int) PathCount {
		return PathCount{Path: path, Count: count}
	})
	sort.Slice(pa.TopPaths, func(i, j int) bool {
		if pa.TopPaths[i].Count != pa.TopPaths[j].Count {
			return pa.TopPaths[i].Count > pa.TopPaths[j].Count
		}
		return pa.TopPaths[i].Path < pa.TopPaths[j].Path
	})
	if len(pa.TopPaths) > topPathLimit {
		pa.TopPaths = pa.TopPaths[:topPathLimit]
	}

	return pa
}

func journey(p Path) string {
	return strings.Join(p, " > ")
}

// Validate rejects paths with blank channel identifiers.
func (in Input) Validate() error {
	if len(in.Paths) == 0 {
		return ErrNoPaths
	}
	for i, p := range in.Paths {
		for _, ch := range p {
			if ch == "" {
				return fmt.Errorf("conversion_paths[%d]: empty channel name", i)
			}
		}
	}
	return nil
}
