package montecarlo

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Distribution names a parametric sampling family.
type Distribution string

const (
	Normal     Distribution = "normal"
	Triangular Distribution = "triangular"
	Uniform    Distribution = "uniform"
	LogNormal  Distribution = "lognormal"
	Beta       Distribution = "beta"
	Poisson    Distribution = "poisson"
)

// Variable is one named random input. Name is both the sample key and the
// identifier used by formula models.
type Variable struct {
	Name         string
	Distribution Distribution
	Params       map[string]float64
}

func (v Variable) param(key string, fallback float64) float64 {
	if val, ok := v.Params[key]; ok {
		return val
	}
	return fallback
}

// Sampler draws one value per call.
type Sampler interface {
	Sample(rng *rand.Rand) float64
}

type normalSampler struct{ mean, std float64 }

// Sample uses the Box-Muller transform over two uniform draws.
func (s normalSampler) Sample(rng *rand.Rand) float64 {
	u1 := 1 - rng.Float64() // (0, 1], keeps log finite
	u2 := rng.Float64()
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return s.mean + s.std*z
}

type triangularSampler struct{ min, mode, max float64 }

// Sample inverts the triangular CDF piecewise around the mode.
func (s triangularSampler) Sample(rng *rand.Rand) float64 {
	span := s.max - s.min
	if span == 0 {
		return s.min
	}
	u := rng.Float64()
	fc := (s.mode - s.min) / span
	if u < fc {
		return s.min + math.Sqrt(u*span*(s.mode-s.min))
	}
	return s.max - math.Sqrt((1-u)*span*(s.max-s.mode))
}

type uniformSampler struct{ min, max float64 }

func (s uniformSampler) Sample(rng *rand.Rand) float64 {
	return s.min + rng.Float64()*(s.max-s.min)
}

type logNormalSampler struct{ mu, sigma float64 }

func (s logNormalSampler) Sample(rng *rand.Rand) float64 {
	return distuv.LogNormal{Mu: s.mu, Sigma: s.sigma, Src: rng}.Rand()
}

type betaSampler struct{ alpha, beta float64 }

func (s betaSampler) Sample(rng *rand.Rand) float64 {
	return distuv.Beta{Alpha: s.alpha, Beta: s.beta, Src: rng}.Rand()
}

type poissonSampler struct{ lambda float64 }

func (s poissonSampler) Sample(rng *rand.Rand) float64 {
	return distuv.Poisson{Lambda: s.lambda, Src: rng}.Rand()
}

type constantSampler struct{ value float64 }

func (s constantSampler) Sample(*rand.Rand) float64 {
	return s.value
}

// NewSampler validates the variable's parameters and returns its sampler.
// Unknown distributions fall back to the constant "value" parameter.
func NewSampler(v Variable) (Sampler, error) {
	switch v.Distribution {
	case Normal:
		mean, std := v.param("mean", 0), v.param("std", v.param("std_dev", 1))
		if std < 0 {
			return nil, fmt.Errorf("variable %q: std must be non-negative", v.Name)
		}
		return normalSampler{mean: mean, std: std}, nil

	case Triangular:
		lo, hi := v.param("min", 0), v.param("max", 1)
		mode := v.param("mode", (lo+hi)/2)
		if lo > mode || mode > hi {
			return nil, fmt.Errorf("variable %q: triangular requires min <= mode <= max", v.Name)
		}
		return triangularSampler{min: lo, mode: mode, max: hi}, nil

	case Uniform:
		lo, hi := v.param("min", 0), v.param("max", 1)
		if lo > hi {
			return nil, fmt.Errorf("variable %q: uniform requires min <= max", v.Name)
		}
		return uniformSampler{min: lo, max: hi}, nil

	case LogNormal:
		mu, sigma := v.param("mu", 0), v.param("sigma", 1)
		if sigma <= 0 {
			return nil, fmt.Errorf("variable %q: lognormal sigma must be positive", v.Name)
		}
		return logNormalSampler{mu: mu, sigma: sigma}, nil

	case Beta:
		alpha, beta := v.param("alpha", 1), v.param("beta", 1)
		if alpha <= 0 || beta <= 0 {
			return nil, fmt.Errorf("variable %q: beta alpha and beta must be positive", v.Name)
		}
		return betaSampler{alpha: alpha, beta: beta}, nil

	case Poisson:
		lambda := v.param("lambda", 1)
		if lambda <= 0 {
			return nil, fmt.Errorf("variable %q: poisson lambda must be positive", v.Name)
		}
		return poissonSampler{lambda: lambda}, nil

	default:
		return constantSampler{value: v.param("value", 0)}, nil
	}
}
