package workload

import (
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// Arrival process names accepted in ArrivalSpec.Process.
const (
	ProcessPoisson  = "poisson"
	ProcessGamma    = "gamma"
	ProcessWeibull  = "weibull"
	ProcessConstant = "constant"
)

var validArrivalProcesses = map[string]bool{
	ProcessPoisson:  true,
	ProcessGamma:    true,
	ProcessWeibull:  true,
	ProcessConstant: true,
	"":              true, // empty defaults to poisson
}

// IsValidArrivalProcess returns true if name is a recognized arrival process.
func IsValidArrivalProcess(name string) bool {
	return validArrivalProcesses[name]
}

// ArrivalSpec selects the inter-arrival distribution.
// CV is only used by gamma and weibull; it defaults to 1.
type ArrivalSpec struct {
	Process string   `yaml:"process"`
	CV      *float64 `yaml:"cv,omitempty"`
}

// ArrivalSampler generates inter-arrival gaps between vessels.
type ArrivalSampler interface {
	// SampleIAT returns the next inter-arrival time in minutes (>= 0).
	SampleIAT(rng *rand.Rand) float64
}

// ExponentialSampler generates exponentially-distributed gaps (Poisson arrivals, CV=1).
type ExponentialSampler struct {
	mean float64 // mean gap in minutes
}

func (s *ExponentialSampler) SampleIAT(rng *rand.Rand) float64 {
	return rng.ExpFloat64() * s.mean
}

// GammaSampler generates Gamma-distributed gaps.
// CV > 1 produces bursty arrivals.
// Implemented using Marsaglia-Tsang's method for shape >= 1,
// with transformation for shape < 1.
type GammaSampler struct {
	shape float64 // 1/CV² (alpha parameter)
	scale float64 // mean*CV² in minutes (beta parameter)
}

func (s *GammaSampler) SampleIAT(rng *rand.Rand) float64 {
	return gammaRand(rng, s.shape, s.scale)
}

// gammaRand samples from Gamma(shape, scale) using Marsaglia-Tsang's method.
// For shape >= 1: direct method.
// For shape < 1: Gamma(shape) = Gamma(shape+1) * U^(1/shape).
func gammaRand(rng *rand.Rand, shape, scale float64) float64 {
	if shape < 1.0 {
		u := rng.Float64()
		return gammaRand(rng, shape+1.0, scale) * math.Pow(u, 1.0/shape)
	}

	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)

	for {
		var x, v float64
		for {
			x = rng.NormFloat64()
			v = 1.0 + c*x
			if v > 0 {
				break
			}
		}
		v = v * v * v
		u := rng.Float64()

		// Squeeze test
		if u < 1.0-0.0331*(x*x)*(x*x) {
			return d * v * scale
		}
		if math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v * scale
		}
	}
}

// WeibullSampler generates Weibull-distributed gaps.
type WeibullSampler struct {
	shape float64 // Weibull k parameter
	scale float64 // Weibull λ parameter (in minutes)
}

func (s *WeibullSampler) SampleIAT(rng *rand.Rand) float64 {
	// Inverse CDF: scale * (-ln(U))^(1/shape)
	u := rng.Float64()
	if u == 0 {
		u = math.SmallestNonzeroFloat64 // prevent -ln(0) = +Inf
	}
	return s.scale * math.Pow(-math.Log(u), 1.0/s.shape)
}

// ConstantSampler spaces arrivals exactly gap minutes apart. It ignores the rng.
type ConstantSampler struct {
	gap float64
}

func (s *ConstantSampler) SampleIAT(_ *rand.Rand) float64 {
	return s.gap
}

// NewArrivalSampler creates an ArrivalSampler from a spec and a mean gap in minutes.
func NewArrivalSampler(spec ArrivalSpec, mean float64) ArrivalSampler {
	switch spec.Process {
	case ProcessPoisson, "":
		return &ExponentialSampler{mean: mean}

	case ProcessConstant:
		return &ConstantSampler{gap: mean}

	case ProcessGamma:
		cv := cvOrDefault(spec.CV)
		// shape = 1/CV², scale = mean * CV²
		shape := 1.0 / (cv * cv)
		if shape < 0.01 {
			logrus.Warnf("Gamma shape %.4f (CV=%.1f) is very small; falling back to exponential", shape, cv)
			return &ExponentialSampler{mean: mean}
		}
		return &GammaSampler{shape: shape, scale: mean * cv * cv}

	case ProcessWeibull:
		cv := cvOrDefault(spec.CV)
		k := weibullShapeFromCV(cv)
		// scale = mean / Γ(1 + 1/k)
		return &WeibullSampler{shape: k, scale: mean / math.Gamma(1.0+1.0/k)}

	default:
		// Validated before reaching here
		logrus.Warnf("unknown arrival process %q; using exponential", spec.Process)
		return &ExponentialSampler{mean: mean}
	}
}

func cvOrDefault(cv *float64) float64 {
	if cv == nil || *cv <= 0 {
		return 1.0
	}
	return *cv
}

// weibullShapeFromCV finds Weibull shape parameter k such that
// CV² = Γ(1+2/k)/Γ(1+1/k)² - 1, using bisection.
// Range: k ∈ [0.1, 100], tolerance: |CV_computed - CV_target| < 0.001.
func weibullShapeFromCV(targetCV float64) float64 {
	lo, hi := 0.1, 100.0
	for i := 0; i < 100; i++ {
		mid := (lo + hi) / 2.0
		cv := weibullCV(mid)
		if math.Abs(cv-targetCV) < 0.001 {
			return mid
		}
		// CV is monotonically decreasing in k
		if cv > targetCV {
			lo = mid
		} else {
			hi = mid
		}
	}
	logrus.Warnf("weibullShapeFromCV: bisection did not converge for CV=%.3f after 100 iterations; using k=%.3f", targetCV, (lo+hi)/2.0)
	return (lo + hi) / 2.0
}

// weibullCV computes the coefficient of variation for Weibull(k).
func weibullCV(k float64) float64 {
	g1 := math.Gamma(1.0 + 1.0/k)
	g2 := math.Gamma(1.0 + 2.0/k)
	return math.Sqrt(g2/(g1*g1) - 1.0)
}
