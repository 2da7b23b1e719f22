package terminal

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/terminal-sim/terminal-sim/sim/workload"
)

// ErrInvalidConfig is wrapped by every configuration error.
var ErrInvalidConfig = errors.New("invalid terminal configuration")

// Config groups every static parameter of a terminal run.
// Times are in simulated minutes.
type Config struct {
	MeanInterArrival    float64              `yaml:"mean_inter_arrival" validate:"gt=0"`    // mean gap between vessel arrivals
	Arrival             workload.ArrivalSpec `yaml:"arrival"`                               // inter-arrival distribution (default poisson)
	ContainersPerVessel int                  `yaml:"containers_per_vessel" validate:"gt=0"` // containers unloaded from every vessel
	CraneTime           float64              `yaml:"crane_time" validate:"gte=0"`           // crane service time per container
	TruckTime           float64              `yaml:"truck_time" validate:"gte=0"`           // truck round trip per container
	Berths              int                  `yaml:"berths" validate:"gt=0"`
	Cranes              int                  `yaml:"cranes" validate:"gt=0"`
	Trucks              int                  `yaml:"trucks" validate:"gt=0"`
	CraneContention     bool                 `yaml:"crane_contention"` // hold a crane during crane service
	Seed                int64                `yaml:"seed"`
}

// DefaultConfig returns the reference terminal: two berths, two cranes,
// three trucks and a vessel every five hours on average.
func DefaultConfig() Config {
	return Config{
		MeanInterArrival:    5 * 60,
		Arrival:             workload.ArrivalSpec{Process: workload.ProcessPoisson},
		ContainersPerVessel: 150,
		CraneTime:           3,
		TruckTime:           6,
		Berths:              2,
		Cranes:              2,
		Trucks:              3,
		Seed:                42,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report yaml names so messages match what the operator wrote
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate returns an error wrapping ErrInvalidConfig if any field is out of range.
func (c Config) Validate() error {
	var problems []string
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		for _, fe := range fieldErrs {
			problems = append(problems, describeFieldError(fe))
		}
	}
	for name, v := range map[string]float64{
		"mean_inter_arrival": c.MeanInterArrival,
		"crane_time":         c.CraneTime,
		"truck_time":         c.TruckTime,
	} {
		if math.IsInf(v, 0) {
			problems = append(problems, fmt.Sprintf("%s must be finite", name))
		}
	}
	if !workload.IsValidArrivalProcess(c.Arrival.Process) {
		problems = append(problems, fmt.Sprintf("arrival.process %q is not one of poisson, gamma, weibull, constant", c.Arrival.Process))
	}
	if c.Arrival.CV != nil && !(*c.Arrival.CV > 0) {
		problems = append(problems, fmt.Sprintf("arrival.cv must be > 0, got %v", *c.Arrival.CV))
	}
	if len(problems) == 0 {
		return nil
	}
	// map iteration above is unordered
	sort.Strings(problems)
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return fmt.Sprintf("%s must be > %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be >= %s, got %v", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %q validation, got %v", fe.Field(), fe.Tag(), fe.Value())
	}
}
