package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/suikasim/internal/control"
	"github.com/san-kum/suikasim/internal/metrics"
	"github.com/san-kum/suikasim/internal/sim"
)

// PolicyFactory builds a fresh policy. Recognised params: "interval",
// "seed", "kp", "ki", "kd", and "col0".."colN" for the columns policy.
type PolicyFactory func(params map[string]float64) sim.Policy

type Registry struct {
	policies map[string]PolicyFactory
}

func NewRegistry() *Registry {
	r := &Registry{
		policies: make(map[string]PolicyFactory),
	}

	r.policies["none"] = func(params map[string]float64) sim.Policy {
		return control.NewNone()
	}
	r.policies["random"] = func(params map[string]float64) sim.Policy {
		return control.NewRandom(int64(params["seed"]), interval(params))
	}
	r.policies["columns"] = func(params map[string]float64) sim.Policy {
		var xs []float64
		for i := 0; ; i++ {
			x, ok := params[fmt.Sprintf("col%d", i)]
			if !ok {
				break
			}
			xs = append(xs, x)
		}
		return control.NewColumns(xs, interval(params))
	}
	r.policies["greedy"] = func(params map[string]float64) sim.Policy {
		kp, ok := params["kp"]
		if !ok {
			kp = 10
		}
		kd, ok := params["kd"]
		if !ok {
			kd = 2
		}
		return control.NewGreedy(kp, params["ki"], kd, interval(params))
	}

	return r
}

func interval(params map[string]float64) int {
	if v := int(params["interval"]); v > 0 {
		return v
	}
	return 45
}

// Register adds or replaces a policy.
func (r *Registry) Register(name string, fn PolicyFactory) {
	r.policies[name] = fn
}

func (r *Registry) GetPolicy(name string, params map[string]float64) (sim.Policy, error) {
	fn, ok := r.policies[name]
	if !ok {
		return nil, fmt.Errorf("unknown policy: %s", name)
	}
	return fn(params), nil
}

func (r *Registry) ListPolicies() []string {
	names := make([]string, 0, len(r.policies))
	for name := range r.policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics() []sim.Metric {
	return []sim.Metric{
		metrics.NewKineticEnergy(),
		metrics.NewStability(),
		metrics.NewMerges(),
		metrics.NewMaxTier(),
		metrics.NewPeakBalls(),
	}
}
