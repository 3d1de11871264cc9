package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/rkloop/internal/config"
	"github.com/san-kum/rkloop/internal/dynamo"
	"github.com/san-kum/rkloop/internal/integrators"
	"github.com/san-kum/rkloop/internal/iterative"
	"github.com/san-kum/rkloop/internal/physics"
)

// FieldFactory builds a vector field and its parameter object from config.
type FieldFactory func(cfg *config.Config) (dynamo.Field, dynamo.Params, error)

type Registry struct {
	fields   map[string]FieldFactory
	steppers map[string]func() dynamo.Stepper
	maps     map[string]func(param float64) iterative.Map
}

func NewRegistry() *Registry {
	r := &Registry{
		fields:   make(map[string]FieldFactory),
		steppers: make(map[string]func() dynamo.Stepper),
		maps:     make(map[string]func(float64) iterative.Map),
	}

	r.fields["rotation"] = func(*config.Config) (dynamo.Field, dynamo.Params, error) {
		return physics.Rotation, nil, nil
	}
	r.fields["linear"] = func(cfg *config.Config) (dynamo.Field, dynamo.Params, error) {
		if len(cfg.Matrix) == 0 {
			return physics.Linear, physics.RotationMatrix(1), nil
		}
		a, err := physics.MatrixFromRows(cfg.Matrix)
		if err != nil {
			return nil, nil, err
		}
		return physics.Linear, a, nil
	}
	r.fields["vanderpol"] = func(cfg *config.Config) (dynamo.Field, dynamo.Params, error) {
		return physics.VanDerPol, physics.VanDerPolParams{Mu: cfg.Mu}, nil
	}
	r.fields["pendulum"] = tunable(physics.Pendulum, func() physics.Tunable { return physics.NewPendulum() })
	r.fields["duffing"] = tunable(physics.Duffing, func() physics.Tunable { return physics.NewDuffing() })
	r.fields["lorenz"] = tunable(physics.Lorenz, func() physics.Tunable { return physics.NewLorenz() })

	r.steppers["euler"] = func() dynamo.Stepper { return integrators.NewEuler() }
	r.steppers["rk4"] = func() dynamo.Stepper { return integrators.NewRK4() }
	r.steppers["verlet"] = func() dynamo.Stepper { return integrators.NewVerlet() }

	r.maps["logistic"] = iterative.Logistic
	r.maps["tent"] = iterative.Tent

	return r
}

// tunable builds a factory for a field whose parameters are overridden by
// the config's params map.
func tunable(field dynamo.Field, defaults func() physics.Tunable) FieldFactory {
	return func(cfg *config.Config) (dynamo.Field, dynamo.Params, error) {
		p := defaults()
		if err := physics.ApplyParams(p, cfg.Params); err != nil {
			return nil, nil, err
		}
		return field, p, nil
	}
}

// RegisterField adds or replaces a named field.
func (r *Registry) RegisterField(name string, fn FieldFactory) {
	r.fields[name] = fn
}

func (r *Registry) GetField(name string, cfg *config.Config) (dynamo.Field, dynamo.Params, error) {
	fn, ok := r.fields[name]
	if !ok {
		return nil, nil, fmt.Errorf("unknown field: %s", name)
	}
	return fn(cfg)
}

func (r *Registry) GetStepper(name string) (dynamo.Stepper, error) {
	fn, ok := r.steppers[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetMap(name string, param float64) (iterative.Map, error) {
	fn, ok := r.maps[name]
	if !ok {
		return nil, fmt.Errorf("unknown map: %s", name)
	}
	return fn(param), nil
}

// GetMapFamily returns the parameterized constructor for a named map.
func (r *Registry) GetMapFamily(name string) (func(float64) iterative.Map, error) {
	fn, ok := r.maps[name]
	if !ok {
		return nil, fmt.Errorf("unknown map: %s", name)
	}
	return fn, nil
}

func (r *Registry) ListFields() []string   { return sortedKeys(r.fields) }
func (r *Registry) ListSteppers() []string { return sortedKeys(r.steppers) }
func (r *Registry) ListMaps() []string     { return sortedKeys(r.maps) }

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
