package physics

import (
	"fmt"
	"sort"

	"github.com/san-kum/rkloop/internal/dynamo"
)

// Tunable is a parameter set addressable by name, as written in config
// files under params.
type Tunable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// ApplyParams sets every override on t, in name order.
func ApplyParams(t Tunable, overrides map[string]float64) error {
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := t.SetParam(name, overrides[name]); err != nil {
			return err
		}
	}
	return nil
}

func unknownParam(field, name string) error {
	return fmt.Errorf("%w: %s has no parameter %q", dynamo.ErrPrecondition, field, name)
}

func planar(field string, x dynamo.State) error {
	if len(x) != 2 {
		return fmt.Errorf("%w: %s is planar, state has %d components", dynamo.ErrDimensionMismatch, field, len(x))
	}
	return nil
}
