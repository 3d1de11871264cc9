// Package export writes finished trajectories to a stream as CSV or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/san-kum/rkloop/internal/config"
	"github.com/san-kum/rkloop/internal/sim"
)

// CSV writes a time column followed by one column per state component.
func CSV(out io.Writer, result *sim.Result) error {
	w := csv.NewWriter(out)
	if result.Len() == 0 {
		w.Flush()
		return w.Error()
	}

	header := []string{"time"}
	for i := range result.States[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, x := range result.States {
		row := []string{strconv.FormatFloat(result.Times[i], 'f', 6, 64)}
		for _, val := range x {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

type Data struct {
	Field      string             `json:"field"`
	Integrator string             `json:"integrator"`
	Adaptive   bool               `json:"adaptive"`
	Dt         float64            `json:"dt"`
	EStop      float64            `json:"e_stop"`
	Closed     bool               `json:"closed"`
	ClosedAt   int                `json:"closed_at"`
	MinDist    *float64           `json:"min_dist,omitempty"`
	Times      []float64          `json:"times"`
	States     [][]float64        `json:"states"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

func newData(cfg *config.Config, result *sim.Result, metrics map[string]float64) Data {
	data := Data{
		Field:      cfg.Field,
		Integrator: cfg.Integrator,
		Adaptive:   cfg.Adaptive,
		Dt:         cfg.Dt,
		EStop:      cfg.EStop,
		Closed:     result.Closed,
		ClosedAt:   result.ClosedAt,
		Times:      result.Times,
		States:     make([][]float64, len(result.States)),
		Metrics:    metrics,
	}
	// +Inf has no JSON encoding
	if !math.IsInf(result.MinDist, 0) {
		d := result.MinDist
		data.MinDist = &d
	}
	for i, s := range result.States {
		data.States[i] = s
	}
	return data
}

// JSON encodes the run settings, the closure outcome and the trajectory.
func JSON(w io.Writer, cfg *config.Config, result *sim.Result, metrics map[string]float64) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newData(cfg, result, metrics))
}
