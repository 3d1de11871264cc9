package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/rkloop/internal/dynamo"
	"github.com/san-kum/rkloop/internal/iterative"
)

// BifurcationPoint represents the attractor found for one parameter value
type BifurcationPoint struct {
	Param  float64
	Values []float64
}

// MapFamily builds a map for a given parameter value.
type MapFamily func(param float64) iterative.Map

// BifurcationDiagram sweeps a parameter of a map family. For each value the
// orbit of x0 is iterated for transient steps and the distinct values seen
// during the next record steps are kept, quantized to 1e-3.
func BifurcationDiagram(family MapFamily, paramMin, paramMax float64, paramSteps int, x0 float64, transient, record int) ([]BifurcationPoint, error) {
	if paramSteps < 2 {
		return nil, fmt.Errorf("%w: need at least two parameter steps, got %d", dynamo.ErrPrecondition, paramSteps)
	}
	if transient < 0 {
		return nil, fmt.Errorf("%w: transient must not be negative, got %d", dynamo.ErrPrecondition, transient)
	}
	if record < 1 {
		return nil, fmt.Errorf("%w: need at least one recorded iterate", dynamo.ErrPrecondition)
	}
	paramStep := (paramMax - paramMin) / float64(paramSteps-1)

	results := make([]BifurcationPoint, 0, paramSteps)
	for i := 0; i < paramSteps; i++ {
		param := paramMin + float64(i)*paramStep
		orbit, err := iterative.Iterate(family(param), x0, transient+record)
		if err != nil {
			return nil, fmt.Errorf("param %g: %w", param, err)
		}

		values := make([]float64, 0, 16)
		seen := make(map[int64]bool)
		for _, v := range orbit[transient:] {
			key := int64(math.Round(v * 1000))
			if !seen[key] {
				seen[key] = true
				values = append(values, v)
			}
		}

		results = append(results, BifurcationPoint{Param: param, Values: values})
	}
	return results, nil
}

// BifurcationToASCII converts bifurcation data to ASCII art
func BifurcationToASCII(data []BifurcationPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minVal, maxVal := math.Inf(1), math.Inf(-1)
	for _, p := range data {
		for _, v := range p.Values {
			minVal, maxVal = min(minVal, v), max(maxVal, v)
		}
	}
	if math.IsInf(minVal, 1) {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for i, p := range data {
		col := min(i*width/len(data), width-1)
		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
