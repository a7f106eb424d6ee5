package confidence

import (
	"fmt"
	"math"
)

// Method selects how Aggregate combines scores elementwise.
type Method string

const (
	// Arithmetic takes the mean of the contributing values. Default.
	Arithmetic Method = "arithmetic"

	// Geometric takes the nth root of the product, penalizing low
	// scores harder than the mean does.
	Geometric Method = "geometric"

	// Minimum takes the lowest contributing value.
	Minimum Method = "minimum"

	// Maximum takes the highest contributing value.
	Maximum Method = "maximum"
)

// Aggregate reduces several confidence values to one. The overall score
// is combined across every input; each dimension is combined over only
// the inputs that score it, so an absent dimension never drags the
// result down. An empty method means Arithmetic.
//
// Empty input yields the neutral Simple(0.5). A single-element input is
// returned as-is, identity preserved. Results always carry the default
// schema.
func Aggregate(confs []*DimensionalConfidence, method Method) (*DimensionalConfidence, error) {
	if method == "" {
		method = Arithmetic
	}
	switch method {
	case Arithmetic, Geometric, Minimum, Maximum:
	default:
		return nil, fmt.Errorf("unknown aggregation method %q", method)
	}

	switch len(confs) {
	case 0:
		return Simple(0.5)
	case 1:
		return confs[0], nil
	}

	overalls := make([]float64, len(confs))
	contributions := make(map[string][]float64)
	for i, c := range confs {
		overalls[i] = c.overall
		for name, value := range c.dimensions {
			contributions[name] = append(contributions[name], value)
		}
	}

	dims := make(map[string]float64, len(contributions))
	for name, values := range contributions {
		dims[name] = combine(values, method)
	}
	return New(combine(overalls, method), dims)
}

func combine(values []float64, method Method) float64 {
	switch method {
	case Geometric:
		product := 1.0
		for _, v := range values {
			product *= v
		}
		return math.Pow(product, 1.0/float64(len(values)))
	case Minimum:
		lowest := values[0]
		for _, v := range values[1:] {
			if v < lowest {
				lowest = v
			}
		}
		return lowest
	case Maximum:
		highest := values[0]
		for _, v := range values[1:] {
			if v > highest {
				highest = v
			}
		}
		return highest
	default:
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		return sum / float64(len(values))
	}
}
