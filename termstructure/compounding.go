package termstructure

import (
	"fmt"
	"math"
	"strings"
)

// Compounding is the rate convention used to convert rates to discount factors.
type Compounding int

const (
	Simple Compounding = iota
	Compounded
	Continuous
)

func (c Compounding) String() string {
	switch c {
	case Simple:
		return "simple"
	case Compounded:
		return "compounded"
	case Continuous:
		return "continuous"
	default:
		return fmt.Sprintf("Compounding(%d)", int(c))
	}
}

// ParseCompounding maps a configuration value to a Compounding.
func ParseCompounding(s string) (Compounding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple":
		return Simple, nil
	case "", "compounded", "compound":
		return Compounded, nil
	case "continuous":
		return Continuous, nil
	default:
		return 0, fmt.Errorf("ParseCompounding: unknown compounding %q", s)
	}
}

// Frequency is the number of compounding periods per year.
type Frequency int

const (
	NoFrequency Frequency = 0
	Annual      Frequency = 1
	Semiannual  Frequency = 2
	Quarterly   Frequency = 4
	Monthly     Frequency = 12
)

func (f Frequency) periods() float64 {
	if f < 1 {
		return 1
	}
	return float64(f)
}

// DiscountFactor converts a rate over t years into a discount factor.
// Compounded rates with NoFrequency compound annually.
func DiscountFactor(rate, t float64, comp Compounding, freq Frequency) float64 {
	switch comp {
	case Simple:
		return 1 / (1 + rate*t)
	case Compounded:
		f := freq.periods()
		return math.Pow(1+rate/f, -f*t)
	default:
		return math.Exp(-rate * t)
	}
}

// ImpliedRate is the rate that discounts to df over t years.
func ImpliedRate(df, t float64, comp Compounding, freq Frequency) float64 {
	switch comp {
	case Simple:
		return (1/df - 1) / t
	case Compounded:
		f := freq.periods()
		return (math.Pow(df, -1/(f*t)) - 1) * f
	default:
		return -math.Log(df) / t
	}
}
