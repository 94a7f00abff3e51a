package cli

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/meenmo/scencurve/calendar"
	"github.com/meenmo/scencurve/schedule"
	"github.com/meenmo/scencurve/termstructure"
	"github.com/meenmo/scencurve/utils"
)

// Input describes a base curve and the target spread schedules to calibrate
// against it. JSON input is accepted as well, being valid YAML.
type Input struct {
	ValuationDate string         `yaml:"valuation_date"`
	Schedule      *ScheduleInput `yaml:"schedule"`
	Dates         []string       `yaml:"dates"`
	ZeroRates     []float64      `yaml:"zero_rates"`
	FlatRate      *float64       `yaml:"flat_rate"`
	DayCount      string         `yaml:"day_count"`
	Compounding   string         `yaml:"compounding"`
	Frequency     int            `yaml:"frequency"`
	Scenarios     []ScenarioSpec `yaml:"scenarios"`
}

// ScheduleInput generates the curve dates when Dates is empty.
type ScheduleInput struct {
	Effective             string `yaml:"effective"`
	Termination           string `yaml:"termination"`
	TenorMonths           int    `yaml:"tenor_months"`
	Calendar              string `yaml:"calendar"`
	Convention            string `yaml:"convention"`
	TerminationConvention string `yaml:"termination_convention"`
	Rule                  string `yaml:"rule"`
	EndOfMonth            *bool  `yaml:"end_of_month"`
}

// ScenarioSpec is one target spread schedule.
type ScenarioSpec struct {
	Name    string    `yaml:"name"`
	Spreads []float64 `yaml:"spreads"`
}

// ParseInput decodes raw YAML or JSON.
func ParseInput(raw []byte) (Input, error) {
	var in Input
	if len(bytes.TrimSpace(raw)) == 0 {
		return in, errors.New("empty input")
	}
	if err := yaml.Unmarshal(raw, &in); err != nil {
		return in, fmt.Errorf("decode input: %w", err)
	}
	if len(in.Scenarios) == 0 {
		return in, errors.New("input has no scenarios")
	}
	for i, s := range in.Scenarios {
		if s.Name == "" {
			in.Scenarios[i].Name = fmt.Sprintf("scenario-%d", i+1)
		}
	}
	if in.Frequency == 0 {
		in.Frequency = int(termstructure.Annual)
	}
	return in, nil
}

// Valuation returns the valuation date, defaulting to the first curve date.
func (in Input) Valuation(dates []time.Time) (time.Time, error) {
	if in.ValuationDate == "" {
		if len(dates) == 0 {
			return time.Time{}, errors.New("no valuation date and no curve dates")
		}
		return dates[0], nil
	}
	return utils.ParseDate(in.ValuationDate)
}

// CurveDates returns the explicit dates in ascending order, or generates
// them from Schedule. Repeated dates are rejected.
func (in Input) CurveDates() ([]time.Time, error) {
	if len(in.Dates) > 0 {
		dates, _, err := in.explicitNodes()
		return dates, err
	}
	if in.Schedule == nil {
		return nil, errors.New("input needs either dates or schedule")
	}
	p, err := in.Schedule.params()
	if err != nil {
		return nil, err
	}
	sched, err := schedule.Generate(p)
	if err != nil {
		return nil, err
	}
	return sched.Dates(), nil
}

// explicitNodes parses Dates and sorts them ascending. ZeroRates, when
// given, are quoted per entry of Dates and move with their dates.
func (in Input) explicitNodes() ([]time.Time, []float64, error) {
	if len(in.ZeroRates) > 0 && len(in.ZeroRates) != len(in.Dates) {
		return nil, nil, fmt.Errorf("%d zero_rates for %d dates", len(in.ZeroRates), len(in.Dates))
	}
	type node struct {
		date time.Time
		rate float64
	}
	nodes := make([]node, 0, len(in.Dates))
	for i, s := range in.Dates {
		d, err := utils.ParseDate(s)
		if err != nil {
			return nil, nil, err
		}
		n := node{date: d}
		if len(in.ZeroRates) > 0 {
			n.rate = in.ZeroRates[i]
		}
		nodes = append(nodes, n)
	}
	slices.SortStableFunc(nodes, func(a, b node) int { return a.date.Compare(b.date) })

	dates := make([]time.Time, len(nodes))
	rates := make([]float64, len(nodes))
	for i, n := range nodes {
		dates[i] = n.date
		rates[i] = n.rate
	}
	sched, err := schedule.New(dates)
	if err != nil {
		return nil, nil, err
	}
	if len(in.ZeroRates) == 0 {
		rates = nil
	}
	return sched.Dates(), rates, nil
}

func (s ScheduleInput) params() (schedule.Params, error) {
	effective, err := utils.ParseDate(s.Effective)
	if err != nil {
		return schedule.Params{}, fmt.Errorf("schedule.effective: %w", err)
	}
	termination, err := utils.ParseDate(s.Termination)
	if err != nil {
		return schedule.Params{}, fmt.Errorf("schedule.termination: %w", err)
	}
	p := schedule.DefaultParams(effective, termination)
	if s.TenorMonths != 0 {
		p.TenorMonths = s.TenorMonths
	}
	if s.Calendar != "" {
		if p.Calendar, err = calendar.ParseCalendar(s.Calendar); err != nil {
			return p, err
		}
	}
	if s.Convention != "" {
		if p.Convention, err = calendar.ParseConvention(s.Convention); err != nil {
			return p, err
		}
	}
	if s.TerminationConvention != "" {
		if p.TerminationConvention, err = calendar.ParseConvention(s.TerminationConvention); err != nil {
			return p, err
		}
	}
	switch s.Rule {
	case "":
	case string(schedule.Forward), "forward":
		p.Rule = schedule.Forward
	case string(schedule.Backward), "backward":
		p.Rule = schedule.Backward
	default:
		return p, fmt.Errorf("schedule.rule: unknown rule %q", s.Rule)
	}
	if s.EndOfMonth != nil {
		p.EndOfMonth = *s.EndOfMonth
	}
	return p, nil
}

// BaseCurve builds the base zero curve on dates. Zero rates quoted against
// explicit dates follow the order of CurveDates.
func (in Input) BaseCurve(dates []time.Time) (*termstructure.ZeroCurve, error) {
	dc, err := utils.NormalizeDayCount(in.DayCount)
	if err != nil {
		return nil, err
	}
	comp, err := termstructure.ParseCompounding(in.Compounding)
	if err != nil {
		return nil, err
	}
	freq := termstructure.Frequency(in.Frequency)

	switch {
	case len(in.ZeroRates) > 0 && len(in.Dates) > 0:
		_, rates, err := in.explicitNodes()
		if err != nil {
			return nil, err
		}
		return termstructure.NewZeroCurve(dates, rates, dc, comp, freq)
	case len(in.ZeroRates) > 0:
		return termstructure.NewZeroCurve(dates, in.ZeroRates, dc, comp, freq)
	case in.FlatRate != nil:
		return termstructure.NewFlatZeroCurve(dates, *in.FlatRate, dc, comp, freq)
	default:
		return nil, errors.New("input needs either zero_rates or flat_rate")
	}
}

// Targets returns every scenario's spread schedule.
func (in Input) Targets() [][]float64 {
	out := make([][]float64, len(in.Scenarios))
	for i, s := range in.Scenarios {
		out[i] = s.Spreads
	}
	return out
}
