// Package report tabulates zero and forward rates of calibrated curves.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/meenmo/scencurve/termstructure"
	"github.com/meenmo/scencurve/utils"
)

const (
	// RateDecimals is the precision of rendered rates.
	RateDecimals = 8
	// BPDecimals is the precision of rendered basis-point spreads.
	BPDecimals = 4
	// ForwardTenor is the tenor, in years, of the reported forward rates.
	ForwardTenor = 1.0
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ZeroRow is one date of a zero-rate table.
type ZeroRow struct {
	Date     string          `json:"date" yaml:"date"`
	Time     decimal.Decimal `json:"time" yaml:"time"`
	ZeroRate decimal.Decimal `json:"zero_rate" yaml:"zero_rate"`
}

// ZeroTable lists a curve's annually compounded zero rates.
type ZeroTable struct {
	Name string    `json:"name" yaml:"name"`
	Rows []ZeroRow `json:"rows" yaml:"rows"`
}

// CompareRow sets a scenario curve against its base on one date. Forwards
// are ForwardTenor-year rates starting on Date; discount factors are to Date
// from each curve's reference date.
type CompareRow struct {
	Date             string          `json:"date" yaml:"date"`
	BaseZero         decimal.Decimal `json:"base_zero" yaml:"base_zero"`
	ScenarioZero     decimal.Decimal `json:"scenario_zero" yaml:"scenario_zero"`
	BaseForward      decimal.Decimal `json:"base_forward" yaml:"base_forward"`
	ScenarioForward  decimal.Decimal `json:"scenario_forward" yaml:"scenario_forward"`
	ForwardSpreadBP  decimal.Decimal `json:"forward_spread_bp" yaml:"forward_spread_bp"`
	BaseDiscount     decimal.Decimal `json:"base_discount" yaml:"base_discount"`
	ScenarioDiscount decimal.Decimal `json:"scenario_discount" yaml:"scenario_discount"`
}

func rate(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(RateDecimals)
}

func zeroAt(c termstructure.YieldCurve, valuation, d time.Time) (float64, float64) {
	t := utils.YearFraction(valuation, d, utils.ActAct)
	return t, c.ZeroRate(t, termstructure.Compounded, termstructure.Annual)
}

func forwardAt(c termstructure.YieldCurve, d time.Time) float64 {
	return c.Implied(d).ZeroRate(ForwardTenor, termstructure.Compounded, termstructure.Annual)
}

// ZeroRates returns the zero rate of curve at every date, timed ACT/ACT from
// valuation.
func ZeroRates(curve termstructure.YieldCurve, dates []time.Time, valuation time.Time, name string) (ZeroTable, error) {
	if curve == nil {
		return ZeroTable{}, fmt.Errorf("ZeroRates: %w", termstructure.ErrNilCurve)
	}
	out := ZeroTable{Name: name, Rows: make([]ZeroRow, 0, len(dates))}
	for _, d := range dates {
		t, z := zeroAt(curve, valuation, d)
		out.Rows = append(out.Rows, ZeroRow{
			Date:     d.Format(utils.DateLayout),
			Time:     decimal.NewFromFloat(t).Round(RateDecimals),
			ZeroRate: rate(z),
		})
	}
	return out, nil
}

// Compare tabulates base and scenario zero and forward rates on dates.
func Compare(base, scenario termstructure.YieldCurve, dates []time.Time, valuation time.Time) ([]CompareRow, error) {
	if base == nil || scenario == nil {
		return nil, fmt.Errorf("Compare: %w", termstructure.ErrNilCurve)
	}
	rows := make([]CompareRow, 0, len(dates))
	for _, d := range dates {
		_, bz := zeroAt(base, valuation, d)
		_, sz := zeroAt(scenario, valuation, d)
		bf := forwardAt(base, d)
		sf := forwardAt(scenario, d)
		rows = append(rows, CompareRow{
			Date:             d.Format(utils.DateLayout),
			BaseZero:         rate(bz),
			ScenarioZero:     rate(sz),
			BaseForward:      rate(bf),
			ScenarioForward:  rate(sf),
			ForwardSpreadBP:  decimal.NewFromFloat((sf - bf) * 1e4).Round(BPDecimals),
			BaseDiscount:     rate(termstructure.DiscountAt(base, d)),
			ScenarioDiscount: rate(termstructure.DiscountAt(scenario, d)),
		})
	}
	return rows, nil
}

// Write renders v as JSON, YAML or, for comparison rows, an aligned text
// table.
func Write(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		rows, ok := v.([]CompareRow)
		if !ok {
			return fmt.Errorf("Write: text format needs comparison rows, got %T", v)
		}
		return writeText(w, rows)
	default:
		return fmt.Errorf("Write: unknown format %q", format)
	}
}

func writeText(w io.Writer, rows []CompareRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "date\tbase zero\tscen zero\tbase fwd\tscen fwd\tspread (bp)\t")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.Date,
			r.BaseZero.StringFixed(RateDecimals),
			r.ScenarioZero.StringFixed(RateDecimals),
			r.BaseForward.StringFixed(RateDecimals),
			r.ScenarioForward.StringFixed(RateDecimals),
			r.ForwardSpreadBP.StringFixed(BPDecimals))
	}
	return tw.Flush()
}
