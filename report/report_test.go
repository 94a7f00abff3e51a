package report

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/meenmo/scencurve/termstructure"
	"github.com/meenmo/scencurve/utils"
)

type constSpread struct {
	n int
	v float64
}

func (c constSpread) Len() int          { return c.n }
func (c constSpread) Value(int) float64 { return c.v }

func fixture(t *testing.T) ([]time.Time, *termstructure.ZeroCurve, *termstructure.SpreadedCurve) {
	t.Helper()
	dates := make([]time.Time, 11)
	for i := range dates {
		dates[i] = time.Date(2020+i, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	base, err := termstructure.NewFlatZeroCurve(dates, 0.02, utils.ActAct, termstructure.Compounded, termstructure.Annual)
	require.NoError(t, err)
	scen, err := termstructure.NewSpreadedCurve(base, constSpread{n: len(dates), v: 0.005}, dates)
	require.NoError(t, err)
	return dates, base, scen
}

func TestZeroRates(t *testing.T) {
	t.Parallel()

	dates, base, _ := fixture(t)
	table, err := ZeroRates(base, dates[1:], dates[0], "base")
	require.NoError(t, err)

	assert.Equal(t, "base", table.Name)
	require.Len(t, table.Rows, 10)
	assert.Equal(t, "2021-01-01", table.Rows[0].Date)
	assert.Equal(t, "1", table.Rows[0].Time.String())
	for _, r := range table.Rows {
		assert.Equal(t, "0.02", r.ZeroRate.String(), r.Date)
	}

	_, err = ZeroRates(nil, dates, dates[0], "nil")
	assert.ErrorIs(t, err, termstructure.ErrNilCurve)
}

func TestCompare(t *testing.T) {
	t.Parallel()

	dates, base, scen := fixture(t)
	rows, err := Compare(base, scen, dates[1:6], dates[0])
	require.NoError(t, err)
	require.Len(t, rows, 5)

	// A constant continuous spread s lifts an annual rate r to (1+r)e^s - 1.
	want := 1.02*math.Exp(0.005) - 1
	for _, r := range rows {
		assert.InDelta(t, 0.02, r.BaseForward.InexactFloat64(), 1e-8, r.Date)
		assert.InDelta(t, want, r.ScenarioForward.InexactFloat64(), 1e-8, r.Date)
		assert.InDelta(t, want, r.ScenarioZero.InexactFloat64(), 1e-8, r.Date)
		assert.InDelta(t, (want-0.02)*1e4, r.ForwardSpreadBP.InexactFloat64(), 1e-4, r.Date)
	}
	// Five years out: 1.02^-5 on the base, times e^(-0.005*5) on the scenario.
	assert.InDelta(t, math.Pow(1.02, -5), rows[4].BaseDiscount.InexactFloat64(), 1e-8)
	assert.InDelta(t, math.Pow(1.02, -5)*math.Exp(-0.025), rows[4].ScenarioDiscount.InexactFloat64(), 1e-8)

	_, err = Compare(base, nil, dates, dates[0])
	assert.ErrorIs(t, err, termstructure.ErrNilCurve)
}

func TestWrite(t *testing.T) {
	t.Parallel()

	dates, base, scen := fixture(t)
	rows, err := Compare(base, scen, dates[1:3], dates[0])
	require.NoError(t, err)

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, FormatJSON, rows))
		var got []map[string]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "2021-01-01", got[0]["date"])
		assert.Equal(t, "0.02", got[0]["base_zero"])
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, FormatYAML, rows))
		var got []map[string]string
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "2022-01-01", got[1]["date"])
		assert.Equal(t, "0.02", got[1]["base_forward"])
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, FormatText, rows))
		out := buf.String()
		assert.Contains(t, out, "spread (bp)")
		assert.Contains(t, out, "2021-01-01")
		assert.Contains(t, out, "0.02000000")
	})

	t.Run("rejects", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, Write(&buf, "xml", rows))
		assert.Error(t, Write(&buf, FormatText, ZeroTable{}))
	})
}
