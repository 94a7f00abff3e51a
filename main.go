package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/meenmo/scencurve/report"
	"github.com/meenmo/scencurve/scenario"
	"github.com/meenmo/scencurve/schedule"
	"github.com/meenmo/scencurve/termstructure"
	"github.com/meenmo/scencurve/utils"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	valuation := time.Date(2019, time.September, 30, 0, 0, 0, 0, time.UTC)
	sched, err := schedule.Generate(schedule.DefaultParams(valuation, valuation.AddDate(99, 0, 0)))
	if err != nil {
		exit(err)
	}
	dates := sched.Dates()

	base, err := termstructure.NewFlatZeroCurve(dates, 0.02, utils.ActAct, termstructure.Compounded, termstructure.Annual)
	if err != nil {
		exit(err)
	}

	// 50bp on every one-year forward.
	targets := make([]float64, scenario.HorizonLimit+1)
	for i := 1; i < len(targets); i++ {
		targets[i] = 0.005
	}

	run, err := scenario.CalibrateRun(base, targets, valuation, scenario.WithLogger(logger))
	if err != nil {
		exit(err)
	}

	rows, err := report.Compare(base, run.Scenario, dates[:41], valuation)
	if err != nil {
		exit(err)
	}

	fmt.Println("Scenario: flat 2% base, +50bp one-year forwards")
	fmt.Println("Schedule:", dates[0].Format(utils.DateLayout), "to", dates[len(dates)-1].Format(utils.DateLayout))
	for i, ssr := range run.PassResiduals {
		fmt.Printf("Pass %d SSR: %.3e\n", i+1, ssr)
	}
	fmt.Println()
	if err := report.Write(os.Stdout, report.FormatText, rows); err != nil {
		exit(err)
	}
}

func exit(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
