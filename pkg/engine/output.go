package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/wildfunctions/evolve/pkg/algorithm"
	"github.com/wildfunctions/evolve/pkg/population"
)

// GenerationReport summarizes one generation.
type GenerationReport struct {
	Attempt    int `json:"attempt"`
	Generation int `json:"generation"`
	population.Summary
}

// AttemptResult summarizes one independent run.
type AttemptResult struct {
	Attempt     int              `json:"attempt"`
	RunID       string           `json:"run_id"`
	Generation  int              `json:"generation"`
	Reason      algorithm.Reason `json:"reason"`
	Evaluations int              `json:"evaluations"`
	Best        string           `json:"best"`
	Values      []float64        `json:"values"`
	Fitness     float64          `json:"fitness"`
	Penalty     float64          `json:"penalty"`
	Duration    time.Duration    `json:"duration_ns"`
	Timestamp   time.Time        `json:"timestamp"`
}

// FinalReport summarizes the entire run.
type FinalReport struct {
	Config         Config             `json:"config"`
	DesiredFitness float64            `json:"desired_fitness"`
	Best           AttemptResult      `json:"best"`
	Attempts       []AttemptResult    `json:"attempts,omitempty"`
	Generations    []GenerationReport `json:"generations,omitempty"`
}

// WriteTextReport writes a generation report in human-readable format.
func WriteTextReport(w io.Writer, r GenerationReport) {
	fmt.Fprintf(w, "[attempt %d] Gen %5d | Best: %.6g | Worst: %.6g | Avg: %.6g | Std: %.4g\n",
		r.Attempt, r.Generation, r.Best, r.Worst, r.Mean, r.StdDev)
}

// sortByFitness returns a copy of attempts, best first. Ties keep attempt
// order.
func sortByFitness(attempts []AttemptResult) []AttemptResult {
	sorted := slices.Clone(attempts)
	slices.SortStableFunc(sorted, func(a, b AttemptResult) int {
		switch {
		case a.Fitness > b.Fitness:
			return -1
		case a.Fitness < b.Fitness:
			return 1
		}
		return 0
	})
	return sorted
}

// WriteHallOfFame writes the attempts as a table, best first.
func WriteHallOfFame(w io.Writer, attempts []AttemptResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Hall of Fame")
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"#", "Attempt", "Gen", "Reason", "Evaluations", "Fitness", "Time", "Best"})
	for i, a := range sortByFitness(attempts) {
		t.AppendRow(table.Row{
			i + 1,
			a.Attempt,
			humanize.Comma(int64(a.Generation)),
			a.Reason.String(),
			humanize.Comma(int64(a.Evaluations)),
			fmt.Sprintf("%.6g", a.Fitness),
			a.Duration.Round(time.Millisecond).String(),
			text.Trim(a.Best, 60),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	t.Render()
}

// WriteTextFinal writes the final report in human-readable format.
func WriteTextFinal(w io.Writer, r FinalReport) {
	if len(r.Attempts) > 1 {
		WriteHallOfFame(w, r.Attempts)
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("FINAL RESULT")
	t.SetStyle(table.StyleRounded)
	t.AppendRows([]table.Row{
		{"Function", r.Config.Function},
		{"Representation", fmt.Sprintf("%s × %d", r.Config.Representation, r.Config.Genes)},
		{"Algorithm", r.Config.Algorithm},
		{"Operators", fmt.Sprintf("%s / %s / %s", r.Config.Selection, r.Config.Crossover, r.Config.Mutation)},
		{"Best", r.Best.Best},
		{"Fitness", fmt.Sprintf("%.10g", r.Best.Fitness)},
		{"Penalty", fmt.Sprintf("%.10g", r.Best.Penalty)},
		{"Desired", fmt.Sprintf("%.10g ± %g", r.DesiredFitness, r.Config.Precision)},
		{"Stopped", fmt.Sprintf("%s at generation %s", r.Best.Reason, humanize.Comma(int64(r.Best.Generation)))},
		{"Evaluations", humanize.Comma(int64(r.Best.Evaluations))},
		{"Finished", humanize.Time(r.Best.Timestamp)},
	})
	t.Render()
}

// WriteJSONFinal writes the final report as JSON.
func WriteJSONFinal(w io.Writer, r FinalReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
