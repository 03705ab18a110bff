// Package export writes run results as tables, JSON, CSV and SVG.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/san-kum/suikasim/internal/sim"
)

type Record struct {
	Seed     int64              `json:"seed"`
	Score    int                `json:"score"`
	Ticks    int                `json:"ticks"`
	Drops    int                `json:"drops"`
	Merges   int                `json:"merges"`
	MaxTier  int                `json:"max_tier"`
	GameOver bool               `json:"game_over"`
	Metrics  map[string]float64 `json:"metrics"`
}

func NewRecord(r *sim.Result) Record {
	return Record{
		Seed:     r.Seed,
		Score:    r.Score,
		Ticks:    r.Ticks,
		Drops:    r.Drops,
		Merges:   r.Merges,
		MaxTier:  r.MaxTier,
		GameOver: r.GameOver,
		Metrics:  r.Metrics,
	}
}

// Write dispatches on format: table (default), json or csv.
func Write(w io.Writer, format string, results []*sim.Result) error {
	switch format {
	case "table", "":
		return WriteTable(w, results)
	case "json":
		return WriteJSON(w, results)
	case "csv":
		return WriteCSV(w, results)
	}
	return fmt.Errorf("unknown format: %s (available: table, json, csv)", format)
}

func metricNames(results []*sim.Result) []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range results {
		for name := range r.Metrics {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// WriteTable prints one row per run, plus a summary line for ensembles.
func WriteTable(w io.Writer, results []*sim.Result) error {
	names := metricNames(results)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprint(tw, "SEED\tSCORE\tTICKS\tDROPS\tMERGES\tMAX_TIER\tOVER")
	for _, name := range names {
		fmt.Fprintf(tw, "\t%s", name)
	}
	fmt.Fprintln(tw)

	for _, r := range results {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%d\t%t", r.Seed, r.Score, r.Ticks, r.Drops, r.Merges, r.MaxTier, r.GameOver)
		for _, name := range names {
			fmt.Fprintf(tw, "\t%.4f", r.Metrics[name])
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(results) > 1 {
		s := sim.Summarize(results)
		fmt.Fprintf(w, "\nruns: %d  mean score: %.1f  best: %d (seed %d)  game overs: %d\n",
			s.Runs, s.MeanScore, s.BestScore, s.BestSeed, s.GameOvers)
	}
	return nil
}

func WriteJSON(w io.Writer, results []*sim.Result) error {
	records := make([]Record, len(results))
	for i, r := range results {
		records[i] = NewRecord(r)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func WriteCSV(w io.Writer, results []*sim.Result) error {
	names := metricNames(results)
	cw := csv.NewWriter(w)

	header := []string{"seed", "score", "ticks", "drops", "merges", "max_tier", "game_over"}
	header = append(header, names...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{
			strconv.FormatInt(r.Seed, 10),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Ticks),
			strconv.Itoa(r.Drops),
			strconv.Itoa(r.Merges),
			strconv.Itoa(r.MaxTier),
			strconv.FormatBool(r.GameOver),
		}
		for _, name := range names {
			row = append(row, strconv.FormatFloat(r.Metrics[name], 'f', 6, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteHistoryCSV writes the per-tick score and ball count of one run.
func WriteHistoryCSV(w io.Writer, r *sim.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"tick", "score", "balls"}); err != nil {
		return err
	}
	for i := range r.Scores {
		row := []string{strconv.Itoa(i + 1), strconv.Itoa(r.Scores[i]), ""}
		if i < len(r.BallCounts) {
			row[2] = strconv.Itoa(r.BallCounts[i])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
