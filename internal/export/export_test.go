package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/san-kum/suikasim/internal/physics"
	"github.com/san-kum/suikasim/internal/sim"
)

func sampleResults() []*sim.Result {
	return []*sim.Result{
		{Seed: 1, Score: 120, Ticks: 600, Drops: 12, Merges: 5, MaxTier: 3, Metrics: map[string]float64{"merges": 5, "max_tier": 3}},
		{Seed: 2, Score: 40, Ticks: 300, Drops: 8, Merges: 2, MaxTier: 2, GameOver: true, Metrics: map[string]float64{"merges": 2, "max_tier": 2}},
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, "table", sampleResults()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"SEED", "max_tier", "merges", "120", "mean score: 80.0", "best: 120 (seed 1)", "game overs: 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestWriteTableSingleRunHasNoSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, sampleResults()[:1]); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "mean score") {
		t.Error("single run should not print a summary")
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, "json", sampleResults()); err != nil {
		t.Fatal(err)
	}
	var records []Record
	if err := json.Unmarshal(buf.Bytes(), &records); err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 || records[1].Seed != 2 || !records[1].GameOver {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, "csv", sampleResults()); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(rows))
	}
	if got := strings.Join(rows[0], ","); got != "seed,score,ticks,drops,merges,max_tier,game_over,max_tier,merges" {
		t.Errorf("unexpected header %s", got)
	}
	if rows[2][6] != "true" {
		t.Errorf("expected game_over true, got %s", rows[2][6])
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, "xml", nil); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestWriteHistoryCSV(t *testing.T) {
	r := &sim.Result{Scores: []int{0, 20, 20}, BallCounts: []int{1, 1, 2}}
	var buf bytes.Buffer
	if err := WriteHistoryCSV(&buf, r); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if strings.Join(rows[2], ",") != "2,20,1" {
		t.Errorf("unexpected row %v", rows[2])
	}
}

func TestBoardToSVG(t *testing.T) {
	p := physics.DefaultParams()
	balls := []physics.Ball{*p.NewBall(500, 1000, 0), *p.NewBall(200, 1300, 4)}
	svg := BoardToSVG(p, 150, balls, 320)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("not a complete svg document")
	}
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 circles, got %d", n)
	}
	if !strings.Contains(svg, physics.Hex(4)) {
		t.Error("missing tier color")
	}
	if !strings.Contains(svg, ">320<") {
		t.Error("missing score")
	}
}

func TestScoreCurveToSVG(t *testing.T) {
	if ScoreCurveToSVG([]int{5}, 100, 50, "#fff") != "" {
		t.Error("expected empty output for a single point")
	}
	svg := ScoreCurveToSVG([]int{0, 10, 20}, 100, 50, "#00ff88")
	if !strings.Contains(svg, "M0.0,47.5") || !strings.Contains(svg, "L100.0,2.5") {
		t.Errorf("unexpected path:\n%s", svg)
	}
}
