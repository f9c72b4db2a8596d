package mccabe

import (
	"bytes"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/miladjahani/Sxoptim/flowsheet"
	"github.com/miladjahani/Sxoptim/isotherm"
	"github.com/miladjahani/Sxoptim/solver"
	"github.com/miladjahani/Sxoptim/types"
)

func solvedProfile(t *testing.T, cfg types.Config) (*types.StageProfile, isotherm.Model) {
	t.Helper()
	topo, err := flowsheet.New(flowsheet.Topology{
		ExtractionStages: 3,
		StrippingStages:  1,
		OAExtraction:     1.0,
		OAStripping:      1.5,
	})
	if err != nil {
		t.Fatalf("topology: %v", err)
	}
	feed := types.FeedSpec{PLSCu: 2.0, PLSFlow: 100, ElectrolyteCu: 35, ExtractantVV: 20}
	prof, err := solver.New(topo, isotherm.Default, cfg).Solve(feed)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	model, err := isotherm.Default(feed.ExtractantVV)
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	return prof, model
}

// TestProjectSeries checks shape and endpoints of the emitted series.
func TestProjectSeries(t *testing.T) {
	cfg := types.DefaultConfig()
	prof, model := solvedProfile(t, cfg)
	pr := Project(prof, model, cfg)

	if pr.Provisional {
		t.Fatal("converged profile projected as provisional")
	}
	if len(pr.EquilibriumCurve) != cfg.CurveSamples {
		t.Errorf("curve has %d samples, expected %d", len(pr.EquilibriumCurve), cfg.CurveSamples)
	}
	if p0 := pr.EquilibriumCurve[0]; p0.Aqueous != 0 || p0.Organic != 0 {
		t.Errorf("curve does not start at origin: %+v", p0)
	}
	if n := len(pr.OperatingLine); n != len(prof.Extraction)+1 {
		t.Errorf("operating line has %d points, expected %d", n, len(prof.Extraction)+1)
	}

	lo := pr.OperatingLine[0]
	hi := pr.OperatingLine[len(pr.OperatingLine)-1]
	if math.Abs(lo.Aqueous-prof.RaffinateCu) > 1e-12 || math.Abs(lo.Organic-prof.StrippedOrganic) > 1e-12 {
		t.Errorf("operating line does not start at (raffinate, stripped organic): %+v", lo)
	}
	if math.Abs(hi.Aqueous-prof.PLSCu) > 1e-12 || math.Abs(hi.Organic-prof.LoadedOrganic) > 1e-12 {
		t.Errorf("operating line does not end at (feed, loaded organic): %+v", hi)
	}

	// the curve must span the operating region
	if last := pr.EquilibriumCurve[len(pr.EquilibriumCurve)-1]; last.Aqueous < prof.PLSCu {
		t.Errorf("curve ends at %v, before the feed concentration %v", last.Aqueous, prof.PLSCu)
	}
}

// TestOperatingLineMassBalance: consecutive operating-line points are passing
// streams, so their increments must satisfy the countercurrent balance
// dx = r*dy with r the organic:aqueous ratio. Replaying the balance from the
// raffinate end must reproduce the stage stream values.
func TestOperatingLineMassBalance(t *testing.T) {
	cfg := types.DefaultConfig()
	prof, model := solvedProfile(t, cfg)
	pr := Project(prof, model, cfg)

	const r = 1.0 // O/A of the test topology
	for k := 1; k < len(pr.OperatingLine); k++ {
		dx := pr.OperatingLine[k].Aqueous - pr.OperatingLine[k-1].Aqueous
		dy := pr.OperatingLine[k].Organic - pr.OperatingLine[k-1].Organic
		if math.Abs(dx-r*dy) > 1e-4 {
			t.Errorf("segment %d violates mass balance: dx=%v, r*dy=%v", k, dx, r*dy)
		}
	}

	// replay: walk up from the raffinate end and rebuild the organic stream
	y := prof.StrippedOrganic
	for i := len(prof.Extraction) - 1; i >= 0; i-- {
		st := prof.Extraction[i]
		y += (st.AqueousIn.Copper - st.AqueousOut.Copper) / r
		if math.Abs(y-st.OrganicOut.Copper) > 1e-4 {
			t.Errorf("stage %d replayed organic %v, profile has %v", i+1, y, st.OrganicOut.Copper)
		}
	}
}

// TestProjectProvisional: a non-convergent profile still projects, tagged.
func TestProjectProvisional(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.MaxSweeps = 1
	cfg.MaxOuter = 1
	prof, model := solvedProfile(t, cfg)
	if prof.Converged {
		t.Skip("profile unexpectedly converged in one sweep")
	}
	pr := Project(prof, model, cfg)
	if !pr.Provisional {
		t.Error("non-convergent profile not tagged provisional")
	}
	if len(pr.OperatingLine) == 0 || len(pr.EquilibriumCurve) == 0 {
		t.Error("provisional projection dropped its series")
	}
}

// TestChartRender writes the HTML page to a buffer.
func TestChartRender(t *testing.T) {
	cfg := types.DefaultConfig()
	prof, model := solvedProfile(t, cfg)
	chart := &Chart{Projection: Project(prof, model, cfg), Scenario: "C"}

	var buf bytes.Buffer
	if err := chart.Render(&buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, "McCabe-Thiele") {
		t.Error("page is missing the diagram title")
	}
	if !strings.Contains(html, "echarts") {
		t.Error("page is missing the chart runtime")
	}
}

// TestChartHandler serves the page over HTTP.
func TestChartHandler(t *testing.T) {
	cfg := types.DefaultConfig()
	prof, model := solvedProfile(t, cfg)
	chart := &Chart{Projection: Project(prof, model, cfg), Scenario: "C"}

	srv := httptest.NewServer(http.HandlerFunc(chart.Handler))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "echarts") {
		t.Error("served page is missing the chart runtime")
	}
}

// TestSavePNG writes the image file.
func TestSavePNG(t *testing.T) {
	cfg := types.DefaultConfig()
	prof, model := solvedProfile(t, cfg)
	pr := Project(prof, model, cfg)

	path := filepath.Join(t.TempDir(), "mccabe.png")
	if err := pr.SavePNG(path, "scenario C"); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("empty image file")
	}
}
