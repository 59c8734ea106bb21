package automation

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/springsim/internal/config"
	"github.com/san-kum/springsim/internal/dynamo"
	"github.com/san-kum/springsim/internal/physics"
)

const throwScenario = `
name: throw
duration: 1s
frame_interval: 10ms
events:
  - {at: 100ms, type: pointer_down, on_bob: true}
  - {at: 110ms, type: pointer_move, relative: true, x: 20, y: 0}
  - {at: 120ms, type: pointer_move, relative: true, x: 40, y: 0}
  - {at: 120ms, type: pointer_up, relative: true, x: 40, y: 0}
`

func TestParseScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(throwScenario))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if sc.Duration != time.Second || len(sc.Events) != 4 {
		t.Errorf("unexpected scenario: %+v", sc)
	}
	if !sc.Events[0].OnBob || sc.Events[1].At != 110*time.Millisecond {
		t.Errorf("events not decoded: %+v", sc.Events)
	}
}

func TestParseScenarioRejectsUnknownEvent(t *testing.T) {
	_, err := ParseScenario([]byte(`events: [{at: 0s, type: double_click}]`))
	if !errors.Is(err, ErrUnknownEvent) {
		t.Errorf("expected ErrUnknownEvent, got %v", err)
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "throw.yaml")
	if err := os.WriteFile(path, []byte(throwScenario), 0644); err != nil {
		t.Fatal(err)
	}
	sc, err := LoadScenario(path)
	if err != nil || sc.Name != "throw" {
		t.Fatalf("load failed: %v, %+v", err, sc)
	}
}

func TestRunHeadless(t *testing.T) {
	cfg := config.DefaultConfig()
	sc := Headless("swing")
	sc.Duration = 2 * time.Second

	res, err := Run(context.Background(), sc, cfg, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	frames := int(2*time.Second/cfg.Run.FrameInterval) + 1
	if res.Frames != frames || len(res.Samples) != frames {
		t.Errorf("expected %d frames, got %d (%d samples)", frames, res.Frames, len(res.Samples))
	}
	if res.Metrics["releases"] != 0 {
		t.Errorf("no throws expected, got %v", res.Metrics["releases"])
	}
	if p := res.Metrics["peak_theta"]; p <= 0 || p > 0.1+1e-9 {
		t.Errorf("peak theta out of range: %g", p)
	}
}

func TestRunThrow(t *testing.T) {
	sc, err := ParseScenario([]byte(throwScenario))
	if err != nil {
		t.Fatal(err)
	}

	res, err := Run(context.Background(), sc, config.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Metrics["releases"] != 1 {
		t.Errorf("expected one release, got %v", res.Metrics["releases"])
	}

	held := 0
	for _, s := range res.Samples {
		if s.Dragging {
			held++
		}
	}
	if held == 0 {
		t.Error("expected some frames with the bob held")
	}

	// 0.2 m in 10 ms is 20 m/s, clamped to 4 m/s at release.
	release := res.Samples[13]
	if math.Abs(release.State.ThetaPrime) < 1 {
		t.Errorf("expected a throw, got %+v", release.State)
	}
}

func TestRunControlEvents(t *testing.T) {
	sc := &Scenario{
		Name:     "controls",
		Duration: 500 * time.Millisecond,
		Events: []Event{
			{At: 100 * time.Millisecond, Type: SetParam, Name: "k", Value: 10},
			{At: 200 * time.Millisecond, Type: ToggleAnimation},
			{At: 300 * time.Millisecond, Type: Clear},
			{At: 400 * time.Millisecond, Type: Reset},
		},
	}

	res, err := Run(context.Background(), sc, config.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Clears != 2 {
		t.Errorf("expected 2 clears, got %d", res.Clears)
	}
	if res.Params["k"] != physics.DefaultStiffness {
		t.Errorf("reset should restore k, got %v", res.Params["k"])
	}
	if res.Final.Now >= 200*time.Millisecond {
		t.Errorf("frames should stop once paused, last at %v", res.Final.Now)
	}
}

func TestRunUnknownParam(t *testing.T) {
	sc := &Scenario{Name: "bad", Params: map[string]float64{"mass": 1, "k": 4, "zeta": 2}}
	for i := 0; i < 5; i++ {
		_, err := Run(context.Background(), sc, config.DefaultConfig(), nil)
		if !errors.Is(err, dynamo.ErrUnknownParam) {
			t.Fatalf("err = %v, want ErrUnknownParam", err)
		}
		if !strings.HasSuffix(err.Error(), ": mass") {
			t.Errorf("first bad name should be reported, got %v", err)
		}
	}
}

func TestConfigureAppliesOverrides(t *testing.T) {
	params := physics.DefaultParams()
	if err := configure(&params, map[string]float64{"k": 4, "L0": 0.5}); err != nil {
		t.Fatal(err)
	}
	if params.K != 4 || params.L0 != 0.5 || params.G != physics.DefaultGravity {
		t.Errorf("params = %+v", params)
	}
}

func TestRunSweep(t *testing.T) {
	sweep := &ParameterSweep{
		Scenario:  &Scenario{Name: "sweep", Duration: time.Second},
		ParamName: "ldc",
		ParamMin:  0,
		ParamMax:  2,
		NumSteps:  3,
	}
	results, err := RunSweep(context.Background(), sweep, config.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(results) != 3 || results[2].ParamValue != 2 {
		t.Fatalf("unexpected results: %+v", results)
	}
	if results[2].MinEnergy >= results[0].MinEnergy {
		t.Errorf("heavier drag should lose more energy: %+v", results)
	}
}
