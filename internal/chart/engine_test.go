package chart

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/papapumpkin/kundali/internal/ephemeris"
	"github.com/papapumpkin/kundali/internal/telemetry"
)

// fakeEphemeris serves fixed positions. Bodies listed in errs fail.
type fakeEphemeris struct {
	positions map[ephemeris.Body]ephemeris.Position
	errs      map[ephemeris.Body]error
	asc       float64
	ascErr    error
	calls     atomic.Int64
	lastMode  atomic.Int64
}

func (f *fakeEphemeris) JulianDay(c ephemeris.CivilTime) ephemeris.JulianDay {
	f.calls.Add(1)
	return ephemeris.ToJulianDay(c)
}

func (f *fakeEphemeris) Position(_ ephemeris.JulianDay, b ephemeris.Body, mode ephemeris.Ayanamsa) (ephemeris.Position, error) {
	f.calls.Add(1)
	f.lastMode.Store(int64(mode))
	if err, ok := f.errs[b]; ok {
		return ephemeris.Position{}, &ephemeris.UnavailableError{Body: b, Err: err}
	}
	return f.positions[b], nil
}

func (f *fakeEphemeris) Ascendant(ephemeris.JulianDay, float64, float64, ephemeris.HouseSystem, ephemeris.Ayanamsa) (float64, error) {
	f.calls.Add(1)
	if f.ascErr != nil {
		return 0, f.ascErr
	}
	return f.asc, nil
}

func newFake() *fakeEphemeris {
	return &fakeEphemeris{
		positions: map[ephemeris.Body]ephemeris.Position{
			ephemeris.Sun:      {Longitude: 128.4, Speed: 0.96},
			ephemeris.Moon:     {Longitude: 245.1, Speed: 13.2},
			ephemeris.Mercury:  {Longitude: 140.0, Speed: -0.3},
			ephemeris.Venus:    {Longitude: 150.5, Speed: 1.2},
			ephemeris.Mars:     {Longitude: 170.2, Speed: 0.6},
			ephemeris.Jupiter:  {Longitude: 220.7, Speed: 0.05},
			ephemeris.Saturn:   {Longitude: 335.9, Speed: -0.04},
			ephemeris.MeanNode: {Longitude: 185.3, Speed: -0.053},
		},
		asc: 255.5,
	}
}

func fixedID() string { return "chart-1" }

func newTestEngine(eph Ephemeris, opts ...Option) *Engine {
	e := NewEngine(eph, opts...)
	e.newID = fixedID
	return e
}

func TestCompute_AllKeys(t *testing.T) {
	t.Parallel()

	c, err := newTestEngine(newFake()).Compute(validInput())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(c.Positions) != len(Keys()) {
		t.Fatalf("got %d positions, want %d", len(c.Positions), len(Keys()))
	}
	for _, b := range Keys() {
		if !c.Available(b) {
			t.Errorf("%s unavailable", b)
		}
	}
	if !c.Complete() {
		t.Errorf("unexpected failures: %v", c.Failures)
	}

	want := map[Body]Position{
		Sun:       NewPosition(128.4, false),
		Moon:      NewPosition(245.1, false),
		Mars:      NewPosition(170.2, false),
		Mercury:   NewPosition(140.0, true),
		Jupiter:   NewPosition(220.7, false),
		Venus:     NewPosition(150.5, false),
		Saturn:    NewPosition(335.9, true),
		Rahu:      NewPosition(185.3, true),
		Ketu:      NewPosition(5.3, true),
		Ascendant: NewPosition(255.5, false),
	}
	if diff := cmp.Diff(want, c.Positions, cmp.Comparer(func(a, b float64) bool { return a-b < 1e-9 && b-a < 1e-9 })); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
	if c.ID != "chart-1" {
		t.Errorf("ID = %q", c.ID)
	}
}

func TestCompute_PassesAyanamsaPerCall(t *testing.T) {
	t.Parallel()

	fake := newFake()
	e := newTestEngine(fake)
	for _, a := range []ephemeris.Ayanamsa{ephemeris.Raman, ephemeris.Lahiri} {
		in := validInput()
		in.Ayanamsa = a
		if _, err := e.Compute(in); err != nil {
			t.Fatalf("Compute: %v", err)
		}
		if got := ephemeris.Ayanamsa(fake.lastMode.Load()); got != a {
			t.Errorf("ephemeris saw %s, want %s", got, a)
		}
	}
}

func TestCompute_KetuIsRahuAntipode(t *testing.T) {
	t.Parallel()

	for _, rahu := range []float64{0, 12.25, 179.999, 180, 270.5, 359.75} {
		for _, speed := range []float64{-0.05, 0.02} {
			fake := newFake()
			fake.positions[ephemeris.MeanNode] = ephemeris.Position{Longitude: rahu, Speed: speed}

			c, err := newTestEngine(fake).Compute(validInput())
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}
			r, k := c.Position(Rahu), c.Position(Ketu)
			if want := normalizeLongitude(r.Longitude + 180); k.Longitude != want {
				t.Errorf("rahu %v: ketu = %v, want %v", rahu, k.Longitude, want)
			}
			if k.Retrograde != r.Retrograde {
				t.Errorf("rahu %v: ketu retrograde %v, rahu %v", rahu, k.Retrograde, r.Retrograde)
			}
		}
	}
}

func TestCompute_InvalidInputSkipsEphemeris(t *testing.T) {
	t.Parallel()

	fake := newFake()
	in := validInput()
	in.Month = 13

	c, err := newTestEngine(fake).Compute(in)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if c != nil {
		t.Error("expected nil chart on invalid input")
	}
	if n := fake.calls.Load(); n != 0 {
		t.Errorf("ephemeris called %d times for invalid input", n)
	}
}

func TestCompute_UnavailableBodyIsExplicit(t *testing.T) {
	t.Parallel()

	fake := newFake()
	fake.errs = map[ephemeris.Body]error{ephemeris.Mars: ephemeris.ErrDataMissing}

	c, err := newTestEngine(fake).Compute(validInput())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(c.Positions) != len(Keys()) {
		t.Fatalf("got %d positions, want %d", len(c.Positions), len(Keys()))
	}
	mars := c.Position(Mars)
	if mars.Available {
		t.Fatal("Mars should be unavailable")
	}
	if c.Complete() {
		t.Error("chart with a failure reported complete")
	}

	f := c.Failure(Mars)
	if f == nil {
		t.Fatal("no failure recorded for Mars")
	}
	if f.Step != StepPosition {
		t.Errorf("step = %q, want %q", f.Step, StepPosition)
	}
	if !errors.Is(f, ephemeris.ErrUnavailable) || !errors.Is(f, ephemeris.ErrDataMissing) {
		t.Errorf("failure does not match sentinels: %v", f)
	}
	if err := c.Require(Sun, Mars); !errors.Is(err, ephemeris.ErrDataMissing) {
		t.Errorf("Require = %v", err)
	}
	if err := c.Require(Sun, Moon); err != nil {
		t.Errorf("Require(Sun, Moon) = %v", err)
	}
}

func TestCompute_UnavailableRahuPropagatesToKetu(t *testing.T) {
	t.Parallel()

	fake := newFake()
	fake.errs = map[ephemeris.Body]error{ephemeris.MeanNode: ephemeris.ErrOutOfRange}

	c, err := newTestEngine(fake).Compute(validInput())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if c.Available(Rahu) || c.Available(Ketu) {
		t.Fatal("Rahu and Ketu should both be unavailable")
	}
	f := c.Failure(Ketu)
	if f == nil || f.Step != StepKetu {
		t.Fatalf("Ketu failure = %v", f)
	}
	if !errors.Is(f, ephemeris.ErrUnavailable) {
		t.Errorf("Ketu failure does not match ErrUnavailable: %v", f)
	}
}

func TestCompute_UnavailableAscendant(t *testing.T) {
	t.Parallel()

	fake := newFake()
	fake.ascErr = fmt.Errorf("solver: %w", ephemeris.ErrPolarLatitude)

	c, err := newTestEngine(fake).Compute(validInput())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	f := c.Failure(Ascendant)
	if f == nil || f.Step != StepAscendant {
		t.Fatalf("Ascendant failure = %v", f)
	}
	if !errors.Is(f, ephemeris.ErrUnavailable) || !errors.Is(f, ephemeris.ErrPolarLatitude) {
		t.Errorf("failure does not match sentinels: %v", f)
	}
	if _, err := c.HouseTable(); err == nil {
		t.Error("HouseTable should fail without an Ascendant")
	}
	if _, err := c.Placements(); err == nil {
		t.Error("Placements should fail without an Ascendant")
	}
}

func TestCompute_EmitsTelemetry(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "events.jsonl")
	em, err := telemetry.NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}

	fake := newFake()
	fake.errs = map[ephemeris.Body]error{ephemeris.Saturn: ephemeris.ErrDataMissing}
	if _, err := newTestEngine(fake, WithEmitter(em)).Compute(validInput()); err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if err := em.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	var kinds []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var evt telemetry.Event
		if err := json.Unmarshal(sc.Bytes(), &evt); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if evt.ChartID != "chart-1" {
			t.Errorf("event %s has chart %q", evt.Kind, evt.ChartID)
		}
		kinds = append(kinds, evt.Kind)
	}
	want := []string{telemetry.KindChartStart, telemetry.KindBodyUnavailable, telemetry.KindChartDone}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("event kinds (-want +got):\n%s", diff)
	}
}

func TestCompute_ConcurrentModes(t *testing.T) {
	t.Parallel()

	meeus := ephemeris.NewMeeus("")
	e := NewEngine(meeus)

	lahiri := validInput()
	raman := validInput()
	raman.Ayanamsa = ephemeris.Raman

	type result struct {
		mode ephemeris.Ayanamsa
		sun  float64
	}
	results := make(chan result, 20)
	for i := range 20 {
		in := lahiri
		if i%2 == 1 {
			in = raman
		}
		go func() {
			c, err := e.Compute(in)
			if err != nil {
				t.Errorf("Compute: %v", err)
				results <- result{}
				return
			}
			results <- result{mode: in.Ayanamsa, sun: c.Position(Sun).Longitude}
		}()
	}

	seen := map[ephemeris.Ayanamsa]float64{}
	for range 20 {
		r := <-results
		if r.mode == ephemeris.AyanamsaUnset {
			continue
		}
		if prev, ok := seen[r.mode]; ok && prev != r.sun {
			t.Errorf("%s: Sun %v differs from earlier %v", r.mode, r.sun, prev)
		}
		seen[r.mode] = r.sun
	}
	if seen[ephemeris.Lahiri] == seen[ephemeris.Raman] {
		t.Error("different ayanamsas produced the same Sun longitude")
	}
}
