package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/papapumpkin/kundali/internal/chart"
	"github.com/papapumpkin/kundali/internal/ephemeris"
)

// writeProfiles creates n valid TOML profiles and returns their paths.
func writeProfiles(t *testing.T, dir string, n int) []string {
	t.Helper()
	var paths []string
	for i := range n {
		path := filepath.Join(dir, fmt.Sprintf("p%02d.toml", i))
		body := fmt.Sprintf("name = \"person %d\"\nyear = %d\nmonth = 8\nday = 25\nhour = 14\nminute = 30\nlatitude = 28.61\nlongitude = 77.2\ntimezone = 5.5\n", i, 1960+i)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, path)
	}
	return paths
}

func newRunner(workers int) *Runner {
	return &Runner{
		Engine:   chart.NewEngine(ephemeris.NewMeeus("")),
		Ayanamsa: ephemeris.Lahiri,
		Workers:  workers,
	}
}

func TestRun_ComputesInOrder(t *testing.T) {
	t.Parallel()

	paths := writeProfiles(t, t.TempDir(), 12)
	items, err := newRunner(4).Run(context.Background(), paths)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(items) != len(paths) {
		t.Fatalf("got %d items, want %d", len(items), len(paths))
	}
	for i, it := range items {
		if it.Path != paths[i] {
			t.Errorf("item %d path %q, want %q", i, it.Path, paths[i])
		}
		if it.Err != nil {
			t.Errorf("item %d: %v", i, it.Err)
			continue
		}
		if it.Name != fmt.Sprintf("person %d", i) {
			t.Errorf("item %d name %q", i, it.Name)
		}
		if it.Chart == nil || it.Chart.Input.Year != 1960+i {
			t.Errorf("item %d chart does not match its profile", i)
		}
		if len(it.Chart.Positions) != len(chart.Keys()) {
			t.Errorf("item %d has %d positions", i, len(it.Chart.Positions))
		}
	}
}

func TestRun_PerItemErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths := writeProfiles(t, dir, 2)

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("year: 2000\nmonth: 14\nday: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	broken := filepath.Join(dir, "broken.toml")
	if err := os.WriteFile(broken, []byte("year = \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	paths = append(paths, bad, broken, filepath.Join(dir, "missing.toml"))

	items, err := newRunner(2).Run(context.Background(), paths)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if items[0].Err != nil || items[1].Err != nil {
		t.Fatalf("valid profiles failed: %v, %v", items[0].Err, items[1].Err)
	}
	if !errors.Is(items[2].Err, chart.ErrInvalidInput) {
		t.Errorf("bad profile error = %v", items[2].Err)
	}
	if items[3].Err == nil || items[3].Chart != nil {
		t.Errorf("broken profile item = %+v", items[3])
	}
	if !errors.Is(items[4].Err, os.ErrNotExist) {
		t.Errorf("missing profile error = %v", items[4].Err)
	}
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items, err := newRunner(1).Run(ctx, writeProfiles(t, t.TempDir(), 3))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	for i, it := range items {
		if it.Chart != nil {
			t.Errorf("item %d computed after cancellation", i)
		}
	}
}

func TestRun_CompletedRunIsNotInterrupted(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	items, err := newRunner(1).Run(ctx, writeProfiles(t, t.TempDir(), 1))
	if err != nil {
		t.Fatalf("Run on a live context returned %v, want nil", err)
	}
	if items[0].Err != nil || items[0].Chart == nil {
		t.Fatalf("item = %+v, want a computed chart", items[0])
	}
	if ctx.Err() != nil {
		t.Fatalf("caller context was cancelled: %v", ctx.Err())
	}
}
