package chart

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/papapumpkin/kundali/internal/ephemeris"
	"github.com/papapumpkin/kundali/internal/logging"
	"github.com/papapumpkin/kundali/internal/telemetry"
)

// Ephemeris is the capability the engine needs from an ephemeris backend.
// *ephemeris.Meeus implements it.
type Ephemeris interface {
	JulianDay(c ephemeris.CivilTime) ephemeris.JulianDay
	Position(jd ephemeris.JulianDay, body ephemeris.Body, mode ephemeris.Ayanamsa) (ephemeris.Position, error)
	Ascendant(jd ephemeris.JulianDay, lat, lon float64, sys ephemeris.HouseSystem, mode ephemeris.Ayanamsa) (float64, error)
}

// Engine casts base charts. It holds no per-computation state and is safe
// for concurrent use when its Ephemeris is.
type Engine struct {
	eph    Ephemeris
	system ephemeris.HouseSystem
	logger *slog.Logger
	events *telemetry.Emitter
	newID  func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithHouseSystem selects the house system used for the ascendant query.
// The default is Placidus.
func WithHouseSystem(sys ephemeris.HouseSystem) Option {
	return func(e *Engine) { e.system = sys }
}

// WithLogger sets the structured logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithEmitter records computation events to a telemetry stream.
func WithEmitter(em *telemetry.Emitter) Option {
	return func(e *Engine) { e.events = em }
}

// NewEngine returns an Engine backed by eph.
func NewEngine(eph Ephemeris, opts ...Option) *Engine {
	e := &Engine{
		eph:    eph,
		system: ephemeris.Placidus,
		logger: logging.Discard(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compute casts the base chart for in. Invalid input is rejected with an
// error matching ErrInvalidInput before the ephemeris is consulted. Per-body
// ephemeris failures do not fail the call: the body's Position is marked
// unavailable and the cause is recorded in Chart.Failures.
func (e *Engine) Compute(in BirthInput) (*Chart, error) {
	id := e.newID()
	if err := in.Validate(); err != nil {
		e.logger.Warn("chart.input_rejected", "chart", id, "err", err)
		e.emit(telemetry.Event{Kind: telemetry.KindInputRejected, ChartID: id, Data: err.Error()})
		return nil, err
	}

	jd := e.eph.JulianDay(in.CivilTime())
	e.logger.Debug("chart.start", "chart", id, "jd", float64(jd), "ayanamsa", in.Ayanamsa.String())
	e.emit(telemetry.Event{Kind: telemetry.KindChartStart, ChartID: id, Data: map[string]any{"jd": float64(jd), "ayanamsa": in.Ayanamsa.String()}})

	c := &Chart{
		ID:        id,
		Input:     in,
		JulianDay: jd,
		Positions: make(map[Body]Position, len(Keys())),
	}

	for _, q := range queried {
		pos, err := e.eph.Position(jd, q.eph, in.Ayanamsa)
		if err != nil {
			e.fail(c, q.body, StepPosition, err)
			continue
		}
		c.Positions[q.body] = NewPosition(pos.Longitude, pos.Retrograde())
	}

	if rahu := c.Positions[Rahu]; rahu.Available {
		c.Positions[Ketu] = NewPosition(rahu.Longitude+180, rahu.Retrograde)
	} else {
		e.fail(c, Ketu, StepKetu, fmt.Errorf("%w: derived from unavailable Rahu", ephemeris.ErrUnavailable))
	}

	asc, err := e.eph.Ascendant(jd, in.Latitude, in.Longitude, e.system, in.Ayanamsa)
	if err != nil {
		e.fail(c, Ascendant, StepAscendant, err)
	} else {
		c.Positions[Ascendant] = NewPosition(asc, false)
	}

	e.logger.Debug("chart.done", "chart", id, "failures", len(c.Failures))
	e.emit(telemetry.Event{Kind: telemetry.KindChartDone, ChartID: id, Data: map[string]any{"failures": len(c.Failures)}})
	return c, nil
}

func (e *Engine) fail(c *Chart, b Body, step string, err error) {
	if !errors.Is(err, ephemeris.ErrUnavailable) {
		err = fmt.Errorf("%w: %w", ephemeris.ErrUnavailable, err)
	}
	c.Positions[b] = Position{}
	c.Failures = append(c.Failures, &BodyError{Body: b, Step: step, Err: err})

	e.logger.Warn("chart.body_unavailable", "chart", c.ID, "body", b.String(), "step", step, "err", err)
	e.emit(telemetry.Event{Kind: telemetry.KindBodyUnavailable, ChartID: c.ID, Body: b.String(), Data: map[string]string{"step": step, "error": err.Error()}})
}

func (e *Engine) emit(evt telemetry.Event) {
	if err := e.events.Emit(evt); err != nil {
		e.logger.Warn("telemetry.emit_failed", "err", err)
	}
}
