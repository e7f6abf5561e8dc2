package playback

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/godruoyi/go-snowflake"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libeasygo/routineman"
	"github.com/sgostarter/libspline/curve"
)

// Player publishes curves built from posted configs. Writers only post
// configs; readers only see whole, immutable snapshots.
type Player struct {
	logger   l.Wrapper
	cfg      Config
	observer Observer

	routineMan routineman.RoutineMan
	chConfig   chan *curve.Config

	snapshot atomic.Pointer[Snapshot]
}

func NewPlayer(ctx context.Context, cfg Config, observer Observer, logger l.Wrapper) *Player {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "Player"))

	if cfg.MailboxSize <= 0 {
		cfg.MailboxSize = 10
	}

	if ctx == nil {
		ctx = context.Background()
	}

	p := &Player{
		logger:     logger,
		cfg:        cfg,
		observer:   observer,
		routineMan: routineman.NewRoutineMan(ctx, logger),
		chConfig:   make(chan *curve.Config, cfg.MailboxSize),
	}

	p.routineMan.StartRoutine(p.loadRoutine, "loadRoutine")

	return p
}

func (p *Player) TriggerStop() {
	p.routineMan.TriggerStop()
}

func (p *Player) Wait() {
	p.routineMan.Wait()
}

// Post queues cfg for loading. It never blocks and returns false when the
// mailbox is full.
func (p *Player) Post(cfg *curve.Config) bool {
	select {
	case p.chConfig <- cfg.Clone():
		return true
	default:
		p.logger.Warn("mailbox full, curve config dropped")

		return false
	}
}

// Snapshot returns the current curve, nil before the first successful load.
func (p *Player) Snapshot() *Snapshot {
	return p.snapshot.Load()
}

// Sample evaluates the current curve at t after applying the play mode.
func (p *Player) Sample(t float64) ([]float64, bool) {
	s := p.snapshot.Load()
	if s == nil {
		return nil, false
	}

	return s.Curve.Eval(p.curveTime(t, s.Curve.MaxTime())), true
}

func (p *Player) SampleTangent(t float64) ([]float64, bool) {
	s := p.snapshot.Load()
	if s == nil {
		return nil, false
	}

	return s.Curve.EvalTangent(p.curveTime(t, s.Curve.MaxTime())), true
}

func (p *Player) Progress(t float64) (float64, bool) {
	s := p.snapshot.Load()
	if s == nil {
		return 0, false
	}

	if p.cfg.Mode == ModeClamp {
		maxTime := s.Curve.MaxTime()

		return ClampTime(t, maxTime) / maxTime, true
	}

	return Progress(t, s.Curve.MaxTime()), true
}

func (p *Player) curveTime(t, maxTime float64) float64 {
	if p.cfg.Mode == ModeClamp {
		return ClampTime(t, maxTime)
	}

	return WrapTime(t, maxTime)
}

func (p *Player) loadRoutine(ctx context.Context, _ func() bool) {
	logger := p.logger.WithFields(l.StringField(l.RoutineKey, "loadRoutine"))

	logger.Debug("enter")

	defer logger.Debug("leave")

	loop := true

	for loop {
		select {
		case <-ctx.Done():
			loop = false

			continue
		case cfg := <-p.chConfig:
			p.load(cfg, logger)
		}
	}
}

func (p *Player) load(cfg *curve.Config, logger l.Wrapper) {
	c := curve.NewCurve(p.logger)

	if err := c.Load(cfg); err != nil {
		logger.WithFields(l.ErrorField(err)).Error("curve config rejected, keep current snapshot")

		if p.observer != nil {
			p.observer.OnLoadFailed(cfg, err)
		}

		return
	}

	s := &Snapshot{
		ID:    snowflake.ID(),
		Curve: c,
		At:    time.Now(),
	}

	p.snapshot.Store(s)

	logger.WithFields(l.UInt64Field("id", s.ID), l.IntField("anchors", c.NumAnchors())).Info("curve snapshot published")

	if p.observer != nil {
		p.observer.OnSnapshot(s)
	}
}
