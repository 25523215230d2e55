// Package pacer implements a fixed-timestep accumulator loop. It converts a
// variable wall-clock sampling interval into fixed-size simulation ticks,
// carrying the fractional remainder across iterations so the long-run tick
// rate converges to the target even under jitter. The loop busy-spins: a
// coarse platform timer cannot reliably hit 60 Hz, so CPU is traded for
// timing precision.
package pacer

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"
)

// ProgressMax is the fixed scale reported to the progress sink.
const ProgressMax = 1000

// DefaultWarmupTicks suppresses update/repaint for the first tick so the
// host surface can finish its initial layout pass.
const DefaultWarmupTicks = 1

type Config struct {
	// TargetFPS is the number of simulation ticks per second.
	TargetFPS int

	// WarmupTicks is the number of initial ticks consumed without invoking
	// the callbacks. Zero means DefaultWarmupTicks; negative disables
	// warm-up entirely.
	WarmupTicks int

	// Yield inserts a runtime.Gosched per iteration to reduce CPU burn at
	// a small cost in timing precision. Off by default; the zero-sleep
	// busy spin is the reference behavior.
	Yield bool

	// Clock returns the current time; defaults to time.Now. Injected so
	// pacing is testable against a synthetic clock.
	Clock func() time.Time

	// Status receives a human-readable pacing summary roughly once per
	// TargetFPS ticks. Called from the pacer goroutine; may be nil.
	Status func(text string)

	// Progress receives the average per-frame cost in milliseconds,
	// clamped to ProgressMax, once per reporting interval. Called from
	// the pacer goroutine; may be nil.
	Progress func(value, max int)
}

// Pacer drives onUpdate/onRepaint at a fixed tick rate from its own
// goroutine. Callbacks run as plain calls: a returned error terminates Run,
// there is no retry and no recovery.
type Pacer struct {
	cfg          Config
	tickInterval time.Duration
	onUpdate     func() error
	onRepaint    func() error

	running atomic.Bool
}

func New(cfg Config, onUpdate, onRepaint func() error) (*Pacer, error) {
	if cfg.TargetFPS <= 0 {
		return nil, fmt.Errorf("target fps must be positive, got %d", cfg.TargetFPS)
	}
	if onUpdate == nil || onRepaint == nil {
		return nil, fmt.Errorf("update and repaint callbacks are required")
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.WarmupTicks == 0 {
		cfg.WarmupTicks = DefaultWarmupTicks
	} else if cfg.WarmupTicks < 0 {
		cfg.WarmupTicks = 0
	}
	return &Pacer{
		cfg:          cfg,
		tickInterval: time.Second / time.Duration(cfg.TargetFPS),
		onUpdate:     onUpdate,
		onRepaint:    onRepaint,
	}, nil
}

// Stop requests cooperative termination. The loop observes it at the top of
// the next iteration, so latency is bounded by one spin. Safe from any
// goroutine.
func (p *Pacer) Stop() { p.running.Store(false) }

// Run executes the accumulator loop until Stop is called, ctx is cancelled,
// or a callback fails. It blocks the calling goroutine; start it on a
// dedicated one.
//
// Each iteration samples the monotonic clock, adds the elapsed time in tick
// units to the accumulator, and consumes at most one whole tick: invoke
// onUpdate then onRepaint (unless still warming up), then decrement the
// accumulator by exactly 1 rather than resetting it, preserving the sub-tick
// remainder. A large stall is drained one tick per iteration by the
// following zero-elapsed spins.
func (p *Pacer) Run(ctx context.Context) error {
	if !p.running.CompareAndSwap(false, true) {
		return fmt.Errorf("pacer already running")
	}
	defer p.running.Store(false)

	var (
		accumulator float64
		warmup      = p.cfg.WarmupTicks
		drawCount   int
		rollingMs   float64
		warmedThis  = false // a warm-up tick occurred in the current interval
		last        = p.cfg.Clock()
	)

	for p.running.Load() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		now := p.cfg.Clock()
		accumulator += float64(now.Sub(last)) / float64(p.tickInterval)
		last = now

		if accumulator >= 1 {
			if warmup > 0 {
				warmup--
				warmedThis = true
			} else {
				if err := p.onUpdate(); err != nil {
					return fmt.Errorf("update tick: %w", err)
				}
				if err := p.onRepaint(); err != nil {
					return fmt.Errorf("repaint: %w", err)
				}
				rollingMs += float64(p.cfg.Clock().Sub(now)) / float64(time.Millisecond)
			}
			accumulator--
			drawCount++
		}

		if drawCount >= p.cfg.TargetFPS {
			avg := rollingMs / float64(p.cfg.TargetFPS)
			if warmedThis {
				p.reportStatus("warming up")
			} else {
				p.reportStatus(fmt.Sprintf("%.2f ms/frame avg (target %d fps)", avg, p.cfg.TargetFPS))
			}
			p.reportProgress(clampMs(avg))
			drawCount = 0
			rollingMs = 0
			warmedThis = false
		}

		if p.cfg.Yield {
			runtime.Gosched()
		}
	}
	return nil
}

func (p *Pacer) reportStatus(text string) {
	if p.cfg.Status != nil {
		p.cfg.Status(text)
	}
}

func (p *Pacer) reportProgress(value int) {
	if p.cfg.Progress != nil {
		p.cfg.Progress(value, ProgressMax)
	}
}

func clampMs(avg float64) int {
	if avg < 0 {
		return 0
	}
	if avg > ProgressMax {
		return ProgressMax
	}
	return int(avg)
}
