// Package tui owns the terminal surface. All visual state lives in the
// Bubble Tea model and is mutated only on the program's goroutine; the pacer
// goroutine hands frames over through a blocking send so no two repaints
// overlap and no scene update runs while a frame is being drawn.
package tui

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/bouncelab/internal/config"
	"github.com/san-kum/bouncelab/internal/pacer"
	"github.com/san-kum/bouncelab/internal/scene"
	"github.com/san-kum/bouncelab/internal/viz"
)

const (
	// Rows reserved for the title, status and key-hint lines.
	chromeRows = 3

	// Resize events are coalesced; only the last size within this window
	// is applied to the scene bounds.
	resizeDebounce = 150 * time.Millisecond

	// Nominal surface used for spawning before the first WindowSizeMsg
	// arrives. The warm-up tick gives the real size time to land.
	nominalCols = 80
	nominalRows = 24

	progressWidth = 20
)

type repaintMsg struct {
	entities []scene.Entity
	done     chan struct{}
}

type statusMsg string

type progressMsg struct {
	value, max int
}

type applyResizeMsg struct {
	seq int
}

type pacerDoneMsg struct {
	err error
}

type model struct {
	cfg    *config.Config
	scn    *scene.Scene
	paused *atomic.Bool

	stop      func() // pacer stop
	closeQuit func() // unblocks a pacer waiting on repaint ack

	canvas   *viz.Canvas
	shapes   []viz.Shape
	rendered string
	status   string
	progVal  int
	progMax  int

	pendingW, pendingH int
	resizeSeq          int
	sized              bool

	quitting bool
	err      error
}

func newModel(cfg *config.Config, scn *scene.Scene, paused *atomic.Bool, stop, closeQuit func()) model {
	shapes := make([]viz.Shape, scn.Len())
	base := viz.ParseShape(cfg.Shape)
	for i := range shapes {
		shapes[i] = base
	}
	return model{
		cfg:       cfg,
		scn:       scn,
		paused:    paused,
		stop:      stop,
		closeQuit: closeQuit,
		shapes:    shapes,
		status:    "warming up",
		progMax:   pacer.ProgressMax,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.pendingW, m.pendingH = msg.Width, msg.Height
		m.resizeSeq++
		seq := m.resizeSeq
		return m, tea.Tick(resizeDebounce, func(time.Time) tea.Msg {
			return applyResizeMsg{seq: seq}
		})

	case applyResizeMsg:
		if msg.seq != m.resizeSeq {
			return m, nil // superseded by a newer resize
		}
		m.applyResize()
		return m, nil

	case repaintMsg:
		m.renderFrame(msg.entities)
		close(msg.done)
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case progressMsg:
		m.progVal, m.progMax = msg.value, msg.max
		return m, nil

	case pacerDoneMsg:
		if m.quitting {
			return m, nil
		}
		m.err = msg.err
		return m.quit()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m.quit()
	case " ":
		m.paused.Store(!m.paused.Load())
	case "tab", "s":
		for i := range m.shapes {
			m.shapes[i] = m.shapes[i].Next()
		}
	}
	return m, nil
}

func (m model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.closeQuit()
	m.stop()
	return m, tea.Quit
}

func (m *model) applyResize() {
	cols, rows := m.pendingW, m.pendingH-chromeRows
	if m.canvas == nil {
		m.canvas = viz.NewCanvas(cols, rows)
	} else {
		m.canvas.Resize(cols, rows)
	}

	// Scene bounds so that [margin, max+margin] stays on the canvas.
	w := float64(m.canvas.DotWidth()) - 2*m.cfg.MarginX
	h := float64(m.canvas.DotHeight()) - 2*m.cfg.MarginY
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	m.scn.SetBounds(w, h)
	m.sized = true
}

// renderFrame draws the snapshot into the canvas and caches the string the
// next View call returns. Running it here, before the done channel closes,
// is what makes the pacer's repaint call synchronous.
func (m *model) renderFrame(entities []scene.Entity) {
	if !m.sized {
		return
	}
	m.canvas.Clear()
	for i, e := range entities {
		shape := viz.ShapeBox
		if len(m.shapes) > 0 {
			shape = m.shapes[i%len(m.shapes)]
		}
		m.canvas.DrawShape(shape,
			int(e.Pos.X), int(e.Pos.Y),
			int(e.Size.X), int(e.Size.Y))
	}
	m.rendered = m.canvas.String()
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	if !m.sized {
		return viz.Subtle.Render("measuring terminal...")
	}

	state := viz.StatusRunning.Render("running")
	if m.paused.Load() {
		state = viz.StatusPaused.Render("paused")
	}

	var b strings.Builder
	b.WriteString(viz.TitleStyle.Render("bouncelab"))
	b.WriteString(viz.Subtle.Render(fmt.Sprintf("  %d entities · %d fps target", m.scn.Len(), m.cfg.FPS)))
	b.WriteByte('\n')
	b.WriteString(m.rendered)
	b.WriteString(state)
	b.WriteString("  ")
	b.WriteString(viz.ProgressBar(m.progVal, m.progMax, progressWidth))
	b.WriteString("  ")
	b.WriteString(m.status)
	b.WriteByte('\n')
	b.WriteString(viz.KeyHint.Render("space pause · tab shape · q quit"))
	return b.String()
}

// Run spawns the scene, starts the pacer on its own goroutine and blocks in
// the Bubble Tea event loop until the user quits or the pacer fails.
func Run(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	bounds := scene.NewBounds(
		float64(nominalCols*2)-2*cfg.MarginX,
		float64((nominalRows-chromeRows)*4)-2*cfg.MarginY,
		cfg.MarginX, cfg.MarginY)
	scn := scene.New(bounds)
	scn.Spawn(scene.SpawnConfig{
		Count:    cfg.Entities,
		MinSpeed: cfg.MinSpeed,
		MaxSpeed: cfg.MaxSpeed,
		MinSize:  cfg.MinSize,
		MaxSize:  cfg.MaxSize,
	}, rand.New(rand.NewSource(cfg.Seed)))

	var (
		paused    atomic.Bool
		quitc     = make(chan struct{})
		closeQuit = sync.OnceFunc(func() { close(quitc) })
		prog      *tea.Program
	)

	onUpdate := func() error {
		if !paused.Load() {
			scn.Update()
		}
		return nil
	}
	onRepaint := func() error {
		done := make(chan struct{})
		prog.Send(repaintMsg{entities: scn.Snapshot(nil), done: done})
		select {
		case <-done:
		case <-quitc: // UI is gone; nothing left to paint
		}
		return nil
	}

	p, err := pacer.New(pacer.Config{
		TargetFPS: cfg.FPS,
		Yield:     cfg.Yield,
		Status: func(text string) {
			prog.Send(statusMsg(text))
		},
		Progress: func(value, max int) {
			prog.Send(progressMsg{value: value, max: max})
		},
	}, onUpdate, onRepaint)
	if err != nil {
		return err
	}

	prog = tea.NewProgram(
		newModel(cfg, scn, &paused, p.Stop, closeQuit),
		tea.WithAltScreen(),
	)

	pacerErr := make(chan error, 1)
	go func() {
		err := p.Run(context.Background())
		pacerErr <- err
		prog.Send(pacerDoneMsg{err: err})
	}()

	final, uiErr := prog.Run()
	closeQuit()
	p.Stop()

	if err := <-pacerErr; err != nil {
		return fmt.Errorf("pacer loop: %w", err)
	}
	if uiErr != nil {
		return uiErr
	}
	if m, ok := final.(model); ok && m.err != nil {
		return m.err
	}
	return nil
}
