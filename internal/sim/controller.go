// Package sim drives a Game of Life grid over time and applies user edits
// between runs.
package sim

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"conway/internal/core"
	"conway/internal/life"
	"conway/internal/logging"
)

// State is the run state of a Controller.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Options configures a Controller. Zero values fall back to defaults.
type Options struct {
	Size         int
	TickInterval time.Duration
	// SeedProbability is the chance a cell is alive after Randomize. nil
	// means DefaultSeedProbability; point at 0 for an always-empty seed.
	SeedProbability *float64
	Scheduler       core.Scheduler
	RNG             *core.RNG
	Logger          *slog.Logger
}

const (
	DefaultSize            = 25
	DefaultTickInterval    = 150 * time.Millisecond
	DefaultSeedProbability = 0.3
)

// Controller owns the current grid, the generation counter and the run
// state. All methods are safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	cur, nxt   *core.Grid
	generation int
	state      State
	epoch      uint64
	timer      core.Timer
	seq        uint64

	interval    time.Duration
	probability float64
	sched       core.Scheduler
	rng         *core.RNG
	logger      *slog.Logger

	listenMu  sync.Mutex
	listeners map[int]Listener
	nextID    int

	// emitMu serializes delivery; delivered is the Seq of the newest event
	// handed to listeners.
	emitMu    sync.Mutex
	delivered uint64
}

// NewController returns an Idle controller holding an empty grid.
func NewController(opts Options) (*Controller, error) {
	if opts.Size == 0 {
		opts.Size = DefaultSize
	}
	cur, err := core.NewGrid(opts.Size)
	if err != nil {
		return nil, fmt.Errorf("new controller: %w", err)
	}
	nxt, _ := core.NewGrid(opts.Size)
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.Scheduler == nil {
		opts.Scheduler = core.WallScheduler{}
	}
	if opts.RNG == nil {
		opts.RNG = core.NewRNG(time.Now().UnixNano())
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	probability := DefaultSeedProbability
	if opts.SeedProbability != nil {
		probability = *opts.SeedProbability
	}
	return &Controller{
		cur:         cur,
		nxt:         nxt,
		interval:    opts.TickInterval,
		probability: probability,
		sched:       opts.Scheduler,
		rng:         opts.RNG,
		logger:      opts.Logger,
		listeners:   make(map[int]Listener),
	}, nil
}

// Start switches to Running, performs one tick immediately and keeps ticking
// on the configured interval until paused or the grid dies out. It is a
// no-op while already Running.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.state == Running {
		c.mu.Unlock()
		return
	}
	c.state = Running
	c.epoch++
	c.logger.Info("Simulation started.", "generation", c.generation, "population", c.cur.Population())
	events := []Event{c.eventLocked(EventStart)}
	events = append(events, c.tickLocked(c.epoch)...)
	c.mu.Unlock()
	c.emit(events...)
}

// Pause switches to Idle and cancels the pending tick. Always permitted.
func (c *Controller) Pause() {
	c.mu.Lock()
	if c.state != Running {
		c.mu.Unlock()
		return
	}
	c.stopLocked()
	c.logger.Info("Simulation paused.", "generation", c.generation)
	ev := c.eventLocked(EventPause)
	c.mu.Unlock()
	c.emit(ev)
}

// Clear stops the simulation, kills every cell and resets the generation
// counter. Always permitted.
func (c *Controller) Clear() {
	c.mu.Lock()
	c.stopLocked()
	c.cur.Clear()
	c.generation = 0
	c.logger.Info("Grid cleared.")
	ev := c.eventLocked(EventClear)
	c.mu.Unlock()
	c.emit(ev)
}

// Randomize replaces the grid with a freshly seeded one and resets the
// generation counter. It is ignored while Running and reports whether it was
// applied.
func (c *Controller) Randomize() bool {
	c.mu.Lock()
	if c.state == Running {
		c.mu.Unlock()
		c.logger.Debug("Ignoring randomize while running.", "err", core.ErrInvalidCommand)
		return false
	}
	fresh, err := core.NewRandomGrid(c.cur.Size(), c.probability, c.rng)
	if err != nil {
		// The size was validated in NewController.
		panic(err)
	}
	c.cur = fresh
	c.generation = 0
	c.logger.Info("Grid randomized.", "population", c.cur.Population(), "probability", c.probability)
	ev := c.eventLocked(EventRandomize)
	c.mu.Unlock()
	c.emit(ev)
	return true
}

// Toggle flips the cell at (row, col). It is ignored while Running and
// reports whether the grid changed. Out-of-range coordinates return
// core.ErrIndexOutOfBounds.
func (c *Controller) Toggle(row, col int) (bool, error) {
	c.mu.Lock()
	if c.state == Running {
		c.mu.Unlock()
		c.logger.Debug("Ignoring toggle while running.", "row", row, "col", col, "err", core.ErrInvalidCommand)
		return false, nil
	}
	alive, err := c.cur.Toggle(row, col)
	if err != nil {
		c.mu.Unlock()
		return false, fmt.Errorf("toggle: %w", err)
	}
	c.logger.Debug("Cell toggled.", "row", row, "col", col, "alive", alive)
	ev := c.eventLocked(EventToggle)
	c.mu.Unlock()
	c.emit(ev)
	return true, nil
}

// StepOnce advances exactly one generation while Idle without starting the
// timer. It reports whether a step was taken.
func (c *Controller) StepOnce() bool {
	c.mu.Lock()
	if c.state == Running {
		c.mu.Unlock()
		c.logger.Debug("Ignoring single step while running.", "err", core.ErrInvalidCommand)
		return false
	}
	c.advanceLocked()
	c.logger.Debug("Single step.", "generation", c.generation)
	ev := c.eventLocked(EventStep)
	c.mu.Unlock()
	c.emit(ev)
	return true
}

// Snapshot returns the whole observable state in one consistent read.
func (c *Controller) Snapshot() Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eventLocked(EventSnapshot)
}

// CurrentGrid returns a copy of the current grid.
func (c *Controller) CurrentGrid() *core.Grid {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur.Clone()
}

// Generation returns the number of completed steps since the last reset.
func (c *Controller) Generation() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// IsRunning reports whether a tick cycle is active.
func (c *Controller) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == Running
}

// State returns the current run state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Population returns the number of live cells.
func (c *Controller) Population() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur.Population()
}

// Size returns the grid side length.
func (c *Controller) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur.Size()
}

// Subscribe registers l for every subsequent state change. The returned
// function removes it.
func (c *Controller) Subscribe(l Listener) (cancel func()) {
	c.listenMu.Lock()
	defer c.listenMu.Unlock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = l
	return func() {
		c.listenMu.Lock()
		defer c.listenMu.Unlock()
		delete(c.listeners, id)
	}
}

func (c *Controller) onTimer(epoch uint64) {
	c.mu.Lock()
	events := c.tickLocked(epoch)
	c.mu.Unlock()
	c.emit(events...)
}

// tickLocked performs one generation for the run identified by epoch and
// schedules the next one. Stale timers from an earlier run are dropped.
func (c *Controller) tickLocked(epoch uint64) []Event {
	if c.state != Running || epoch != c.epoch {
		return nil
	}
	c.timer = nil
	c.advanceLocked()
	if c.cur.IsEmpty() {
		c.state = Idle
		c.logger.Info("Population extinct, simulation stopped.", "generation", c.generation)
		return []Event{c.eventLocked(EventAutoStop)}
	}
	c.logger.Debug("Tick.", "generation", c.generation, "population", c.cur.Population())
	ev := c.eventLocked(EventTick)
	c.timer = c.sched.AfterFunc(c.interval, func() { c.onTimer(epoch) })
	return []Event{ev}
}

// advanceLocked steps cur into nxt and swaps the buffers.
func (c *Controller) advanceLocked() {
	// Both buffers are allocated with the same size in NewController.
	_ = life.StepInto(c.nxt, c.cur)
	c.cur, c.nxt = c.nxt, c.cur
	c.generation++
}

func (c *Controller) stopLocked() {
	c.state = Idle
	c.epoch++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) eventLocked(kind EventKind) Event {
	if kind != EventSnapshot {
		c.seq++
	}
	return Event{
		Seq:        c.seq,
		Kind:       kind,
		Generation: c.generation,
		Running:    c.state == Running,
		Population: c.cur.Population(),
		Grid:       c.cur.Clone(),
	}
}

// emit delivers events in Seq order. Events older than one already
// delivered are dropped, so the last event a listener sees always matches
// the controller state. Listeners may read from the controller but must not
// issue commands synchronously.
func (c *Controller) emit(events ...Event) {
	if len(events) == 0 {
		return
	}
	c.emitMu.Lock()
	defer c.emitMu.Unlock()
	fresh := events[:0:0]
	for _, ev := range events {
		if ev.Seq > c.delivered {
			fresh = append(fresh, ev)
			c.delivered = ev.Seq
		}
	}
	if len(fresh) == 0 {
		return
	}
	c.listenMu.Lock()
	ls := make([]Listener, 0, len(c.listeners))
	ids := make([]int, 0, len(c.listeners))
	for id := range c.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		ls = append(ls, c.listeners[id])
	}
	c.listenMu.Unlock()
	for _, ev := range fresh {
		for _, l := range ls {
			l(ev)
		}
	}
}
