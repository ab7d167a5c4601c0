// Package resize keeps scrollable tables laid out while their host window
// changes size.
//
// A Coordinator holds a registry of tables carrying the data-scroll
// attribute. Load lays them all out once; Resize records the new viewport
// and, after a trailing-edge debounce, lays every registered table out again
// so a drag-resize costs one relayout instead of one per event.
//
// Hosts that own an event loop pass WithDispatch so the relayout runs on the
// loop's goroutine:
//
//	c := resize.New(engine, resize.WithDispatch(func(fn func()) {
//	    program.Send(relayoutMsg{fn})
//	}))
package resize

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/matzehuels/tablescroll/pkg/dom"
	"github.com/matzehuels/tablescroll/pkg/measure"
	"github.com/matzehuels/tablescroll/pkg/observability"
	"github.com/matzehuels/tablescroll/pkg/scroll"
)

// Coordinator lays out registered tables on load and after resizes.
type Coordinator struct {
	engine    *scroll.Engine
	viewport  measure.Viewporter
	debouncer *Debouncer
	dispatch  func(func())
	logger    *log.Logger
	opts      scroll.Options
	delay     time.Duration

	mu      sync.Mutex
	entries []entry
}

type entry struct {
	id    uuid.UUID
	table *html.Node
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithDelay sets the debounce quiet period.
func WithDelay(d time.Duration) Option {
	return func(c *Coordinator) { c.delay = d }
}

// WithDispatch hands each debounced relayout to fn instead of running it on
// the timer goroutine.
func WithDispatch(fn func(func())) Option {
	return func(c *Coordinator) {
		if fn != nil {
			c.dispatch = fn
		}
	}
}

// WithLogger sets the coordinator's logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithOptions sets the layout options used for every table. The zero Height
// lets each table's data-scroll attribute decide.
func WithOptions(o scroll.Options) Option {
	return func(c *Coordinator) { c.opts = o }
}

// New creates a coordinator around engine. When the engine's measurer
// implements measure.Viewporter, Resize updates its viewport.
func New(engine *scroll.Engine, opts ...Option) *Coordinator {
	c := &Coordinator{
		engine: engine,
		logger: log.Default(),
		delay:  DefaultDelay,
	}
	c.dispatch = func(fn func()) { fn() }
	for _, opt := range opts {
		opt(c)
	}
	c.debouncer = NewDebouncer(c.delay)
	if v, ok := engine.Measurer().(measure.Viewporter); ok {
		c.viewport = v
	}
	return c
}

// Register adds every data-scroll table under root that is not registered
// yet and returns how many were added.
func (c *Coordinator) Register(root *html.Node) int {
	return c.Add(dom.ScrollTables(root)...)
}

// Add registers tables regardless of their data-scroll attribute, skipping
// ones already registered, and returns how many were added. Tables without
// the attribute need WithOptions to supply a height.
func (c *Coordinator) Add(tables ...*html.Node) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	added := 0
	for _, t := range tables {
		if c.indexOf(t) >= 0 {
			continue
		}
		e := entry{id: uuid.New(), table: t}
		c.entries = append(c.entries, e)
		added++
		c.logger.Debug("registered table", "entry", e.id, "id", tableID(t))
	}
	return added
}

// Unregister removes table from the registry without touching its layout.
func (c *Coordinator) Unregister(table *html.Node) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(table)
	if i < 0 {
		return false
	}
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	return true
}

// Tables returns the registered tables in registration order.
func (c *Coordinator) Tables() []*html.Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*html.Node, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.table
	}
	return out
}

// Load lays out every registered table immediately. A table that fails is
// logged and skipped; the failures are returned joined.
func (c *Coordinator) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.layoutAll(ctx)
}

// Resize records a new viewport size and schedules a relayout once resize
// events stop arriving for the debounce delay.
func (c *Coordinator) Resize(ctx context.Context, width, height int) {
	observability.Resize().OnResize(ctx, width, height)
	if c.viewport != nil {
		c.viewport.SetViewport(width, height)
	}
	c.debouncer.Trigger(func(coalesced int) {
		c.dispatch(func() { c.relayout(ctx, coalesced) })
	})
}

// ScrollbarWidth returns the engine's scrollbar gutter width.
func (c *Coordinator) ScrollbarWidth() int { return c.engine.ScrollbarWidth() }

// Close cancels a pending relayout.
func (c *Coordinator) Close() { c.debouncer.Stop() }

func (c *Coordinator) relayout(ctx context.Context, coalesced int) {
	start := time.Now()
	c.mu.Lock()
	n := len(c.entries)
	err := c.layoutAll(ctx)
	c.mu.Unlock()

	elapsed := time.Since(start)
	observability.Resize().OnRelayout(ctx, n, coalesced, elapsed)
	c.logger.Debug("relayout", "tables", n, "events", coalesced, "elapsed", elapsed.Round(time.Microsecond), "failed", err != nil)
}

// layoutAll must be called with c.mu held.
func (c *Coordinator) layoutAll(ctx context.Context) error {
	var errs []error
	for _, e := range c.entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := c.engine.Layout(ctx, e.table, c.opts); err != nil {
			c.logger.Warn("table layout failed", "entry", e.id, "id", tableID(e.table), "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Coordinator) indexOf(table *html.Node) int {
	for i, e := range c.entries {
		if e.table == table {
			return i
		}
	}
	return -1
}

func tableID(n *html.Node) string {
	id, _ := dom.Attr(n, "id")
	return id
}
