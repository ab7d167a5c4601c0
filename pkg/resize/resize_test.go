package resize

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/tablescroll/pkg/dom"
	"github.com/matzehuels/tablescroll/pkg/errors"
	"github.com/matzehuels/tablescroll/pkg/measure"
	"github.com/matzehuels/tablescroll/pkg/observability"
	"github.com/matzehuels/tablescroll/pkg/scroll"
)

const twoTables = `<table id="fruit" data-scroll="6">
<thead><tr><th>Name</th><th>Qty</th></tr></thead>
<tbody><tr><td>apple</td><td>3</td></tr><tr><td>pear</td><td>12</td></tr></tbody>
</table>
<table id="plain"><tbody><tr><td>not scrolled</td></tr></tbody></table>
<table id="veg" data-scroll="4">
<tbody><tr><td>leek</td></tr><tr><td>kale</td></tr></tbody>
</table>`

type recordingHooks struct {
	observability.NoopResizeHooks
	mu        sync.Mutex
	resizes   int
	coalesced []int
}

func (h *recordingHooks) OnResize(context.Context, int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.resizes++
}

func (h *recordingHooks) OnRelayout(_ context.Context, _, coalesced int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.coalesced = append(h.coalesced, coalesced)
}

func newCoordinator(t *testing.T, src string, opts ...Option) (*Coordinator, chan time.Time) {
	t.Helper()
	doc, err := dom.ParseString(src)
	if err != nil {
		t.Fatal(err)
	}
	fired := make(chan time.Time, 8)
	opts = append(opts, WithDispatch(func(fn func()) {
		fn()
		fired <- time.Now()
	}))
	c := New(scroll.New(measure.NewTerminal(80, 24, measure.TerminalOptions{})), opts...)
	c.Register(doc)
	t.Cleanup(c.Close)
	return c, fired
}

func TestRegister(t *testing.T) {
	doc, err := dom.ParseString(twoTables)
	if err != nil {
		t.Fatal(err)
	}
	c := New(scroll.New(measure.NewTerminal(80, 24, measure.TerminalOptions{})))

	if n := c.Register(doc); n != 2 {
		t.Errorf("Register() = %d, want 2 data-scroll tables", n)
	}
	if n := c.Register(doc); n != 0 {
		t.Errorf("second Register() = %d, want 0", n)
	}
	tables := c.Tables()
	if len(tables) != 2 || tableID(tables[0]) != "fruit" || tableID(tables[1]) != "veg" {
		t.Fatalf("Tables() = %d tables, want fruit and veg", len(tables))
	}
	if !c.Unregister(tables[0]) || c.Unregister(tables[0]) {
		t.Error("Unregister should succeed once")
	}
	if len(c.Tables()) != 1 {
		t.Errorf("Tables() after Unregister = %d, want 1", len(c.Tables()))
	}
}

func TestLoadLaysOutRegisteredTables(t *testing.T) {
	c, _ := newCoordinator(t, twoTables)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, table := range c.Tables() {
		if !dom.HasMarker(table.Parent, dom.MarkerInner) {
			t.Errorf("table %q was not laid out", tableID(table))
		}
	}
}

func TestLoadContinuesPastFailures(t *testing.T) {
	c, _ := newCoordinator(t, `<table id="bad" data-scroll="tall"><tbody><tr><td>a</td></tr></tbody></table>
<table id="good" data-scroll="3"><tbody><tr><td>b</td></tr></tbody></table>`)

	err := c.Load(context.Background())
	if !errors.Is(err, errors.ErrCodeInvalidHeight) {
		t.Fatalf("Load() error = %v, want %s", err, errors.ErrCodeInvalidHeight)
	}
	tables := c.Tables()
	if !dom.HasMarker(tables[1].Parent, dom.MarkerInner) {
		t.Error("a failing table should not stop the others")
	}
}

func TestResizeDebouncesBurst(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetResizeHooks(hooks)
	t.Cleanup(observability.Reset)

	c, fired := newCoordinator(t, twoTables)
	ctx := context.Background()

	var last time.Time
	for i := 0; i < 5; i++ {
		last = time.Now()
		c.Resize(ctx, 80-i, 24)
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case at := <-fired:
		if wait := at.Sub(last); wait < DefaultDelay {
			t.Errorf("relayout fired %v after the last event, want at least %v", wait, DefaultDelay)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("relayout never fired")
	}

	select {
	case <-fired:
		t.Fatal("burst triggered more than one relayout")
	case <-time.After(3 * DefaultDelay):
	}

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if hooks.resizes != 5 {
		t.Errorf("OnResize called %d times, want 5", hooks.resizes)
	}
	if len(hooks.coalesced) != 1 || hooks.coalesced[0] != 5 {
		t.Errorf("OnRelayout coalesced = %v, want [5]", hooks.coalesced)
	}
}

func TestResizeRelaysOutAtNewWidth(t *testing.T) {
	c, fired := newCoordinator(t, twoTables, WithDelay(20*time.Millisecond))
	if err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	fruit := c.Tables()[0]
	outer := fruit.Parent.Parent
	if got := dom.StyleValue(outer, "width"); got != "9px" {
		t.Fatalf("outer width at 80 columns = %q, want 9px", got)
	}

	c.Resize(context.Background(), 6, 24)
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("relayout never fired")
	}

	outer = fruit.Parent.Parent
	if got := dom.StyleValue(outer, "width"); got != "7px" {
		t.Errorf("outer width at 6 columns = %q, want 7px", got)
	}
}

func TestCloseCancelsPendingRelayout(t *testing.T) {
	c, fired := newCoordinator(t, twoTables, WithDelay(30*time.Millisecond))
	c.Resize(context.Background(), 40, 24)
	c.Close()

	select {
	case <-fired:
		t.Fatal("relayout fired after Close")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestScrollbarWidth(t *testing.T) {
	c, _ := newCoordinator(t, twoTables)
	if w := c.ScrollbarWidth(); w != 1 {
		t.Errorf("ScrollbarWidth() = %d, want 1", w)
	}
}

func TestDebouncer(t *testing.T) {
	d := NewDebouncer(0)
	if d.Delay() != DefaultDelay {
		t.Errorf("Delay() = %v, want %v", d.Delay(), DefaultDelay)
	}

	d = NewDebouncer(20 * time.Millisecond)
	got := make(chan int, 4)
	for i := 0; i < 3; i++ {
		d.Trigger(func(n int) { got <- n })
	}
	if !d.Pending() {
		t.Error("Pending() should be true after Trigger")
	}

	select {
	case n := <-got:
		if n != 3 {
			t.Errorf("coalesced = %d, want 3", n)
		}
	case <-time.After(time.Second):
		t.Fatal("debounced function never ran")
	}
	select {
	case n := <-got:
		t.Errorf("unexpected second run covering %d triggers", n)
	case <-time.After(60 * time.Millisecond):
	}
	if d.Pending() {
		t.Error("Pending() should be false after the run")
	}
}
