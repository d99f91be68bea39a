package gesture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javiermolinar/homegrid/internal/grid"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func ms(n int) time.Time {
	return t0.Add(time.Duration(n) * time.Millisecond)
}

func newTestDetector() *Detector {
	return NewDetector(Thresholds{
		LongPress:     500 * time.Millisecond,
		TouchSlop:     8,
		DragThreshold: 20,
	})
}

func feedAll(d *Detector, events ...Event) []Gesture {
	var out []Gesture
	for _, ev := range events {
		out = append(out, d.Feed(ev)...)
	}
	return out
}

func TestDetector_Tap(t *testing.T) {
	d := newTestDetector()
	got := feedAll(d,
		Down(1, 100, 100, ms(0)),
		Move(1, 103, 102, ms(50)),
		Up(1, 103, 102, ms(120)),
	)
	assert.Equal(t, []Gesture{Tap{Pos: grid.Point{X: 100, Y: 100}}}, got)
	assert.Equal(t, PhaseIdle, d.Phase())
}

func TestDetector_PanIsNotATap(t *testing.T) {
	d := newTestDetector()
	got := feedAll(d,
		Down(1, 100, 100, ms(0)),
		Move(1, 130, 100, ms(40)),
	)
	assert.Empty(t, got)
	assert.Equal(t, PhasePanning, d.Phase())

	// Holding still afterwards does not become a long press.
	assert.Empty(t, d.Tick(ms(900)))
	assert.Empty(t, d.Feed(Up(1, 130, 100, ms(1000))))
	assert.Equal(t, PhaseIdle, d.Phase())
}

func TestDetector_LongPressThenReleaseOpensMenu(t *testing.T) {
	d := newTestDetector()
	require.Empty(t, d.Feed(Down(1, 10, 10, ms(0))))

	assert.Empty(t, d.Tick(ms(499)))
	assert.Equal(t, []Gesture{LongPress{Pos: grid.Point{X: 10, Y: 10}}}, d.Tick(ms(500)))
	assert.Empty(t, d.Tick(ms(600)), "long press fires once")

	got := d.Feed(Up(1, 12, 10, ms(700)))
	assert.Equal(t, []Gesture{Menu{Pos: grid.Point{X: 10, Y: 10}}}, got)
}

func TestDetector_LongPressWithoutTickIsDetectedOnRelease(t *testing.T) {
	d := newTestDetector()
	got := feedAll(d,
		Down(1, 10, 10, ms(0)),
		Up(1, 10, 10, ms(800)),
	)
	assert.Equal(t, []Gesture{
		LongPress{Pos: grid.Point{X: 10, Y: 10}},
		Menu{Pos: grid.Point{X: 10, Y: 10}},
	}, got)
}

func TestDetector_Drag(t *testing.T) {
	d := newTestDetector()
	require.Empty(t, d.Feed(Down(1, 40, 50, ms(0))))
	require.Len(t, d.Tick(ms(500)), 1)

	// Below the drag threshold nothing happens yet.
	assert.Empty(t, d.Feed(Move(1, 50, 55, ms(520))))
	assert.Equal(t, PhaseLongPressed, d.Phase())

	got := d.Feed(Move(1, 70, 50, ms(540)))
	assert.Equal(t, []Gesture{DragStart{
		Origin: grid.Point{X: 40, Y: 50},
		Offset: grid.Point{X: 30, Y: 0},
	}}, got)

	got = d.Feed(Move(1, 120, 150, ms(560)))
	assert.Equal(t, []Gesture{DragMove{Delta: grid.Point{X: 50, Y: 100}}}, got)

	got = d.Feed(Up(1, 120, 150, ms(600)))
	assert.Equal(t, []Gesture{DragEnd{}}, got)
	assert.Equal(t, PhaseIdle, d.Phase())
}

func TestDetector_ReleaseFlushesPendingDelta(t *testing.T) {
	d := newTestDetector()
	feedAll(d, Down(1, 0, 0, ms(0)))
	d.Tick(ms(500))
	feedAll(d, Move(1, 30, 0, ms(510)))

	got := d.Feed(Up(1, 40, 0, ms(520)))
	assert.Equal(t, []Gesture{DragMove{Delta: grid.Point{X: 10}}, DragEnd{}}, got)
}

func TestDetector_SecondPointerCancelsDrag(t *testing.T) {
	d := newTestDetector()
	feedAll(d, Down(1, 0, 0, ms(0)))
	d.Tick(ms(500))
	feedAll(d, Move(1, 40, 0, ms(510)))
	require.Equal(t, PhaseDragging, d.Phase())

	got := d.Feed(Down(2, 200, 200, ms(520)))
	assert.Equal(t, []Gesture{DragCancel{}}, got)
	assert.Equal(t, PhaseIgnoring, d.Phase())

	// The rest of the sequence is ignored until every pointer is up.
	assert.Empty(t, feedAll(d,
		Move(1, 80, 0, ms(530)),
		Up(1, 80, 0, ms(540)),
	))
	assert.Equal(t, PhaseIgnoring, d.Phase())
	assert.Empty(t, d.Feed(Up(2, 200, 200, ms(550))))
	assert.Equal(t, PhaseIdle, d.Phase())

	// A fresh tap works again.
	got = feedAll(d, Down(1, 5, 5, ms(600)), Up(1, 5, 5, ms(650)))
	assert.Equal(t, []Gesture{Tap{Pos: grid.Point{X: 5, Y: 5}}}, got)
}

func TestDetector_SecondPointerCancelsTap(t *testing.T) {
	d := newTestDetector()
	got := feedAll(d,
		Down(1, 0, 0, ms(0)),
		Down(2, 50, 50, ms(10)),
		Up(1, 0, 0, ms(20)),
		Up(2, 50, 50, ms(30)),
	)
	assert.Empty(t, got)
	assert.Equal(t, PhaseIdle, d.Phase())
}

func TestDetector_CancelEvent(t *testing.T) {
	tests := []struct {
		name  string
		setup func(d *Detector)
		want  []Gesture
	}{
		{
			name:  "while pressed",
			setup: func(d *Detector) { d.Feed(Down(1, 0, 0, ms(0))) },
		},
		{
			name: "while dragging",
			setup: func(d *Detector) {
				d.Feed(Down(1, 0, 0, ms(0)))
				d.Tick(ms(500))
				d.Feed(Move(1, 0, 25, ms(510)))
			},
			want: []Gesture{DragCancel{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDetector()
			tt.setup(d)
			got := d.Feed(Cancel(1, ms(600)))
			if tt.want == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.want, got)
			}
			assert.Equal(t, PhaseIdle, d.Phase())
		})
	}
}

func TestDetector_ReleaseOutsideSlopIsNotATap(t *testing.T) {
	d := newTestDetector()
	got := feedAll(d, Down(1, 0, 0, ms(0)), Up(1, 40, 0, ms(100)))
	assert.Empty(t, got)
}

func TestDetector_Reset(t *testing.T) {
	d := newTestDetector()
	feedAll(d, Down(1, 0, 0, ms(0)))
	d.Tick(ms(500))
	feedAll(d, Move(1, 40, 0, ms(510)))

	assert.Equal(t, []Gesture{DragCancel{}}, d.Reset())
	assert.Equal(t, PhaseIdle, d.Phase())
	assert.Empty(t, d.Reset())
}

func TestName(t *testing.T) {
	assert.Equal(t, "tap", Name(Tap{}))
	assert.Equal(t, "drag_cancel", Name(DragCancel{}))
	assert.Equal(t, "move", EventMove.String())
	assert.Equal(t, "long_pressed", PhaseLongPressed.String())
}
