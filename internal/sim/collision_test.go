package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/gravity-arcade/internal/core"
)

func TestWithin(t *testing.T) {
	assert.True(t, Within(core.V(0, 0), core.V(3, 4), 5.0001))
	assert.False(t, Within(core.V(0, 0), core.V(3, 4), 5), "distance equal to threshold is not within")
	assert.True(t, Within(core.V(1, 1), core.V(1, 1), 0.1))
}

func TestSegmentWithin(t *testing.T) {
	star := core.V(400, 300)
	tests := []struct {
		name     string
		from, to core.Vec2
		want     bool
	}{
		{"ends inside", core.V(400, 283), core.V(400, 287), true},
		{"passes through", core.V(400, 260), core.V(400, 340), true},
		{"grazes outside", core.V(380, 260), core.V(380, 340), false},
		{"stops short", core.V(400, 200), core.V(400, 280), false},
		{"moves away", core.V(400, 320), core.V(400, 360), false},
		{"zero length inside", core.V(405, 300), core.V(405, 300), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SegmentWithin(tt.from, tt.to, star, 15))
		})
	}
}

func TestSupportedRestingPlayer(t *testing.T) {
	ground := core.NewBox(0, 0, 800, 10)
	body := core.NewBox(50, 9.5, 30, 40)

	assert.True(t, Supported(body, -0.5, ground, 10))
	assert.True(t, Supported(body, 0, ground, 10))
	assert.False(t, Supported(body, 0.1, ground, 10), "rising bodies never land")
}

func TestSupportedToleranceBand(t *testing.T) {
	p := core.NewBox(0, 100, 700, 10)
	tests := []struct {
		name string
		y    float64
		want bool
	}{
		{"at surface", 110, true},
		{"inside slab", 104, true},
		{"slab bottom", 100, true},
		{"below slab", 99.9, false},
		{"top of band", 120, true},
		{"above band", 120.1, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body := core.NewBox(50, tc.y, 30, 40)
			assert.Equal(t, tc.want, Supported(body, -1, p, 10))
		})
	}
}

func TestSupportedLeavesEdgeImmediately(t *testing.T) {
	p := core.NewBox(0, 500, 500, 10)

	assert.True(t, Supported(core.NewBox(479.9, 510, 20, 20), 0, p, 10))
	assert.False(t, Supported(core.NewBox(500, 510, 20, 20), 0, p, 10),
		"a body whose left edge reaches the platform's right edge is no longer supported")
}

func TestResolveLandingPicksSmallestPenetration(t *testing.T) {
	// Two overlapping slabs whose bands both contain y=105.
	a := core.NewBox(0, 95, 100, 10)  // top 105, penetration 0
	b := core.NewBox(0, 100, 100, 10) // top 110, penetration 5
	body := core.NewBox(10, 105, 30, 40)

	orders := [][]core.Box{{a, b}, {b, a}}
	for _, surfaces := range orders {
		idx, ok := ResolveLanding(body, -1, surfaces, 10)
		require.True(t, ok)
		assert.Equal(t, 105.0, surfaces[idx].Top(), "closest surface should win regardless of order")
	}
}

func TestResolveLandingTieGoesToLowestIndex(t *testing.T) {
	s := []core.Box{
		core.NewBox(0, 0, 100, 10),
		core.NewBox(50, 0, 100, 10),
	}
	idx, ok := ResolveLanding(core.NewBox(40, 10, 30, 40), 0, s, 10)
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestResolveLandingNoneWhenRisingOrOutside(t *testing.T) {
	s := []core.Box{core.NewBox(0, 0, 800, 10)}

	_, ok := ResolveLanding(core.NewBox(50, 10, 30, 40), 3, s, 10)
	assert.False(t, ok)

	_, ok = ResolveLanding(core.NewBox(800, 10, 30, 40), 0, s, 10)
	assert.False(t, ok)

	_, ok = ResolveLanding(core.NewBox(50, 300, 30, 40), 0, s, 10)
	assert.False(t, ok)
}

func TestFirstOverlap(t *testing.T) {
	ladders := []core.Box{
		core.NewBox(600, 10, 20, 100),
		core.NewBox(150, 110, 20, 100),
	}
	idx, ok := FirstOverlap(core.NewBox(140, 120, 30, 40), ladders)
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = FirstOverlap(core.NewBox(300, 10, 30, 40), ladders)
	assert.False(t, ok)
}
