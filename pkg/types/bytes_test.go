package types

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytes_Humanized_Boundaries(t *testing.T) {
	cases := []struct {
		in   Bytes
		want string
	}{
		{Bytes(0), "0 B"},
		{Bytes(1), "1 B"},
		{Bytes(1023), "1023 B"},                   // just below 1 KiB
		{Bytes(1024), "1.00 KB"},                  // exactly 1 KiB
		{Bytes(1024*1024 - 1), "1024.00 KB"},      // just below 1 MiB
		{Bytes(1024 * 1024), "1.00 MB"},           // exactly 1 MiB
		{Bytes(1024*1024*1024 - 1), "1024.00 MB"}, // just below 1 GiB
		{Bytes(1024 * 1024 * 1024), "1.00 GB"},    // exactly 1 GiB
		{Bytes(1<<40 - 1), "1024.00 GB"},          // just below 1 TiB
		{Bytes(1 << 40), "1.00 TB"},               // exactly 1 TiB
	}
	for i, tc := range cases {
		t.Run(fmt.Sprintf("case_%d_%d", i, uint64(tc.in)), func(t *testing.T) {
			got := tc.in.Humanized()
			require.Equal(t, tc.want, got)
		})
	}
}

func TestBytes_Humanized_NonRound(t *testing.T) {
	// 1536 B = 1.50 KB
	assert.Equal(t, "1.50 KB", Bytes(1536).Humanized())

	// 12.345 MB ≈ 12.35 MB
	b := Bytes(uint64(math.Round(12.345 * float64(1<<20))))
	assert.Equal(t, "12.35 MB", b.Humanized())

	// 2.75 GB ≈ 2.75 GB
	b = Bytes(uint64(math.Round(2.75 * float64(1<<30))))
	assert.Equal(t, "2.75 GB", b.Humanized())
}

func TestBytes_UnitAccessors(t *testing.T) {
	const MiB = 1024.0 * 1024.0

	assert.InDelta(t, 1.0, Bytes(1<<20).MB(), 1e-12)
	assert.InDelta(t, 1.5/1024, Bytes(1536).MB(), 1e-12)
	assert.InDelta(t, 5*1024.0, Bytes(5*(1<<30)).MB(), 1e-6)

	// averages of samples are fractional; the float helpers must agree with the typed ones
	assert.InDelta(t, Bytes(3<<20).MB(), MBFloat(3*MiB), 1e-12)
	assert.InDelta(t, 1.5, MBFloat(1.5*MiB), 1e-12)
	assert.InDelta(t, 1.0, GBFloat(float64(1<<30)), 1e-12)
	assert.Equal(t, 0.0, GBFloat(0))
}

func TestFromMB(t *testing.T) {
	assert.Equal(t, ToBytes(3<<20), FromMB(3))
	assert.Equal(t, "1.50 MB", FromMB(1.5).Humanized())
	assert.Equal(t, Bytes(0), FromMB(0))
	assert.Equal(t, Bytes(0), FromMB(-2))
	assert.Equal(t, Bytes(0), FromMB(math.NaN()))

	// round trip through the report unit
	assert.InDelta(t, 12.5, FromMB(12.5).MB(), 1e-9)
}

func TestBytes_Humanized_TinyValues(t *testing.T) {
	// Ensure sub-KiB remain in bytes
	for _, v := range []uint64{2, 10, 255, 512, 1023} {
		want := fmt.Sprintf("%d B", v)
		assert.Equal(t, want, Bytes(v).Humanized())
	}
}
