package leveling

import (
	"errors"
	"testing"

	"contenthub/errs"

	"github.com/stretchr/testify/require"
)

func TestCostForLevel(t *testing.T) {
	costs := map[int]int64{1: 100, 2: 175, 3: 250, 10: 775}
	for level, want := range costs {
		got, err := DefaultCurve.CostForLevel(level)
		require.NoError(t, err)
		require.Equal(t, want, got, "level %d", level)
	}

	_, err := DefaultCurve.CostForLevel(0)
	require.True(t, errors.Is(err, errs.ErrInvalidArgument))
	_, err = DefaultCurve.CostForLevel(-3)
	require.True(t, errors.Is(err, errs.ErrInvalidArgument))
}

func TestComputeKnownPoints(t *testing.T) {
	cases := []struct {
		total int64
		want  Info
	}{
		{0, Info{Level: 1, XPIntoLevel: 0, XPRequired: 100, TotalXPForNext: 100}},
		{99, Info{Level: 1, XPIntoLevel: 99, XPRequired: 100, TotalXPForNext: 100}},
		{100, Info{Level: 2, XPIntoLevel: 0, XPRequired: 175, TotalXPForNext: 275}},
		{274, Info{Level: 2, XPIntoLevel: 174, XPRequired: 175, TotalXPForNext: 275}},
		{275, Info{Level: 3, XPIntoLevel: 0, XPRequired: 250, TotalXPForNext: 525}},
	}
	for _, c := range cases {
		got, err := DefaultCurve.Compute(c.total)
		require.NoError(t, err)
		require.Equal(t, c.want, got, "total=%d", c.total)
	}
}

func TestComputeNegative(t *testing.T) {
	_, err := DefaultCurve.Compute(-1)
	require.True(t, errors.Is(err, errs.ErrInvalidArgument))
}

// 进度条永远不会攒满不升级
func TestComputeNeverFull(t *testing.T) {
	for n := int64(0); n <= 20000; n++ {
		info, err := DefaultCurve.Compute(n)
		require.NoError(t, err)
		require.Less(t, info.XPIntoLevel, info.XPRequired, "total=%d", n)
		require.GreaterOrEqual(t, info.Level, 1)
		require.Equal(t, n-info.XPIntoLevel+info.XPRequired, info.TotalXPForNext, "total=%d", n)
	}
}

// 等级随总经验单调不减
func TestComputeMonotonic(t *testing.T) {
	prev := 0
	for n := int64(0); n <= 5000; n++ {
		info, err := DefaultCurve.Compute(n)
		require.NoError(t, err)
		require.GreaterOrEqual(t, info.Level, prev, "total=%d", n)
		prev = info.Level
	}
}

func TestCustomCurve(t *testing.T) {
	curve := Curve{Base: 10, Increment: 5}

	info, err := curve.Compute(10)
	require.NoError(t, err)
	require.Equal(t, Info{Level: 2, XPIntoLevel: 0, XPRequired: 15, TotalXPForNext: 25}, info)

	info, err = curve.Compute(24)
	require.NoError(t, err)
	require.Equal(t, 2, info.Level)
	require.Equal(t, int64(14), info.XPIntoLevel)
}
