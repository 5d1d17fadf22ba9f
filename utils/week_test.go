package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t.Add(15 * time.Hour)
}

func TestNextMonday(t *testing.T) {
	cases := map[string]string{
		"2026-10-12": "2026-10-19", // Monday rolls to the following week
		"2026-10-15": "2026-10-19", // Thursday
		"2026-10-17": "2026-10-19", // Saturday
		"2026-10-18": "2026-10-19", // Sunday
	}
	for in, want := range cases {
		got := NextMonday(day(in)).Format(DateLayout)
		assert.Equal(t, want, got, "NextMonday(%s)", in)
	}
}

func TestCurrentMonday(t *testing.T) {
	cases := map[string]string{
		"2026-10-12": "2026-10-12",
		"2026-10-15": "2026-10-12",
		"2026-10-18": "2026-10-12", // Sunday belongs to the week that started the previous Monday
		"2026-10-19": "2026-10-19",
	}
	for in, want := range cases {
		got := CurrentMonday(day(in)).Format(DateLayout)
		assert.Equal(t, want, got, "CurrentMonday(%s)", in)
	}
}

func TestCurrentMondayIsMidnight(t *testing.T) {
	got := CurrentMonday(day("2026-10-15"))
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, 0, got.Minute())
}

func TestResolveWeek(t *testing.T) {
	now := day("2026-10-15")

	week, err := ResolveWeek("", now, NextMonday)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19", week)

	week, err = ResolveWeek("2026-11-02", now, NextMonday)
	require.NoError(t, err)
	assert.Equal(t, "2026-11-02", week)

	_, err = ResolveWeek("2026-11-03", now, NextMonday)
	assert.True(t, errors.Is(err, ErrNotMonday))

	_, err = ResolveWeek("next week", now, NextMonday)
	assert.True(t, errors.Is(err, ErrInvalidWeek))
}
