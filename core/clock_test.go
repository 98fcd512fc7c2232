package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClock(t *testing.T) {
	clock, err := NewClock(ScheduleConfig{HourOffset: 1})
	require.NoError(t, err)
	assert.Nil(t, clock.Location)
	assert.Equal(t, time.Hour, clock.Offset)

	clock, err = NewClock(ScheduleConfig{HourOffset: 1, Timezone: "UTC"})
	require.NoError(t, err)
	assert.Equal(t, time.UTC, clock.Location)

	_, err = NewClock(ScheduleConfig{Timezone: "Mars/Olympus_Mons"})
	assert.Error(t, err)
}

func TestClock_Local(t *testing.T) {
	at := time.Date(2025, time.March, 2, 23, 30, 0, 0, time.UTC) // Sunday

	tests := []struct {
		name     string
		clock    Clock
		wantDay  string
		wantHHMM string
	}{
		{name: "no offset", clock: Clock{}, wantDay: "Воскресенье", wantHHMM: "23:30"},
		{name: "offset", clock: Clock{Offset: time.Hour}, wantDay: "Понедельник", wantHHMM: "00:30"},
		{name: "negative offset", clock: Clock{Offset: -2 * time.Hour}, wantDay: "Воскресенье", wantHHMM: "21:30"},
		{name: "location wins", clock: Clock{Location: time.FixedZone("MSK", 3*60*60), Offset: time.Hour}, wantDay: "Понедельник", wantHHMM: "02:30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local := tt.clock.Local(at)
			assert.Equal(t, tt.wantDay, Weekday(local))
			assert.Equal(t, tt.wantHHMM, HHMM(local))
		})
	}
}

func TestClock_Today(t *testing.T) {
	now := time.Date(2025, time.March, 3, 8, 49, 0, 0, time.UTC)
	clock := Clock{Offset: time.Hour, Now: func() time.Time { return now }}

	assert.Equal(t, now, clock.Current())
	assert.Equal(t, "09:49", HHMM(clock.Today()))

	assert.WithinDuration(t, time.Now(), Clock{}.Current(), time.Minute)
}

func TestIsWeekday(t *testing.T) {
	for _, day := range Weekdays {
		assert.True(t, IsWeekday(day), day)
	}
	for _, day := range []string{"", "Monday", "понедельник", " Понедельник"} {
		assert.False(t, IsWeekday(day), day)
	}
}

func TestIsHHMM(t *testing.T) {
	tests := map[string]bool{
		"00:00": true,
		"09:59": true,
		"23:59": true,
		"9:59":  false,
		"24:00": false,
		"12:60": false,
		"12:5":  false,
		"1200":  false,
		"":      false,
	}
	for in, want := range tests {
		assert.Equal(t, want, IsHHMM(in), in)
	}
}
