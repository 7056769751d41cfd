package timeutil_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tomatoclock/tomato/internal/timeutil"
)

func TestClock(t *testing.T) {
	cases := map[time.Duration]string{
		0:                                    "00:00",
		-time.Second:                         "00:00",
		59 * time.Second:                     "00:59",
		25 * time.Minute:                     "25:00",
		23*time.Minute + 5*time.Second:       "23:05",
		90*time.Second + 900*time.Millisecond: "01:30",
		120 * time.Minute:                    "120:00",
	}

	for in, want := range cases {
		assert.Equal(t, want, timeutil.Clock(in), in.String())
	}
}

func TestHuman(t *testing.T) {
	assert.Equal(t, "0s", timeutil.Human(0))
	assert.Equal(t, "45s", timeutil.Human(45*time.Second))
	assert.Equal(t, "25m", timeutil.Human(25*time.Minute))
	assert.Equal(t, "2m 30s", timeutil.Human(150*time.Second))
	assert.Equal(t, "1h 5m", timeutil.Human(65*time.Minute))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 3, timeutil.Round(2.5))
	assert.Equal(t, 2, timeutil.Round(2.4))
}
