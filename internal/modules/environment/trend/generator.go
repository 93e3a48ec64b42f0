package trend

import (
	"time"

	"environapi/internal/modules/environment/types"
)

const (
	// SampleInterval is the spacing of the generated grid.
	SampleInterval = 15 * time.Minute
	TicksPerDay    = int(24 * time.Hour / SampleInterval)

	nightLightLux = 100
)

type band struct {
	lo, hi float64
}

var (
	lightDay = band{700, 1000}

	tempNight = band{15, 17}
	tempDay   = band{20, 22}

	humidityNight = band{30, 40}
	humidityDay   = band{50, 70}

	soundNight  = band{10, 20}
	soundLesson = band{50, 80}
	soundDay    = band{20, 30}
)

// lessonHours are the hours at which classroom noise peaks.
var lessonHours = map[int]bool{8: true, 10: true, 12: true, 14: true, 16: true}

// IsNight reports whether hour falls in the night window [18, 6).
func IsNight(hour int) bool {
	return hour < 6 || hour >= 18
}

// IsLessonPeak reports whether hour is a daytime lesson hour.
func IsLessonPeak(hour int) bool {
	return !IsNight(hour) && lessonHours[hour]
}

// Generate builds one reading per 15-minute tick from start 00:00 through the
// last tick of end (23:45), both dates taken as calendar days. An inverted
// range yields an empty table. The result depends only on the arguments.
func Generate(start, end time.Time, rnd RandomSource) types.TrendTable {
	n := TickCount(start, end)
	table := make(types.TrendTable, 0, n)
	first := DateOf(start)
	for i := 0; i < n; i++ {
		t := first.Add(time.Duration(i) * SampleInterval)
		table = append(table, sample(t, rnd))
	}
	return table
}

// TickCount returns the length of the table Generate would build.
func TickCount(start, end time.Time) int {
	r := types.TimeRange{Start: DateOf(start), End: DateOf(end)}
	return r.Days() * TicksPerDay
}

// DateOf returns midnight UTC of t's calendar date in t's own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sample(t time.Time, rnd RandomSource) types.Reading {
	hour := t.Hour()
	r := types.Reading{Time: t}

	if IsNight(hour) {
		r.LightLux = nightLightLux
		r.Temperature = draw(rnd, tempNight)
		r.HumidityPct = draw(rnd, humidityNight)
		r.SoundDB = draw(rnd, soundNight)
		return r
	}

	r.LightLux = draw(rnd, lightDay)
	r.Temperature = draw(rnd, tempDay)
	r.HumidityPct = draw(rnd, humidityDay)
	if IsLessonPeak(hour) {
		r.SoundDB = draw(rnd, soundLesson)
	} else {
		r.SoundDB = draw(rnd, soundDay)
	}
	return r
}

func draw(rnd RandomSource, b band) float64 {
	return rnd.Uniform(b.lo, b.hi)
}
