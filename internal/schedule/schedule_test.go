package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osaze/cinema-booking/internal/model"
)

func movie(id uint64, title string, minutes uint32) model.Movie {
	return model.Movie{ID: id, Title: title, DurationMin: minutes}
}

// base is an arbitrary reference day; scheduling starts the day after.
var base = time.Date(2026, time.March, 10, 14, 30, 0, 0, time.UTC)

func TestGenerateEmptyCatalogue(t *testing.T) {
	drafts, err := Generate(1, 1500, nil, base, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, drafts)
}

func TestGenerateSingleMovieOneDay(t *testing.T) {
	opts := DefaultOptions()
	opts.HorizonDays = 1

	drafts, err := Generate(1, 1500, []model.Movie{movie(7, "Heat", 180)}, base, opts)
	require.NoError(t, err)

	// The queue drains after the first screening and is only refilled
	// at the day boundary, so a one-movie catalogue yields exactly one
	// screening per day.
	require.Len(t, drafts, 1)
	d := drafts[0]
	assert.Equal(t, uint64(1), d.CinemaID)
	assert.Equal(t, uint64(7), d.MovieID)
	assert.Equal(t, uint32(1500), d.PriceCents)
	assert.Equal(t, time.Date(2026, time.March, 11, 8, 0, 0, 0, time.UTC), d.StartTime)
	assert.Equal(t, time.Date(2026, time.March, 11, 11, 0, 0, 0, time.UTC), d.EndTime)
}

func TestGenerateSingleMovieFullHorizon(t *testing.T) {
	drafts, err := Generate(1, 1500, []model.Movie{movie(7, "Heat", 180)}, base, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, drafts, 7)
	for i, d := range drafts {
		assert.Equal(t, time.Date(2026, time.March, 11+i, 8, 0, 0, 0, time.UTC), d.StartTime, "day %d", i)
	}
}

func TestGenerateRoundRobinAcrossDays(t *testing.T) {
	// A fits day one; B (7h) would end exactly at 22:00 and is
	// deferred to the back of the rotation, opening day two.
	movies := []model.Movie{
		movie(1, "A", 6*60),
		movie(2, "B", 7*60),
	}
	opts := DefaultOptions()
	opts.HorizonDays = 2

	drafts, err := Generate(9, 1200, movies, base, opts)
	require.NoError(t, err)

	require.Len(t, drafts, 2)
	assert.Equal(t, uint64(1), drafts[0].MovieID)
	assert.Equal(t, time.Date(2026, time.March, 11, 8, 0, 0, 0, time.UTC), drafts[0].StartTime)
	assert.Equal(t, uint64(2), drafts[1].MovieID)
	assert.Equal(t, time.Date(2026, time.March, 12, 8, 0, 0, 0, time.UTC), drafts[1].StartTime)
}

func TestGenerateClosingHourBoundary(t *testing.T) {
	opts := DefaultOptions()
	opts.HorizonDays = 1

	// 08:00 + 4h = 12:00, next start 13:00. The second movie's fate
	// depends only on the hour of its end time.
	t.Run("end at 21:59 fits", func(t *testing.T) {
		movies := []model.Movie{movie(1, "A", 4 * 60), movie(2, "B", 8*60 + 59)}
		drafts, err := Generate(1, 1000, movies, base, opts)
		require.NoError(t, err)
		require.Len(t, drafts, 2)
		assert.Equal(t, 21, drafts[1].EndTime.Hour())
		assert.Equal(t, 59, drafts[1].EndTime.Minute())
	})

	t.Run("end at 22:00 is deferred", func(t *testing.T) {
		movies := []model.Movie{movie(1, "A", 4 * 60), movie(2, "B", 9 * 60)}
		drafts, err := Generate(1, 1000, movies, base, opts)
		require.NoError(t, err)
		require.Len(t, drafts, 1)
		assert.Equal(t, uint64(1), drafts[0].MovieID)
	})
}

func TestGenerateProgramInvariants(t *testing.T) {
	movies := []model.Movie{
		movie(1, "A", 120),
		movie(2, "B", 150),
		movie(3, "C", 105),
	}
	opts := DefaultOptions()
	drafts, err := Generate(4, 1800, movies, base, opts)
	require.NoError(t, err)
	require.NotEmpty(t, drafts)

	byID := map[uint64]model.Movie{}
	for _, m := range movies {
		byID[m.ID] = m
	}

	firstOfDay := map[string]time.Time{}
	for i, d := range drafts {
		m := byID[d.MovieID]
		assert.Equal(t, d.StartTime.Add(m.Duration()), d.EndTime, "draft %d end time", i)
		assert.Less(t, d.EndTime.Hour(), 22, "draft %d closing hour", i)
		assert.Equal(t, uint32(1800), d.PriceCents)

		day := d.StartTime.Format("2006-01-02")
		if cur, ok := firstOfDay[day]; !ok || d.StartTime.Before(cur) {
			firstOfDay[day] = d.StartTime
		}

		if i > 0 {
			prev := drafts[i-1]
			if prev.StartTime.Format("2006-01-02") == day {
				// Same day: exactly one gap between screenings.
				assert.Equal(t, prev.EndTime.Add(opts.Gap), d.StartTime, "draft %d start", i)
			}
		}
	}

	for day, first := range firstOfDay {
		assert.Equal(t, 8, first.Hour(), "first screening on %s", day)
		assert.Equal(t, 0, first.Minute(), "first screening on %s", day)
	}
}

func TestGenerateNoOverlaps(t *testing.T) {
	movies := []model.Movie{
		movie(1, "A", 95),
		movie(2, "B", 141),
		movie(3, "C", 178),
		movie(4, "D", 88),
	}
	drafts, err := Generate(2, 2000, movies, base, DefaultOptions())
	require.NoError(t, err)

	for i := 1; i < len(drafts); i++ {
		assert.False(t, drafts[i].StartTime.Before(drafts[i-1].EndTime),
			"draft %d overlaps its predecessor", i)
	}
}

func TestGenerateUnschedulableMovie(t *testing.T) {
	t.Run("longer than the daily window", func(t *testing.T) {
		_, err := Generate(1, 1000, []model.Movie{movie(1, "Endless", 14 * 60)}, base, DefaultOptions())
		var unsched ErrUnschedulableMovie
		require.ErrorAs(t, err, &unsched)
		assert.Equal(t, "Endless", unsched.Title)
	})

	t.Run("zero duration", func(t *testing.T) {
		_, err := Generate(1, 1000, []model.Movie{movie(1, "Broken", 0)}, base, DefaultOptions())
		var unsched ErrUnschedulableMovie
		require.ErrorAs(t, err, &unsched)
	})

	t.Run("whole run fails even with schedulable peers", func(t *testing.T) {
		movies := []model.Movie{movie(1, "Fine", 120), movie(2, "Endless", 15 * 60)}
		drafts, err := Generate(1, 1000, movies, base, DefaultOptions())
		require.Error(t, err)
		assert.Empty(t, drafts)
	})
}
