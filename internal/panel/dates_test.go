package panel

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "ustpanel/internal/errors"
)

func TestBusinessDates(t *testing.T) {
	// Monday 2023-01-02 through Sunday 2023-01-08: five weekdays.
	dates, err := BusinessDates(mustDate("2023-01-02"), mustDate("2023-01-08"))
	require.NoError(t, err)
	require.Len(t, dates, 5)
	assert.Equal(t, mustDate("2023-01-02"), dates[0])
	assert.Equal(t, mustDate("2023-01-06"), dates[4])
	for _, d := range dates {
		assert.NotEqual(t, time.Saturday, d.Weekday())
		assert.NotEqual(t, time.Sunday, d.Weekday())
	}
}

func TestBusinessDatesInclusiveEndpoints(t *testing.T) {
	dates, err := BusinessDates(mustDate("2023-01-03"), mustDate("2023-01-03"))
	require.NoError(t, err)
	require.Len(t, dates, 1)
	assert.Equal(t, mustDate("2023-01-03"), dates[0])
}

func TestBusinessDatesKeepsHolidays(t *testing.T) {
	// 2023-01-02 was a US federal holiday; only weekends are removed.
	dates, err := BusinessDates(mustDate("2022-12-30"), mustDate("2023-01-03"))
	require.NoError(t, err)
	assert.Contains(t, dates, mustDate("2023-01-02"))
}

func TestBusinessDatesWeekendOnlyRange(t *testing.T) {
	dates, err := BusinessDates(mustDate("2023-01-07"), mustDate("2023-01-08"))
	require.NoError(t, err)
	assert.Empty(t, dates)
}

func TestBusinessDatesInvalidRange(t *testing.T) {
	_, err := BusinessDates(mustDate("2023-01-08"), mustDate("2023-01-02"))
	require.Error(t, err)

	var invalid *apperrors.InvalidRangeError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, mustDate("2023-01-08"), invalid.Start)
	assert.Equal(t, mustDate("2023-01-02"), invalid.End)
}
