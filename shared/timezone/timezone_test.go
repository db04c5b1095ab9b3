package timezone_test

import (
	"hostel/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNowAndLocation(t *testing.T) {
	assert.False(t, timezone.Now().IsZero())
	assert.NotNil(t, timezone.GetLocation())
	assert.NotNil(t, timezone.ToAppTime(time.Now().UTC()).Location())
}

func TestFormatAndParse(t *testing.T) {
	assert.NotEmpty(t, timezone.Format(time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC), time.RFC3339))

	parsed, err := timezone.Parse(time.DateOnly, "2025-05-01")
	require.NoError(t, err)
	assert.False(t, parsed.IsZero())
}

func TestParseDate(t *testing.T) {
	date, err := timezone.ParseDate("2025-05-03")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC), date)

	_, err = timezone.ParseDate("03/05/2025")
	assert.Error(t, err)
}

func TestDateOf(t *testing.T) {
	berlin := time.FixedZone("CEST", 2*60*60)
	late := time.Date(2025, 5, 3, 23, 30, 0, 0, berlin)

	assert.Equal(t, time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC), timezone.DateOf(late))
	assert.Equal(t, timezone.DateOf(timezone.Now()), timezone.Today())
}
