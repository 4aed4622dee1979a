package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeBucket(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "already on boundary",
			input:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			expected: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name:     "rounds down within first quarter",
			input:    time.Date(2025, 6, 1, 12, 7, 33, 0, time.UTC),
			expected: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name:     "rounds down just before next boundary",
			input:    time.Date(2025, 6, 1, 12, 29, 59, 999999999, time.UTC),
			expected: time.Date(2025, 6, 1, 12, 15, 0, 0, time.UTC),
		},
		{
			name:     "last quarter of the hour",
			input:    time.Date(2025, 6, 1, 12, 58, 0, 0, time.UTC),
			expected: time.Date(2025, 6, 1, 12, 45, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TimeBucket(tt.input))
		})
	}
}

func TestTimeBucketNormalizesZone(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	local := time.Date(2025, 6, 1, 17, 37, 0, 0, ist)

	bucket := TimeBucket(local)

	assert.Equal(t, time.UTC, bucket.Location())
	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), bucket)
}

func TestAgeBucket(t *testing.T) {
	age := func(n int) *int { return &n }

	tests := []struct {
		name     string
		age      *int
		expected string
	}{
		{name: "nil age", age: nil, expected: "unknown"},
		{name: "negative age", age: age(-1), expected: "unknown"},
		{name: "newborn", age: age(0), expected: "0-5"},
		{name: "upper edge of first bucket", age: age(5), expected: "0-5"},
		{name: "lower edge of second bucket", age: age(6), expected: "6-12"},
		{name: "twelve", age: age(12), expected: "6-12"},
		{name: "teenager", age: age(13), expected: "13-18"},
		{name: "eighteen", age: age(18), expected: "13-18"},
		{name: "young adult", age: age(19), expected: "19-35"},
		{name: "thirty five", age: age(35), expected: "19-35"},
		{name: "middle age", age: age(36), expected: "36-60"},
		{name: "sixty", age: age(60), expected: "36-60"},
		{name: "senior", age: age(61), expected: "60+"},
		{name: "centenarian", age: age(104), expected: "60+"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AgeBucket(tt.age))
		})
	}
}

func TestGeoCell(t *testing.T) {
	tests := []struct {
		name     string
		pincode  string
		expected string
	}{
		{name: "full pincode", pincode: "110001", expected: "pincode_110xxx"},
		{name: "different prefix", pincode: "560034", expected: "pincode_560xxx"},
		{name: "exactly three digits", pincode: "110", expected: "pincode_110xxx"},
		{name: "too short", pincode: "56", expected: "unknown"},
		{name: "empty", pincode: "", expected: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GeoCell(tt.pincode))
		})
	}
}

func TestGender(t *testing.T) {
	assert.Equal(t, "F", Gender("F"))
	assert.Equal(t, "M", Gender("M"))
	assert.Equal(t, "unknown", Gender(""))
}

func TestAgeBucketsCoverAllOutputs(t *testing.T) {
	buckets := AgeBuckets()

	assert.Len(t, buckets, 7)
	assert.Contains(t, buckets, "unknown")

	seen := map[string]bool{}
	for _, b := range buckets {
		seen[b] = true
	}
	for _, a := range []int{0, 6, 13, 19, 36, 61} {
		age := a
		assert.True(t, seen[AgeBucket(&age)])
	}
}
