package analytics

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferMergesSameCell(t *testing.T) {
	buf := NewBuffer(100)
	demo := testDemographics()
	at := time.Date(2025, 6, 1, 12, 2, 0, 0, time.UTC)

	first, err := NewPayload(EventTriageCompleted, "phc", at, demo, nil)
	require.NoError(t, err)
	second, err := NewPayload(EventTriageCompleted, "phc", at.Add(4*time.Minute), demo, nil)
	require.NoError(t, err)

	buf.Add(first)
	buf.Add(second)

	assert.Equal(t, 1, buf.Len())

	batch := buf.Drain()
	require.Len(t, batch, 1)
	assert.Equal(t, int64(2), batch[KeyFromPayload(first)])
}

func TestBufferThreshold(t *testing.T) {
	buf := NewBuffer(3)
	demo := Demographics{}

	for i := 0; i < 2; i++ {
		payload, err := NewPayload(EventDailyWellnessLogged, "",
			time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i)*time.Hour), demo, nil)
		require.NoError(t, err)
		assert.False(t, buf.Add(payload))
	}

	payload, err := NewPayload(EventDailyWellnessLogged, "",
		time.Date(2025, 6, 1, 5, 0, 0, 0, time.UTC), demo, nil)
	require.NoError(t, err)
	assert.True(t, buf.Add(payload))
}

func TestBufferDrainResets(t *testing.T) {
	buf := NewBuffer(100)
	payload, err := NewPayload(EventTeleRequestCreated, "", time.Now(), Demographics{}, nil)
	require.NoError(t, err)
	buf.Add(payload)

	batch := buf.Drain()

	require.NotNil(t, batch)
	assert.Equal(t, 0, buf.Len())
	assert.Nil(t, buf.Drain())
}

func TestBufferMergeRestoresDrainedBatch(t *testing.T) {
	buf := NewBuffer(100)
	demo := testDemographics()
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	payload, err := NewPayload(EventComplaintSubmitted, "service_quality", at, demo, nil)
	require.NoError(t, err)
	buf.Add(payload)

	batch := buf.Drain()
	require.Len(t, batch, 1)

	// A cell accumulated between drain and merge combines with the
	// restored counts.
	buf.Add(payload)
	buf.Merge(batch)

	restored := buf.Drain()
	require.Len(t, restored, 1)
	assert.Equal(t, int64(2), restored[KeyFromPayload(payload)])
}

func TestBufferConcurrentAdds(t *testing.T) {
	buf := NewBuffer(10000)
	demo := testDemographics()
	at := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				payload, err := NewPayload(EventTriageCompleted, "self_care", at, demo, nil)
				if err != nil {
					panic(fmt.Sprintf("unexpected payload error: %v", err))
				}
				buf.Add(payload)
			}
		}()
	}
	wg.Wait()

	batch := buf.Drain()
	require.Len(t, batch, 1)
	for _, count := range batch {
		assert.Equal(t, int64(400), count)
	}
}

func TestNewBufferDefaultsThreshold(t *testing.T) {
	buf := NewBuffer(0)
	demo := Demographics{}

	for i := 0; i < DefaultFlushThreshold-1; i++ {
		payload, err := NewPayload(EventDailyWellnessLogged, "",
			time.Unix(int64(i)*900, 0).UTC(), demo, nil)
		require.NoError(t, err)
		assert.False(t, buf.Add(payload))
	}

	payload, err := NewPayload(EventDailyWellnessLogged, "",
		time.Unix(int64(DefaultFlushThreshold)*900, 0).UTC(), demo, nil)
	require.NoError(t, err)
	assert.True(t, buf.Add(payload))
}
