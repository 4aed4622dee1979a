package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildChain(t *testing.T, n int) []*Entry {
	t.Helper()

	entries := make([]*Entry, 0, n)
	prev := GenesisPrevHash
	ts := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	for i := 1; i <= n; i++ {
		digest, err := DigestPayload(map[string]any{"n": i})
		require.NoError(t, err)

		e, err := NewEntry(
			uint64(i),
			prev,
			"usr_8aT3kQz9Ym2L",
			"complaint.submitted",
			"complaint",
			"cmp_xK9mP2vL3nQ7",
			"10.0.0.1",
			"dev-42",
			digest,
			ts.Add(time.Duration(i)*time.Minute),
		)
		require.NoError(t, err)
		entries = append(entries, e)
		prev = e.EntryHash()
	}
	return entries
}

func TestNewEntry_GenesisRules(t *testing.T) {
	ts := time.Now()

	// seq 1 must chain from the zero sentinel
	_, err := NewEntry(1, "deadbeef", "usr_a", "user.registered", "user", "usr_a", "", "", "", ts)
	assert.Error(t, err)

	e, err := NewEntry(1, GenesisPrevHash, "usr_a", "user.registered", "user", "usr_a", "", "", "", ts)
	require.NoError(t, err)
	assert.Equal(t, GenesisPrevHash, e.PrevHash())
	assert.True(t, ValidHash(e.EntryHash()))

	// seq 0 is invalid
	_, err = NewEntry(0, GenesisPrevHash, "usr_a", "user.registered", "user", "usr_a", "", "", "", ts)
	assert.Error(t, err)
}

func TestNewEntry_SystemActorDefault(t *testing.T) {
	e, err := NewEntry(1, GenesisPrevHash, "", "sla.escalated", "complaint", "cmp_x", "", "", "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, SystemActor, e.ActorID())
}

func TestEntry_HashExcludesClientMetadata(t *testing.T) {
	ts := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	withMeta, err := NewEntry(1, GenesisPrevHash, "usr_a", "complaint.submitted", "complaint", "cmp_x", "10.1.2.3", "dev-1", "", ts)
	require.NoError(t, err)

	scrubbed, err := NewEntry(1, GenesisPrevHash, "usr_a", "complaint.submitted", "complaint", "cmp_x", "", "", "", ts)
	require.NoError(t, err)

	// anonymous scrubbing must not change the chain
	assert.Equal(t, withMeta.EntryHash(), scrubbed.EntryHash())
	assert.False(t, withMeta.IsAnonymous())
	assert.True(t, scrubbed.IsAnonymous())
}

func TestVerifyChain_OK(t *testing.T) {
	entries := buildChain(t, 5)

	res := VerifyChain(entries, GenesisPrevHash)
	assert.True(t, res.OK)
	assert.Equal(t, 5, res.CheckedEntries)
	assert.Zero(t, res.FirstBrokenSeq)
}

func TestVerifyChain_EmptyChainIsOK(t *testing.T) {
	res := VerifyChain(nil, GenesisPrevHash)
	assert.True(t, res.OK)
	assert.Zero(t, res.CheckedEntries)
}

func TestVerifyChain_DetectsTamperedEntry(t *testing.T) {
	entries := buildChain(t, 5)

	// re-seal entry 3 with different content but keep its stored hash linkage
	tampered, err := ReconstructEntry(
		3,
		entries[2].ActorID(),
		"complaint.closed", // altered action
		entries[2].EntityType(),
		entries[2].EntityID(),
		entries[2].IP(),
		entries[2].Device(),
		entries[2].PayloadDigest(),
		entries[2].Timestamp(),
		entries[2].PrevHash(),
		entries[2].EntryHash(),
	)
	require.NoError(t, err)
	entries[2] = tampered

	res := VerifyChain(entries, GenesisPrevHash)
	assert.False(t, res.OK)
	assert.Equal(t, uint64(3), res.FirstBrokenSeq)
}

func TestVerifyChain_DetectsBrokenLink(t *testing.T) {
	entries := buildChain(t, 4)

	broken, err := ReconstructEntry(
		2,
		entries[1].ActorID(),
		entries[1].Action(),
		entries[1].EntityType(),
		entries[1].EntityID(),
		entries[1].IP(),
		entries[1].Device(),
		entries[1].PayloadDigest(),
		entries[1].Timestamp(),
		GenesisPrevHash, // wrong prev
		entries[1].EntryHash(),
	)
	require.NoError(t, err)
	entries[1] = broken

	res := VerifyChain(entries, GenesisPrevHash)
	assert.False(t, res.OK)
	assert.Equal(t, uint64(2), res.FirstBrokenSeq)
}

func TestVerifyChain_DetectsSequenceGap(t *testing.T) {
	entries := buildChain(t, 5)
	gapped := []*Entry{entries[0], entries[1], entries[3], entries[4]}

	res := VerifyChain(gapped, GenesisPrevHash)
	assert.False(t, res.OK)
	assert.Equal(t, uint64(3), res.FirstBrokenSeq)
}

func TestVerifyChain_FromCheckpoint(t *testing.T) {
	entries := buildChain(t, 6)

	// resume from entry 4, chaining off entry 3's hash
	res := VerifyChain(entries[3:], entries[2].EntryHash())
	assert.True(t, res.OK)
	assert.Equal(t, 3, res.CheckedEntries)
}

func TestDigestPayload_NilIsEmptyObject(t *testing.T) {
	a, err := DigestPayload(nil)
	require.NoError(t, err)
	b, err := DigestPayload(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.True(t, ValidHash(a))
}

func TestValidHash(t *testing.T) {
	assert.True(t, ValidHash(GenesisPrevHash))
	assert.False(t, ValidHash("short"))
	assert.False(t, ValidHash("G000000000000000000000000000000000000000000000000000000000000000"))
}
