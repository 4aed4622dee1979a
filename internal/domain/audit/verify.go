package audit

import "fmt"

// VerifyResult reports the outcome of a chain walk.
type VerifyResult struct {
	OK             bool   `json:"ok"`
	CheckedEntries int    `json:"checked_entries"`
	FirstBrokenSeq uint64 `json:"first_broken_seq,omitempty"`
	Reason         string `json:"reason,omitempty"`
}

// VerifyChain walks entries in order and fails at the first break. Entries
// must be contiguous and ascending; expectedPrevHash is the hash the first
// entry must chain from (GenesisPrevHash when walking from seq 1, or a
// checkpoint entry's hash when resuming mid-chain).
func VerifyChain(entries []*Entry, expectedPrevHash string) VerifyResult {
	prev := expectedPrevHash
	var lastSeq uint64

	for i, e := range entries {
		if i > 0 && e.Seq() != lastSeq+1 {
			return VerifyResult{
				CheckedEntries: i,
				FirstBrokenSeq: lastSeq + 1,
				Reason:         fmt.Sprintf("gap in sequence: expected %d, found %d", lastSeq+1, e.Seq()),
			}
		}

		if e.PrevHash() != prev {
			return VerifyResult{
				CheckedEntries: i,
				FirstBrokenSeq: e.Seq(),
				Reason:         "prev_hash does not match previous entry hash",
			}
		}

		recomputed, err := e.ComputeHash()
		if err != nil {
			return VerifyResult{
				CheckedEntries: i,
				FirstBrokenSeq: e.Seq(),
				Reason:         fmt.Sprintf("hash computation failed: %v", err),
			}
		}
		if recomputed != e.EntryHash() {
			return VerifyResult{
				CheckedEntries: i,
				FirstBrokenSeq: e.Seq(),
				Reason:         "entry_hash does not match entry content",
			}
		}

		prev = e.EntryHash()
		lastSeq = e.Seq()
	}

	return VerifyResult{OK: true, CheckedEntries: len(entries)}
}
