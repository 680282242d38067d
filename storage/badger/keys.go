package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/caselode/caselode/core"
)

const (
	chunkRecordPrefix   = "chunk"
	chunkJudgmentPrefix = "chujud"
	chunkIDSeq          = "chunkseq"
	statuteRecordPrefix = "statsec"
)

// makeChunkKey generates a key for a chunk by ID.
func makeChunkKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", chunkRecordPrefix, id))
}

// makeChunkJudgmentKey generates a composite key for the judgment index.
// Format: prefix:judgmentID:chunkID
func makeChunkJudgmentKey(judgmentID, chunkID core.ID) []byte {
	prefix := chunkJudgmentPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for judgmentID + 8 bytes for chunkID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(judgmentID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(chunkID))
	return buf
}

// makePartialChunkJudgmentKey generates a partial key for judgment queries.
// Format: prefix:judgmentID
func makePartialChunkJudgmentKey(judgmentID core.ID) []byte {
	prefix := chunkJudgmentPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(judgmentID))
	return buf
}

// makeStatuteKey generates a key for a statute section by ID.
func makeStatuteKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", statuteRecordPrefix, id))
}
