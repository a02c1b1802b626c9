package game

import (
	"encoding/hex"

	"lukechampine.com/blake3"
)

func stateChecksum(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
