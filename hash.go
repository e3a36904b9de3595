package willow

import (
	"crypto/rand"
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// signature is the 64-bit dispatch key: a keyed hash of an (object-name,
// method-name) pair, cheap to compare and to use as a map key on the fast
// path.
type signature uint64

// poolKey is the process-wide keyed-hash key. Randomizing it per process
// means a script cannot predict or engineer a signature collision, and a
// collision between two distinct live (object, method) pairs is still
// caught at put time (see ProgramPool.Put) rather than assumed impossible.
var poolKey = newPoolKey()

func newPoolKey() []byte {
	key := make([]byte, 64)
	if _, err := rand.Read(key); err != nil {
		panic(newFault(FaultAllocationFailure, "ProgramPool", "init", "failed to seed keyed hash: "+err.Error()))
	}
	return key
}

func sign(object, method string) signature {
	h, err := blake2b.New256(poolKey)
	if err != nil {
		panic(newFault(FaultAllocationFailure, "ProgramPool", "init", "failed to construct keyed hash: "+err.Error()))
	}
	h.Write([]byte(object))
	h.Write([]byte{0})
	h.Write([]byte(method))
	sum := h.Sum(nil)
	return signature(binary.LittleEndian.Uint64(sum[:8]))
}
