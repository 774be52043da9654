package hexutil

import "sync"

// scratchSize covers the hex form of values up to 256 bytes, which includes
// every hash, key and identifier commonly passed through here.
const scratchSize = 512

// scratchPool reuses the buffers WriteHex encodes into. We pool *[]byte so that
// putting a buffer back does not allocate.
var scratchPool = sync.Pool{
	New: func() any {
		b := make([]byte, scratchSize)
		return &b
	},
}
