package worklist

import "sync"

const mutexStripes = 64

// keyedMutex serializes read-modify-write cycles per visit. Updates to the
// same visit share a stripe so two concurrent updates cannot overwrite each
// other's column write-back; updates to different visits usually proceed in
// parallel.
type keyedMutex struct {
	stripes [mutexStripes]sync.Mutex
}

func (m *keyedMutex) lock(visitID int64) *sync.Mutex {
	mu := &m.stripes[uint64(visitID)%mutexStripes]
	mu.Lock()
	return mu
}
