package transform

import "sync"

// resetDefaultForTest clears the memoized process-wide backend.
func resetDefaultForTest() {
	defaultOnce = sync.Once{}
	defaultFns = nil
	defaultErr = nil
}
