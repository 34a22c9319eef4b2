// © 2024 tscn.org
//
// SPDX-License-Identifier: Apache-2.0

package exc

import "sync"

// Reporter accumulates recoverable problems during a parse. The scene
// parser reports a property-level failure here and keeps going rather than
// fail the whole document; the accumulated set becomes the document's
// warning list. A Reporter is call-scoped: every parse starts with a fresh
// one and nothing is shared across calls.
type Reporter interface {
	// Report adds the given exception to the set.
	Report(Exception)
	// Reported returns the accumulated exceptions in report order.
	Reported() []Exception
}

// NewReporter returns a concurrent-safe implementation of Reporter.
func NewReporter() Reporter {
	return &reporterLock{
		reporter: &reporter{},
		lock:     &sync.Mutex{},
	}
}

type reporter struct {
	reported []Exception
}

func (r *reporter) Report(e Exception) {
	r.reported = append(r.reported, e)
}

func (r *reporter) Reported() []Exception {
	return r.reported
}

type reporterLock struct {
	reporter Reporter
	lock     sync.Locker
}

func (r *reporterLock) Report(e Exception) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.reporter.Report(e)
}

func (r *reporterLock) Reported() []Exception {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.reporter.Reported()
}
