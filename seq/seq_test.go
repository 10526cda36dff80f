// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package seq

import (
	"testing"

	"vawter.tech/enums/internal/linger"
)

// tracked returns an Option that records every worker started by a
// traversal. The test fails if any worker is still running when it
// completes.
func tracked(t *testing.T) (*linger.Recorder, Option) {
	t.Helper()
	rec := linger.NewRecorder(4)
	t.Cleanup(func() { linger.CheckClean(t, rec) })
	return rec, WithMiddleware(rec.Invoke)
}
