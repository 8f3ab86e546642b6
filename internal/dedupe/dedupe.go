// Package dedupe provides the shared singleflight group used to collapse
// concurrent round-advancement requests. Two clients (or a client racing the
// timeout scanner) asking to advance the same battle must resolve the round
// exactly once; callers key the group by battle ID and share the result.
package dedupe

import "golang.org/x/sync/singleflight"

// RoundGroup deduplicates round resolution keyed by the battle's ID.
var RoundGroup singleflight.Group
