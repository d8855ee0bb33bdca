// Package lifecycle holds shared constants for application start/stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds how long a lifecycle hook (server shutdown, database
// ping) is allowed to take before it is abandoned.
const DefaultTimeout = 10 * time.Second
