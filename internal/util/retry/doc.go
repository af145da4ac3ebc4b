// Package retry implements exponential backoff for operations that may
// fail transiently, such as dialing a host that is still booting.
package retry
