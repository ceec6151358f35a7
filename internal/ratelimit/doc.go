// Package ratelimit bounds outbound request pressure against one remote
// catalog provider.
//
// A Gate combines a counting semaphore (simultaneous in-flight requests), a
// baseline minimum delay between consecutive requests, and an adaptive
// cool-down: after a provider signals throttling, every request for the next
// ten seconds pays an extra configured delay. The cool-down is evaluated
// lazily on each acquisition; there is no background timer. One Gate is
// constructed per provider client and shared by every call site that talks
// to that provider.
package ratelimit
