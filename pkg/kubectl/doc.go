// Package kubectl shapes and runs invocations of the kubectl binary.
//
// It owns the three cluster-facing concerns of the CLI: fetching the live
// pod inventory for a namespace, translating logical operation requests
// into exact kubectl argument vectors, and classifying failures of the
// binary itself (missing tool, unreachable cluster, rejected options).
// Nothing here is cached or retried; every call reflects cluster state at
// one point in time.
package kubectl
