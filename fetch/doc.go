// Package fetch issues the one network request each placeholder gets.
//
// The client never retries: visibility watching already guarantees
// at-most-once invocation per element, and a failed fetch is terminal
// for that element. Requests are context-aware so a widget teardown
// cancels whatever is still in flight.
package fetch
