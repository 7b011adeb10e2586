/*
Package observability turns runner lifecycle events into structured logs and
Prometheus metrics.

Both are exposed as domain.LifecycleHooks so they compose with any other hook
set through runner.WithLifecycleHooks.
*/
package observability
