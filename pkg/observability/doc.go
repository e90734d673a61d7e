/*
Package observability turns routing lifecycle hooks into Prometheus metrics.

Metrics are registered on a caller supplied registerer so tests and embedded
hosts do not collide on the global registry:

	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	app := waypoint.New(ctx, scheme, host, waypoint.WithLifecycleHooks(m.Hooks()))
*/
package observability
