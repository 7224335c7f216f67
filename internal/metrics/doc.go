// Package metrics records redirect generation metrics.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics stay optional:
//
//	gen := generator.New(cfg, builder, site, generator.WithRecorder(metrics.NoopRecorder{}))
//
// PrometheusRecorder registers its collectors on a caller-supplied registry.
// The registry can be exposed over HTTP with HTTPHandler or dumped once per
// run with WriteTextfile for node_exporter's textfile collector.
package metrics
