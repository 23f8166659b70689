// Package metrics records build metrics for booknav.
//
// Components receive a Recorder and default to NoopRecorder, so metrics can be
// switched on without nil checks at call sites:
//
//	rec := metrics.NewPrometheusRecorder(prom.NewRegistry())
//	report, err := build.Run(ctx, cfg, build.Options{Recorder: rec})
//	_ = rec.WriteTextfile(cfg.Metrics.Textfile)
//
// There is no HTTP endpoint. The Prometheus recorder writes the text
// exposition format to a file for node_exporter's textfile collector.
package metrics
