// Package metrics records server and build observations.
//
// Components receive a Recorder and default to NoopRecorder, so metrics can be
// switched on without touching the call sites:
//
//	reg := prometheus.NewRegistry()
//	srv := server.New(cfg, server.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//	http.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics
