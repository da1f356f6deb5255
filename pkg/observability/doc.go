/*
Package observability provides Prometheus instrumentation for typeset.

Metrics are registered on a private registry so several instances can live
in one process (and in tests); Handler exposes them for scraping.
*/
package observability
