// Package httpapi serves a loaded parameter tree over HTTP.
//
// Routes:
//
//	GET /parameters          the whole tree as a parameter document (YAML)
//	GET /parameters/{node}   one node as JSON
//	GET /nodes               node names as JSON
//	GET /healthz             liveness
//	GET /metrics             Prometheus metrics, when a collector is set
//
// Node names in the URL may omit their leading '/'. The tree must not be
// modified while the handler serves it.
package httpapi
