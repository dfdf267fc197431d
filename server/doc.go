// SPDX-License-Identifier: MIT

// Package server exposes the miner over HTTP with gin.
//
// Routes:
//
//	GET  /healthz    liveness probe, {"status":"ok"}
//	POST /v1/mine    body MineRequest, reply MineResponse
//	POST /v1/graph   body MineRequest, reply node-link rule graph
//
// Status codes: 400 for malformed bodies and unknown request options, 422 for
// configuration and dataset errors, 429 when WithSingleJob is set and another
// mining request is in flight, 500 otherwise.
package server
