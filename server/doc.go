// Package server exposes paper search over a small JSON HTTP API.
//
// Endpoints:
//   - GET /healthz            liveness probe
//   - GET /api/search?q=...   run a search
//   - POST /api/search        run a search with {"query": "..."}
package server
