// Package middleware provides HTTP middleware for the folder-playlist
// control API.
//
// It includes:
//   - Request logging in W3C Extended Log Format, with health probes skipped
//     unless enabled
//   - Prometheus request metrics labelled by route template
package middleware
