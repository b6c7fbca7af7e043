// Package handlers provides HTTP request handlers for the Jellygram API.
//
// The API includes endpoints for:
//   - Jellyfin webhook intake (/webhook)
//   - Health checks (/health)
//   - API documentation (/docs, /apispec.json)
//
// All handlers include proper error handling, request validation,
// and JSON response formatting.
package handlers
