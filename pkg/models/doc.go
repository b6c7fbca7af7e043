// Package models defines the core data structures used throughout the Jellygram application.
//
// It includes:
//   - WebhookItem: The "item added" payload from the Jellyfin webhook plugin
//   - ItemKind: Movie/Season/Episode classification of a payload
//   - Outcome and Decision: The terminal result of triaging an item
//   - NotificationKey: The composite deduplication identity
//
// All models include appropriate serialization tags for JSON payloads
// and API responses.
package models
