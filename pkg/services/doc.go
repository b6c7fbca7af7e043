// Package services provides the core business logic for the Jellygram application.
//
// It includes services for:
//   - Filtering: Deciding whether an "item added" webhook merits a notification
//   - Notification: Composing and dispatching Telegram messages with images
//     and trailer links
//   - Orchestration: Tying webhook payload, filter decision, dispatch and
//     ledger bookkeeping together
//
// All services support context-based cancellation for graceful shutdown.
package services
