// Package jellyfin provides a minimal client for the Jellyfin server API.
//
// It covers the three calls the notifier needs: item metadata lookup
// (used to resolve the owning season of an episode), primary image
// download for message attachments, and web UI deep links.
package jellyfin
