// Package redirect builds redirect page records for a static site.
//
// A record describes a contentless page served at a source path whose only
// job is to send visitors to a target. Targets are resolved once, when the
// record is built:
//
//   - targets that already look like absolute http(s) URLs are kept verbatim
//   - targets on the configured production host are absolutized by the Site
//   - every other target, relative paths included, is re-rooted at the local
//     development origin so previews never leak a stale production host
//
// Builders are immutable after construction and safe for concurrent use.
package redirect
