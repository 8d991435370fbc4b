// Package wixport migrates blog content out of Wix-hosted sites. It
// discovers post URLs from listing pages, extracts structured fields from
// each post's rendered markup, normalizes the Wix-specific HTML into a
// portable fragment, and serializes the result as a WordPress (WXR) import
// file.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, sqlite/, etree/).
package wixport
