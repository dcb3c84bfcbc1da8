// Package webextract fetches a single HTML page and extracts a fixed set of
// structured fields from it: title, meta description, body text, links,
// images, headings and card text.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, gin/).
package webextract
