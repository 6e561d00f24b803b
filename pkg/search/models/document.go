// Package models defines the OpenSearch document and query shapes used to
// index resolved citations for cross-document lookup (spec §B).
package models

import "time"

// CitationDocument is one indexed occurrence of a citation inside a stored
// document. The index holds one CitationDocument per (document id,
// citation span), so a single resource (e.g. 410 U.S. 113) can have many
// documents pointing back to it.
type CitationDocument struct {
	ID           string    `json:"id"`
	DocumentID   string    `json:"document_id"`
	ResourceKey  string    `json:"resource_key"`
	Variant      string    `json:"variant"`
	CaseName     string    `json:"case_name,omitempty"`
	Volume       string    `json:"volume,omitempty"`
	Reporter     string    `json:"reporter,omitempty"`
	Page         string    `json:"page,omitempty"`
	Court        string    `json:"court,omitempty"`
	Year         int       `json:"year,omitempty"`
	PinCite      string    `json:"pin_cite,omitempty"`
	MatchedText  string    `json:"matched_text"`
	SpanStart    int       `json:"span_start"`
	SpanEnd      int       `json:"span_end"`
	IndexedAt    time.Time `json:"indexed_at"`
}
