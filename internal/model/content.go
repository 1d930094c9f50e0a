package model

import "time"

// ContentRecord is cached landing-page copy for one search keyword.
// At most one record exists per keyword; a save fully replaces the
// previous fields.
type ContentRecord struct {
	Keyword     string    `json:"keyword"`
	Headline    string    `json:"headline"`
	Subheadline string    `json:"subheadline"`
	BodyContent string    `json:"body_content"`
	CTAText     string    `json:"cta_text"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Clone returns a copy of the record.
func (c *ContentRecord) Clone() *ContentRecord {
	cp := *c
	return &cp
}

// GeneratedContent is the full set of dynamic copy produced for a
// keyword, including fields that are rendered but not persisted.
type GeneratedContent struct {
	Headline        string `json:"headline"`
	Subheadline     string `json:"subheadline"`
	BodyContent     string `json:"body_content"`
	CTAText         string `json:"cta_text"`
	MetaDescription string `json:"meta_description"`
}
