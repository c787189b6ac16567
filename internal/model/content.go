package model

import "time"

// Content is a CMS block rendered somewhere on the site. Identified by a
// location (page) and slot within it.
type Content struct {
	ID          int64     `json:"id,omitempty"`
	Location    string    `json:"location"`
	Slot        string    `json:"slot"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	ImageURL    string    `json:"image_url"`
	IsPublished bool      `json:"is_published"`
	IsDeleted   bool      `json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
}

// ContentListOptions carries filter and pagination parameters for listing
// content blocks.
type ContentListOptions struct {
	Location       string
	PublishedOnly  bool
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// ContentUpdate holds the mutable fields of a content block for PATCH
// operations. Nil pointers mean "leave unchanged".
type ContentUpdate struct {
	Location    *string `json:"location,omitempty"`
	Slot        *string `json:"slot,omitempty"`
	Title       *string `json:"title,omitempty"`
	Body        *string `json:"body,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	IsPublished *bool   `json:"is_published,omitempty"`
}
