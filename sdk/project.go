package sdk

import "portfolio-gateway/sdk/meta"

// Project represents one entry in the project showcase.
type Project struct {
	// ID is the project's immutable identifier, assigned by the backend.
	ID string `json:"id,omitempty"`
	// Title is the project's display name.
	Title string `json:"title"`
	// Slug is the project's URL-safe identifier.
	Slug string `json:"slug"`
	// Description optionally describes the project in prose.
	Description *string `json:"description,omitempty"`
	// ImageURL optionally references a showcase image.
	ImageURL *string `json:"imageUrl,omitempty"`
	// LiveURL optionally references a running deployment.
	LiveURL *string `json:"liveUrl,omitempty"`
	// RepoURL optionally references the project's source repository.
	RepoURL *string `json:"repoUrl,omitempty"`
	// TechStack lists technologies the project is built with.
	TechStack []string `json:"techStack,omitempty"`
	// Featured indicates whether the project is highlighted on the showcase.
	Featured bool `json:"featured"`
	// Order determines relative display position.
	Order int `json:"order"`
	// Published indicates whether the project is publicly visible.
	Published bool `json:"published"`
	// Created is an ISO-8601 timestamp recorded by the backend.
	Created string `json:"createdAt,omitempty"`
	// LastUpdated is an ISO-8601 timestamp recorded by the backend.
	LastUpdated string `json:"updatedAt,omitempty"`
}

// ProjectsSelector narrows and pages requests for projects.
type ProjectsSelector struct {
	// Page is the 1-based page to return. Zero means the first page.
	Page int
	// PageSize is the maximum number of items to return per page. Zero means
	// the server default.
	PageSize int
	// Query optionally restricts results to those matching a search term.
	Query string
}

// ProjectList is an ordered, pageable list of projects.
type ProjectList struct {
	meta.Paginated `json:",inline"`
	// Items is a slice of projects.
	Items []Project `json:"items"`
}
