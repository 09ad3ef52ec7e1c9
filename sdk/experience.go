package sdk

import "portfolio-gateway/sdk/meta"

// Experience represents one entry on the experience timeline-- a role held at
// a company, with optional presentation details.
type Experience struct {
	// ID is the experience's immutable identifier, assigned by the backend.
	ID string `json:"id,omitempty"`
	// Company is the name of the employer or client.
	Company string `json:"company"`
	// Role is the title held.
	Role string `json:"role"`
	// CompanyLogoURL optionally references a logo image.
	CompanyLogoURL *string `json:"companyLogoUrl,omitempty"`
	// StartDate is an ISO-8601 date.
	StartDate string `json:"startDate"`
	// EndDate is an ISO-8601 date. Nil means the role is current.
	EndDate *string `json:"endDate,omitempty"`
	// Location optionally names where the role was based.
	Location *string `json:"location,omitempty"`
	// EmploymentType optionally classifies the engagement, e.g. "full-time".
	EmploymentType *string `json:"employmentType,omitempty"`
	// Summary optionally describes the role in prose.
	Summary *string `json:"summary,omitempty"`
	// Highlights lists notable accomplishments.
	Highlights []string `json:"highlights,omitempty"`
	// TechStack lists technologies used in the role.
	TechStack []string `json:"techStack,omitempty"`
	// Order determines relative display position.
	Order int `json:"order"`
	// Published indicates whether the experience is publicly visible.
	Published bool `json:"published"`
	// Created is an ISO-8601 timestamp recorded by the backend.
	Created string `json:"createdAt,omitempty"`
	// LastUpdated is an ISO-8601 timestamp recorded by the backend.
	LastUpdated string `json:"updatedAt,omitempty"`
}

// ExperiencesSelector narrows and pages requests for experiences.
type ExperiencesSelector struct {
	// Page is the 1-based page to return. Zero means the first page.
	Page int
	// PageSize is the maximum number of items to return per page. Zero means
	// the server default.
	PageSize int
	// Query optionally restricts results to those matching a search term.
	Query string
}

// ExperienceList is an ordered, pageable list of experiences.
type ExperienceList struct {
	meta.Paginated `json:",inline"`
	// Items is a slice of experiences.
	Items []Experience `json:"items"`
}
