package meta

// APIVersion represents the backend API and major version thereof with which
// this version of the portfolio SDK is compatible.
const APIVersion = "v1"

// TypeMeta represents metadata about a resource type to help clients and
// servers mutually head off potential confusion over types (and versions
// thereof) sent over the wire.
type TypeMeta struct {
	// Kind specifies the type of a serialized resource.
	Kind string `json:"kind,omitempty"`
	// APIVersion specifies the major version of the portfolio API with which
	// the client or server having serialized the resource is compatible.
	APIVersion string `json:"apiVersion,omitempty"`
}

// Paginated represents metadata for ordered, pageable collections of
// resources. The backend returns it wrapped around list results; the SDK also
// synthesizes it when an endpoint returns a bare array.
type Paginated struct {
	// Page is the 1-based index of the page these results represent.
	Page int `json:"page"`
	// PageSize is the maximum number of items per page.
	PageSize int `json:"pageSize"`
	// Total is the total number of items across all pages.
	Total int `json:"total"`
	// TotalPages is the total number of pages.
	TotalPages int `json:"totalPages"`
}
