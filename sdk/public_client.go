package sdk

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"portfolio-gateway/sdk/internal/restmachinery"
)

// PublicExperiencesSelector narrows, orders, and pages requests for published
// experiences. All fields are assumed to have been validated and clamped by
// the caller; the client transmits them as given.
type PublicExperiencesSelector struct {
	// Page is the 1-based page to return.
	Page int
	// PageSize is the maximum number of items to return per page.
	PageSize int
	// Query optionally restricts results to those matching a search term.
	Query string
	// Type optionally restricts results by employment type.
	Type string
	// Location optionally restricts results by location.
	Location string
	// Order optionally orders results by start date: "asc" or "desc".
	Order string
}

// PublicClient is the specialized client for the backend's unauthenticated
// public endpoints.
type PublicClient interface {
	// Experiences returns the published experience timeline, narrowed and
	// paged by the given selector.
	Experiences(context.Context, PublicExperiencesSelector) (ExperienceList, error)
}

type publicClient struct {
	*restmachinery.BaseClient
}

// NewPublicClient returns a specialized client for the backend's public
// endpoints.
func NewPublicClient(apiAddress string, allowInsecure bool) PublicClient {
	return &publicClient{
		BaseClient: &restmachinery.BaseClient{
			APIAddress: apiAddress,
			HTTPClient: &http.Client{
				Transport: &http.Transport{
					TLSClientConfig: &tls.Config{
						InsecureSkipVerify: allowInsecure,
					},
				},
			},
		},
	}
}

func (p *publicClient) Experiences(
	_ context.Context,
	selector PublicExperiencesSelector,
) (ExperienceList, error) {
	experiences := ExperienceList{}
	queryParams := map[string]string{
		"page":     strconv.Itoa(selector.Page),
		"pageSize": strconv.Itoa(selector.PageSize),
	}
	if selector.Query != "" {
		queryParams["q"] = selector.Query
	}
	if selector.Type != "" {
		queryParams["type"] = selector.Type
	}
	if selector.Location != "" {
		queryParams["location"] = selector.Location
	}
	if selector.Order != "" {
		queryParams["order"] = selector.Order
	}
	resp, err := p.SubmitRequest(
		restmachinery.OutboundRequest{
			Method:      http.MethodGet,
			Path:        "v1/experiences",
			QueryParams: queryParams,
			SuccessCode: http.StatusOK,
		},
	)
	if err != nil {
		return experiences, err
	}
	defer resp.Body.Close()
	respBodyBytes, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return experiences, errors.Wrap(err, "error reading response body")
	}
	payloadBytes, err := restmachinery.NormalizeBody(respBodyBytes)
	if err != nil {
		return experiences, err
	}
	itemBytes, pagination, err := restmachinery.NormalizeList(payloadBytes)
	if err != nil {
		return experiences, err
	}
	if err := json.Unmarshal(itemBytes, &experiences.Items); err != nil {
		return experiences, errors.Wrap(err, "error unmarshaling experiences")
	}
	experiences.Paginated = pagination
	return experiences, nil
}
