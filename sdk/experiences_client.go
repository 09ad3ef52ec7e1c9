package sdk

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"portfolio-gateway/sdk/internal/restmachinery"
)

// ExperiencesClient is the specialized client for managing experiences
// through the backend's admin endpoints.
type ExperiencesClient interface {
	// List returns an ExperienceList, narrowed and paged by the given
	// selector.
	List(context.Context, ExperiencesSelector) (ExperienceList, error)
	// Get returns a single experience by its identifier.
	Get(ctx context.Context, id string) (Experience, error)
	// Create creates a new experience and returns it with backend-assigned
	// fields populated.
	Create(context.Context, Experience) (Experience, error)
	// Update replaces the identified experience and returns the updated
	// record.
	Update(ctx context.Context, id string, experience Experience) (Experience, error)
	// Delete deletes a single experience by its identifier.
	Delete(ctx context.Context, id string) error
	// SetPublished publishes or unpublishes a single experience.
	SetPublished(ctx context.Context, id string, published bool) (Experience, error)
}

type experiencesClient struct {
	*restmachinery.BaseClient
	session *sessionCookieHolder
}

// NewExperiencesClient returns a specialized client for managing experiences.
func NewExperiencesClient(
	apiAddress string,
	session *sessionCookieHolder,
	allowInsecure bool,
) ExperiencesClient {
	return &experiencesClient{
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
		session: session,
	}
}

func (e *experiencesClient) List(
	_ context.Context,
	selector ExperiencesSelector,
) (ExperienceList, error) {
	experiences := ExperienceList{}
	queryParams := map[string]string{}
	if selector.Page > 0 {
		queryParams["page"] = strconv.Itoa(selector.Page)
	}
	if selector.PageSize > 0 {
		queryParams["pageSize"] = strconv.Itoa(selector.PageSize)
	}
	if selector.Query != "" {
		queryParams["q"] = selector.Query
	}
	resp, err := e.SubmitRequest(
		restmachinery.OutboundRequest{
			Method:      http.MethodGet,
			Path:        "v1/admin/experiences",
			QueryParams: queryParams,
			Cookies:     sessionCookies(e.session),
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

func (e *experiencesClient) Get(
	_ context.Context,
	id string,
) (Experience, error) {
	experience := Experience{}
	return experience, e.ExecuteRequest(
		restmachinery.OutboundRequest{
			Method:      http.MethodGet,
			Path:        fmt.Sprintf("v1/admin/experiences/%s", id),
			Cookies:     sessionCookies(e.session),
			SuccessCode: http.StatusOK,
			RespObj:     &experience,
		},
	)
}

func (e *experiencesClient) Create(
	_ context.Context,
	experience Experience,
) (Experience, error) {
	createdExperience := Experience{}
	return createdExperience, e.ExecuteRequest(
		restmachinery.OutboundRequest{
			Method:      http.MethodPost,
			Path:        "v1/admin/experiences",
			Cookies:     sessionCookies(e.session),
			ReqBodyObj:  experience,
			SuccessCode: http.StatusCreated,
			RespObj:     &createdExperience,
		},
	)
}

func (e *experiencesClient) Update(
	_ context.Context,
	id string,
	experience Experience,
) (Experience, error) {
	updatedExperience := Experience{}
	return updatedExperience, e.ExecuteRequest(
		restmachinery.OutboundRequest{
			Method:      http.MethodPut,
			Path:        fmt.Sprintf("v1/admin/experiences/%s", id),
			Cookies:     sessionCookies(e.session),
			ReqBodyObj:  experience,
			SuccessCode: http.StatusOK,
			RespObj:     &updatedExperience,
		},
	)
}

func (e *experiencesClient) Delete(_ context.Context, id string) error {
	return e.ExecuteRequest(
		restmachinery.OutboundRequest{
			Method:      http.MethodDelete,
			Path:        fmt.Sprintf("v1/admin/experiences/%s", id),
			Cookies:     sessionCookies(e.session),
			SuccessCode: http.StatusOK,
		},
	)
}

func (e *experiencesClient) SetPublished(
	_ context.Context,
	id string,
	published bool,
) (Experience, error) {
	experience := Experience{}
	return experience, e.ExecuteRequest(
		restmachinery.OutboundRequest{
			Method: http.MethodPatch,
			Path:   fmt.Sprintf("v1/admin/experiences/%s/publish", id),
			Cookies: sessionCookies(e.session),
			ReqBodyObj: map[string]bool{
				"published": published,
			},
			SuccessCode: http.StatusOK,
			RespObj:     &experience,
		},
	)
}

// sessionCookies adapts the shared session cookie, which may be absent, into
// the zero-or-one cookies of an outbound request.
func sessionCookies(session *sessionCookieHolder) []*http.Cookie {
	if cookie := session.get(); cookie != nil {
		return []*http.Cookie{cookie}
	}
	return nil
}
