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

// ProjectsClient is the specialized client for managing projects through the
// backend's admin endpoints.
type ProjectsClient interface {
	// List returns a ProjectList, narrowed and paged by the given selector.
	List(context.Context, ProjectsSelector) (ProjectList, error)
	// Get returns a single project by its identifier.
	Get(ctx context.Context, id string) (Project, error)
	// Create creates a new project and returns it with backend-assigned
	// fields populated.
	Create(context.Context, Project) (Project, error)
	// Update replaces the identified project and returns the updated record.
	Update(ctx context.Context, id string, project Project) (Project, error)
	// Delete deletes a single project by its identifier.
	Delete(ctx context.Context, id string) error
	// SetPublished publishes or unpublishes a single project.
	SetPublished(ctx context.Context, id string, published bool) (Project, error)
}

type projectsClient struct {
	*restmachinery.BaseClient
	session *sessionCookieHolder
}

// NewProjectsClient returns a specialized client for managing projects.
func NewProjectsClient(
	apiAddress string,
	session *sessionCookieHolder,
	allowInsecure bool,
) ProjectsClient {
	return &projectsClient{
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

func (p *projectsClient) List(
	_ context.Context,
	selector ProjectsSelector,
) (ProjectList, error) {
	projects := ProjectList{}
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
	resp, err := p.SubmitRequest(
		restmachinery.OutboundRequest{
			Method:      http.MethodGet,
			Path:        "v1/admin/projects",
			QueryParams: queryParams,
			Cookies:     sessionCookies(p.session),
			SuccessCode: http.StatusOK,
		},
	)
	if err != nil {
		return projects, err
	}
	defer resp.Body.Close()
	respBodyBytes, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return projects, errors.Wrap(err, "error reading response body")
	}
	payloadBytes, err := restmachinery.NormalizeBody(respBodyBytes)
	if err != nil {
		return projects, err
	}
	itemBytes, pagination, err := restmachinery.NormalizeList(payloadBytes)
	if err != nil {
		return projects, err
	}
	if err := json.Unmarshal(itemBytes, &projects.Items); err != nil {
		return projects, errors.Wrap(err, "error unmarshaling projects")
	}
	projects.Paginated = pagination
	return projects, nil
}

func (p *projectsClient) Get(_ context.Context, id string) (Project, error) {
	project := Project{}
	return project, p.ExecuteRequest(
		restmachinery.OutboundRequest{
			Method:      http.MethodGet,
			Path:        fmt.Sprintf("v1/admin/projects/%s", id),
			Cookies:     sessionCookies(p.session),
			SuccessCode: http.StatusOK,
			RespObj:     &project,
		},
	)
}

func (p *projectsClient) Create(
	_ context.Context,
	project Project,
) (Project, error) {
	createdProject := Project{}
	return createdProject, p.ExecuteRequest(
		restmachinery.OutboundRequest{
			Method:      http.MethodPost,
			Path:        "v1/admin/projects",
			Cookies:     sessionCookies(p.session),
			ReqBodyObj:  project,
			SuccessCode: http.StatusCreated,
			RespObj:     &createdProject,
		},
	)
}

func (p *projectsClient) Update(
	_ context.Context,
	id string,
	project Project,
) (Project, error) {
	updatedProject := Project{}
	return updatedProject, p.ExecuteRequest(
		restmachinery.OutboundRequest{
			Method:      http.MethodPut,
			Path:        fmt.Sprintf("v1/admin/projects/%s", id),
			Cookies:     sessionCookies(p.session),
			ReqBodyObj:  project,
			SuccessCode: http.StatusOK,
			RespObj:     &updatedProject,
		},
	)
}

func (p *projectsClient) Delete(_ context.Context, id string) error {
	return p.ExecuteRequest(
		restmachinery.OutboundRequest{
			Method:      http.MethodDelete,
			Path:        fmt.Sprintf("v1/admin/projects/%s", id),
			Cookies:     sessionCookies(p.session),
			SuccessCode: http.StatusOK,
		},
	)
}

func (p *projectsClient) SetPublished(
	_ context.Context,
	id string,
	published bool,
) (Project, error) {
	project := Project{}
	return project, p.ExecuteRequest(
		restmachinery.OutboundRequest{
			Method: http.MethodPatch,
			Path:   fmt.Sprintf("v1/admin/projects/%s/publish", id),
			Cookies: sessionCookies(p.session),
			ReqBodyObj: map[string]bool{
				"published": published,
			},
			SuccessCode: http.StatusOK,
			RespObj:     &project,
		},
	)
}
