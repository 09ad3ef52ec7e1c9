package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xeipuuv/gojsonschema"

	"portfolio-gateway/gateway/internal/content"
	"portfolio-gateway/gateway/internal/lib/restmachinery"
	"portfolio-gateway/sdk"
)

var projectSchemaLoader = gojsonschema.NewStringLoader(`{
	"type": "object",
	"required": ["title", "slug"],
	"properties": {
		"id": { "type": "string" },
		"title": { "type": "string", "minLength": 1 },
		"slug": { "type": "string", "minLength": 1 },
		"description": { "type": ["string", "null"] },
		"imageUrl": { "type": ["string", "null"] },
		"liveUrl": { "type": ["string", "null"] },
		"repoUrl": { "type": ["string", "null"] },
		"techStack": { "type": "array", "items": { "type": "string" } },
		"featured": { "type": "boolean" },
		"order": { "type": "integer" },
		"published": { "type": "boolean" }
	}
}`)

type projectsEndpoints struct {
	*restmachinery.BaseEndpoints
	service content.ProjectsService
}

// NewProjectsEndpoints returns the REST endpoints for managing project
// records. Every route sits behind the auth filter.
func NewProjectsEndpoints(
	baseEndpoints *restmachinery.BaseEndpoints,
	service content.ProjectsService,
) restmachinery.Endpoints {
	return &projectsEndpoints{
		BaseEndpoints: baseEndpoints,
		service:       service,
	}
}

func (p *projectsEndpoints) Register(router *mux.Router) {
	// List projects
	router.HandleFunc(
		"/v1/admin/projects",
		p.AuthFilter.Decorate(p.list),
	).Methods(http.MethodGet)

	// Create project
	router.HandleFunc(
		"/v1/admin/projects",
		p.AuthFilter.Decorate(p.create),
	).Methods(http.MethodPost)

	// Get project
	router.HandleFunc(
		"/v1/admin/projects/{id}",
		p.AuthFilter.Decorate(p.get),
	).Methods(http.MethodGet)

	// Update project
	router.HandleFunc(
		"/v1/admin/projects/{id}",
		p.AuthFilter.Decorate(p.update),
	).Methods(http.MethodPut)

	// Delete project
	router.HandleFunc(
		"/v1/admin/projects/{id}",
		p.AuthFilter.Decorate(p.delete),
	).Methods(http.MethodDelete)

	// Publish or unpublish project
	router.HandleFunc(
		"/v1/admin/projects/{id}/publish",
		p.AuthFilter.Decorate(p.setPublished),
	).Methods(http.MethodPatch)
}

func (p *projectsEndpoints) list(w http.ResponseWriter, r *http.Request) {
	experiencesSelector, ok := adminSelector(p.BaseEndpoints, w, r)
	if !ok {
		return
	}
	selector := sdk.ProjectsSelector{
		Page:     experiencesSelector.Page,
		PageSize: experiencesSelector.PageSize,
		Query:    experiencesSelector.Query,
	}
	p.ServeRequest(
		restmachinery.InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				return p.service.List(r.Context(), selector)
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (p *projectsEndpoints) get(w http.ResponseWriter, r *http.Request) {
	p.ServeRequest(
		restmachinery.InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				return p.service.Get(r.Context(), mux.Vars(r)["id"])
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (p *projectsEndpoints) create(w http.ResponseWriter, r *http.Request) {
	project := sdk.Project{}
	p.ServeRequest(
		restmachinery.InboundRequest{
			W:                   w,
			R:                   r,
			ReqBodySchemaLoader: projectSchemaLoader,
			ReqBodyObj:          &project,
			EndpointLogic: func() (interface{}, error) {
				return p.service.Create(r.Context(), project)
			},
			SuccessCode: http.StatusCreated,
		},
	)
}

func (p *projectsEndpoints) update(w http.ResponseWriter, r *http.Request) {
	project := sdk.Project{}
	p.ServeRequest(
		restmachinery.InboundRequest{
			W:                   w,
			R:                   r,
			ReqBodySchemaLoader: projectSchemaLoader,
			ReqBodyObj:          &project,
			EndpointLogic: func() (interface{}, error) {
				return p.service.Update(r.Context(), mux.Vars(r)["id"], project)
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (p *projectsEndpoints) delete(w http.ResponseWriter, r *http.Request) {
	p.ServeRequest(
		restmachinery.InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				return nil, p.service.Delete(r.Context(), mux.Vars(r)["id"])
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (p *projectsEndpoints) setPublished(
	w http.ResponseWriter,
	r *http.Request,
) {
	body := struct {
		Published bool `json:"published"`
	}{}
	p.ServeRequest(
		restmachinery.InboundRequest{
			W:                   w,
			R:                   r,
			ReqBodySchemaLoader: publishSchemaLoader,
			ReqBodyObj:          &body,
			EndpointLogic: func() (interface{}, error) {
				return p.service.SetPublished(
					r.Context(),
					mux.Vars(r)["id"],
					body.Published,
				)
			},
			SuccessCode: http.StatusOK,
		},
	)
}
