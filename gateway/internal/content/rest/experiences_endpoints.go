package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/xeipuuv/gojsonschema"

	"portfolio-gateway/gateway/internal/content"
	"portfolio-gateway/gateway/internal/lib/restmachinery"
	"portfolio-gateway/sdk"
	"portfolio-gateway/sdk/meta"
)

var experienceSchemaLoader = gojsonschema.NewStringLoader(`{
	"type": "object",
	"required": ["company", "role", "startDate"],
	"properties": {
		"id": { "type": "string" },
		"company": { "type": "string", "minLength": 1 },
		"role": { "type": "string", "minLength": 1 },
		"companyLogoUrl": { "type": ["string", "null"] },
		"startDate": { "type": "string", "minLength": 1 },
		"endDate": { "type": ["string", "null"] },
		"location": { "type": ["string", "null"] },
		"employmentType": { "type": ["string", "null"] },
		"summary": { "type": ["string", "null"] },
		"highlights": { "type": "array", "items": { "type": "string" } },
		"techStack": { "type": "array", "items": { "type": "string" } },
		"order": { "type": "integer" },
		"published": { "type": "boolean" }
	}
}`)

var publishSchemaLoader = gojsonschema.NewStringLoader(`{
	"type": "object",
	"required": ["published"],
	"properties": {
		"published": { "type": "boolean" }
	},
	"additionalProperties": false
}`)

type experiencesEndpoints struct {
	*restmachinery.BaseEndpoints
	service content.ExperiencesService
}

// NewExperiencesEndpoints returns the REST endpoints for managing and
// browsing experience records. Admin routes sit behind the auth filter; the
// public listing does not.
func NewExperiencesEndpoints(
	baseEndpoints *restmachinery.BaseEndpoints,
	service content.ExperiencesService,
) restmachinery.Endpoints {
	return &experiencesEndpoints{
		BaseEndpoints: baseEndpoints,
		service:       service,
	}
}

func (e *experiencesEndpoints) Register(router *mux.Router) {
	// Public listing
	router.HandleFunc(
		"/v1/experiences",
		e.public, // No filters applied to this request
	).Methods(http.MethodGet)

	// List experiences
	router.HandleFunc(
		"/v1/admin/experiences",
		e.AuthFilter.Decorate(e.list),
	).Methods(http.MethodGet)

	// Create experience
	router.HandleFunc(
		"/v1/admin/experiences",
		e.AuthFilter.Decorate(e.create),
	).Methods(http.MethodPost)

	// Get experience
	router.HandleFunc(
		"/v1/admin/experiences/{id}",
		e.AuthFilter.Decorate(e.get),
	).Methods(http.MethodGet)

	// Update experience
	router.HandleFunc(
		"/v1/admin/experiences/{id}",
		e.AuthFilter.Decorate(e.update),
	).Methods(http.MethodPut)

	// Delete experience
	router.HandleFunc(
		"/v1/admin/experiences/{id}",
		e.AuthFilter.Decorate(e.delete),
	).Methods(http.MethodDelete)

	// Publish or unpublish experience
	router.HandleFunc(
		"/v1/admin/experiences/{id}/publish",
		e.AuthFilter.Decorate(e.setPublished),
	).Methods(http.MethodPatch)
}

func (e *experiencesEndpoints) public(w http.ResponseWriter, r *http.Request) {
	selector := sdk.PublicExperiencesSelector{
		Query:    r.URL.Query().Get("q"),
		Type:     r.URL.Query().Get("type"),
		Location: r.URL.Query().Get("location"),
		Order:    r.URL.Query().Get("sort"),
	}
	// Unparseable paging values are simply clamped downstream
	selector.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))         // nolint: errcheck
	selector.PageSize, _ = strconv.Atoi(r.URL.Query().Get("pageSize")) // nolint: errcheck
	e.ServeRequest(
		restmachinery.InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				return e.service.Public(r.Context(), selector)
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (e *experiencesEndpoints) list(w http.ResponseWriter, r *http.Request) {
	selector, ok := adminSelector(e.BaseEndpoints, w, r)
	if !ok {
		return
	}
	e.ServeRequest(
		restmachinery.InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				return e.service.List(r.Context(), selector)
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (e *experiencesEndpoints) get(w http.ResponseWriter, r *http.Request) {
	e.ServeRequest(
		restmachinery.InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				return e.service.Get(r.Context(), mux.Vars(r)["id"])
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (e *experiencesEndpoints) create(w http.ResponseWriter, r *http.Request) {
	experience := sdk.Experience{}
	e.ServeRequest(
		restmachinery.InboundRequest{
			W:                   w,
			R:                   r,
			ReqBodySchemaLoader: experienceSchemaLoader,
			ReqBodyObj:          &experience,
			EndpointLogic: func() (interface{}, error) {
				return e.service.Create(r.Context(), experience)
			},
			SuccessCode: http.StatusCreated,
		},
	)
}

func (e *experiencesEndpoints) update(w http.ResponseWriter, r *http.Request) {
	experience := sdk.Experience{}
	e.ServeRequest(
		restmachinery.InboundRequest{
			W:                   w,
			R:                   r,
			ReqBodySchemaLoader: experienceSchemaLoader,
			ReqBodyObj:          &experience,
			EndpointLogic: func() (interface{}, error) {
				return e.service.Update(r.Context(), mux.Vars(r)["id"], experience)
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (e *experiencesEndpoints) delete(w http.ResponseWriter, r *http.Request) {
	e.ServeRequest(
		restmachinery.InboundRequest{
			W: w,
			R: r,
			EndpointLogic: func() (interface{}, error) {
				return nil, e.service.Delete(r.Context(), mux.Vars(r)["id"])
			},
			SuccessCode: http.StatusOK,
		},
	)
}

func (e *experiencesEndpoints) setPublished(
	w http.ResponseWriter,
	r *http.Request,
) {
	body := struct {
		Published bool `json:"published"`
	}{}
	e.ServeRequest(
		restmachinery.InboundRequest{
			W:                   w,
			R:                   r,
			ReqBodySchemaLoader: publishSchemaLoader,
			ReqBodyObj:          &body,
			EndpointLogic: func() (interface{}, error) {
				return e.service.SetPublished(
					r.Context(),
					mux.Vars(r)["id"],
					body.Published,
				)
			},
			SuccessCode: http.StatusOK,
		},
	)
}

// adminSelector extracts common list paging from a request's query string.
func adminSelector(
	base *restmachinery.BaseEndpoints,
	w http.ResponseWriter,
	r *http.Request,
) (sdk.ExperiencesSelector, bool) {
	selector := sdk.ExperiencesSelector{
		Query: r.URL.Query().Get("q"),
	}
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		var err error
		if selector.Page, err = strconv.Atoi(pageStr); err != nil ||
			selector.Page < 1 {
			base.WriteAPIResponse(
				w,
				http.StatusBadRequest,
				meta.NewErrBadRequest(
					fmt.Sprintf(
						`Invalid value %q for "page" query parameter`,
						pageStr,
					),
				),
			)
			return selector, false
		}
	}
	if pageSizeStr := r.URL.Query().Get("pageSize"); pageSizeStr != "" {
		var err error
		if selector.PageSize, err = strconv.Atoi(pageSizeStr); err != nil ||
			selector.PageSize < 1 || selector.PageSize > 100 {
			base.WriteAPIResponse(
				w,
				http.StatusBadRequest,
				meta.NewErrBadRequest(
					fmt.Sprintf(
						`Invalid value %q for "pageSize" query parameter`,
						pageSizeStr,
					),
				),
			)
			return selector, false
		}
	}
	return selector, true
}
