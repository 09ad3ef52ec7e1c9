package rest

import (
	"encoding/json"
	"io/ioutil"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"

	"portfolio-gateway/gateway/internal/authn"
	"portfolio-gateway/gateway/internal/lib/restmachinery"
	"portfolio-gateway/sdk/meta"
)

// Request bodies are validated at the gateway's edge before being forwarded
// verbatim. The backend repeats its own validation; this just keeps garbage
// off the wire.
var (
	loginSchemaLoader = gojsonschema.NewStringLoader(`{
		"type": "object",
		"required": ["identifier", "password"],
		"properties": {
			"identifier": { "type": "string", "minLength": 1 },
			"password": { "type": "string", "minLength": 1 }
		},
		"additionalProperties": false
	}`)
	registrationSchemaLoader = gojsonschema.NewStringLoader(`{
		"type": "object",
		"required": ["email", "username", "password", "confirmPassword"],
		"properties": {
			"email": { "type": "string", "minLength": 3 },
			"username": { "type": "string", "minLength": 3 },
			"password": { "type": "string", "minLength": 8 },
			"confirmPassword": { "type": "string", "minLength": 8 }
		},
		"additionalProperties": false
	}`)
	forgotPasswordSchemaLoader = gojsonschema.NewStringLoader(`{
		"type": "object",
		"required": ["email"],
		"properties": {
			"email": { "type": "string", "minLength": 3 }
		},
		"additionalProperties": false
	}`)
)

var genericFailureBody = []byte(
	`{"success":false,"message":"Something went wrong"}`,
)

type sessionsEndpoints struct {
	*restmachinery.BaseEndpoints
	sessionCookieName string
	service           authn.SessionsService
	store             authn.StateStore
}

// NewSessionsEndpoints returns the REST endpoints that relay session
// lifecycle requests to the backend API. Lifecycle requests flow through the
// state store so the process's own auth state tracks the sessions it
// establishes; me is a pure relay. These endpoints are the auth surface
// itself; no guard filter applies to them.
func NewSessionsEndpoints(
	baseEndpoints *restmachinery.BaseEndpoints,
	sessionCookieName string,
	service authn.SessionsService,
	store authn.StateStore,
) restmachinery.Endpoints {
	return &sessionsEndpoints{
		BaseEndpoints:     baseEndpoints,
		sessionCookieName: sessionCookieName,
		service:           service,
		store:             store,
	}
}

func (s *sessionsEndpoints) Register(router *mux.Router) {
	// Log in
	router.HandleFunc(
		"/v1/auth/login",
		s.login,
	).Methods(http.MethodPost)

	// Register a new user
	router.HandleFunc(
		"/v1/auth/register",
		s.register,
	).Methods(http.MethodPost)

	// Request a password reset
	router.HandleFunc(
		"/v1/auth/forgot-password",
		s.forgotPassword,
	).Methods(http.MethodPost)

	// Resolve the current session's user
	router.HandleFunc(
		"/v1/auth/me",
		s.me,
	).Methods(http.MethodGet)

	// Log out
	router.HandleFunc(
		"/v1/auth/logout",
		s.logout,
	).Methods(http.MethodPost)
}

func (s *sessionsEndpoints) login(w http.ResponseWriter, r *http.Request) {
	bodyBytes, ok := s.readAndValidateRawBody(w, r, loginSchemaLoader)
	if !ok {
		return
	}
	resp, err := s.store.Login(r.Context(), bodyBytes)
	s.writeRelayedResponse(w, resp, err)
}

func (s *sessionsEndpoints) register(w http.ResponseWriter, r *http.Request) {
	bodyBytes, ok := s.readAndValidateRawBody(w, r, registrationSchemaLoader)
	if !ok {
		return
	}
	// Password equality isn't expressible in the schema
	passwords := struct {
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}{}
	if err := json.Unmarshal(bodyBytes, &passwords); err != nil {
		log.Println(errors.Wrap(err, "error unmarshaling registration body"))
		s.WriteAPIResponse(
			w,
			http.StatusBadRequest,
			meta.NewErrBadRequest("Could not read request body."),
		)
		return
	}
	if passwords.Password != passwords.ConfirmPassword {
		s.WriteAPIResponse(
			w,
			http.StatusBadRequest,
			meta.NewErrBadRequest("Passwords do not match."),
		)
		return
	}
	resp, err := s.store.Register(r.Context(), bodyBytes)
	s.writeRelayedResponse(w, resp, err)
}

func (s *sessionsEndpoints) forgotPassword(
	w http.ResponseWriter,
	r *http.Request,
) {
	bodyBytes, ok := s.readAndValidateRawBody(w, r, forgotPasswordSchemaLoader)
	if !ok {
		return
	}
	resp, err := s.store.ForgotPassword(r.Context(), bodyBytes)
	s.writeRelayedResponse(w, resp, err)
}

func (s *sessionsEndpoints) me(w http.ResponseWriter, r *http.Request) {
	resp, err := s.service.Me(r.Context(), s.sessionCookie(r))
	s.writeRelayedResponse(w, resp, err)
}

func (s *sessionsEndpoints) logout(w http.ResponseWriter, r *http.Request) {
	resp := s.store.Logout(r.Context(), s.sessionCookie(r))
	s.writeRelayedResponse(w, resp, nil)
}

func (s *sessionsEndpoints) sessionCookie(r *http.Request) *http.Cookie {
	cookie, err := r.Cookie(s.sessionCookieName)
	if err != nil {
		// The only possible error is http.ErrNoCookie
		return nil
	}
	return cookie
}

// readAndValidateRawBody reads and schema-validates a request body without
// unmarshaling it, since relayed bodies are forwarded verbatim.
func (s *sessionsEndpoints) readAndValidateRawBody(
	w http.ResponseWriter,
	r *http.Request,
	bodySchemaLoader gojsonschema.JSONLoader,
) ([]byte, bool) {
	defer r.Body.Close()
	bodyBytes, err := ioutil.ReadAll(r.Body)
	if err != nil {
		log.Println(errors.Wrap(err, "error reading request body"))
		s.WriteAPIResponse(
			w,
			http.StatusBadRequest,
			meta.NewErrBadRequest("Could not read request body."),
		)
		return nil, false
	}
	validationResult, err := gojsonschema.Validate(
		bodySchemaLoader,
		gojsonschema.NewBytesLoader(bodyBytes),
	)
	if err != nil {
		log.Println(errors.Wrap(err, "error validating request body"))
		s.WriteAPIResponse(
			w,
			http.StatusBadRequest,
			meta.NewErrBadRequest("Could not validate request body."),
		)
		return nil, false
	}
	if !validationResult.Valid() {
		verrStrs := make([]string, len(validationResult.Errors()))
		for i, verr := range validationResult.Errors() {
			verrStrs[i] = verr.String()
		}
		s.WriteAPIResponse(
			w,
			http.StatusBadRequest,
			meta.NewErrBadRequest(
				"Request body failed JSON validation",
				verrStrs...,
			),
		)
		return nil, false
	}
	return bodyBytes, true
}

func (s *sessionsEndpoints) writeRelayedResponse(
	w http.ResponseWriter,
	resp authn.RelayedResponse,
	err error,
) {
	if err != nil {
		// Never leak transport detail to the browser
		log.Println(err)
		s.WriteAPIResponse(w, http.StatusInternalServerError, genericFailureBody)
		return
	}
	for _, cookie := range resp.Cookies {
		http.SetCookie(w, cookie)
	}
	s.WriteAPIResponse(w, resp.StatusCode, resp.Body)
}
