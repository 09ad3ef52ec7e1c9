package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"portfolio-gateway/sdk/meta"
)

const testExperienceID = "0b4e6e3b-29c9-47a9-aa52-7e2a43a8d11d"

func TestNewExperiencesClient(t *testing.T) {
	client := NewExperiencesClient(
		testAPIAddress,
		testSession(),
		testClientAllowInsecure,
	)
	require.IsType(t, &experiencesClient{}, client)
	requireBaseClient(t, client.(*experiencesClient).BaseClient)
}

func TestExperiencesClientList(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodGet, r.Method)
				require.Equal(t, "/v1/admin/experiences", r.URL.Path)
				requireSessionCookie(t, r)
				require.Equal(t, "2", r.URL.Query().Get("page"))
				require.Equal(t, "10", r.URL.Query().Get("pageSize"))
				require.Equal(t, "acme", r.URL.Query().Get("q"))
				fmt.Fprintf(
					w,
					`{"success":true,"data":{"page":2,"pageSize":10,"total":11,"totalPages":2,"items":[{"id":%q,"company":"Acme"}]}}`, // nolint: lll
					testExperienceID,
				)
			},
		),
	)
	defer server.Close()
	client := NewExperiencesClient(
		server.URL,
		testSession(),
		testClientAllowInsecure,
	)
	experiences, err := client.List(
		context.Background(),
		ExperiencesSelector{
			Page:     2,
			PageSize: 10,
			Query:    "acme",
		},
	)
	require.NoError(t, err)
	require.Equal(t, 2, experiences.Page)
	require.Equal(t, 11, experiences.Total)
	require.Len(t, experiences.Items, 1)
	require.Equal(t, testExperienceID, experiences.Items[0].ID)
	require.Equal(t, "Acme", experiences.Items[0].Company)
}

func TestExperiencesClientListWithBareArrayResponse(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprintf(
					w,
					`{"success":true,"data":[{"id":%q,"company":"Acme"},{"id":"deadbeef","company":"Initech"}]}`, // nolint: lll
					testExperienceID,
				)
			},
		),
	)
	defer server.Close()
	client := NewExperiencesClient(
		server.URL,
		testSession(),
		testClientAllowInsecure,
	)
	experiences, err := client.List(context.Background(), ExperiencesSelector{})
	require.NoError(t, err)
	// An unpaginated response is normalized to a single page
	require.Equal(t, 1, experiences.Page)
	require.Equal(t, 2, experiences.Total)
	require.Equal(t, 1, experiences.TotalPages)
	require.Len(t, experiences.Items, 2)
}

func TestExperiencesClientGet(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodGet, r.Method)
				require.Equal(
					t,
					fmt.Sprintf("/v1/admin/experiences/%s", testExperienceID),
					r.URL.Path,
				)
				requireSessionCookie(t, r)
				fmt.Fprintf(
					w,
					`{"success":true,"data":{"id":%q,"company":"Acme","role":"Engineer"}}`, // nolint: lll
					testExperienceID,
				)
			},
		),
	)
	defer server.Close()
	client := NewExperiencesClient(
		server.URL,
		testSession(),
		testClientAllowInsecure,
	)
	experience, err := client.Get(context.Background(), testExperienceID)
	require.NoError(t, err)
	require.Equal(t, testExperienceID, experience.ID)
	require.Equal(t, "Engineer", experience.Role)
}

func TestExperiencesClientGetNonExistent(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprintln(
					w,
					`{"success":false,"message":"Experience not found"}`,
				)
			},
		),
	)
	defer server.Close()
	client := NewExperiencesClient(
		server.URL,
		testSession(),
		testClientAllowInsecure,
	)
	_, err := client.Get(context.Background(), testExperienceID)
	require.Error(t, err)
	require.IsType(t, &meta.ErrNotFound{}, err)
}

func TestExperiencesClientCreate(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				defer r.Body.Close()
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/v1/admin/experiences", r.URL.Path)
				requireSessionCookie(t, r)
				experience := Experience{}
				err := json.NewDecoder(r.Body).Decode(&experience)
				require.NoError(t, err)
				require.Equal(t, "Acme", experience.Company)
				experience.ID = testExperienceID
				w.WriteHeader(http.StatusCreated)
				responseBody := struct {
					Success bool       `json:"success"`
					Data    Experience `json:"data"`
				}{
					Success: true,
					Data:    experience,
				}
				err = json.NewEncoder(w).Encode(responseBody)
				require.NoError(t, err)
			},
		),
	)
	defer server.Close()
	client := NewExperiencesClient(
		server.URL,
		testSession(),
		testClientAllowInsecure,
	)
	experience, err := client.Create(
		context.Background(),
		Experience{
			Company: "Acme",
			Role:    "Engineer",
		},
	)
	require.NoError(t, err)
	require.Equal(t, testExperienceID, experience.ID)
}

func TestExperiencesClientUpdate(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPut, r.Method)
				require.Equal(
					t,
					fmt.Sprintf("/v1/admin/experiences/%s", testExperienceID),
					r.URL.Path,
				)
				requireSessionCookie(t, r)
				fmt.Fprintf(
					w,
					`{"success":true,"data":{"id":%q,"company":"Initech"}}`,
					testExperienceID,
				)
			},
		),
	)
	defer server.Close()
	client := NewExperiencesClient(
		server.URL,
		testSession(),
		testClientAllowInsecure,
	)
	experience, err := client.Update(
		context.Background(),
		testExperienceID,
		Experience{Company: "Initech"},
	)
	require.NoError(t, err)
	require.Equal(t, "Initech", experience.Company)
}

func TestExperiencesClientDelete(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodDelete, r.Method)
				require.Equal(
					t,
					fmt.Sprintf("/v1/admin/experiences/%s", testExperienceID),
					r.URL.Path,
				)
				requireSessionCookie(t, r)
				fmt.Fprintln(w, `{"success":true,"message":"Deleted"}`)
			},
		),
	)
	defer server.Close()
	client := NewExperiencesClient(
		server.URL,
		testSession(),
		testClientAllowInsecure,
	)
	err := client.Delete(context.Background(), testExperienceID)
	require.NoError(t, err)
}

func TestExperiencesClientSetPublished(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				defer r.Body.Close()
				require.Equal(t, http.MethodPatch, r.Method)
				require.Equal(
					t,
					fmt.Sprintf(
						"/v1/admin/experiences/%s/publish",
						testExperienceID,
					),
					r.URL.Path,
				)
				requireSessionCookie(t, r)
				body := map[string]bool{}
				err := json.NewDecoder(r.Body).Decode(&body)
				require.NoError(t, err)
				require.True(t, body["published"])
				fmt.Fprintf(
					w,
					`{"success":true,"data":{"id":%q,"published":true}}`,
					testExperienceID,
				)
			},
		),
	)
	defer server.Close()
	client := NewExperiencesClient(
		server.URL,
		testSession(),
		testClientAllowInsecure,
	)
	experience, err := client.SetPublished(
		context.Background(),
		testExperienceID,
		true,
	)
	require.NoError(t, err)
	require.True(t, experience.Published)
}

func TestExperiencesClientWithoutSession(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprintln(
					w,
					`{"success":false,"message":"Authentication required"}`,
				)
			},
		),
	)
	defer server.Close()
	session := &sessionCookieHolder{cookieName: DefaultSessionCookieName}
	client := NewExperiencesClient(server.URL, session, testClientAllowInsecure)
	_, err := client.List(context.Background(), ExperiencesSelector{})
	require.Error(t, err)
	require.IsType(t, &meta.ErrAuthentication{}, err)
	require.Contains(t, err.Error(), "Authentication required")
}
