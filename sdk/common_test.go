package sdk

import (
	"crypto/tls"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"portfolio-gateway/sdk/internal/restmachinery"
)

const (
	testAPIAddress          = "localhost:8080"
	testSessionCookieValue  = "11235813213455"
	testClientAllowInsecure = true
)

func testSession() *sessionCookieHolder {
	session := &sessionCookieHolder{
		cookieName: DefaultSessionCookieName,
	}
	session.set(testSessionCookieValue)
	return session
}

func requireBaseClient(t *testing.T, baseClient *restmachinery.BaseClient) {
	require.Equal(t, testAPIAddress, baseClient.APIAddress)
	require.IsType(t, &http.Client{}, baseClient.HTTPClient)
	require.IsType(t, &http.Transport{}, baseClient.HTTPClient.Transport)
	require.IsType(
		t,
		&tls.Config{},
		baseClient.HTTPClient.Transport.(*http.Transport).TLSClientConfig,
	)
	require.Equal(
		t,
		testClientAllowInsecure,
		baseClient.HTTPClient.Transport.(*http.Transport).TLSClientConfig.InsecureSkipVerify, // nolint: lll
	)
}

func requireSessionCookie(t *testing.T, r *http.Request) {
	cookie, err := r.Cookie(DefaultSessionCookieName)
	require.NoError(t, err)
	require.Equal(t, testSessionCookieValue, cookie.Value)
}

func TestNewClient(t *testing.T) {
	c := NewClient(testAPIAddress, "", testClientAllowInsecure)
	require.IsType(t, &client{}, c)
	require.NotNil(t, c.Auth())
	require.NotNil(t, c.Experiences())
	require.NotNil(t, c.Projects())
	require.NotNil(t, c.Public())
	// All the specialized clients share one session
	require.Same(
		t,
		c.(*client).authClient.(*authClient).session,
		c.(*client).experiencesClient.(*experiencesClient).session,
	)
	require.Same(
		t,
		c.(*client).authClient.(*authClient).session,
		c.(*client).projectsClient.(*projectsClient).session,
	)
	c.Auth().SetSessionCookieValue("foo")
	require.Equal(t, "foo", c.Auth().SessionCookieValue())
}
