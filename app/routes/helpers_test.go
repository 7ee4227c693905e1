package routes

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"inkwell/config"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// newTestServer spins up the full stack over an in-memory Badger DB, with
// templates and static files loaded from the repository root.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// Built literally so ambient INKWELL_* variables cannot change the
	// pagination fixtures.
	cfg := &config.Config{
		Addr:       ":0",
		Env:        "production",
		PageSize:   5,
		CookieName: "inkwell_session",
		SessionTTL: time.Hour,
	}

	router := SetupWithPath(db, cfg, zerolog.Nop(), "../..")
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

// newClient returns a cookie-carrying client that does not follow
// redirects, so tests can assert on them.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func get(t *testing.T, client *http.Client, serverURL, path string) *http.Response {
	t.Helper()
	resp, err := client.Get(serverURL + path)
	require.NoError(t, err)
	return resp
}

func postForm(t *testing.T, client *http.Client, serverURL, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := client.Post(serverURL+path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	return resp
}

func del(t *testing.T, client *http.Client, serverURL, path string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodDelete, serverURL+path, nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

// registerAndLogin creates an account and signs the client in.
func registerAndLogin(t *testing.T, client *http.Client, serverURL, email, username, password string) {
	t.Helper()

	resp := postForm(t, client, serverURL, "/users/register", url.Values{
		"email":     {email},
		"username":  {username},
		"password":  {password},
		"password2": {password},
	})
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode, "registration should redirect")

	resp = postForm(t, client, serverURL, "/users/login", url.Values{
		"email":    {email},
		"password": {password},
	})
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode, "login should redirect")
	require.Equal(t, "/", resp.Header.Get("Location"))
}

// createPost submits the create form and returns the new post's path.
func createPost(t *testing.T, client *http.Client, serverURL, title, content, visibility string) string {
	t.Helper()

	resp := postForm(t, client, serverURL, "/catalog/blog/create", url.Values{
		"title":      {title},
		"content":    {content},
		"visibility": {visibility},
	})
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode, "create should redirect to the new post")

	location := resp.Header.Get("Location")
	require.True(t, strings.HasPrefix(location, "/catalog/blog/"), "unexpected redirect %q", location)
	return location
}
