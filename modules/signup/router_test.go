package signup_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/modules/signup"
	"github.com/dmitrymomot/formkit/pkg/availability"
	"github.com/dmitrymomot/formkit/pkg/control"
	"github.com/dmitrymomot/formkit/pkg/display"
	"github.com/dmitrymomot/formkit/pkg/form"
)

type client struct {
	t   *testing.T
	srv *httptest.Server
}

func newClient(t *testing.T, checker availability.Checker) *client {
	t.Helper()
	svc := signup.NewService(checker, form.Config{ErrorDisplayMode: display.OnBlurOrSubmit})
	srv := httptest.NewServer(signup.Router(svc, nil))
	t.Cleanup(func() {
		srv.Close()
		_ = svc.Close()
	})
	return &client{t: t, srv: srv}
}

func (c *client) do(method, path string, body any, out any) int {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequestWithContext(context.Background(), method, c.srv.URL+path, &buf)
	require.NoError(c.t, err)
	resp, err := c.srv.Client().Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode != http.StatusNoContent {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (c *client) create() signup.FormView {
	c.t.Helper()
	var v signup.FormView
	require.Equal(c.t, http.StatusCreated, c.do(http.MethodPost, "/?wait=true", nil, &v))
	return v
}

func (c *client) input(v signup.FormView, field string, value any, blur bool, query string) signup.FormView {
	c.t.Helper()
	var out signup.FormView
	code := c.do(http.MethodPatch, "/"+v.ID.String()+"/fields/"+field+"?wait=true"+query,
		map[string]any{"value": value, "blur": blur}, &out)
	require.Equal(c.t, http.StatusOK, code)
	return out
}

func TestRouter_CreateHidesUntouchedErrors(t *testing.T) {
	t.Parallel()

	c := newClient(t, availability.NewMemoryChecker())
	v := c.create()

	assert.Equal(t, display.OnBlurOrSubmit, v.Mode)
	assert.Equal(t, control.StatusInvalid, v.Status)
	assert.False(t, v.Valid)
	assert.Positive(t, v.ErrorCount)
	assert.Len(t, v.Fields, len(signup.Fields))
	for name, f := range v.Fields {
		assert.Empty(t, f.Errors, name)
	}
}

func TestRouter_BlurShowsErrors(t *testing.T) {
	t.Parallel()

	c := newClient(t, availability.NewMemoryChecker())
	v := c.create()

	v = c.input(v, "email", "not-an-email", false, "")
	assert.Empty(t, v.Fields["email"].Errors)
	assert.True(t, v.Fields["email"].Dirty)

	v = c.input(v, "email", "not-an-email", true, "")
	assert.Equal(t, []string{"Email must be a valid email address"}, v.Fields["email"].Errors)
	assert.True(t, v.Fields["email"].Touched)

	v = c.input(v, "email", "jane@gmail.com", true, "")
	assert.Empty(t, v.Fields["email"].Errors)
	assert.Equal(t, []string{"Consider using a work email"}, v.Fields["email"].Warnings)
}

func TestRouter_AsyncUsernameCheck(t *testing.T) {
	t.Parallel()

	c := newClient(t, availability.NewMemoryChecker(availability.WithTaken("admin")))
	v := c.create()

	v = c.input(v, "username", "admin", false, "&display=immediate")
	assert.Equal(t, []string{"Username is already taken"}, v.Fields["username"].Errors)
	assert.False(t, v.Pending)

	v = c.input(v, "username", "jane", false, "&display=immediate")
	assert.Empty(t, v.Fields["username"].Errors)
}

func TestRouter_ConditionalBio(t *testing.T) {
	t.Parallel()

	c := newClient(t, availability.NewMemoryChecker())
	v := c.create()
	require.NotContains(t, v.Fields, "bio")

	v = c.input(v, "seniorRole", true, false, "&display=immediate")
	require.Contains(t, v.Fields, "bio")
	assert.Equal(t, []string{"Bio is required for senior roles"}, v.Fields["bio"].Errors)

	v = c.input(v, "bio", "<b>Ten</b> years of Go", false, "&display=immediate")
	assert.Empty(t, v.Fields["bio"].Errors)
	assert.Equal(t, "Ten years of Go", v.Fields["bio"].Value)

	v = c.input(v, "seniorRole", false, false, "")
	assert.NotContains(t, v.Fields, "bio")
}

func TestRouter_Submit(t *testing.T) {
	t.Parallel()

	checker := availability.NewMemoryChecker(availability.WithTaken("admin"))
	c := newClient(t, checker)
	v := c.create()

	var rejected signup.FormView
	code := c.do(http.MethodPost, "/"+v.ID.String()+"/submit", nil, &rejected)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.True(t, rejected.Submitted)
	assert.Equal(t, "email", rejected.FirstInvalidField)
	assert.Equal(t, []string{"Email is required"}, rejected.Fields["email"].Errors)

	c.input(v, "email", "jane@acme.io", true, "")
	c.input(v, "username", "jane", true, "")
	c.input(v, "confirmPassword", "s3cret-pass", true, "")
	v = c.input(v, "password", "s3cret-pass", true, "")
	require.Empty(t, v.Fields["confirmPassword"].Errors, "confirmation revalidated by the password dependency")

	var accepted signup.FormView
	code = c.do(http.MethodPost, "/"+v.ID.String()+"/submit", nil, &accepted)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, accepted.Valid)
	assert.Zero(t, accepted.ErrorCount)

	taken, err := checker.IsTaken(context.Background(), "jane")
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestRouter_RootRule(t *testing.T) {
	t.Parallel()

	c := newClient(t, availability.NewMemoryChecker())
	v := c.create()

	c.input(v, "username", "samesame1", false, "")
	v = c.input(v, "password", "samesame1", false, "")
	assert.Equal(t, []string{"Username and password must differ"}, v.RootErrors)
	assert.False(t, v.Valid)
}

func TestRouter_Errors(t *testing.T) {
	t.Parallel()

	c := newClient(t, availability.NewMemoryChecker())
	v := c.create()
	id := v.ID.String()

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		code   int
	}{
		{name: "unknown session", method: http.MethodGet, path: "/00000000-0000-0000-0000-000000000000", code: http.StatusNotFound},
		{name: "malformed id", method: http.MethodGet, path: "/not-a-uuid", code: http.StatusNotFound},
		{name: "unknown display mode", method: http.MethodGet, path: "/" + id + "?display=sometimes", code: http.StatusBadRequest},
		{name: "unknown field", method: http.MethodPatch, path: "/" + id + "/fields/age", body: map[string]any{"value": "1"}, code: http.StatusNotFound},
		{name: "unregistered field", method: http.MethodPatch, path: "/" + id + "/fields/bio", body: map[string]any{"value": "x"}, code: http.StatusNotFound},
		{name: "wrong value type", method: http.MethodPatch, path: "/" + id + "/fields/seniorRole", body: map[string]any{"value": "yes"}, code: http.StatusBadRequest},
		{name: "malformed body", method: http.MethodPatch, path: "/" + id + "/fields/email", body: "not an object", code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out map[string]any
			assert.Equal(t, tt.code, c.do(tt.method, tt.path, tt.body, &out))
			assert.NotEmpty(t, out["error"])
		})
	}
}

func TestRouter_Delete(t *testing.T) {
	t.Parallel()

	c := newClient(t, availability.NewMemoryChecker())
	v := c.create()

	assert.Equal(t, http.StatusNoContent, c.do(http.MethodDelete, "/"+v.ID.String(), nil, nil))
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/"+v.ID.String(), nil, nil))
}
