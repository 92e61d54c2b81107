// AngelaMos | 2026
// handler_test.go

package user_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakerycrew/crew-backend/internal/middleware"
	"github.com/bakerycrew/crew-backend/internal/policy"
	"github.com/bakerycrew/crew-backend/internal/user"
)

func newRouter(svc *user.Service, actor policy.Actor) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithActor(req.Context(), actor)))
		})
	})

	h := user.NewHandler(svc)
	h.RegisterRoutes(r)
	h.RegisterAdminRoutes(r)
	return r
}

func call(
	t *testing.T,
	h http.Handler,
	method, path, body string,
) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec.Code, out
}

func TestUpdateMeEndpoint(t *testing.T) {
	svc, repo := seeded()
	h := newRouter(svc, actorOf(t, repo, "u1"))

	status, body := call(t, h, http.MethodPatch, "/users/me", `{"name":"New Name"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Profile updated.", body["msg"])
	assert.Equal(t, "New Name", body["user"].(map[string]any)["name"])

	status, body = call(t, h, http.MethodPatch, "/users/me", `{"phone":"`+strings.Repeat("9", 21)+`"}`)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "phone", body["errors"].([]any)[0].(map[string]any)["path"])

	status, body = call(t, h, http.MethodPatch, "/users/me", `{"name":"   "}`)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "name", body["errors"].([]any)[0].(map[string]any)["path"])
}

func TestDeleteUserEndpoint(t *testing.T) {
	svc, repo := seeded()

	status, body := call(t, newRouter(svc, actorOf(t, repo, "m1")), http.MethodDelete, "/users/u2", "")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, string(policy.ReasonUserDelete), body["code"])

	status, body = call(t, newRouter(svc, actorOf(t, repo, "m1")), http.MethodDelete, "/users/ghost", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found", body["msg"])

	status, body = call(t, newRouter(svc, actorOf(t, repo, "m1")), http.MethodDelete, "/users/u1", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User deleted.", body["msg"])
}

func TestApproveEndpoint(t *testing.T) {
	svc, repo := seeded()
	repo.users["u2"].IsApproved = false

	status, body := call(t, newRouter(svc, actorOf(t, repo, "u1")), http.MethodPatch, "/admin/users/u2/approve", "")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, string(policy.ReasonUserApprove), body["code"])

	status, body = call(t, newRouter(svc, actorOf(t, repo, "m1")), http.MethodPatch, "/admin/users/u2/approve", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User approved successfully", body["msg"])
	assert.Equal(t, true, body["user"].(map[string]any)["is_approved"])
}

func TestRoleChangeEndpoints(t *testing.T) {
	svc, repo := seeded()
	dev := newRouter(svc, actorOf(t, repo, "dev"))

	status, body := call(t, dev, http.MethodPatch, "/admin/users/u1/assign-manager", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User promoted to manager.", body["msg"])

	status, body = call(t, dev, http.MethodPatch, "/admin/users/u1/assign-manager", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found or not eligible for promotion.", body["msg"])

	status, body = call(t, dev, http.MethodPatch, "/admin/users/u2/revoke-manager", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found or not eligible for demotion.", body["msg"])

	status, body = call(t, newRouter(svc, actorOf(t, repo, "m2")), http.MethodPatch, "/admin/users/u1/revoke-manager", "")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, string(policy.ReasonRoleChange), body["code"])

	status, body = call(t, dev, http.MethodPatch, "/admin/users/u1/revoke-manager", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Manager demoted to user.", body["msg"])
}

func TestListUsersEndpoint(t *testing.T) {
	svc, repo := seeded()

	status, _ := call(t, newRouter(svc, actorOf(t, repo, "u1")), http.MethodGet, "/admin/users", "")
	assert.Equal(t, http.StatusForbidden, status)

	status, body := call(t, newRouter(svc, actorOf(t, repo, "m1")), http.MethodGet, "/admin/users?role=user&page_size=500", "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["total"])
	assert.EqualValues(t, 100, body["page_size"])

	status, body = call(t, newRouter(svc, actorOf(t, repo, "dev")), http.MethodGet, "/admin/users?approved=maybe", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "approved must be true or false", body["msg"])
}
