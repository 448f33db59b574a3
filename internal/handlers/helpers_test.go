package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/esterlin12/tvplus/internal/auth"
	"github.com/esterlin12/tvplus/internal/middleware"
	"github.com/esterlin12/tvplus/internal/models"
	"github.com/esterlin12/tvplus/internal/repo"
	"github.com/esterlin12/tvplus/internal/service"
	"github.com/go-chi/chi/v5"
)

var (
	userRowColumns    = []string{"id", "username", "email", "password_hash", "is_super_user", "created_at", "updated_at"}
	channelRowColumns = []string{"id", "name", "description", "logo", "urls", "category", "is_active", "created_by", "created_at", "updated_at"}

	alice = &models.User{ID: "u1", Username: "alice", Email: "alice@example.com"}
	bob   = &models.User{ID: "u2", Username: "bob", Email: "bob@example.com"}
	root  = &models.User{ID: "u0", Username: "root", Email: "root@example.com", IsSuperUser: true}
)

// requestWithChiURLParams returns a request with chi route context and URL params set.
func requestWithChiURLParams(method, path string, body []byte, params map[string]string) *http.Request {
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	return r
}

// asUser attaches an authenticated caller, as RequireUser would.
func asUser(r *http.Request, u *models.User) *http.Request {
	return r.WithContext(middleware.WithUser(r.Context(), u))
}

func jsonBody(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func newUserService(db *sql.DB) *service.UserService {
	return service.NewUserService(repo.NewUserRepo(db), auth.NewTokenIssuer([]byte("test-secret")), 30*time.Minute, repo.NewAuditRepo(db), nil)
}

var errDBDown = errors.New("db down")

func newChannelService(db *sql.DB) *service.ChannelService {
	return service.NewChannelService(repo.NewChannelRepo(db), repo.NewAuditRepo(db), nil)
}

func channelRow(rows *sqlmock.Rows, id, owner, urls string) *sqlmock.Rows {
	now := time.Now().UTC()
	return rows.AddRow(id, "News 24", "all news", nil, []byte(urls), "news", true, owner, now, now)
}

func expectAudit(mock sqlmock.Sqlmock, actorID, action, resourceType string, resourceID interface{}) {
	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs(actorID, action, resourceType, resourceID, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var out struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return out.Error
}
