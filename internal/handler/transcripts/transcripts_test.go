package transcripts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"transcript-hub/internal/api"
	"transcript-hub/internal/middleware"
	"transcript-hub/internal/model"
	"transcript-hub/internal/service"
	"transcript-hub/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

type errBinder struct{}

func (errBinder) Bind(any, echo.Context) error { return errors.New("bind") }

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &stubValidator{}
	return e
}

func newPostCtx(e *echo.Echo, claims *service.CustomClaims, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/transcripts", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claims != nil {
		c.Set(middleware.ContextUserKey, claims)
	}
	return c, rec
}

func newListCtx(e *echo.Echo, claims *service.CustomClaims, userID string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/transcripts/"+userID, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/transcripts/:userId")
	c.SetParamNames("userId")
	c.SetParamValues(userID)
	if claims != nil {
		c.Set(middleware.ContextUserKey, claims)
	}
	return c, rec
}

type fixture struct {
	svc     *service.Transcripts
	admin   *service.CustomClaims
	officer *service.CustomClaims
	deaf    *service.CustomClaims
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	s := store.NewMemory()
	mk := func(name string, role model.Role) *service.CustomClaims {
		u, err := s.CreateUser(context.Background(), &model.User{Name: name, Username: name, PasswordHash: "x", Role: role})
		require.NoError(t, err)
		return &service.CustomClaims{ID: u.ID, Name: u.Name, Role: u.Role}
	}
	return fixture{
		svc:     service.NewTranscripts(s),
		admin:   mk("admin", model.RoleAdmin),
		officer: mk("officer", model.RoleOfficer),
		deaf:    mk("deaf", model.RoleDeaf),
	}
}

func decodeTranscript(t *testing.T, rec *httptest.ResponseRecorder) api.TranscriptResponse {
	t.Helper()
	var tr api.TranscriptResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tr))
	return tr
}

func TestCreateTranscriptHandler(t *testing.T) {
	f := newFixture(t)

	// 未驗證
	ctx, rec := newPostCtx(newEcho(), nil, `{"content":"x"}`)
	require.NoError(t, CreateTranscriptHandler(f.svc)(ctx))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// bind error
	e := echo.New()
	e.Binder = errBinder{}
	ctx, rec = newPostCtx(e, f.officer, "")
	require.NoError(t, CreateTranscriptHandler(f.svc)(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// validate error
	e = echo.New()
	e.Validator = &stubValidator{err: errors.New("invalid")}
	ctx, rec = newPostCtx(e, f.officer, `{}`)
	require.NoError(t, CreateTranscriptHandler(f.svc)(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// 空白內容
	ctx, rec = newPostCtx(newEcho(), f.officer, `{"content":"   "}`)
	require.NoError(t, CreateTranscriptHandler(f.svc)(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// officer 指定 deaf 仍寫入自己
	ctx, rec = newPostCtx(newEcho(), f.officer, `{"userId":3,"content":"hello"}`)
	require.NoError(t, CreateTranscriptHandler(f.svc)(ctx))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, f.officer.ID, decodeTranscript(t, rec).UserID)

	// admin 指定擁有者
	ctx, rec = newPostCtx(newEcho(), f.admin, `{"userId":3,"content":"for deaf"}`)
	require.NoError(t, CreateTranscriptHandler(f.svc)(ctx))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, f.deaf.ID, decodeTranscript(t, rec).UserID)

	// admin 指定不存在的使用者
	ctx, rec = newPostCtx(newEcho(), f.admin, `{"userId":99,"content":"x"}`)
	require.NoError(t, CreateTranscriptHandler(f.svc)(ctx))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminCreateTranscriptHandler(t *testing.T) {
	f := newFixture(t)

	ctx, rec := newPostCtx(newEcho(), nil, `{"userId":3,"content":"x"}`)
	require.NoError(t, AdminCreateTranscriptHandler(f.svc)(ctx))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	e := echo.New()
	e.Binder = errBinder{}
	ctx, rec = newPostCtx(e, f.admin, "")
	require.NoError(t, AdminCreateTranscriptHandler(f.svc)(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	e = echo.New()
	e.Validator = &stubValidator{err: errors.New("invalid")}
	ctx, rec = newPostCtx(e, f.admin, `{}`)
	require.NoError(t, AdminCreateTranscriptHandler(f.svc)(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	ctx, rec = newPostCtx(newEcho(), f.admin, `{"userId":3,"content":"note"}`)
	require.NoError(t, AdminCreateTranscriptHandler(f.svc)(ctx))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, f.deaf.ID, decodeTranscript(t, rec).UserID)

	ctx, rec = newPostCtx(newEcho(), f.officer, `{"userId":3,"content":"note"}`)
	require.NoError(t, AdminCreateTranscriptHandler(f.svc)(ctx))
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListTranscriptsHandler(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Create(context.Background(), f.deaf, 0, "one")
	require.NoError(t, err)

	ctx, rec := newListCtx(newEcho(), nil, "3")
	require.NoError(t, ListTranscriptsHandler(f.svc)(ctx))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	ctx, rec = newListCtx(newEcho(), f.deaf, "abc")
	require.NoError(t, ListTranscriptsHandler(f.svc)(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	ctx, rec = newListCtx(newEcho(), f.deaf, "3")
	require.NoError(t, ListTranscriptsHandler(f.svc)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	var list []api.TranscriptResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, "one", list[0].Content)

	ctx, rec = newListCtx(newEcho(), f.officer, "3")
	require.NoError(t, ListTranscriptsHandler(f.svc)(ctx))
	require.Equal(t, http.StatusForbidden, rec.Code)

	ctx, rec = newListCtx(newEcho(), f.admin, "3")
	require.NoError(t, ListTranscriptsHandler(f.svc)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)

	// 沒有資料時回傳 []
	ctx, rec = newListCtx(newEcho(), f.officer, "2")
	require.NoError(t, ListTranscriptsHandler(f.svc)(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}
