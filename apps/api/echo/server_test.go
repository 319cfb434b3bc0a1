package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JithuMorrison/OneStop-Web-sub001/core"
	"github.com/JithuMorrison/OneStop-Web-sub001/core/announcement"
	"github.com/JithuMorrison/OneStop-Web-sub001/core/grade"
	emailsvc "github.com/JithuMorrison/OneStop-Web-sub001/services/email"
	inmemdb "github.com/JithuMorrison/OneStop-Web-sub001/storage/database/inmem"
	testutil "github.com/JithuMorrison/OneStop-Web-sub001/tests"
)

type httpErr struct {
	Error string `json:"error"`
}

type testApp struct {
	conf   *core.Config
	server *Server
	repo   announcement.Repository
	mail   *emailsvc.ConsoleServiceMock
}

func setup(t *testing.T) *testApp {
	t.Helper()

	conf := core.NewTestConfig()
	logger := testutil.NewLogger(conf)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	announcement.InitValidators(validate, translator)

	repo := inmemdb.NewAnnouncementRepository(inmemdb.Open())
	mailSvc := emailsvc.NewConsoleServiceMock(logger, conf)

	server := NewServer(ServerDeps{
		Conf:            conf,
		Logger:          logger,
		AnnouncementSvc: announcement.NewService(repo, mailSvc, logger, conf),
		GradeScale:      grade.DefaultScale(),
		Validate:        validate,
		Translator:      translator,
	})
	t.Cleanup(func() { _ = server.Close() })

	return &testApp{conf: conf, server: server, repo: repo, mail: mailSvc}
}

func (app *testApp) token(t *testing.T, roles ...string) string {
	t.Helper()
	claims := NewClaims(core.Identity{ID: "u-1", Username: "jdoe", Email: "jdoe@test.local"}, roles, app.conf)
	token, err := GenerateToken(claims, app.conf)
	require.NoError(t, err)
	return token
}

func (app *testApp) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.server.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestHome(t *testing.T) {
	app := setup(t)
	rec := app.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to OneStop API!", rec.Body.String())
}

func TestAuth(t *testing.T) {
	app := setup(t)

	tests := []struct {
		name     string
		token    string
		wantCode int
		wantErr  string
	}{
		{name: "missing token", wantCode: http.StatusUnauthorized, wantErr: "missing or malformed jwt"},
		{name: "bad signature", token: "a.b.c", wantCode: http.StatusUnauthorized, wantErr: "invalid or expired jwt"},
		{name: "valid token", token: app.token(t), wantCode: http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := app.do(http.MethodGet, "/v1/announcements", tc.token, nil)
			assert.Equal(t, tc.wantCode, rec.Code)
			if tc.wantErr != "" {
				var got httpErr
				decode(t, rec, &got)
				assert.Equal(t, tc.wantErr, got.Error)
			}
		})
	}
}

func TestClaims(t *testing.T) {
	tests := []struct {
		roles []string
		admin bool
	}{
		{roles: nil, admin: false},
		{roles: []string{"student"}, admin: false},
		{roles: []string{"student", "admin:announcements"}, admin: true},
		{roles: []string{"administrator"}, admin: false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.admin, Claims{Roles: tc.roles}.IsAdmin(), "%v", tc.roles)
	}
}
