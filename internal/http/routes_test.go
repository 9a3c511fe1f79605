package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/zenstudio/booking-api/internal/domain/model"
	apperrors "github.com/zenstudio/booking-api/internal/errors"
	"github.com/zenstudio/booking-api/internal/mocks"
	"github.com/zenstudio/booking-api/internal/service"
)

const (
	routerTestPassword = "test!1234"
	routerUserID       = "11111111-1111-1111-1111-111111111111"
	routerAdminID      = "22222222-2222-2222-2222-222222222222"
	routerOtherUserID  = "55555555-5555-5555-5555-555555555555"
	routerSessionID    = "33333333-3333-3333-3333-333333333333"
	routerTeacherID    = "44444444-4444-4444-4444-444444444444"
)

type routerFixture struct {
	handler  http.Handler
	users    *mocks.MockUserRepository
	sessions *mocks.MockSessionRepository
	teachers *mocks.MockTeacherRepository
	tokens   *service.TokenService
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	sessions := mocks.NewMockSessionRepository(ctrl)
	teachers := mocks.NewMockTeacherRepository(ctrl)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := service.NewTokenService(service.TokenServiceOptions{
		Secret: []byte("router-test-secret"),
		TTL:    time.Hour,
	})
	auth := service.NewAuthService(service.AuthServiceOptions{
		Users:      users,
		Tokens:     tokens,
		BcryptCost: bcrypt.MinCost,
		Logger:     logger,
	})

	handler := NewRouter(RouterServices{
		Auth: auth,
		Sessions: service.NewSessionService(service.SessionServiceOptions{
			Sessions: sessions,
			Users:    users,
			Logger:   logger,
		}),
		Teachers: service.NewTeacherService(teachers),
		Users:    service.NewUserService(service.UserServiceOptions{Users: users, Logger: logger}),
		Logger:   logger,
	})

	return &routerFixture{
		handler:  handler,
		users:    users,
		sessions: sessions,
		teachers: teachers,
		tokens:   tokens,
	}
}

func routerUser(t *testing.T, id string, admin bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(routerTestPassword), bcrypt.MinCost)
	require.NoError(t, err)
	return &model.User{
		ID:        id,
		Email:     id + "@studio.test",
		FirstName: "Margot",
		LastName:  "Delahaye",
		Password:  string(hash),
		Admin:     admin,
	}
}

// loginAs issues a real token and wires the repository lookup the auth
// middleware performs on every request.
func (f *routerFixture) loginAs(t *testing.T, user *model.User) string {
	t.Helper()
	f.users.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil).AnyTimes()
	token, err := f.tokens.Issue(user.ID)
	require.NoError(t, err)
	return token
}

func (f *routerFixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_Login(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)
	user := routerUser(t, routerUserID, false)
	f.users.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)

	rec := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    user.Email,
		"password": routerTestPassword,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Token    string `json:"token"`
		Type     string `json:"type"`
		ID       string `json:"id"`
		Username string `json:"username"`
		Admin    bool   `json:"admin"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "Bearer", body.Type)
	assert.Equal(t, user.ID, body.ID)
	assert.Equal(t, user.Email, body.Username)
	assert.False(t, body.Admin)
	assert.NotContains(t, rec.Body.String(), user.Password)
}

func TestRouter_LoginWrongPassword(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)
	user := routerUser(t, routerUserID, false)
	f.users.EXPECT().GetByEmail(gomock.Any(), user.Email).Return(user, nil)

	rec := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    user.Email,
		"password": "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_credentials")
}

func TestRouter_Register(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)
	f.users.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req *model.CreateUserRequest, hash string) (*model.User, error) {
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(routerTestPassword)))
			return &model.User{ID: "user-new", Email: req.Email}, nil
		})

	rec := f.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":     "new@studio.test",
		"firstName": "Hélène",
		"lastName":  "Thiercelin",
		"password":  routerTestPassword,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"User registered successfully!"}`, rec.Body.String())
}

func TestRouter_RegisterInvalidEmail(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":     "not-an-email",
		"firstName": "Margot",
		"lastName":  "Delahaye",
		"password":  routerTestPassword,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email")
}

func TestRouter_SessionsRequireAuth(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/api/session", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_ListSessions(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)
	token := f.loginAs(t, routerUser(t, routerUserID, false))
	f.sessions.EXPECT().ListAll(gomock.Any()).Return([]*model.Session{
		{ID: routerSessionID, Name: "Morning flow", Users: []string{routerUserID}},
	}, nil)

	rec := f.do(t, http.MethodGet, "/api/session", token, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Morning flow")
}

func TestRouter_CreateSessionForbiddenForNonAdmin(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)
	token := f.loginAs(t, routerUser(t, routerUserID, false))

	rec := f.do(t, http.MethodPost, "/api/session", token, map[string]any{
		"name":       "Morning flow",
		"date":       time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		"teacher_id": routerTeacherID,
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_CreateSessionAsAdmin(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)
	token := f.loginAs(t, routerUser(t, routerAdminID, true))
	f.sessions.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req *model.CreateSessionRequest) (*model.Session, error) {
			return &model.Session{
				ID:        routerSessionID,
				Name:      req.Name,
				Date:      req.Date,
				TeacherID: req.TeacherID,
				Users:     []string{},
			}, nil
		})

	rec := f.do(t, http.MethodPost, "/api/session", token, map[string]any{
		"name":       "Morning flow",
		"date":       time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		"teacher_id": routerTeacherID,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var sess model.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
	assert.Equal(t, routerSessionID, sess.ID)
	assert.NotNil(t, sess.Users)
	assert.Empty(t, sess.Users)
}

// TestRouter_CreateSessionWithRosterField posts the payload shape the web
// client sends, where the roster field is always present.
func TestRouter_CreateSessionWithRosterField(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)
	token := f.loginAs(t, routerUser(t, routerAdminID, true))
	f.sessions.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req *model.CreateSessionRequest) (*model.Session, error) {
			assert.Equal(t, []string{routerUserID}, req.Users)
			return &model.Session{
				ID:        routerSessionID,
				Name:      req.Name,
				Date:      req.Date,
				TeacherID: req.TeacherID,
				Users:     req.Users,
			}, nil
		})

	rec := f.do(t, http.MethodPost, "/api/session", token, map[string]any{
		"name":        "Morning flow",
		"date":        time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		"teacher_id":  routerTeacherID,
		"description": "gentle start",
		"users":       []string{routerUserID},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var sess model.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
	assert.Equal(t, []string{routerUserID}, sess.Users)
}

// TestRouter_UpdateSessionWithIDInBody mirrors the web client echoing the
// session id inside the payload. The path id wins.
func TestRouter_UpdateSessionWithIDInBody(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)
	token := f.loginAs(t, routerUser(t, routerAdminID, true))
	f.sessions.EXPECT().
		Update(gomock.Any(), routerSessionID, gomock.Any()).
		DoAndReturn(func(_ any, id string, req *model.UpdateSessionRequest) (*model.Session, error) {
			return &model.Session{
				ID:        id,
				Name:      req.Name,
				Date:      req.Date,
				TeacherID: req.TeacherID,
				Users:     []string{},
			}, nil
		})

	rec := f.do(t, http.MethodPut, "/api/session/"+routerSessionID, token, map[string]any{
		"id":         "99999999-9999-9999-9999-999999999999",
		"name":       "Evening flow",
		"date":       time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC),
		"teacher_id": routerTeacherID,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var sess model.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
	assert.Equal(t, routerSessionID, sess.ID)
}

func TestRouter_DeleteUnknownSession(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)
	token := f.loginAs(t, routerUser(t, routerAdminID, true))
	f.sessions.EXPECT().Delete(gomock.Any(), routerSessionID).Return(false, nil)

	rec := f.do(t, http.MethodDelete, "/api/session/"+routerSessionID, token, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Participate(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)
	user := routerUser(t, routerUserID, false)
	token := f.loginAs(t, user)

	empty := &model.Session{ID: routerSessionID, Name: "Morning flow", Users: []string{}}
	joined := &model.Session{ID: routerSessionID, Name: "Morning flow", Users: []string{user.ID}}
	f.sessions.EXPECT().GetByID(gomock.Any(), routerSessionID).Return(empty, nil)
	f.sessions.EXPECT().AddParticipant(gomock.Any(), routerSessionID, user.ID).Return(joined, nil)

	rec := f.do(t, http.MethodPost, "/api/session/"+routerSessionID+"/participate/"+user.ID, token, nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var sess model.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
	assert.Equal(t, []string{user.ID}, sess.Users)
}

func TestRouter_ParticipateTwice(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)
	user := routerUser(t, routerUserID, false)
	token := f.loginAs(t, user)

	joined := &model.Session{ID: routerSessionID, Name: "Morning flow", Users: []string{user.ID}}
	f.sessions.EXPECT().GetByID(gomock.Any(), routerSessionID).Return(joined, nil)

	rec := f.do(t, http.MethodPost, "/api/session/"+routerSessionID+"/participate/"+user.ID, token, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already participating")
}

func TestRouter_LeaveNotParticipating(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)
	user := routerUser(t, routerUserID, false)
	token := f.loginAs(t, user)

	empty := &model.Session{ID: routerSessionID, Name: "Morning flow", Users: []string{}}
	f.sessions.EXPECT().GetByID(gomock.Any(), routerSessionID).Return(empty, nil)

	rec := f.do(t, http.MethodDelete, "/api/session/"+routerSessionID+"/participate/"+user.ID, token, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "not participating")
}

func TestRouter_GetTeacher(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)
	token := f.loginAs(t, routerUser(t, routerUserID, false))
	f.teachers.EXPECT().GetByID(gomock.Any(), routerTeacherID).Return(&model.Teacher{
		ID:        routerTeacherID,
		FirstName: "Margot",
		LastName:  "Delahaye",
	}, nil)

	rec := f.do(t, http.MethodGet, "/api/teacher/"+routerTeacherID, token, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Delahaye")
}

func TestRouter_DeleteOtherUserForbidden(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)
	token := f.loginAs(t, routerUser(t, routerUserID, false))
	other := routerUser(t, routerOtherUserID, false)
	f.users.EXPECT().GetByID(gomock.Any(), other.ID).Return(other, nil)

	rec := f.do(t, http.MethodDelete, "/api/user/"+other.ID, token, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_DeleteOwnAccount(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)
	user := routerUser(t, routerUserID, false)
	token := f.loginAs(t, user)
	f.users.EXPECT().Delete(gomock.Any(), user.ID).Return(true, nil)

	rec := f.do(t, http.MethodDelete, "/api/user/"+user.ID, token, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":true}`, rec.Body.String())
}

func TestRouter_TokenForDeletedUser(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)
	f.users.EXPECT().
		GetByID(gomock.Any(), "gone-user").
		Return(nil, apperrors.NotFound("user not found")).
		AnyTimes()
	token, err := f.tokens.Issue("gone-user")
	require.NoError(t, err)

	rec := f.do(t, http.MethodGet, "/api/session", token, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "account no longer exists")
}

func TestRouter_MalformedSessionID(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)
	token := f.loginAs(t, routerUser(t, routerUserID, false))

	rec := f.do(t, http.MethodGet, "/api/session/not-a-uuid", token, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_path")
}

func TestRouter_MalformedJSONBody(t *testing.T) {
	t.Parallel()
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
