package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edu2job/edu2job-server/internal/models"
	"github.com/edu2job/edu2job-server/internal/services"
)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Register(ctx context.Context, input services.RegisterInput) (models.User, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *mockUserService) Login(ctx context.Context, email, password string) (services.LoginResult, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(services.LoginResult), args.Error(1)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

const registerBody = `{"name":"Asha","email":"a@x.com","password":"p1","college":"NIT","gender":"female","degree":"B.Tech"}`

func TestUserHandler_Register(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"created", registerBody, nil, http.StatusCreated, "User registered successfully"},
		{"missing fields", registerBody, &services.ValidationError{Message: services.MsgAllFieldsRequired}, http.StatusBadRequest, "All fields are required"},
		{"email in use", registerBody, services.ErrEmailInUse, http.StatusBadRequest, "Email already in use"},
		{"store failure", registerBody, errors.New("disk full"), http.StatusInternalServerError, "Server error during registration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockUserService)
			svc.On("Register", mock.Anything, mock.AnythingOfType("services.RegisterInput")).
				Return(models.User{ID: "user-1", Name: "Asha"}, tt.err)
			h := NewUserHandler(svc, nil)

			req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Register(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, tt.wantMsg, body["message"])
			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, "user-1", body["userId"])
			}
			assert.NotContains(t, rec.Body.String(), "disk full")
		})
	}
}

func TestUserHandler_RegisterRejectsBadJSON(t *testing.T) {
	svc := new(mockUserService)
	h := NewUserHandler(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"name":`))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decodeBody(t, rec)["message"])
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestUserHandler_Login(t *testing.T) {
	t.Run("success returns token and name", func(t *testing.T) {
		svc := new(mockUserService)
		svc.On("Login", mock.Anything, "a@x.com", "p1").
			Return(services.LoginResult{Token: "tok", User: models.User{Name: "Asha"}}, nil)
		h := NewUserHandler(svc, nil)

		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"a@x.com","password":"p1"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Login successful", body["message"])
		assert.Equal(t, "tok", body["token"])
		assert.Equal(t, "Asha", body["name"])
	})

	t.Run("invalid credentials", func(t *testing.T) {
		svc := new(mockUserService)
		svc.On("Login", mock.Anything, "a@x.com", "nope").
			Return(services.LoginResult{}, services.ErrInvalidCredentials)
		h := NewUserHandler(svc, nil)

		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"a@x.com","password":"nope"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid credentials", decodeBody(t, rec)["message"])
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := new(mockUserService)
		svc.On("Login", mock.Anything, "", "").
			Return(services.LoginResult{}, &services.ValidationError{Message: services.MsgEmailPasswordRequired})
		h := NewUserHandler(svc, nil)

		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Email and password are required", decodeBody(t, rec)["message"])
	})

	t.Run("store failure", func(t *testing.T) {
		svc := new(mockUserService)
		svc.On("Login", mock.Anything, "a@x.com", "p1").
			Return(services.LoginResult{}, errors.New("connection reset"))
		h := NewUserHandler(svc, nil)

		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"a@x.com","password":"p1"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Server error during login", decodeBody(t, rec)["message"])
	})
}
