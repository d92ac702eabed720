package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/substack-in-go/pkg/auth"
	"github.com/doodlesbykumbi/substack-in-go/pkg/identity"
	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server/store"
)

type mockUsersStore struct {
	mock.Mock
}

func (m *mockUsersStore) CreateUser(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUsersStore) GetUser(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUsersStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUsersStore) UpdateUser(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func newTokens(t *testing.T) *auth.Tokens {
	tokens, err := auth.NewTokens("test-secret", "HS256", time.Hour)
	require.NoError(t, err)
	return tokens
}

func identityEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"user_id": id.UserID, "email": id.Email()})
	})
}

func errorMessage(t *testing.T, body []byte) string {
	var resp struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Error.Message
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"  Bearer   abc  ", "abc", true},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
		{`Token token="abc"`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			token, ok := bearerToken(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.token, token)
		})
	}
}

func TestJWTMiddleware(t *testing.T) {
	tokens := newTokens(t)
	valid, _, err := tokens.Issue(7)
	require.NoError(t, err)
	orphan, _, err := tokens.Issue(8)
	require.NoError(t, err)
	failing, _, err := tokens.Issue(9)
	require.NoError(t, err)

	other, _ := auth.NewTokens("other-secret", "HS256", time.Hour)
	forged, _, err := other.Issue(7)
	require.NoError(t, err)

	users := &mockUsersStore{}
	users.On("GetUser", mock.Anything, uint(7)).Return(&model.User{ID: 7, Email: "alice@example.com"}, nil)
	users.On("GetUser", mock.Anything, uint(8)).Return(nil, store.ErrUserNotFound)
	users.On("GetUser", mock.Anything, uint(9)).Return(nil, errors.New("db down"))

	handler := NewJWTAuthenticator(tokens, users).Middleware(identityEcho())

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantMsg    string
	}{
		{"missing header", "", http.StatusUnauthorized, "Not authenticated"},
		{"wrong scheme", "Basic Zm9vOmJhcg==", http.StatusUnauthorized, "Could not validate credentials"},
		{"garbage token", "Bearer garbage", http.StatusUnauthorized, "Could not validate credentials"},
		{"forged token", "Bearer " + forged, http.StatusUnauthorized, "Could not validate credentials"},
		{"deleted user", "Bearer " + orphan, http.StatusUnauthorized, "Could not validate credentials"},
		{"store failure", "Bearer " + failing, http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/subscriptions", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantMsg, errorMessage(t, w.Body.Bytes()))
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
			}
		})
	}

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/subscriptions", nil)
		req.Header.Set("Authorization", "Bearer "+valid)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id": 7, "email": "alice@example.com"}`, w.Body.String())
	})
}
