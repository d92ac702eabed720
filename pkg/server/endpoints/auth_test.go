package endpoints

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/substack-in-go/pkg/auth"
	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server/store"
)

func TestRegister(t *testing.T) {
	t.Run("creates the user and returns a token", func(t *testing.T) {
		env := newTestEnv(t)
		env.users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			ok, _ := auth.CheckPassword(u.HashedPassword, "Secret123!")
			return u.Email == "bob@example.com" && ok && u.EmailNotificationsEnabled
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*model.User).ID = 42
		}).Return(nil)

		w := env.request("POST", "/auth/register", map[string]string{
			"email":    " Bob@Example.com ",
			"password": "Secret123!",
		}, false)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		body := decode(t, w)
		assert.Equal(t, "bearer", body["token_type"])
		user := body["user"].(map[string]interface{})
		assert.Equal(t, float64(42), user["id"])
		assert.Equal(t, "bob@example.com", user["email"])

		claims, err := env.tokens.Verify(body["access_token"].(string))
		require.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)
	})

	t.Run("rejects a weak password without persisting", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.request("POST", "/auth/register", map[string]string{
			"email":    "bob@example.com",
			"password": "short",
		}, false)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		e := errorBody(t, w)
		assert.Equal(t, "validation_error", e["code"])
		assert.Contains(t, e["fields"], "password")
		env.users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("returns 409 for a registered email", func(t *testing.T) {
		env := newTestEnv(t)
		env.users.On("CreateUser", mock.Anything, mock.Anything).Return(store.ErrEmailTaken)

		w := env.request("POST", "/auth/register", map[string]string{
			"email":    "alice@example.com",
			"password": "Secret123!",
		}, false)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "Email already registered", errorBody(t, w)["message"])
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.request("POST", "/auth/register", `{"email":`, false)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("Secret123!")
	require.NoError(t, err)

	t.Run("returns a token for valid credentials", func(t *testing.T) {
		env := newTestEnv(t)
		user := &model.User{ID: 9, Email: "alice@example.com", HashedPassword: hash}
		env.users.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(user, nil)

		w := env.request("POST", "/auth/login", map[string]string{
			"email":    "ALICE@example.com",
			"password": "Secret123!",
		}, false)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		claims, err := env.tokens.Verify(decode(t, w)["access_token"].(string))
		require.NoError(t, err)
		assert.Equal(t, uint(9), claims.UserID)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		env := newTestEnv(t)
		user := &model.User{ID: 9, Email: "alice@example.com", HashedPassword: hash}
		env.users.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(user, nil)

		w := env.request("POST", "/auth/login", map[string]string{
			"email":    "alice@example.com",
			"password": "Wrong123!",
		}, false)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid email or password", errorBody(t, w)["message"])
	})

	t.Run("rejects an unknown email", func(t *testing.T) {
		env := newTestEnv(t)
		env.users.On("GetUserByEmail", mock.Anything, "nobody@example.com").Return(nil, store.ErrUserNotFound)

		w := env.request("POST", "/auth/login", map[string]string{
			"email":    "nobody@example.com",
			"password": "Secret123!",
		}, false)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid email or password", errorBody(t, w)["message"])
	})
}

func TestUsersEndpoints(t *testing.T) {
	t.Run("requires a bearer token", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.request("GET", "/users/me", nil, false)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	})

	t.Run("returns the profile", func(t *testing.T) {
		env := newTestEnv(t).authenticated()

		w := env.do("GET", "/users/me", nil)

		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "alice@example.com", body["email"])
		assert.Equal(t, true, body["email_notifications_enabled"])
		assert.Equal(t, "UTC", body["timezone"])
	})

	t.Run("updates notification preferences", func(t *testing.T) {
		env := newTestEnv(t).authenticated()
		env.users.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.ID == testUserID && !u.EmailNotificationsEnabled && u.PushNotificationsEnabled &&
				u.Timezone == "Europe/Berlin"
		})).Return(nil)

		w := env.do("PATCH", "/users/me/notifications", map[string]interface{}{
			"email_notifications_enabled": false,
			"timezone":                    "Europe/Berlin",
		})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := decode(t, w)
		assert.Equal(t, false, body["email_notifications_enabled"])
		assert.Equal(t, "Europe/Berlin", body["timezone"])
	})

	t.Run("rejects an unknown timezone", func(t *testing.T) {
		env := newTestEnv(t).authenticated()

		w := env.do("PATCH", "/users/me/notifications", map[string]interface{}{"timezone": "Mars/Olympus"})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
