package endpoints

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/doodlesbykumbi/substack-in-go/pkg/audit"
	"github.com/doodlesbykumbi/substack-in-go/pkg/auth"
	"github.com/doodlesbykumbi/substack-in-go/pkg/config"
	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server"
)

var fixedNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	audit.SetEnabled(false)
	auth.BcryptCost = bcrypt.MinCost
	now = func() time.Time { return fixedNow }
	os.Exit(m.Run())
}

const testUserID uint = 7

type testEnv struct {
	t             *testing.T
	srv           *server.Server
	tokens        *auth.Tokens
	users         *MockUsersStore
	categories    *MockCategoriesStore
	subscriptions *MockSubscriptionsStore
	reminders     *MockRemindersStore
	health        *MockHealthStore
	user          *model.User
}

func newTestEnv(t *testing.T) *testEnv {
	tokens, err := auth.NewTokens("test-secret", "HS256", time.Hour)
	require.NoError(t, err)

	env := &testEnv{
		t:             t,
		tokens:        tokens,
		users:         &MockUsersStore{},
		categories:    &MockCategoriesStore{},
		subscriptions: &MockSubscriptionsStore{},
		reminders:     &MockRemindersStore{},
		health:        &MockHealthStore{},
		user: &model.User{
			ID:                        testUserID,
			Email:                     "alice@example.com",
			EmailNotificationsEnabled: true,
			PushNotificationsEnabled:  true,
			Timezone:                  "UTC",
		},
	}
	env.srv = server.NewServerWithStores(config.Default(), server.Stores{
		Users:         env.users,
		Categories:    env.categories,
		Subscriptions: env.subscriptions,
		Reminders:     env.reminders,
		Health:        env.health,
	}, tokens, "127.0.0.1", "0")
	RegisterAll(env.srv)

	t.Cleanup(func() {
		env.users.AssertExpectations(t)
		env.categories.AssertExpectations(t)
		env.subscriptions.AssertExpectations(t)
		env.reminders.AssertExpectations(t)
		env.health.AssertExpectations(t)
	})
	return env
}

// authenticated makes the JWT middleware resolve the test user.
func (e *testEnv) authenticated() *testEnv {
	e.users.On("GetUser", mock.Anything, testUserID).Return(e.user, nil)
	return e
}

func (e *testEnv) request(method, path string, body interface{}, withToken bool, headers ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(e.t, err)
		reader = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withToken {
		token, _, err := e.tokens.Issue(testUserID)
		require.NoError(e.t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(w, req)
	return w
}

func (e *testEnv) do(method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	return e.request(method, path, body, true, headers...)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	decodeInto(t, w, &out)
	return out
}

func decodeInto(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	body := decode(t, w)
	e, ok := body["error"].(map[string]interface{})
	require.True(t, ok, w.Body.String())
	return e
}

func futureDate(days int) string {
	return model.Today().AddDays(days).String()
}

func testSubscription(id uint) *model.Subscription {
	return &model.Subscription{
		ID:                 id,
		UserID:             testUserID,
		Name:               "Netflix",
		Cost:               15.99,
		Currency:           model.CurrencyUSD,
		BillingCycle:       model.BillingCycleMonthly,
		NextBillingDate:    model.NewDate(fixedNow.AddDate(0, 0, 10)),
		ReminderDaysBefore: 3,
		Status:             model.SubscriptionStatusActive,
		CreatedAt:          fixedNow.AddDate(0, -2, 0),
		UpdatedAt:          fixedNow.AddDate(0, -1, 0),
	}
}
