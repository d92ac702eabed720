package endpoints

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server/store"
)

// MockUsersStore implements store.UsersStore for testing using testify/mock
type MockUsersStore struct {
	mock.Mock
}

func (m *MockUsersStore) CreateUser(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUsersStore) GetUser(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersStore) UpdateUser(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockCategoriesStore implements store.CategoriesStore for testing using testify/mock
type MockCategoriesStore struct {
	mock.Mock
}

func (m *MockCategoriesStore) EnsureSystemCategories(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCategoriesStore) ListCategories(ctx context.Context, userID uint) ([]model.Category, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoriesStore) SubscriptionCounts(ctx context.Context, userID uint) (map[uint]int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]int64), args.Error(1)
}

func (m *MockCategoriesStore) CountCustomCategories(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoriesStore) NameTaken(ctx context.Context, userID uint, name string, excludeID uint) (bool, error) {
	args := m.Called(ctx, userID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoriesStore) GetCategory(ctx context.Context, userID uint, id uint) (*model.Category, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoriesStore) CreateCategory(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoriesStore) UpdateCategory(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoriesStore) DeleteCategory(ctx context.Context, userID uint, category *model.Category) error {
	args := m.Called(ctx, userID, category)
	return args.Error(0)
}

// MockSubscriptionsStore implements store.SubscriptionsStore for testing using testify/mock
type MockSubscriptionsStore struct {
	mock.Mock
}

func (m *MockSubscriptionsStore) CreateSubscription(ctx context.Context, sub *model.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionsStore) GetSubscription(ctx context.Context, userID, id uint, includeDeleted bool) (*model.Subscription, error) {
	args := m.Called(ctx, userID, id, includeDeleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscription), args.Error(1)
}

func (m *MockSubscriptionsStore) ListSubscriptions(ctx context.Context, userID uint, filter store.SubscriptionFilter) (*store.SubscriptionPage, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.SubscriptionPage), args.Error(1)
}

func (m *MockSubscriptionsStore) ListUpcoming(ctx context.Context, userID uint, from, to model.Date) ([]model.Subscription, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Subscription), args.Error(1)
}

func (m *MockSubscriptionsStore) ListByScope(ctx context.Context, userID uint, scope store.Scope) ([]model.Subscription, error) {
	args := m.Called(ctx, userID, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Subscription), args.Error(1)
}

func (m *MockSubscriptionsStore) UpdateSubscription(ctx context.Context, sub *model.Subscription, priceChanged bool, now time.Time) error {
	args := m.Called(ctx, sub, priceChanged, now)
	return args.Error(0)
}

func (m *MockSubscriptionsStore) SaveSubscription(ctx context.Context, sub *model.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionsStore) PriceHistory(ctx context.Context, id uint) ([]model.SubscriptionPriceHistory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SubscriptionPriceHistory), args.Error(1)
}

// MockRemindersStore implements store.RemindersStore for testing using testify/mock
type MockRemindersStore struct {
	mock.Mock
}

func (m *MockRemindersStore) ListReminderLogs(ctx context.Context, userID uint, limit, offset int) ([]model.ReminderLog, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.ReminderLog), args.Get(1).(int64), args.Error(2)
}

func (m *MockRemindersStore) RemindedSubscriptions(ctx context.Context, subs []model.Subscription) (map[uint]bool, error) {
	args := m.Called(ctx, subs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]bool), args.Error(1)
}

func (m *MockRemindersStore) ReminderCandidates(ctx context.Context) ([]store.ReminderCandidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.ReminderCandidate), args.Error(1)
}

func (m *MockRemindersStore) HasReminder(ctx context.Context, subscriptionID uint, scheduledFor time.Time) (bool, error) {
	args := m.Called(ctx, subscriptionID, scheduledFor)
	return args.Bool(0), args.Error(1)
}

func (m *MockRemindersStore) CreateReminderLogs(ctx context.Context, logs ...*model.ReminderLog) error {
	args := m.Called(ctx, logs)
	return args.Error(0)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func (m *MockHealthStore) CheckConnectivity(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
