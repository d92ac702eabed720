package store

import (
	"context"
	"errors"

	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
)

// ErrCategoryNotFound is returned when a category doesn't exist, is deleted
// or belongs to another user
var ErrCategoryNotFound = errors.New("category not found")

// CategoriesStore abstracts category storage
type CategoriesStore interface {
	// EnsureSystemCategories seeds the system categories if none exist.
	EnsureSystemCategories(ctx context.Context) error

	// ListCategories returns the system categories and the live custom
	// categories of userID, ordered by display order then name.
	ListCategories(ctx context.Context, userID uint) ([]model.Category, error)

	// SubscriptionCounts returns the number of live subscriptions of userID
	// per category id.
	SubscriptionCounts(ctx context.Context, userID uint) (map[uint]int64, error)

	// CountCustomCategories returns the number of live custom categories of userID.
	CountCustomCategories(ctx context.Context, userID uint) (int64, error)

	// NameTaken reports whether a system category or a live custom category
	// of userID is called name, ignoring case. excludeID skips one category.
	NameTaken(ctx context.Context, userID uint, name string, excludeID uint) (bool, error)

	// GetCategory returns a system category or a live custom category of
	// userID. Returns ErrCategoryNotFound otherwise.
	GetCategory(ctx context.Context, userID uint, id uint) (*model.Category, error)

	// CreateCategory inserts category and sets its ID.
	CreateCategory(ctx context.Context, category *model.Category) error

	// UpdateCategory saves the name, icon and color of category.
	UpdateCategory(ctx context.Context, category *model.Category) error

	// DeleteCategory moves the subscriptions of userID in category to the
	// system "Other" category and soft deletes category.
	DeleteCategory(ctx context.Context, userID uint, category *model.Category) error
}
