package gorm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server/store"
)

// Ensure CategoriesStore implements store.CategoriesStore
var _ store.CategoriesStore = (*CategoriesStore)(nil)

// CategoriesStore implements store.CategoriesStore using GORM
type CategoriesStore struct {
	db *gorm.DB
}

// NewCategoriesStore creates a new CategoriesStore
func NewCategoriesStore(db *gorm.DB) *CategoriesStore {
	return &CategoriesStore{db: db}
}

// visibleTo scopes a category query to the system categories and the live
// custom categories of userID.
func visibleTo(userID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("deleted_at IS NULL AND (is_system = ? OR user_id = ?)", true, userID)
	}
}

func (s *CategoriesStore) EnsureSystemCategories(ctx context.Context) error {
	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&model.Category{}).Where("is_system = ?", true).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count system categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	seed := make([]model.Category, len(model.SystemCategories))
	copy(seed, model.SystemCategories)
	err := db.Create(&seed).Error
	if isUniqueViolation(err) {
		// Another request seeded them first.
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to seed system categories: %w", err)
	}
	return nil
}

func (s *CategoriesStore) ListCategories(ctx context.Context, userID uint) ([]model.Category, error) {
	var categories []model.Category
	err := s.db.WithContext(ctx).
		Scopes(visibleTo(userID)).
		Order("display_order, name").
		Find(&categories).Error
	return categories, err
}

type categoryCount struct {
	CategoryID uint
	Count      int64
}

func (s *CategoriesStore) SubscriptionCounts(ctx context.Context, userID uint) (map[uint]int64, error) {
	var rows []categoryCount
	err := s.db.WithContext(ctx).
		Model(&model.Subscription{}).
		Select("category_id, count(*) AS count").
		Where("user_id = ? AND deleted_at IS NULL AND category_id IS NOT NULL", userID).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.CategoryID] = row.Count
	}
	return counts, nil
}

func (s *CategoriesStore) CountCustomCategories(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("user_id = ? AND is_system = ? AND deleted_at IS NULL", userID, false).
		Count(&count).Error
	return count, err
}

func (s *CategoriesStore) NameTaken(ctx context.Context, userID uint, name string, excludeID uint) (bool, error) {
	query := s.db.WithContext(ctx).
		Model(&model.Category{}).
		Scopes(visibleTo(userID)).
		Where("lower(name) = lower(?)", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *CategoriesStore) GetCategory(ctx context.Context, userID uint, id uint) (*model.Category, error) {
	var category model.Category
	tx := s.db.WithContext(ctx).Scopes(visibleTo(userID)).Where("id = ?", id).First(&category)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrCategoryNotFound
		}
		return nil, tx.Error
	}
	return &category, nil
}

func (s *CategoriesStore) CreateCategory(ctx context.Context, category *model.Category) error {
	return s.db.WithContext(ctx).Create(category).Error
}

func (s *CategoriesStore) UpdateCategory(ctx context.Context, category *model.Category) error {
	category.UpdatedAt = time.Now().UTC()
	return s.db.WithContext(ctx).
		Model(category).
		Select("name", "icon", "color", "updated_at").
		Updates(category).Error
}

func (s *CategoriesStore) DeleteCategory(ctx context.Context, userID uint, category *model.Category) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var other model.Category
		err := tx.Where("is_system = ? AND name = ?", true, model.OtherCategoryName).First(&other).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var target interface{}
		if err == nil {
			target = other.ID
		}
		err = tx.Model(&model.Subscription{}).
			Where("user_id = ? AND category_id = ? AND deleted_at IS NULL", userID, category.ID).
			Update("category_id", target).Error
		if err != nil {
			return fmt.Errorf("failed to reassign subscriptions: %w", err)
		}

		now := time.Now().UTC()
		err = tx.Model(category).Updates(map[string]interface{}{
			"deleted_at": now,
			"updated_at": now,
		}).Error
		if err != nil {
			return err
		}
		category.DeletedAt = &now
		return nil
	})
}
