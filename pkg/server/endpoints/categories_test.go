package endpoints

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server/store"
)

func systemCategory(id uint, name string) *model.Category {
	return &model.Category{ID: id, Name: name, Icon: "folder", Color: "#607D8B", IsSystem: true, DisplayOrder: 1}
}

func customCategory(id uint, name string) *model.Category {
	owner := testUserID
	return &model.Category{
		ID:           id,
		UserID:       &owner,
		Name:         name,
		Icon:         "star.fill",
		Color:        "#FF5733",
		DisplayOrder: model.CustomCategoryDisplayOrder,
	}
}

func TestListCategories(t *testing.T) {
	env := newTestEnv(t).authenticated()
	env.categories.On("EnsureSystemCategories", mock.Anything).Return(nil)
	env.categories.On("ListCategories", mock.Anything, testUserID).Return([]model.Category{
		*systemCategory(1, "Entertainment"),
		*customCategory(10, "Gym"),
	}, nil)
	env.categories.On("SubscriptionCounts", mock.Anything, testUserID).Return(map[uint]int64{1: 3}, nil)

	w := env.do("GET", "/categories", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, float64(2), body["total_count"])
	assert.Equal(t, float64(1), body["custom_count"])
	assert.Equal(t, float64(20), body["max_custom_allowed"])
	items := body["items"].([]interface{})
	assert.Equal(t, float64(3), items[0].(map[string]interface{})["subscription_count"])
	assert.Equal(t, float64(0), items[1].(map[string]interface{})["subscription_count"])
}

func TestListIcons(t *testing.T) {
	env := newTestEnv(t).authenticated()

	w := env.do("GET", "/categories/icons", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w)["icons"], "star.fill")
}

func TestCreateCategory(t *testing.T) {
	body := map[string]string{"name": "Gym", "icon": "figure.run", "color": "#ff5733"}

	t.Run("creates a custom category", func(t *testing.T) {
		env := newTestEnv(t).authenticated()
		env.categories.On("EnsureSystemCategories", mock.Anything).Return(nil)
		env.categories.On("CountCustomCategories", mock.Anything, testUserID).Return(int64(2), nil)
		env.categories.On("NameTaken", mock.Anything, testUserID, "Gym", uint(0)).Return(false, nil)
		env.categories.On("CreateCategory", mock.Anything, mock.MatchedBy(func(c *model.Category) bool {
			return c.UserID != nil && *c.UserID == testUserID && c.Color == "#FF5733" && !c.IsSystem
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*model.Category).ID = 50
		}).Return(nil)

		w := env.do("POST", "/categories", body)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		resp := decode(t, w)
		assert.Equal(t, float64(50), resp["id"])
		assert.Equal(t, "#FF5733", resp["color"])
		assert.Equal(t, float64(model.CustomCategoryDisplayOrder), resp["display_order"])
		assert.Equal(t, false, resp["is_system"])
	})

	t.Run("rejects beyond the maximum", func(t *testing.T) {
		env := newTestEnv(t).authenticated()
		env.categories.On("EnsureSystemCategories", mock.Anything).Return(nil)
		env.categories.On("CountCustomCategories", mock.Anything, testUserID).Return(int64(20), nil)

		w := env.do("POST", "/categories", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Maximum of 20 custom categories allowed", errorBody(t, w)["message"])
	})

	t.Run("rejects a duplicate name", func(t *testing.T) {
		env := newTestEnv(t).authenticated()
		env.categories.On("EnsureSystemCategories", mock.Anything).Return(nil)
		env.categories.On("CountCustomCategories", mock.Anything, testUserID).Return(int64(0), nil)
		env.categories.On("NameTaken", mock.Anything, testUserID, "Gym", uint(0)).Return(true, nil)

		w := env.do("POST", "/categories", body)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "Category 'Gym' already exists", errorBody(t, w)["message"])
	})

	t.Run("rejects an unknown icon", func(t *testing.T) {
		env := newTestEnv(t).authenticated()

		w := env.do("POST", "/categories", map[string]string{"name": "Gym", "icon": "rocket", "color": "#FF5733"})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, errorBody(t, w)["fields"], "icon")
	})
}

func TestGetCategory(t *testing.T) {
	t.Run("returns 404 for another user's category", func(t *testing.T) {
		env := newTestEnv(t).authenticated()
		env.categories.On("EnsureSystemCategories", mock.Anything).Return(nil)
		env.categories.On("GetCategory", mock.Anything, testUserID, uint(99)).Return(nil, store.ErrCategoryNotFound)

		w := env.do("GET", "/categories/99", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Category not found", errorBody(t, w)["message"])
	})

	t.Run("returns the category with its count", func(t *testing.T) {
		env := newTestEnv(t).authenticated()
		env.categories.On("EnsureSystemCategories", mock.Anything).Return(nil)
		env.categories.On("GetCategory", mock.Anything, testUserID, uint(10)).Return(customCategory(10, "Gym"), nil)
		env.categories.On("SubscriptionCounts", mock.Anything, testUserID).Return(map[uint]int64{10: 4}, nil)

		w := env.do("GET", "/categories/10", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(4), decode(t, w)["subscription_count"])
	})
}

func TestUpdateCategory(t *testing.T) {
	t.Run("cannot rename a system category", func(t *testing.T) {
		env := newTestEnv(t).authenticated()
		env.categories.On("EnsureSystemCategories", mock.Anything).Return(nil)
		env.categories.On("GetCategory", mock.Anything, testUserID, uint(1)).Return(systemCategory(1, "Entertainment"), nil)

		w := env.do("PUT", "/categories/1", map[string]string{"name": "Fun"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Cannot rename system category", errorBody(t, w)["message"])
	})

	t.Run("renames a custom category", func(t *testing.T) {
		env := newTestEnv(t).authenticated()
		env.categories.On("EnsureSystemCategories", mock.Anything).Return(nil)
		env.categories.On("GetCategory", mock.Anything, testUserID, uint(10)).Return(customCategory(10, "Gym"), nil)
		env.categories.On("NameTaken", mock.Anything, testUserID, "Fitness", uint(10)).Return(false, nil)
		env.categories.On("UpdateCategory", mock.Anything, mock.MatchedBy(func(c *model.Category) bool {
			return c.Name == "Fitness" && c.Icon == "heart.fill"
		})).Return(nil)
		env.categories.On("SubscriptionCounts", mock.Anything, testUserID).Return(map[uint]int64{}, nil)

		w := env.do("PUT", "/categories/10", map[string]string{"name": "Fitness", "icon": "heart.fill"})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "Fitness", decode(t, w)["name"])
	})

	t.Run("changing only the case skips the duplicate check", func(t *testing.T) {
		env := newTestEnv(t).authenticated()
		env.categories.On("EnsureSystemCategories", mock.Anything).Return(nil)
		env.categories.On("GetCategory", mock.Anything, testUserID, uint(10)).Return(customCategory(10, "Gym"), nil)
		env.categories.On("UpdateCategory", mock.Anything, mock.Anything).Return(nil)
		env.categories.On("SubscriptionCounts", mock.Anything, testUserID).Return(map[uint]int64{}, nil)

		w := env.do("PUT", "/categories/10", map[string]string{"name": "GYM"})

		require.Equal(t, http.StatusOK, w.Code)
		env.categories.AssertNotCalled(t, "NameTaken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("cannot delete a system category", func(t *testing.T) {
		env := newTestEnv(t).authenticated()
		env.categories.On("EnsureSystemCategories", mock.Anything).Return(nil)
		env.categories.On("GetCategory", mock.Anything, testUserID, uint(1)).Return(systemCategory(1, "Entertainment"), nil)

		w := env.do("DELETE", "/categories/1", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Cannot delete system category", errorBody(t, w)["message"])
	})

	t.Run("deletes a custom category", func(t *testing.T) {
		env := newTestEnv(t).authenticated()
		category := customCategory(10, "Gym")
		env.categories.On("EnsureSystemCategories", mock.Anything).Return(nil)
		env.categories.On("GetCategory", mock.Anything, testUserID, uint(10)).Return(category, nil)
		env.categories.On("DeleteCategory", mock.Anything, testUserID, category).Return(nil)

		w := env.do("DELETE", "/categories/10", nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})
}
