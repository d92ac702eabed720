package endpoints

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/doodlesbykumbi/substack-in-go/pkg/apperr"
	"github.com/doodlesbykumbi/substack-in-go/pkg/audit"
	"github.com/doodlesbykumbi/substack-in-go/pkg/config"
	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
	"github.com/doodlesbykumbi/substack-in-go/pkg/schema"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server"
	"github.com/doodlesbykumbi/substack-in-go/pkg/server/store"
)

// RegisterCategoriesEndpoints registers category management endpoints
func RegisterCategoriesEndpoints(s *server.Server) {
	authn := s.JWTMiddleware.Middleware
	categories := s.CategoriesStore

	s.Router.Handle("/categories/icons", authn(handleListIcons())).Methods("GET")
	s.Router.Handle("/categories", authn(handleListCategories(categories, s.Config))).Methods("GET")
	s.Router.Handle("/categories", authn(handleCreateCategory(categories, s.Config))).Methods("POST")
	s.Router.Handle("/categories/{id:[0-9]+}", authn(handleGetCategory(categories))).Methods("GET")
	s.Router.Handle("/categories/{id:[0-9]+}", authn(handleUpdateCategory(categories))).Methods("PUT")
	s.Router.Handle("/categories/{id:[0-9]+}", authn(handleDeleteCategory(categories))).Methods("DELETE")
}

func categoryExists(name string) error {
	return apperr.Conflict(fmt.Sprintf("Category '%s' already exists", name))
}

func handleListIcons() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, schema.Icons())
	}
}

func handleListCategories(categories store.CategoriesStore, cfg func() *config.SubStackConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := currentIdentity(r).UserID

		if err := categories.EnsureSystemCategories(ctx); err != nil {
			respondWithError(w, r, apperr.Internal(err))
			return
		}
		list, err := categories.ListCategories(ctx, userID)
		if err != nil {
			respondWithError(w, r, apperr.Internal(err))
			return
		}
		counts, err := categories.SubscriptionCounts(ctx, userID)
		if err != nil {
			respondWithError(w, r, apperr.Internal(err))
			return
		}

		respondWithJSON(w, http.StatusOK, schema.FromCategories(list, counts, cfg().MaxCustomCategories))
	}
}

func handleCreateCategory(categories store.CategoriesStore, cfg func() *config.SubStackConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := currentIdentity(r).UserID

		var req schema.CategoryCreate
		if err := schema.Bind(r, &req); err != nil {
			respondWithError(w, r, err)
			return
		}
		if err := categories.EnsureSystemCategories(ctx); err != nil {
			respondWithError(w, r, apperr.Internal(err))
			return
		}

		max := cfg().MaxCustomCategories
		count, err := categories.CountCustomCategories(ctx, userID)
		if err != nil {
			respondWithError(w, r, apperr.Internal(err))
			return
		}
		if count >= int64(max) {
			respondWithError(w, r, apperr.BadRequest(fmt.Sprintf("Maximum of %d custom categories allowed", max)))
			return
		}

		taken, err := categories.NameTaken(ctx, userID, req.Name, 0)
		if err != nil {
			respondWithError(w, r, apperr.Internal(err))
			return
		}
		if taken {
			respondWithError(w, r, categoryExists(req.Name))
			return
		}

		category := &model.Category{
			UserID:       &userID,
			Name:         req.Name,
			Icon:         req.Icon,
			Color:        req.Color,
			DisplayOrder: model.CustomCategoryDisplayOrder,
		}
		if err := categories.CreateCategory(ctx, category); err != nil {
			logResourceEvent(r, audit.KindCategory, 0, audit.OperationCreate, err)
			respondWithError(w, r, apperr.Internal(err))
			return
		}
		logResourceEvent(r, audit.KindCategory, category.ID, audit.OperationCreate, nil)

		respondWithJSON(w, http.StatusCreated, schema.FromCategory(category, 0))
	}
}

func handleGetCategory(categories store.CategoriesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := currentIdentity(r).UserID

		id, err := pathID(r)
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		if err := categories.EnsureSystemCategories(ctx); err != nil {
			respondWithError(w, r, apperr.Internal(err))
			return
		}
		category, err := categories.GetCategory(ctx, userID, id)
		if err != nil {
			respondWithError(w, r, storeError(err))
			return
		}
		counts, err := categories.SubscriptionCounts(ctx, userID)
		if err != nil {
			respondWithError(w, r, apperr.Internal(err))
			return
		}

		respondWithJSON(w, http.StatusOK, schema.FromCategory(category, counts[category.ID]))
	}
}

func handleUpdateCategory(categories store.CategoriesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := currentIdentity(r).UserID

		id, err := pathID(r)
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		var req schema.CategoryUpdate
		if err := schema.Bind(r, &req); err != nil {
			respondWithError(w, r, err)
			return
		}
		if err := categories.EnsureSystemCategories(ctx); err != nil {
			respondWithError(w, r, apperr.Internal(err))
			return
		}

		category, err := categories.GetCategory(ctx, userID, id)
		if err != nil {
			respondWithError(w, r, storeError(err))
			return
		}
		if category.IsSystem && req.Name != nil {
			respondWithError(w, r, apperr.BadRequest("Cannot rename system category"))
			return
		}

		if req.Name != nil && !strings.EqualFold(*req.Name, category.Name) {
			taken, err := categories.NameTaken(ctx, userID, *req.Name, category.ID)
			if err != nil {
				respondWithError(w, r, apperr.Internal(err))
				return
			}
			if taken {
				respondWithError(w, r, categoryExists(*req.Name))
				return
			}
		}
		if req.Name != nil {
			category.Name = *req.Name
		}
		if req.Icon != nil {
			category.Icon = *req.Icon
		}
		if req.Color != nil {
			category.Color = *req.Color
		}

		if err := categories.UpdateCategory(ctx, category); err != nil {
			logResourceEvent(r, audit.KindCategory, category.ID, audit.OperationUpdate, err)
			respondWithError(w, r, apperr.Internal(err))
			return
		}
		logResourceEvent(r, audit.KindCategory, category.ID, audit.OperationUpdate, nil)

		counts, err := categories.SubscriptionCounts(ctx, userID)
		if err != nil {
			respondWithError(w, r, apperr.Internal(err))
			return
		}
		respondWithJSON(w, http.StatusOK, schema.FromCategory(category, counts[category.ID]))
	}
}

func handleDeleteCategory(categories store.CategoriesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := currentIdentity(r).UserID

		id, err := pathID(r)
		if err != nil {
			respondWithError(w, r, err)
			return
		}
		if err := categories.EnsureSystemCategories(ctx); err != nil {
			respondWithError(w, r, apperr.Internal(err))
			return
		}

		category, err := categories.GetCategory(ctx, userID, id)
		if err != nil {
			respondWithError(w, r, storeError(err))
			return
		}
		if category.IsSystem {
			respondWithError(w, r, apperr.BadRequest("Cannot delete system category"))
			return
		}

		if err := categories.DeleteCategory(ctx, userID, category); err != nil {
			logResourceEvent(r, audit.KindCategory, category.ID, audit.OperationDelete, err)
			respondWithError(w, r, storeError(err))
			return
		}
		logResourceEvent(r, audit.KindCategory, category.ID, audit.OperationDelete, nil)

		w.WriteHeader(http.StatusNoContent)
	}
}
