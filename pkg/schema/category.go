package schema

import (
	"sort"
	"strings"

	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
)

type CategoryCreate struct {
	Name  string `json:"name" validate:"required,min=1,max=50"`
	Icon  string `json:"icon" validate:"required,sfsymbol"`
	Color string `json:"color" validate:"required,colorhex"`
}

func (c *CategoryCreate) Normalize() {
	c.Color = strings.ToUpper(c.Color)
}

type CategoryUpdate struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=50"`
	Icon  *string `json:"icon" validate:"omitempty,sfsymbol"`
	Color *string `json:"color" validate:"omitempty,colorhex"`
}

func (c *CategoryUpdate) Normalize() {
	if c.Color != nil {
		upper := strings.ToUpper(*c.Color)
		c.Color = &upper
	}
}

type CategoryResponse struct {
	ID                uint   `json:"id"`
	Name              string `json:"name"`
	Icon              string `json:"icon"`
	Color             string `json:"color"`
	IsSystem          bool   `json:"is_system"`
	DisplayOrder      int    `json:"display_order"`
	SubscriptionCount int64  `json:"subscription_count"`
}

type CategoryListResponse struct {
	Items            []CategoryResponse `json:"items"`
	TotalCount       int                `json:"total_count"`
	CustomCount      int                `json:"custom_count"`
	MaxCustomAllowed int                `json:"max_custom_allowed"`
}

type AvailableIconsResponse struct {
	Icons []string `json:"icons"`
}

func FromCategory(c *model.Category, subscriptionCount int64) CategoryResponse {
	return CategoryResponse{
		ID:                c.ID,
		Name:              c.Name,
		Icon:              c.Icon,
		Color:             c.Color,
		IsSystem:          c.IsSystem,
		DisplayOrder:      c.DisplayOrder,
		SubscriptionCount: subscriptionCount,
	}
}

// FromCategories builds the list payload; counts maps category id to its
// number of live subscriptions.
func FromCategories(categories []model.Category, counts map[uint]int64, maxCustom int) CategoryListResponse {
	resp := CategoryListResponse{
		Items:            make([]CategoryResponse, 0, len(categories)),
		TotalCount:       len(categories),
		MaxCustomAllowed: maxCustom,
	}
	for i := range categories {
		resp.Items = append(resp.Items, FromCategory(&categories[i], counts[categories[i].ID]))
		if !categories[i].IsSystem {
			resp.CustomCount++
		}
	}
	return resp
}

// Icons lists the allowed icons in lexical order.
func Icons() AvailableIconsResponse {
	icons := make([]string, 0, len(model.SFSymbols))
	for icon := range model.SFSymbols {
		icons = append(icons, icon)
	}
	sort.Strings(icons)
	return AvailableIconsResponse{Icons: icons}
}
