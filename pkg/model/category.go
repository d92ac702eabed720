package model

import (
	"time"
)

// CustomCategoryDisplayOrder places user categories after every system one.
const CustomCategoryDisplayOrder = 100

// OtherCategoryName is the system category that receives the subscriptions
// of a deleted custom category.
const OtherCategoryName = "Other"

type Category struct {
	ID           uint `gorm:"primaryKey"`
	UserID       *uint
	Name         string
	Icon         string
	Color        string
	IsSystem     bool
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

func (c Category) TableName() string {
	return "categories"
}

// OwnedBy reports whether the category is a custom category of userID.
func (c Category) OwnedBy(userID uint) bool {
	return c.UserID != nil && *c.UserID == userID
}

// SystemCategories are seeded once, the first time any category is read.
var SystemCategories = []Category{
	{Name: "Entertainment", Icon: "play.tv.fill", Color: "#E91E63", IsSystem: true, DisplayOrder: 1},
	{Name: "Productivity", Icon: "laptopcomputer", Color: "#2196F3", IsSystem: true, DisplayOrder: 2},
	{Name: "Health", Icon: "heart.fill", Color: "#4CAF50", IsSystem: true, DisplayOrder: 3},
	{Name: "Finance", Icon: "creditcard.fill", Color: "#FF9800", IsSystem: true, DisplayOrder: 4},
	{Name: "Education", Icon: "book.fill", Color: "#9C27B0", IsSystem: true, DisplayOrder: 5},
	{Name: "Shopping", Icon: "cart.fill", Color: "#00BCD4", IsSystem: true, DisplayOrder: 6},
	{Name: OtherCategoryName, Icon: "ellipsis.circle.fill", Color: "#607D8B", IsSystem: true, DisplayOrder: 99},
}

// SFSymbols is the set of icon names a category may use.
var SFSymbols = map[string]struct{}{
	// media
	"play.tv.fill": {}, "play.circle.fill": {}, "film.fill": {}, "music.note": {}, "gamecontroller.fill": {},
	// productivity
	"laptopcomputer": {}, "desktopcomputer": {}, "keyboard": {}, "doc.fill": {}, "folder.fill": {},
	// health
	"heart.fill": {}, "figure.run": {}, "cross.fill": {}, "pills.fill": {}, "stethoscope": {},
	// finance
	"creditcard.fill": {}, "dollarsign.circle.fill": {}, "banknote.fill": {}, "chart.line.uptrend.xyaxis": {},
	// education
	"book.fill": {}, "graduationcap.fill": {}, "pencil": {}, "lightbulb.fill": {}, "brain.head.profile": {},
	// shopping
	"cart.fill": {}, "bag.fill": {}, "shippingbox.fill": {}, "gift.fill": {},
	// communication
	"message.fill": {}, "envelope.fill": {}, "phone.fill": {}, "video.fill": {},
	// utilities
	"gearshape.fill": {}, "wrench.fill": {}, "hammer.fill": {}, "cloud.fill": {},
	// general
	"folder": {}, "star.fill": {}, "bookmark.fill": {}, "tag.fill": {}, "house.fill": {},
	"ellipsis.circle.fill": {}, "square.grid.2x2.fill": {}, "circle.fill": {},
}

// IsSFSymbol reports whether icon is an allowed category icon.
func IsSFSymbol(icon string) bool {
	_, ok := SFSymbols[icon]
	return ok
}
