package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// OtherCategoryLabel stands in for a category that no longer exists.
const OtherCategoryLabel = "Other"

// Category is an entry of the category directory: an id mapped to a display
// label and a type. The directory is maintained outside this service.
type Category struct {
	Base
	UserID string       `gorm:"not null;index" json:"userId"`
	Name   string       `gorm:"not null" json:"name"`
	Type   CategoryType `gorm:"not null" json:"type"`
}
