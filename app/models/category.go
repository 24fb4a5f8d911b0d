package models

// Category groups news items. Slug may be empty for legacy rows and is
// backfilled lazily from the name.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`
	Slug string `gorm:"type:varchar(120);uniqueIndex" json:"slug"`
}

// TableName specifies the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
