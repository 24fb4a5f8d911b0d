package models

// Center is a physical location where the organization operates.
type Center struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"type:varchar(200);not null" json:"name"`
	City    string `gorm:"type:varchar(100);not null" json:"city"`
	Address string `gorm:"type:varchar(255)" json:"address"`
	Contact string `gorm:"type:varchar(100)" json:"contact"`
}

// TableName specifies the table name for the Center model
func (Center) TableName() string {
	return "centers"
}
