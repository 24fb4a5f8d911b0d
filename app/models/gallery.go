package models

import "time"

// GalleryCollection is a named album whose media can be imported in bulk
// from a staging folder under the media root.
type GalleryCollection struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"type:varchar(200);not null" json:"name"`
	Slug         string         `gorm:"type:varchar(220);uniqueIndex" json:"slug"`
	SourceFolder string         `gorm:"type:varchar(255)" json:"source_folder"`
	Media        []GalleryMedia `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE" json:"media,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the GalleryCollection model
func (GalleryCollection) TableName() string {
	return "gallery_collections"
}

// GalleryMedia is a single image or video belonging to a collection. Files
// are addressed by path, so re-imports are idempotent by filename presence.
type GalleryMedia struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CollectionID uint      `gorm:"index;not null" json:"collection_id"`
	FilePath     string    `gorm:"type:varchar(255);not null" json:"file_path"`
	MediaKind    string    `gorm:"type:varchar(10);not null" json:"media_kind"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the GalleryMedia model
func (GalleryMedia) TableName() string {
	return "gallery_media"
}
