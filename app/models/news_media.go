package models

import (
	"mime"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Media kinds attached to news items.
const (
	MediaKindImage = "image"
	MediaKindVideo = "video"
	MediaKindFile  = "file"
)

// NewsMedia is a media file attached to a NewsItem with an explicit display
// order (0 first, duplicates allowed).
type NewsMedia struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	NewsItemID uint      `gorm:"index;not null" json:"news_item_id"`
	FilePath   string    `gorm:"type:varchar(255);not null" json:"file_path"`
	MediaKind  string    `gorm:"type:varchar(10);default:'file'" json:"media_kind"`
	Caption    string    `gorm:"type:varchar(200)" json:"caption"`
	Order      int       `gorm:"column:display_order;default:0" json:"order"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the NewsMedia model
func (NewsMedia) TableName() string {
	return "news_media"
}

// BeforeSave infers the media kind from the file when none was set.
func (m *NewsMedia) BeforeSave(tx *gorm.DB) error {
	if m.MediaKind == "" || m.MediaKind == MediaKindFile {
		m.MediaKind = DetectMediaKind(m.FilePath)
	}
	return nil
}

// DetectMediaKind classifies a file as image, video or generic file based
// on its mime type, falling back to a plain extension check.
func DetectMediaKind(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if guessed := mime.TypeByExtension(ext); guessed != "" {
		switch {
		case strings.HasPrefix(guessed, "image/"):
			return MediaKindImage
		case strings.HasPrefix(guessed, "video/"):
			return MediaKindVideo
		}
	}
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
		return MediaKindImage
	case ".mp4", ".webm", ".ogg", ".ogv", ".mov":
		return MediaKindVideo
	}
	return MediaKindFile
}
