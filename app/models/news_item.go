package models

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// News item kinds and publication statuses.
const (
	NewsKindPost  = "post"
	NewsKindEvent = "event"

	NewsStatusDraft     = "draft"
	NewsStatusPublished = "published"
)

// Event display statuses derived from the current time.
const (
	EventUpcoming = "upcoming"
	EventOngoing  = "ongoing"
	EventEnded    = "ended"
)

// ErrEventEndBeforeStart is returned by Validate when an event ends before
// it starts.
var ErrEventEndBeforeStart = errors.New("event end must be at or after event start")

// NewsItem is a published or draft post/event. The slug is assigned once at
// first save and never changed afterwards. DateEvent is the legacy single
// instant field kept in sync with EventStart for old rows and links.
type NewsItem struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Title          string     `gorm:"type:varchar(200);not null" json:"title" validate:"required,min=3,max=200"`
	Slug           string     `gorm:"type:varchar(220);uniqueIndex" json:"slug"`
	Kind           string     `gorm:"type:varchar(10);default:'post';index" json:"kind" validate:"required,oneof=post event"`
	Body           string     `gorm:"type:text" json:"body"`
	DateEvent      *time.Time `json:"date_event"`
	EventStart     *time.Time `json:"event_start"`
	EventEnd       *time.Time `json:"event_end"`
	Location       string     `gorm:"type:varchar(200)" json:"location"`
	CoverImagePath string     `gorm:"type:varchar(255)" json:"cover_image_path"`
	Status         string     `gorm:"type:varchar(10);default:'draft';index" json:"status" validate:"required,oneof=draft published"`
	CategoryID     *uint      `gorm:"index" json:"category_id"`
	Category       *Category  `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Media          []NewsMedia `gorm:"foreignKey:NewsItemID;constraint:OnDelete:CASCADE" json:"media,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the NewsItem model
func (NewsItem) TableName() string {
	return "news_items"
}

// Normalize enforces the kind-dependent field rules: non-events carry no
// event dates or location, events keep the legacy DateEvent field in sync
// with EventStart in both directions.
func (n *NewsItem) Normalize() {
	if n.Kind != NewsKindEvent {
		n.DateEvent = nil
		n.EventStart = nil
		n.EventEnd = nil
		n.Location = ""
		return
	}
	if n.EventStart == nil && n.DateEvent != nil {
		n.EventStart = n.DateEvent
	}
	if n.EventStart != nil {
		n.DateEvent = n.EventStart
	}
}

// Validate checks field constraints and the event date ordering rule.
func (n *NewsItem) Validate() error {
	v := validator.New()
	if err := v.Struct(n); err != nil {
		return err
	}
	if n.Kind == NewsKindEvent && n.EventStart != nil && n.EventEnd != nil {
		if n.EventEnd.Before(*n.EventStart) {
			return ErrEventEndBeforeStart
		}
	}
	return nil
}

// BeforeSave normalizes kind-dependent fields and rejects invalid event
// date ranges before anything hits the database.
func (n *NewsItem) BeforeSave(tx *gorm.DB) error {
	n.Normalize()
	if n.Kind == NewsKindEvent && n.EventStart != nil && n.EventEnd != nil {
		if n.EventEnd.Before(*n.EventStart) {
			return ErrEventEndBeforeStart
		}
	}
	return nil
}

// EffectiveStart resolves the event start, falling back to the legacy
// single-instant field.
func (n *NewsItem) EffectiveStart() *time.Time {
	if n.EventStart != nil {
		return n.EventStart
	}
	return n.DateEvent
}

// DateForOrder returns the one ordering key used for chronological sorting:
// events sort by their (effective) start, posts by creation time.
func (n *NewsItem) DateForOrder() time.Time {
	if n.Kind == NewsKindEvent {
		if s := n.EffectiveStart(); s != nil {
			return *s
		}
	}
	return n.CreatedAt
}

// IsFutureEvent reports whether the event is still relevant: not yet ended
// when an end is known, otherwise not yet started.
func (n *NewsItem) IsFutureEvent(now time.Time) bool {
	if n.Kind != NewsKindEvent {
		return false
	}
	if n.EventEnd != nil {
		return !n.EventEnd.Before(now)
	}
	if s := n.EffectiveStart(); s != nil {
		return !s.Before(now)
	}
	return false
}

// EventDisplayStatus derives the user-facing event phase from now and the
// known dates. Partial dates degrade gracefully: with only a start the
// event is upcoming or ongoing, with only an end it is ongoing or ended.
// Posts and dateless events yield an empty string.
func (n *NewsItem) EventDisplayStatus(now time.Time) string {
	if n.Kind != NewsKindEvent {
		return ""
	}
	start := n.EffectiveStart()
	end := n.EventEnd
	switch {
	case start != nil && end != nil:
		if now.Before(*start) {
			return EventUpcoming
		}
		if now.After(*end) {
			return EventEnded
		}
		return EventOngoing
	case start != nil:
		if now.Before(*start) {
			return EventUpcoming
		}
		return EventOngoing
	case end != nil:
		if now.After(*end) {
			return EventEnded
		}
		return EventOngoing
	}
	return ""
}
