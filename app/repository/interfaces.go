package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/enfantsenjoie/eejsite/app/models"
)

// DonationRepository defines the interface for donation-related database
// operations. Reconcile is the single write path used by the payment
// webhook and must be atomic per delivery.
type DonationRepository interface {
	Create(donation *models.Donation) error
	GetByReference(reference string) (*models.Donation, error)
	// Reconcile applies a recognized external status to the donation with
	// the given reference in one conditional UPDATE (status, external
	// transaction id and updated_at change together). It returns the
	// number of rows matched.
	Reconcile(reference, status, externalTransactionID string) (int64, error)
	ListRecent(limit int) ([]models.Donation, error)
	Count() (int64, error)
	CountByStatus(status string) (int64, error)
}

// NewsRepository defines the interface for news/event content operations
type NewsRepository interface {
	Create(item *models.NewsItem) error
	GetByID(id uint) (*models.NewsItem, error)
	GetBySlug(slug string) (*models.NewsItem, error)
	GetPublishedBySlug(slug string) (*models.NewsItem, error)
	ListPublished(kind string, categoryID *uint) ([]models.NewsItem, error)
	ListRecentPublished(kind string, limit int) ([]models.NewsItem, error)
	ListUpcomingEvents(now time.Time, categoryID *uint) ([]models.NewsItem, error)
	ListRelated(excludeID uint, limit int) ([]models.NewsItem, error)
	GetPreviousPublished(createdAt time.Time) (*models.NewsItem, error)
	GetNextPublished(createdAt time.Time) (*models.NewsItem, error)
	Search(query string) ([]models.NewsItem, error)
	ListAll(offset, limit int) ([]models.NewsItem, error)
	Update(item *models.NewsItem) error
	Delete(id uint) error
	Count() (int64, error)
	CountPublished() (int64, error)
	CountFutureEvents(now time.Time) (int64, error)
	SlugExists(slug string) (bool, error)
	SlugExistsExceptID(slug string, id uint) (bool, error)
	AddMedia(media *models.NewsMedia) error
	DeleteMedia(id uint) error
	ListPublishedMedia() ([]models.NewsMedia, error)
	CategoriesWithPublished(kind string) ([]models.Category, error)
}

// CategoryRepository defines the interface for category operations
type CategoryRepository interface {
	Create(category *models.Category) error
	GetByID(id uint) (*models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	GetByNameFold(name string) (*models.Category, error)
	GetAll() ([]models.Category, error)
	Update(category *models.Category) error
	Delete(id uint) error
	SlugExists(slug string) (bool, error)
}

// GalleryRepository defines the interface for gallery collection/media
// operations
type GalleryRepository interface {
	CreateCollection(collection *models.GalleryCollection) error
	GetCollectionByID(id uint) (*models.GalleryCollection, error)
	ListCollectionsWithMedia() ([]models.GalleryCollection, error)
	CollectionSlugExists(slug string) (bool, error)
	MediaExists(collectionID uint, filePath string) (bool, error)
	CreateMedia(media *models.GalleryMedia) error
	HasCollections() (bool, error)
}

// ContactRepository defines the interface for contact message operations
type ContactRepository interface {
	Create(message *models.ContactMessage) error
	List(offset, limit int) ([]models.ContactMessage, error)
	CountPending() (int64, error)
	MarkHandled(id uint) error
}

// CenterRepository defines the interface for center operations
type CenterRepository interface {
	GetAll() ([]models.Center, error)
	Count() (int64, error)
}

// MetricsRepository provides access to the single impact metrics row
type MetricsRepository interface {
	Get() (*models.ImpactMetrics, error)
	Save(metrics *models.ImpactMetrics) error
}

// UserRepository defines the interface for staff account operations
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	UpdateLastLogin(id uint, at time.Time) error
	Count() (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	Donation DonationRepository
	News     NewsRepository
	Category CategoryRepository
	Gallery  GalleryRepository
	Contact  ContactRepository
	Center   CenterRepository
	Metrics  MetricsRepository
	User     UserRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Donation: NewDonationRepository(db),
		News:     NewNewsRepository(db),
		Category: NewCategoryRepository(db),
		Gallery:  NewGalleryRepository(db),
		Contact:  NewContactRepository(db),
		Center:   NewCenterRepository(db),
		Metrics:  NewMetricsRepository(db),
		User:     NewUserRepository(db),
	}
}
