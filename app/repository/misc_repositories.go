package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/enfantsenjoie/eejsite/app/models"
)

// contactRepository implements the ContactRepository interface
type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository instance
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(message *models.ContactMessage) error {
	return r.db.Create(message).Error
}

func (r *contactRepository) List(offset, limit int) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&messages).Error
	return messages, err
}

func (r *contactRepository) CountPending() (int64, error) {
	var count int64
	err := r.db.Model(&models.ContactMessage{}).Where("handled = ?", false).Count(&count).Error
	return count, err
}

func (r *contactRepository) MarkHandled(id uint) error {
	return r.db.Model(&models.ContactMessage{}).Where("id = ?", id).Update("handled", true).Error
}

// centerRepository implements the CenterRepository interface
type centerRepository struct {
	db *gorm.DB
}

// NewCenterRepository creates a new center repository instance
func NewCenterRepository(db *gorm.DB) CenterRepository {
	return &centerRepository{db: db}
}

func (r *centerRepository) GetAll() ([]models.Center, error) {
	var centers []models.Center
	err := r.db.Order("city, name").Find(&centers).Error
	return centers, err
}

func (r *centerRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Center{}).Count(&count).Error
	return count, err
}

// metricsRepository implements the MetricsRepository interface
type metricsRepository struct {
	db *gorm.DB
}

// NewMetricsRepository creates a new metrics repository instance
func NewMetricsRepository(db *gorm.DB) MetricsRepository {
	return &metricsRepository{db: db}
}

// Get returns the single impact metrics row, or defaults when none exists
func (r *metricsRepository) Get() (*models.ImpactMetrics, error) {
	var metrics models.ImpactMetrics
	err := r.db.First(&metrics).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.ImpactMetrics{
			YouthTrained:       "120+",
			HealthSessions:     "35",
			EnvironmentActions: "18",
			InterventionZones:  "5",
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &metrics, nil
}

func (r *metricsRepository) Save(metrics *models.ImpactMetrics) error {
	return r.db.Save(metrics).Error
}

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateLastLogin(id uint, at time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("last_login_at", at).Error
}

func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}
