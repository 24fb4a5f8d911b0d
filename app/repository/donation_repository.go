package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/enfantsenjoie/eejsite/app/models"
)

// donationRepository implements the DonationRepository interface
type donationRepository struct {
	db *gorm.DB
}

// NewDonationRepository creates a new donation repository instance
func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

// Create inserts a new donation record
func (r *donationRepository) Create(donation *models.Donation) error {
	return r.db.Create(donation).Error
}

// GetByReference retrieves a donation by its unique reference
func (r *donationRepository) GetByReference(reference string) (*models.Donation, error) {
	var donation models.Donation
	err := r.db.Where("reference = ?", reference).First(&donation).Error
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

// Reconcile applies an external payment status in a single conditional
// UPDATE keyed on the reference. Concurrent duplicate deliveries for the
// same reference each run one statement, so status and transaction id can
// never mix between deliveries.
func (r *donationRepository) Reconcile(reference, status, externalTransactionID string) (int64, error) {
	result := r.db.Model(&models.Donation{}).
		Where("reference = ?", reference).
		Updates(map[string]interface{}{
			"status":                  status,
			"external_transaction_id": externalTransactionID,
			"updated_at":              time.Now(),
		})
	return result.RowsAffected, result.Error
}

// ListRecent returns the newest donations for the staff dashboard
func (r *donationRepository) ListRecent(limit int) ([]models.Donation, error) {
	var donations []models.Donation
	err := r.db.Order("created_at DESC").Limit(limit).Find(&donations).Error
	return donations, err
}

// Count returns the total number of donation records
func (r *donationRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Donation{}).Count(&count).Error
	return count, err
}

// CountByStatus returns the number of donations in the given status
func (r *donationRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Donation{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
