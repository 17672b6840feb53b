package db

import (
	"github.com/terraincognita07/candela/internal/models"
	"gorm.io/gorm"
)

type ContactRepository struct {
	database *gorm.DB
}

func NewContactRepository(database *gorm.DB) *ContactRepository {
	return &ContactRepository{database: database}
}

func (repo *ContactRepository) ListByUser(userID uint) ([]models.Contact, error) {
	contacts := make([]models.Contact, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("birthday_month ASC, birthday_day ASC, id ASC").
		Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (repo *ContactRepository) FindByUserAndID(userID uint, contactID uint) (models.Contact, bool, error) {
	var contact models.Contact
	result := repo.database.
		Where("user_id = ? AND id = ?", userID, contactID).
		Limit(1).
		Find(&contact)
	if result.Error != nil {
		return models.Contact{}, false, result.Error
	}
	return contact, result.RowsAffected > 0, nil
}

func (repo *ContactRepository) Create(contact *models.Contact) error {
	return repo.database.Create(contact).Error
}

func (repo *ContactRepository) Save(contact *models.Contact) error {
	return repo.database.Save(contact).Error
}

func (repo *ContactRepository) DeleteByUserAndID(userID uint, contactID uint) error {
	return repo.database.Where("user_id = ? AND id = ?", userID, contactID).Delete(&models.Contact{}).Error
}

// UpdateAcknowledgement writes only the acknowledgment year so concurrent
// edits to other columns are never clobbered.
func (repo *ContactRepository) UpdateAcknowledgement(contactID uint, lastAcknowledgedYear *int) error {
	return repo.database.Model(&models.Contact{}).
		Where("id = ?", contactID).
		Update("last_acknowledged_year", lastAcknowledgedYear).Error
}
