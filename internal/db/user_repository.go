package db

import (
	"time"

	"github.com/terraincognita07/candela/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, bool, error) {
	var user models.User
	result := repo.database.
		Where("lower(trim(email)) = ?", email).
		Limit(1).
		Find(&user)
	if result.Error != nil {
		return models.User{}, false, result.Error
	}
	return user, result.RowsAffected > 0, nil
}

// ListNotifiable returns the users the scheduler should process: digests
// enabled and a Telegram chat to deliver to.
func (repo *UserRepository) ListNotifiable() ([]models.User, error) {
	users := make([]models.User, 0)
	if err := repo.database.
		Where("notifications_enabled = ? AND telegram_chat_id <> ''", true).
		Order("id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) Save(user *models.User) error {
	return repo.database.Save(user).Error
}

func (repo *UserRepository) UpdateNotificationsEnabled(userID uint, enabled bool) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Update("notifications_enabled", enabled).Error
}

// UpdateStreak persists the acknowledgment streak counters in one write.
func (repo *UserRepository) UpdateStreak(userID uint, count int, lastAcknowledgedOn *time.Time) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"streak_count":         count,
		"last_acknowledged_on": lastAcknowledgedOn,
	}).Error
}

func (repo *UserRepository) DeleteAccountAndRelatedData(userID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Contact{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}
