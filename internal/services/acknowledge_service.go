package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/candela/internal/models"
)

var (
	ErrContactNotFound       = errors.New("contact not found")
	ErrAcknowledgeLoadFailed = errors.New("load acknowledgment state failed")
	ErrAcknowledgeSaveFailed = errors.New("save acknowledgment failed")
)

type AcknowledgeContactRepository interface {
	FindByUserAndID(userID uint, contactID uint) (models.Contact, bool, error)
	UpdateAcknowledgement(contactID uint, lastAcknowledgedYear *int) error
}

type AcknowledgeUserRepository interface {
	FindByID(userID uint) (models.User, error)
	UpdateStreak(userID uint, count int, lastAcknowledgedOn *time.Time) error
}

// AcknowledgeService applies the acknowledgment command: it flips a contact's
// acknowledged-this-year marker and, on a genuine pending-to-acknowledged
// transition, advances the owner's streak.
type AcknowledgeService struct {
	contacts AcknowledgeContactRepository
	users    AcknowledgeUserRepository
}

func NewAcknowledgeService(contacts AcknowledgeContactRepository, users AcknowledgeUserRepository) *AcknowledgeService {
	return &AcknowledgeService{
		contacts: contacts,
		users:    users,
	}
}

type AcknowledgeResult struct {
	Contact models.Contact
	Status  CycleStatus
	Streak  StreakState
	Changed bool
}

// SetAcknowledged moves the contact to the desired acknowledged state for
// today's year. Repeating the current state is a no-op (two devices may race
// on the same record), and only a real false-to-true transition feeds the
// streak. Clearing the marker never rolls the streak back.
func (service *AcknowledgeService) SetAcknowledged(userID uint, contactID uint, desired bool, today time.Time) (AcknowledgeResult, error) {
	contact, found, err := service.contacts.FindByUserAndID(userID, contactID)
	if err != nil {
		return AcknowledgeResult{}, ErrAcknowledgeLoadFailed
	}
	if !found {
		return AcknowledgeResult{}, ErrContactNotFound
	}

	user, err := service.users.FindByID(userID)
	if err != nil {
		return AcknowledgeResult{}, ErrAcknowledgeLoadFailed
	}

	streak := StreakState{
		Count:                  user.StreakCount,
		LastAcknowledgmentDate: user.LastAcknowledgedOn,
	}
	year := dateOnly(today).Year()
	acknowledgedThisYear := contact.LastAcknowledgedYear != nil && *contact.LastAcknowledgedYear == year

	result := AcknowledgeResult{Contact: contact, Streak: streak}

	switch {
	case desired && !acknowledgedThisYear:
		contact.LastAcknowledgedYear = &year
		if err := service.contacts.UpdateAcknowledgement(contact.ID, &year); err != nil {
			return AcknowledgeResult{}, ErrAcknowledgeSaveFailed
		}

		streak = RecordAcknowledgment(streak, today)
		if err := service.users.UpdateStreak(userID, streak.Count, streak.LastAcknowledgmentDate); err != nil {
			return AcknowledgeResult{}, ErrAcknowledgeSaveFailed
		}

		result.Contact = contact
		result.Streak = streak
		result.Changed = true

	case !desired && contact.LastAcknowledgedYear != nil:
		contact.LastAcknowledgedYear = nil
		if err := service.contacts.UpdateAcknowledgement(contact.ID, nil); err != nil {
			return AcknowledgeResult{}, ErrAcknowledgeSaveFailed
		}

		result.Contact = contact
		result.Changed = true
	}

	result.Status = Classify(result.Contact, today)
	return result, nil
}
