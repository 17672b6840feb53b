package db

import "gorm.io/gorm"

type Repositories struct {
	Users    *UserRepository
	Contacts *ContactRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(database),
		Contacts: NewContactRepository(database),
	}
}
