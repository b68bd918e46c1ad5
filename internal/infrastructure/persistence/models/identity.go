package models

import (
	"time"

	"github.com/linkbio/backend/internal/domain/identity"
)

// AccountModel is the persistence model for the Account domain entity.
type AccountModel struct {
	AggregateModel
	Email        string                 `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string                 `gorm:"type:varchar(255);not null"`
	Status       identity.AccountStatus `gorm:"type:varchar(20);not null;default:'active'"`
	LastLoginAt  *time.Time             `gorm:"index"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account entity.
func (m *AccountModel) ToDomain() *identity.Account {
	return &identity.Account{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		Status:            m.Status,
		LastLoginAt:       m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain Account entity.
func (m *AccountModel) FromDomain(a *identity.Account) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.Email = a.Email
	m.PasswordHash = a.PasswordHash
	m.Status = a.Status
	m.LastLoginAt = a.LastLoginAt
}

// AccountModelFromDomain creates a new persistence model from a domain Account entity.
func AccountModelFromDomain(a *identity.Account) *AccountModel {
	m := &AccountModel{}
	m.FromDomain(a)
	return m
}
