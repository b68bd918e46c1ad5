package models

import (
	"github.com/google/uuid"

	"github.com/linkbio/backend/internal/domain/linkbio"
)

// ProfileModel is the persistence model for the Profile domain entity.
// The profile's primary key is the owning account's ID.
type ProfileModel struct {
	AggregateModel
	Username        string `gorm:"type:varchar(50);not null;uniqueIndex"`
	DisplayName     string `gorm:"type:varchar(200);not null"`
	Bio             string `gorm:"type:text"`
	AvatarURL       string `gorm:"type:varchar(500)"`
	ThemeColor      string `gorm:"type:varchar(7);not null"`
	BackgroundColor string `gorm:"type:varchar(7);not null"`
}

// TableName returns the table name for GORM
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToDomain converts the persistence model to a domain Profile entity.
func (m *ProfileModel) ToDomain() *linkbio.Profile {
	return &linkbio.Profile{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Username:          m.Username,
		DisplayName:       m.DisplayName,
		Bio:               m.Bio,
		AvatarURL:         m.AvatarURL,
		ThemeColor:        m.ThemeColor,
		BackgroundColor:   m.BackgroundColor,
	}
}

// FromDomain populates the persistence model from a domain Profile entity.
func (m *ProfileModel) FromDomain(p *linkbio.Profile) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Username = p.Username
	m.DisplayName = p.DisplayName
	m.Bio = p.Bio
	m.AvatarURL = p.AvatarURL
	m.ThemeColor = p.ThemeColor
	m.BackgroundColor = p.BackgroundColor
}

// ProfileModelFromDomain creates a new persistence model from a domain Profile entity.
func ProfileModelFromDomain(p *linkbio.Profile) *ProfileModel {
	m := &ProfileModel{}
	m.FromDomain(p)
	return m
}

// LinkModel is the persistence model for the Link domain entity.
type LinkModel struct {
	AggregateModel
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(200);not null"`
	URL         string    `gorm:"type:varchar(2000);not null"`
	Description string    `gorm:"type:text"`
	OrderIndex  int       `gorm:"not null;default:0"`
	IsActive    bool      `gorm:"not null;default:true"`
	ClickCount  int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (LinkModel) TableName() string {
	return "links"
}

// ToDomain converts the persistence model to a domain Link entity.
func (m *LinkModel) ToDomain() *linkbio.Link {
	return &linkbio.Link{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		UserID:            m.UserID,
		Title:             m.Title,
		URL:               m.URL,
		Description:       m.Description,
		OrderIndex:        m.OrderIndex,
		IsActive:          m.IsActive,
		ClickCount:        m.ClickCount,
	}
}

// FromDomain populates the persistence model from a domain Link entity.
func (m *LinkModel) FromDomain(l *linkbio.Link) {
	m.FromDomainAggregateRoot(l.BaseAggregateRoot)
	m.UserID = l.UserID
	m.Title = l.Title
	m.URL = l.URL
	m.Description = l.Description
	m.OrderIndex = l.OrderIndex
	m.IsActive = l.IsActive
	m.ClickCount = l.ClickCount
}

// LinkModelFromDomain creates a new persistence model from a domain Link entity.
func LinkModelFromDomain(l *linkbio.Link) *LinkModel {
	m := &LinkModel{}
	m.FromDomain(l)
	return m
}
