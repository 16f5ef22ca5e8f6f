package client

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
)

// Client represents a client company whose initiatives are run on the
// platform. It is the root of the soft-delete cascade: deleting a client
// bulk-deletes its initiatives, their initiative-stores and its subusers.
type Client struct {
	shared.BaseEntity
	shared.SoftDeletable
	CompanyName string     `gorm:"type:varchar(200);not null;index" json:"companyName"`
	Email       string     `gorm:"type:varchar(200);not null;uniqueIndex" json:"email"`
	Phone       string     `gorm:"type:varchar(50)" json:"phoneNumber"`
	LogoURL     string     `gorm:"type:text" json:"logoUrl"`
	AgencyID    *uuid.UUID `gorm:"type:uuid;index" json:"agencyId,omitempty"`
	IsVerified  bool       `gorm:"not null;default:false" json:"isVerified"`
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a new active client
func NewClient(companyName, email string) (*Client, error) {
	companyName = strings.TrimSpace(companyName)
	if companyName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Company name is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Email is required")
	}

	return &Client{
		BaseEntity:  shared.NewBaseEntity(),
		CompanyName: companyName,
		Email:       email,
	}, nil
}

// Update updates the client's editable fields
func (c *Client) Update(companyName, phone, logoURL string) error {
	if companyName != "" {
		if len(companyName) > 200 {
			return shared.NewDomainError("INVALID_INPUT", "Company name cannot exceed 200 characters")
		}
		c.CompanyName = companyName
	}
	if phone != "" {
		c.Phone = phone
	}
	if logoURL != "" {
		c.LogoURL = logoURL
	}
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// AssignAgency links the client to an agency
func (c *Client) AssignAgency(agencyID uuid.UUID) {
	c.AgencyID = &agencyID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
