package model

import (
	"time"
)

const (
	RoleAmbassador  = "ambassador"
	RoleCoordinator = "coordinator"
	RoleAdmin       = "admin"
)

type Ambassador struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Not exposed
	Phone          string    `json:"phone"`
	College        string    `json:"college"`
	ReferralCode   string    `json:"referralCode"`
	TotalReferrals int       `json:"totalReferrals"`
	ManualPoints   int       `json:"manualPoints"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
