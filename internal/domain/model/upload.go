package model

import "time"

// The three fixed outreach-evidence channels. Upload entries never move
// between categories.
const (
	CategoryWhatsappStatus = "whatsapp_status"
	CategoryInstagramStory = "instagram_story"
	CategoryWhatsappGroup  = "whatsapp_group"
)

var Categories = []string{CategoryWhatsappStatus, CategoryInstagramStory, CategoryWhatsappGroup}

func IsValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

const (
	ApprovalPending  = "pending"
	ApprovalVerified = "verified"
	ApprovalRejected = "rejected"
)

func IsValidApprovalStatus(s string) bool {
	return s == ApprovalPending || s == ApprovalVerified || s == ApprovalRejected
}

// Upload is one proof-of-outreach image. Entries are append-only per
// category; an admin may only mutate Points and ApprovalStatus.
type Upload struct {
	ID             string    `json:"-"`
	AmbassadorID   string    `json:"-"`
	Category       string    `json:"-"`
	URL            string    `json:"url"`
	PublicID       string    `json:"public_id"`
	UploadedAt     time.Time `json:"uploadedAt"`
	ApprovalStatus string    `json:"approval_status"`
	Points         int       `json:"points"`
}

// UploadsByCategory groups an ambassador's uploads per channel, ordered by
// upload time within each category.
type UploadsByCategory map[string][]Upload
