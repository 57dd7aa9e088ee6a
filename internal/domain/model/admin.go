package model

import "time"

// Admin accounts live in a store separate from ambassadors. Both resolve to a
// Principal on login.
type Admin struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
}
