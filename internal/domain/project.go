package domain

import "time"

// Project groups generated assets under a user-chosen name. AssetIDs and
// Collaborators are sets; ordering carries no meaning.
type Project struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Type          AssetType `json:"type"`
	AssetIDs      []string  `json:"assets"`
	Collaborators []string  `json:"collaborators"`
	IsPublic      bool      `json:"isPublic"`
	Tags          []string  `json:"tags"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
