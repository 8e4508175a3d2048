package domain

import "time"

// ViewMode enumerates dashboard layout modes.
type ViewMode string

const (
	ViewModeGrid ViewMode = "grid"
	ViewModeList ViewMode = "list"
)

// DateRange bounds a filter interval, inclusive on both ends.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// AssetFilters narrows the dashboard's asset listing. Nil fields mean
// "no constraint"; merging a partial filter only replaces the provided fields.
type AssetFilters struct {
	Type      *AssetType   `json:"type,omitempty"`
	Status    *AssetStatus `json:"status,omitempty"`
	DateRange *DateRange   `json:"dateRange,omitempty"`
	Tags      []string     `json:"tags,omitempty"`
}

// UIState is the ephemeral presentation state. It is never persisted.
type UIState struct {
	IsLoading      bool         `json:"isLoading"`
	Error          string       `json:"error,omitempty"`
	SelectedAssets []string     `json:"selectedAssets"`
	ViewMode       ViewMode     `json:"viewMode"`
	Filters        AssetFilters `json:"filters"`
}
