package domain

import "time"

// AssetType enumerates generated content categories.
type AssetType string

const (
	AssetTypeImage AssetType = "image"
	AssetTypeVideo AssetType = "video"
)

// AssetStatus enumerates the asset generation lifecycle.
type AssetStatus string

const (
	AssetStatusPending    AssetStatus = "pending"
	AssetStatusProcessing AssetStatus = "processing"
	AssetStatusCompleted  AssetStatus = "completed"
	AssetStatusFailed     AssetStatus = "failed"
)

// AssetSettings captures the generation parameters the asset was requested
// with. Duration and FPS only apply to videos.
type AssetSettings struct {
	Model       string  `json:"model"`
	Style       string  `json:"style,omitempty"`
	AspectRatio string  `json:"aspectRatio"`
	Resolution  string  `json:"resolution"`
	Duration    float64 `json:"duration,omitempty"`
	FPS         int     `json:"fps,omitempty"`
}

// AssetURLs points at the stored output variants.
type AssetURLs struct {
	Original    string `json:"original"`
	Thumbnail   string `json:"thumbnail"`
	Watermarked string `json:"watermarked,omitempty"`
}

// Dimensions is a pixel width/height pair.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// AssetMetadata describes the produced file.
type AssetMetadata struct {
	FileSize   int64      `json:"fileSize"`
	Duration   float64    `json:"duration,omitempty"`
	Dimensions Dimensions `json:"dimensions"`
	Format     string     `json:"format"`
}

// Asset represents a generated artifact belonging to a project.
type Asset struct {
	ID        string        `json:"id"`
	ProjectID string        `json:"projectId"`
	UserID    string        `json:"userId"`
	Type      AssetType     `json:"type"`
	Prompt    string        `json:"prompt"`
	Settings  AssetSettings `json:"settings"`
	Status    AssetStatus   `json:"status"`
	URLs      AssetURLs     `json:"urls"`
	Metadata  AssetMetadata `json:"metadata"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
