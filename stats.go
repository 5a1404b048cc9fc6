package localmind

import "context"

// Stats is the knowledge base summary reported by the stats endpoint.
type Stats struct {
	TotalDocuments    int             `json:"total_documents"`
	TotalSearches     int             `json:"total_searches"`
	StorageUsedKB     float64         `json:"storage_used_kb"`
	StorageUsed       string          `json:"storage_used"`
	UniqueTerms       int             `json:"unique_terms"`
	RecentSearches    []*SearchEvent  `json:"recent_searches"`
	Platform          string          `json:"platform"`
	ModelStatus       string          `json:"model_status"`
	MaxUploadSizeMB   int             `json:"max_upload_size_mb"`
	SupportedFormats  []string        `json:"supported_formats"`
	FeaturesAvailable map[string]bool `json:"features_available"`
}

// RecentSearchCount is how many searches Stats lists.
const RecentSearchCount = 5

// StatsService summarizes the knowledge base.
type StatsService interface {
	Stats(ctx context.Context) (*Stats, error)
}
