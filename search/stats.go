package search

import (
	"context"
	"math"
	"runtime"

	"github.com/fwojciec/localmind"
)

var _ localmind.StatsService = (*StatsService)(nil)

// ModelStatus describes the ranking model in Stats.
const ModelStatus = "TF-IDF (Enhanced Mode)"

// StatsService implements localmind.StatsService.
type StatsService struct {
	Documents localmind.DocumentService
	Log       localmind.SearchLog
	Index     localmind.Index
	Policy    localmind.UploadPolicy

	// Whether question answering is configured.
	AskEnabled bool
}

// Stats reports document, storage and search history totals.
func (s *StatsService) Stats(ctx context.Context) (*localmind.Stats, error) {
	storage, err := s.Documents.StorageStats(ctx)
	if err != nil {
		return nil, err
	}
	searches, err := s.Log.CountSearches(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.Log.RecentSearches(ctx, localmind.RecentSearchCount)
	if err != nil {
		return nil, err
	}

	return &localmind.Stats{
		TotalDocuments:   storage.Documents,
		TotalSearches:    searches,
		StorageUsedKB:    math.Round(float64(storage.ContentBytes)/1024*100) / 100,
		StorageUsed:      localmind.FormatSize(storage.ContentBytes),
		UniqueTerms:      s.Index.VocabularySize(),
		RecentSearches:   recent,
		Platform:         runtime.GOOS + "/" + runtime.GOARCH,
		ModelStatus:      ModelStatus,
		MaxUploadSizeMB:  s.Policy.MaxFileSize / (1024 * 1024),
		SupportedFormats: s.Policy.AllowedExtensions,
		FeaturesAvailable: map[string]bool{
			"semantic_search": true,
			"document_upload": true,
			"url_import":      true,
			"web_search":      false,
			"gpt_integration": s.AskEnabled,
			"ocr":             false,
		},
	}, nil
}
