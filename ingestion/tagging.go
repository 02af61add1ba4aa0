package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/scholaris/core"
	"github.com/poiesic/scholaris/sdg"
	"github.com/poiesic/scholaris/storage"
)

// taggingProcessor assigns sustainability goal codes to untagged publications.
type taggingProcessor struct {
	publicationRepository storage.PublicationRepository
	threshold             float64
	logger                *slog.Logger
}

var _ processor = (*taggingProcessor)(nil)

// newTaggingProcessor creates a new goal tagging processor.
func newTaggingProcessor(publicationRepository storage.PublicationRepository, threshold float64, logger *slog.Logger) (processor, error) {
	if publicationRepository == nil {
		return nil, fmt.Errorf("publication repository required")
	}
	if threshold <= 0 {
		threshold = sdg.DefaultThreshold
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &taggingProcessor{
		publicationRepository: publicationRepository,
		threshold:             threshold,
		logger:                logger.With("processor", "goal-tagging"),
	}, nil
}

// process classifies the specified publications against the sustainability
// goal catalog. Publications that already carry goals are left untouched.
func (tp *taggingProcessor) process(ctx context.Context, ids ...core.ID) error {
	tp.logger.Info("tagging publications with sustainability goals", "records", len(ids))

	publications, err := tp.publicationRepository.GetPublications(ctx, ids...)
	if err != nil {
		tp.logger.Error("error retrieving publications", "err", err)
		return err
	}

	tagged := make([]*core.Publication, 0, len(publications))
	for _, publication := range publications {
		if len(publication.Goals) > 0 {
			continue
		}
		if strings.TrimSpace(publication.Abstract) == "" {
			continue
		}

		codes := sdg.ClassifyDocument(publication.Title, publication.Abstract, tp.threshold)
		if len(codes) == 0 {
			continue
		}

		publication.Goals = codes
		publication.GoalsAutoTagged = true
		tagged = append(tagged, publication)
	}

	if len(tagged) == 0 {
		return nil
	}

	tp.logger.Debug("assigning auto-tagged goals", "records", len(tagged))
	_, err = tp.publicationRepository.UpdatePublications(ctx, tagged...)
	return err
}
