package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"anoa.com/wodtracker/internal/entity"
	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
	"github.com/sirupsen/logrus"
)

const movementsIndex = "movements"

// MovementIndex mirrors the catalogue into a full text index.
type MovementIndex interface {
	Index(movements ...entity.Movement) error
	Delete(id uuid.UUID) error
	// Search returns matching ids, best match first.
	Search(query, category string, limit int64) ([]uuid.UUID, error)
}

type meiliMovementIndex struct {
	client meilisearch.ServiceManager
}

type meiliMovementDoc struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Muscles     []string `json:"muscles"`
}

func NewMeiliMovementIndex(client meilisearch.ServiceManager) MovementIndex {
	idx := &meiliMovementIndex{client: client}
	idx.initIndex()
	return idx
}

func (i *meiliMovementIndex) initIndex() {
	filterable := []any{"category"}
	if _, err := i.client.Index(movementsIndex).UpdateFilterableAttributes(&filterable); err != nil {
		logrus.WithError(err).Warn("⚠️ failed to update movements filterable attributes")
	}

	searchable := []string{"name", "muscles", "type", "description"}
	if _, err := i.client.Index(movementsIndex).UpdateSearchableAttributes(&searchable); err != nil {
		logrus.WithError(err).Warn("⚠️ failed to update movements searchable attributes")
	}
}

func (i *meiliMovementIndex) Index(movements ...entity.Movement) error {
	if len(movements) == 0 {
		return nil
	}

	docs := make([]meiliMovementDoc, 0, len(movements))
	for _, m := range movements {
		docs = append(docs, meiliMovementDoc{
			ID:          m.ID.String(),
			Slug:        m.Slug,
			Name:        m.Name,
			Category:    m.Category,
			Type:        m.Type,
			Description: m.Description,
			Muscles:     []string(m.Muscles),
		})
	}

	primaryKey := "id"
	task, err := i.client.Index(movementsIndex).AddDocuments(docs, &primaryKey)
	if err != nil {
		return fmt.Errorf("failed to index movements: %w", err)
	}
	logrus.WithFields(logrus.Fields{"count": len(docs), "task_uid": task.TaskUID}).Debug("movements queued for indexing")
	return nil
}

func (i *meiliMovementIndex) Delete(id uuid.UUID) error {
	_, err := i.client.Index(movementsIndex).DeleteDocument(id.String())
	return err
}

func (i *meiliMovementIndex) Search(query, category string, limit int64) ([]uuid.UUID, error) {
	req := &meilisearch.SearchRequest{
		Limit:                limit,
		AttributesToRetrieve: []string{"id"},
	}
	if category != "" {
		req.Filter = fmt.Sprintf("category = %q", category)
	}

	raw, err := i.client.Index(movementsIndex).SearchRaw(query, req)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Hits []struct {
			ID string `json:"id"`
		} `json:"hits"`
	}
	if err := json.Unmarshal(*raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode movement hits: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		id, err := uuid.Parse(strings.TrimSpace(hit.ID))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
