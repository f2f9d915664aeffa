package service

import (
	"encoding/json"
	"fmt"
	"log"

	"anoa.com/careerhub/internal/entity"
	"anoa.com/careerhub/internal/modules/search/dto"
	"anoa.com/careerhub/pkg/apperror"
	"anoa.com/careerhub/pkg/sanitize"
	"github.com/meilisearch/meilisearch-go"
)

const (
	IndexPosts = "posts"
	IndexJobs  = "jobs"

	defaultLimit int64 = 20
	maxLimit     int64 = 100
)

type SearchService interface {
	IndexJob(job *entity.Job) error
	IndexPost(post *entity.Post) error
	DeleteJob(id string) error
	DeletePost(id string) error
	Search(index, query string, limit int64) (*dto.SearchResponse, error)
}

type meiliSearchService struct {
	client meilisearch.ServiceManager
}

func NewMeiliSearchService(client meilisearch.ServiceManager) SearchService {
	s := &meiliSearchService{client: client}
	s.initIndexes()
	return s
}

func (s *meiliSearchService) initIndexes() {
	postSortable := []string{"created_at"}
	if _, err := s.client.Index(IndexPosts).UpdateSortableAttributes(&postSortable); err != nil {
		log.Printf("Failed to update posts sortable attributes: %v", err)
	}

	jobFilterable := []string{"location", "min_offer", "max_offer"}
	jobFilterableInterface := make([]any, len(jobFilterable))
	for i, v := range jobFilterable {
		jobFilterableInterface[i] = v
	}
	if _, err := s.client.Index(IndexJobs).UpdateFilterableAttributes(&jobFilterableInterface); err != nil {
		log.Printf("Failed to update jobs filterable attributes: %v", err)
	}

	jobSortable := []string{"created_at", "max_offer"}
	if _, err := s.client.Index(IndexJobs).UpdateSortableAttributes(&jobSortable); err != nil {
		log.Printf("Failed to update jobs sortable attributes: %v", err)
	}

	log.Println("Meilisearch indexes initialized")
}

type meiliPostDoc struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Slug      string `json:"slug"`
	Author    string `json:"author"`
	CreatedAt int64  `json:"created_at"`
}

type meiliJobDoc struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	MinOffer    int    `json:"min_offer"`
	MaxOffer    int    `json:"max_offer"`
	CreatedAt   int64  `json:"created_at"`
}

func (s *meiliSearchService) IndexPost(post *entity.Post) error {
	doc := meiliPostDoc{
		ID:        post.ID.String(),
		Title:     post.Title,
		Content:   sanitize.PlainText(post.Content),
		Slug:      post.Slug,
		Author:    post.User.Username,
		CreatedAt: post.CreatedAt.Unix(),
	}

	task, err := s.client.Index(IndexPosts).AddDocuments([]meiliPostDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed post %s, task id: %d", post.ID, task.TaskUID)
	return nil
}

func (s *meiliSearchService) IndexJob(job *entity.Job) error {
	doc := meiliJobDoc{
		ID:          job.ID.String(),
		Title:       job.Title,
		Description: sanitize.PlainText(job.Description),
		Location:    job.Location,
		MinOffer:    job.MinOffer,
		MaxOffer:    job.MaxOffer,
		CreatedAt:   job.CreatedAt.Unix(),
	}

	task, err := s.client.Index(IndexJobs).AddDocuments([]meiliJobDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed job %s, task id: %d", job.ID, task.TaskUID)
	return nil
}

func (s *meiliSearchService) DeletePost(id string) error {
	_, err := s.client.Index(IndexPosts).DeleteDocument(id)
	return err
}

func (s *meiliSearchService) DeleteJob(id string) error {
	_, err := s.client.Index(IndexJobs).DeleteDocument(id)
	return err
}

type rawSearchResult struct {
	Hits               []json.RawMessage `json:"hits"`
	EstimatedTotalHits int64             `json:"estimatedTotalHits"`
}

func (s *meiliSearchService) Search(index, query string, limit int64) (*dto.SearchResponse, error) {
	if index != IndexPosts && index != IndexJobs {
		return nil, fmt.Errorf("unknown search type %q: %w", index, apperror.ErrBadRequest)
	}

	raw, err := s.client.Index(index).SearchRaw(query, &meilisearch.SearchRequest{
		Limit: clampLimit(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", index, err)
	}

	var result rawSearchResult
	if raw != nil {
		if err := json.Unmarshal(*raw, &result); err != nil {
			return nil, fmt.Errorf("decode search result: %w", err)
		}
	}
	if result.Hits == nil {
		result.Hits = []json.RawMessage{}
	}

	return &dto.SearchResponse{
		Index:              index,
		Query:              query,
		Hits:               result.Hits,
		EstimatedTotalHits: result.EstimatedTotalHits,
	}, nil
}

func clampLimit(limit int64) int64 {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func strPtr(s string) *string {
	return &s
}

type disabledSearchService struct{}

// NewDisabledSearchService is used when Meilisearch is not configured: indexing is skipped
// and queries report the service as unavailable.
func NewDisabledSearchService() SearchService {
	return disabledSearchService{}
}

func (disabledSearchService) IndexJob(*entity.Job) error   { return nil }
func (disabledSearchService) IndexPost(*entity.Post) error { return nil }
func (disabledSearchService) DeleteJob(string) error       { return nil }
func (disabledSearchService) DeletePost(string) error      { return nil }

func (disabledSearchService) Search(string, string, int64) (*dto.SearchResponse, error) {
	return nil, fmt.Errorf("search is not configured: %w", apperror.ErrUnavailable)
}
