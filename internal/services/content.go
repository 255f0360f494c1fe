package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/sbilibin2017/gw-content-studio/internal/logger"
	"github.com/sbilibin2017/gw-content-studio/internal/models"
	"github.com/sbilibin2017/gw-content-studio/internal/storage"
)

var (
	// ErrInsufficientCredits is returned when a generation is requested with a non-positive balance.
	ErrInsufficientCredits = errors.New("insufficient credits")
	// ErrInvalidContentType is returned for an unknown content category.
	ErrInvalidContentType = errors.New("invalid content type")
	// ErrGenerationFailed is returned when the text generator fails or returns nothing.
	ErrGenerationFailed = errors.New("content generation failed")
	// ErrContentNotFound is returned when the content item does not exist.
	ErrContentNotFound = errors.New("content not found")
	// ErrForbidden is returned when a user acts on content owned by someone else.
	ErrForbidden = errors.New("forbidden")
)

// TextGenerator produces marketing text from a system and a user prompt.
type TextGenerator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// SpendLocker serializes credit spending per user.
type SpendLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// GenerateRequest holds the caller's generation parameters.
type GenerateRequest struct {
	Type      models.ContentType
	Objective string
	Tone      string
	Theme     string
}

// GenerateResult is the stored content, the raw generated text and the
// balance left after the charge.
type GenerateResult struct {
	Content          *models.Content
	GeneratedContent string
	Balance          int64
}

// TypeCount is the number of content items of one category.
type TypeCount struct {
	Type  models.ContentType `json:"type"`
	Count int64              `json:"count"`
}

// Metrics summarizes a user's activity.
type Metrics struct {
	ContentCount     int64       `json:"contentCount"`
	TypeDistribution []TypeCount `json:"typeDistribution"`
	Credits          int64       `json:"credits"`
}

// ContentService runs the generation workflow and manages generated content.
type ContentService struct {
	store     storage.Storage
	generator TextGenerator
	locker    SpendLocker
	events    eventPublisher
}

// NewContentService creates a new ContentService. kafkaWriter may be nil.
func NewContentService(store storage.Storage, generator TextGenerator, locker SpendLocker, kafkaWriter KafkaWriter) *ContentService {
	return &ContentService{
		store:     store,
		generator: generator,
		locker:    locker,
		events:    newEventPublisher(kafkaWriter),
	}
}

// Generate checks the balance, generates text, then stores the content and
// charges one credit in a single transaction. The per-user lock is held for
// the whole sequence so concurrent requests cannot spend the same credit.
func (s *ContentService) Generate(ctx context.Context, userID string, req GenerateRequest) (*GenerateResult, error) {
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidContentType, req.Type)
	}

	unlock, err := s.locker.Lock(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to acquire spend lock", "user_id", userID, "error", err)
		return nil, err
	}
	defer unlock()

	balance, _, err := s.store.GetBalance(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get balance", "user_id", userID, "error", err)
		return nil, err
	}
	if balance <= 0 {
		return nil, ErrInsufficientCredits
	}

	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Log.Errorw("failed to get profile", "user_id", userID, "error", err)
			return nil, err
		}
		profile = nil
	}

	text, err := s.generator.Generate(ctx, systemPrompt, buildPrompt(req, profile))
	if err != nil {
		logger.Log.Errorw("failed to generate content", "user_id", userID, "type", req.Type, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	result := &GenerateResult{GeneratedContent: text}
	err = s.store.WithinTx(ctx, func(ctx context.Context) error {
		content, err := s.store.CreateContent(ctx, models.NewContent{
			UserID:    userID,
			Type:      req.Type,
			Title:     resolveTitle(req.Theme, text),
			Body:      text,
			Tone:      optional(req.Tone),
			Objective: optional(req.Objective),
			Status:    models.StatusActive,
		})
		if err != nil {
			return err
		}
		result.Content = content

		result.Balance, err = s.store.ApplyTransaction(ctx, userID, -1, models.SourceGeneration)
		return err
	})
	if err != nil {
		logger.Log.Errorw("failed to save generated content", "user_id", userID, "error", err)
		return nil, err
	}

	s.events.publish(ctx, creditAppliedEvent(userID, -1, result.Balance, models.SourceGeneration))
	s.events.publish(ctx, models.LedgerEvent{
		Type:      models.EventContentGenerated,
		UserID:    userID,
		ContentID: result.Content.ID,
	})

	return result, nil
}

// History lists the user's content newest first. An empty contentType lists
// every category.
func (s *ContentService) History(ctx context.Context, userID string, contentType models.ContentType) ([]models.Content, error) {
	if contentType != "" && !contentType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidContentType, contentType)
	}

	contents, err := s.store.ListContentByUser(ctx, userID, contentType)
	if err != nil {
		logger.Log.Errorw("failed to list content", "user_id", userID, "type", contentType, "error", err)
		return nil, err
	}
	return contents, nil
}

// Delete removes a content item owned by userID.
func (s *ContentService) Delete(ctx context.Context, userID, contentID string) error {
	if _, err := s.owned(ctx, userID, contentID); err != nil {
		return err
	}

	if err := s.store.DeleteContent(ctx, contentID); err != nil {
		logger.Log.Errorw("failed to delete content", "content_id", contentID, "error", err)
		return err
	}
	return nil
}

// SetStatus archives or reactivates a content item owned by userID.
func (s *ContentService) SetStatus(ctx context.Context, userID, contentID, status string) (*models.Content, error) {
	if _, err := s.owned(ctx, userID, contentID); err != nil {
		return nil, err
	}

	content, err := s.store.UpdateContentStatus(ctx, contentID, status)
	if err != nil {
		logger.Log.Errorw("failed to update content status", "content_id", contentID, "status", status, "error", err)
		return nil, err
	}
	return content, nil
}

func (s *ContentService) owned(ctx context.Context, userID, contentID string) (*models.Content, error) {
	content, err := s.store.GetContent(ctx, contentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrContentNotFound
		}
		logger.Log.Errorw("failed to get content", "content_id", contentID, "error", err)
		return nil, err
	}
	if content.UserID != userID {
		logger.Log.Warnw("content owned by another user", "content_id", contentID, "user_id", userID)
		return nil, ErrForbidden
	}
	return content, nil
}

// Metrics returns the content count, the per-category distribution sorted by
// category and the displayed credit balance.
func (s *ContentService) Metrics(ctx context.Context, userID string) (*Metrics, error) {
	count, err := s.store.CountContentByUser(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to count content", "user_id", userID, "error", err)
		return nil, err
	}

	dist, err := s.store.ContentTypeDistribution(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get content distribution", "user_id", userID, "error", err)
		return nil, err
	}

	balance, _, err := s.store.GetBalance(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get balance", "user_id", userID, "error", err)
		return nil, err
	}

	m := &Metrics{
		ContentCount:     count,
		TypeDistribution: make([]TypeCount, 0, len(dist)),
		Credits:          balance,
	}
	for t, n := range dist {
		m.TypeDistribution = append(m.TypeDistribution, TypeCount{Type: t, Count: n})
	}
	sort.Slice(m.TypeDistribution, func(i, j int) bool {
		return m.TypeDistribution[i].Type < m.TypeDistribution[j].Type
	})

	return m, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
