package diary

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/apetrov/diarium/backend/internal/analysis/insight"
	"github.com/apetrov/diarium/backend/internal/model/diary"
)

var (
	ErrContentRequired   = errors.New("content is required")
	ErrOracleUnavailable = errors.New("oracle is not configured")
)

// Oracle is the single-call completion contract the service depends
// on. The production implementation lives in service/ai; tests inject
// a fake.
type Oracle interface {
	Complete(ctx context.Context, system, user string, temperature float32) (string, error)
}

// Service implements the diary pipeline: persist entries, enrich them
// through the oracle, and aggregate analyses across the history.
type Service struct {
	oracle      Oracle
	store       diary.Store
	fanoutLimit int
}

// NewService wires the service. oracle may be nil when credentials are
// missing; oracle-backed operations then fail with ErrOracleUnavailable.
func NewService(oracle Oracle, store diary.Store, fanoutLimit int) *Service {
	if fanoutLimit < 1 {
		fanoutLimit = 1
	}
	return &Service{oracle: oracle, store: store, fanoutLimit: fanoutLimit}
}

// CommentRequest is one item of a batch comment call.
type CommentRequest struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// CommentResult pairs a batch item with its comment.
type CommentResult struct {
	ID      string `json:"id"`
	Comment string `json:"comment"`
}

// CreateEntry analyzes the content once, persists the entry and
// returns it. The stored sentiment is the one observed at creation
// time; later re-analysis may diverge.
func (s *Service) CreateEntry(ctx context.Context, content string) (diary.Entry, error) {
	if strings.TrimSpace(content) == "" {
		return diary.Entry{}, ErrContentRequired
	}

	analysis, err := s.analyzeSentiment(ctx, content)
	if err != nil {
		return diary.Entry{}, err
	}

	entry := diary.Entry{
		ID:             uuid.NewString(),
		Content:        content,
		SentimentScore: analysis.Score,
		SentimentLabel: analysis.Label,
		Emotions:       analysis.Emotions,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.store.Append(ctx, entry); err != nil {
		return diary.Entry{}, fmt.Errorf("failed to persist entry: %w", err)
	}

	log.Printf("[diary] created entry id=%s label=%s", entry.ID, entry.SentimentLabel)
	return entry, nil
}

// ListEntries returns the history ordered by created_at descending,
// newest first.
func (s *Service) ListEntries(ctx context.Context) ([]diary.Entry, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	if entries == nil {
		return []diary.Entry{}, nil
	}

	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// Comment asks the diary psychologist for a free-text observation.
func (s *Service) Comment(ctx context.Context, content string) (string, error) {
	raw, err := s.complete(ctx, psychologistSystemPrompt, content, creativeTemperature)
	if err != nil {
		return "", err
	}
	return insight.Clean(raw), nil
}

// Forecast projects a single piece of text one year ahead.
func (s *Service) Forecast(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrContentRequired
	}

	raw, err := s.complete(ctx, forecastSystemPrompt, text, creativeTemperature)
	if err != nil {
		return "", err
	}
	return insight.Clean(raw), nil
}

// ForecastFull runs one forecast completion over the concatenated
// history. Prompt size grows with the history; there is no chunking.
func (s *Service) ForecastFull(ctx context.Context) (string, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list entries: %w", err)
	}
	if len(entries) == 0 {
		return NoEntriesMessage, nil
	}

	var builder strings.Builder
	for _, entry := range entries {
		builder.WriteString(entry.CreatedAt)
		builder.WriteString(": ")
		builder.WriteString(entry.Content)
		builder.WriteString("\n")
	}

	raw, err := s.complete(ctx, forecastSystemPrompt, builder.String(), creativeTemperature)
	if err != nil {
		return "", err
	}
	return insight.Clean(raw), nil
}

// ForecastDetailed re-analyzes every entry sequentially (one sentiment
// call plus one comment call each) and aggregates the results.
func (s *Service) ForecastDetailed(ctx context.Context) (diary.AggregateForecast, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return diary.AggregateForecast{}, fmt.Errorf("failed to list entries: %w", err)
	}
	if len(entries) == 0 {
		return diary.AggregateForecast{
			Advice:          NoEntriesMessage,
			AvgEmotions:     map[string]float64{},
			DetailedResults: []diary.EntryDetail{},
		}, nil
	}

	analyses := make([]diary.SentimentAnalysis, 0, len(entries))
	details := make([]diary.EntryDetail, 0, len(entries))
	for _, entry := range entries {
		analysis, err := s.analyzeSentiment(ctx, entry.Content)
		if err != nil {
			return diary.AggregateForecast{}, err
		}

		comment, err := s.Comment(ctx, entry.Content)
		if err != nil {
			return diary.AggregateForecast{}, err
		}

		analyses = append(analyses, analysis)
		details = append(details, diary.EntryDetail{
			ID:       entry.ID,
			Date:     entry.CreatedAt,
			Content:  entry.Content,
			Score:    analysis.Score,
			Label:    analysis.Label,
			Emotions: analysis.Emotions,
			Comment:  comment,
		})
	}

	summary := insight.Aggregate(analyses)
	return diary.AggregateForecast{
		OverallSentiment: summary.OverallSentiment,
		AvgEmotions:      summary.AvgEmotions,
		Advice:           adviceFor(summary.OverallSentiment),
		DetailedResults:  details,
	}, nil
}

// JudgeAll runs one judgment per entry concurrently, bounded by the
// configured fan-out limit. Results come back in history order; one
// failed call fails the whole batch.
func (s *Service) JudgeAll(ctx context.Context) ([]diary.JudgedEntry, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	if len(entries) == 0 {
		return []diary.JudgedEntry{}, nil
	}

	results := make([]diary.JudgedEntry, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanoutLimit)

	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			raw, err := s.complete(gctx, judgeSystemPrompt, entry.Content, analysisTemperature)
			if err != nil {
				return err
			}
			judgment, err := insight.ParseJudgment(raw)
			if err != nil {
				return err
			}
			results[i] = diary.JudgedEntry{
				ID:             entry.ID,
				Date:           entry.CreatedAt,
				Content:        entry.Content,
				JudgmentResult: judgment,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// SabotageAll mirrors JudgeAll with the sabotage schema.
func (s *Service) SabotageAll(ctx context.Context) ([]diary.SabotageEntry, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	if len(entries) == 0 {
		return []diary.SabotageEntry{}, nil
	}

	results := make([]diary.SabotageEntry, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanoutLimit)

	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			raw, err := s.complete(gctx, sabotageSystemPrompt, entry.Content, analysisTemperature)
			if err != nil {
				return err
			}
			sabotage, err := insight.ParseSabotage(raw)
			if err != nil {
				return err
			}
			results[i] = diary.SabotageEntry{
				ID:             entry.ID,
				Date:           entry.CreatedAt,
				Content:        entry.Content,
				SabotageResult: sabotage,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// CommentBatch requests one comment per item sequentially. A failed
// item gets the fallback comment and never aborts the rest.
func (s *Service) CommentBatch(ctx context.Context, items []CommentRequest) []CommentResult {
	results := make([]CommentResult, 0, len(items))
	for _, item := range items {
		comment, err := s.Comment(ctx, item.Content)
		if err != nil {
			log.Printf("[diary] comment failed for item id=%s: %v", item.ID, err)
			comment = CommentFallback
		}
		results = append(results, CommentResult{ID: item.ID, Comment: comment})
	}
	return results
}

func (s *Service) analyzeSentiment(ctx context.Context, content string) (diary.SentimentAnalysis, error) {
	raw, err := s.complete(ctx, sentimentSystemPrompt, content, analysisTemperature)
	if err != nil {
		return diary.SentimentAnalysis{}, err
	}
	return insight.ParseSentiment(raw)
}

func (s *Service) complete(ctx context.Context, system, user string, temperature float32) (string, error) {
	if s.oracle == nil {
		return "", ErrOracleUnavailable
	}
	return s.oracle.Complete(ctx, system, user, temperature)
}
