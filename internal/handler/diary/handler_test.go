package diary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	model "github.com/apetrov/diarium/backend/internal/model/diary"
	diaryservice "github.com/apetrov/diarium/backend/internal/service/diary"
)

type scriptedOracle struct {
	mu      sync.Mutex
	calls   int
	respond func(system, user string) (string, error)
}

func (o *scriptedOracle) Complete(_ context.Context, system, user string, _ float32) (string, error) {
	o.mu.Lock()
	o.calls++
	o.mu.Unlock()
	return o.respond(system, user)
}

func (o *scriptedOracle) callCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.calls
}

func defaultOracle() *scriptedOracle {
	return &scriptedOracle{respond: func(system, user string) (string, error) {
		if strings.Contains(system, "sentiment") {
			return `{"score":0.4,"label":"positive","emotions":{"joy":0.5,"sadness":0,"anger":0,"fear":0}}`, nil
		}
		return "a thoughtful reply", nil
	}}
}

func setupRouter(oracle diaryservice.Oracle, store model.Store) *chi.Mux {
	svc := diaryservice.NewService(oracle, store, 4)
	handler := New(svc)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func postJSON(t *testing.T, r http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestCreateEntry(t *testing.T) {
	store := model.NewMemoryStore()
	r := setupRouter(defaultOracle(), store)

	resp := postJSON(t, r, "/entries", map[string]string{"content": "walked in the rain"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var entry model.Entry
	if err := json.Unmarshal(resp.Body.Bytes(), &entry); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if entry.Content != "walked in the rain" {
		t.Fatalf("content mismatch: %q", entry.Content)
	}
	if entry.ID == "" || entry.CreatedAt == "" {
		t.Fatalf("entry missing id or timestamp: %+v", entry)
	}

	stored, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List err: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected 1 stored entry, got %d", len(stored))
	}
}

func TestCreateEntryMissingContent(t *testing.T) {
	oracle := defaultOracle()
	r := setupRouter(oracle, model.NewMemoryStore())

	resp := postJSON(t, r, "/entries", map[string]string{})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if oracle.callCount() != 0 {
		t.Fatalf("expected no oracle calls, got %d", oracle.callCount())
	}
}

func TestCreateEntryOracleFailure(t *testing.T) {
	oracle := &scriptedOracle{respond: func(system, user string) (string, error) {
		return "", errors.New("oracle down")
	}}
	r := setupRouter(oracle, model.NewMemoryStore())

	resp := postJSON(t, r, "/entries", map[string]string{"content": "hello"})
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestListEntriesDescending(t *testing.T) {
	store := model.NewMemoryStore()
	for _, ts := range []string{"2025-03-01T08:00:00Z", "2025-03-03T08:00:00Z", "2025-03-02T08:00:00Z"} {
		if err := store.Append(context.Background(), model.Entry{ID: ts, Content: "x", SentimentLabel: model.SentimentNeutral, Emotions: map[string]float64{}, CreatedAt: ts}); err != nil {
			t.Fatalf("Append err: %v", err)
		}
	}
	r := setupRouter(defaultOracle(), store)

	req := httptest.NewRequest(http.MethodGet, "/entries", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var entries []model.Entry
	if err := json.Unmarshal(resp.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].CreatedAt < entries[i].CreatedAt {
			t.Fatalf("entries not descending: %s before %s", entries[i-1].CreatedAt, entries[i].CreatedAt)
		}
	}
}

func TestForecastEmptyTextRejectedBeforeOracle(t *testing.T) {
	oracle := defaultOracle()
	r := setupRouter(oracle, model.NewMemoryStore())

	resp := postJSON(t, r, "/forecast", map[string]string{"text": "   "})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if oracle.callCount() != 0 {
		t.Fatalf("expected no oracle calls, got %d", oracle.callCount())
	}
}

func TestForecast(t *testing.T) {
	r := setupRouter(defaultOracle(), model.NewMemoryStore())

	resp := postJSON(t, r, "/forecast", map[string]string{"text": "I train every morning"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["forecast"] != "a thoughtful reply" {
		t.Fatalf("unexpected forecast: %q", body["forecast"])
	}
}

func TestCommentFailureStillCarriesPlaceholder(t *testing.T) {
	oracle := &scriptedOracle{respond: func(system, user string) (string, error) {
		return "", errors.New("oracle down")
	}}
	r := setupRouter(oracle, model.NewMemoryStore())

	resp := postJSON(t, r, "/comment", map[string]string{"content": "rough week"})
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["comment"] != diaryservice.CommentFallback {
		t.Fatalf("expected placeholder comment, got %q", body["comment"])
	}
}

func TestFutureFullEmptyHistory(t *testing.T) {
	oracle := defaultOracle()
	r := setupRouter(oracle, model.NewMemoryStore())

	resp := postJSON(t, r, "/future-full", map[string]string{})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["forecast"] != diaryservice.NoEntriesMessage {
		t.Fatalf("expected no-data message, got %q", body["forecast"])
	}
	if oracle.callCount() != 0 {
		t.Fatalf("expected no oracle calls, got %d", oracle.callCount())
	}
}

func TestJudgeAllEmptyStore(t *testing.T) {
	oracle := defaultOracle()
	r := setupRouter(oracle, model.NewMemoryStore())

	req := httptest.NewRequest(http.MethodGet, "/judge-all", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body struct {
		Results []model.JudgedEntry `json:"results"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Results == nil || len(body.Results) != 0 {
		t.Fatalf("expected empty results array, got %+v", body.Results)
	}
	if oracle.callCount() != 0 {
		t.Fatalf("expected no oracle calls, got %d", oracle.callCount())
	}
}

func TestSabotageAll(t *testing.T) {
	store := model.NewMemoryStore()
	if err := store.Append(context.Background(), model.Entry{ID: "e1", Content: "tomorrow for sure", SentimentLabel: model.SentimentNeutral, Emotions: map[string]float64{}, CreatedAt: "2025-03-01T08:00:00Z"}); err != nil {
		t.Fatalf("Append err: %v", err)
	}
	oracle := &scriptedOracle{respond: func(system, user string) (string, error) {
		return `{"procrastination":9,"self_deception":5,"loops":6,"summary":"perpetual tomorrow"}`, nil
	}}
	r := setupRouter(oracle, store)

	req := httptest.NewRequest(http.MethodGet, "/sabotage", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body struct {
		Results []model.SabotageEntry `json:"results"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(body.Results))
	}
	if body.Results[0].ID != "e1" || body.Results[0].Procrastination != 9 {
		t.Fatalf("unexpected result: %+v", body.Results[0])
	}
}

func TestCommentsBatchPartialFailure(t *testing.T) {
	oracle := &scriptedOracle{respond: func(system, user string) (string, error) {
		if user == "broken" {
			return "", errors.New("oracle down")
		}
		return "nice progress", nil
	}}
	r := setupRouter(oracle, model.NewMemoryStore())

	resp := postJSON(t, r, "/comments-batch", map[string]any{
		"entries": []map[string]string{
			{"id": "a", "content": "broken"},
			{"id": "b", "content": "fine"},
		},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Results []diaryservice.CommentResult `json:"results"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(body.Results))
	}
	if body.Results[0].ID != "a" || body.Results[0].Comment != diaryservice.CommentFallback {
		t.Fatalf("expected placeholder for first item, got %+v", body.Results[0])
	}
	if body.Results[1].ID != "b" || body.Results[1].Comment != "nice progress" {
		t.Fatalf("unexpected second result: %+v", body.Results[1])
	}
}

func TestFutureDetailed(t *testing.T) {
	store := model.NewMemoryStore()
	if err := store.Append(context.Background(), model.Entry{ID: "e1", Content: "a calm day", SentimentLabel: model.SentimentNeutral, Emotions: map[string]float64{}, CreatedAt: "2025-03-01T08:00:00Z"}); err != nil {
		t.Fatalf("Append err: %v", err)
	}
	r := setupRouter(defaultOracle(), store)

	resp := postJSON(t, r, "/future-detailed", map[string]string{})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var forecast model.AggregateForecast
	if err := json.Unmarshal(resp.Body.Bytes(), &forecast); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if forecast.OverallSentiment != model.SentimentPositive {
		t.Fatalf("unexpected overall sentiment: %s", forecast.OverallSentiment)
	}
	if len(forecast.DetailedResults) != 1 {
		t.Fatalf("expected 1 detail row, got %d", len(forecast.DetailedResults))
	}
	if forecast.DetailedResults[0].Comment != "a thoughtful reply" {
		t.Fatalf("unexpected comment: %q", forecast.DetailedResults[0].Comment)
	}
}
