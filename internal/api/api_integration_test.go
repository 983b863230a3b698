package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/docqa-labs/retrieval-agent/internal/chunker"
	"github.com/docqa-labs/retrieval-agent/internal/extractor"
	"github.com/docqa-labs/retrieval-agent/internal/llm"
	"github.com/docqa-labs/retrieval-agent/internal/models"
	"github.com/docqa-labs/retrieval-agent/internal/orchestrator"
	"github.com/docqa-labs/retrieval-agent/internal/ranker"
	"github.com/docqa-labs/retrieval-agent/internal/synthesizer"
	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"
)

const testToken = "test-token"

const policyText = `The grace period for premium payment is thirty days from the due date.

Maternity coverage begins after a continuous waiting period of twenty-four months.`

type cannedLLMClient struct{}

func (cannedLLMClient) InvokeModel(ctx context.Context, req llm.LLMRequest) (*llm.LLMResponse, error) {
	return &llm.LLMResponse{Content: "Thirty days."}, nil
}

func (c cannedLLMClient) InvokeModelWithRetry(ctx context.Context, req llm.LLMRequest) (*llm.LLMResponse, error) {
	return c.InvokeModel(ctx, req)
}

func newTestServer(t *testing.T) (*httptest.Server, *httptest.Server) {
	t.Helper()

	docServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "missing.txt") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(policyText))
	}))
	t.Cleanup(docServer.Close)

	logger := zerolog.Nop()
	synth := synthesizer.New(cannedLLMClient{}, 5*time.Second, 512, 0.2, &logger)
	orch := orchestrator.New(
		extractor.NewHTTPExtractor(extractor.PlainTextDecoder{}, 5*time.Second),
		chunker.New(1000, 10),
		ranker.LexicalFactory{},
		synth,
		3,
		2,
		&logger,
	)

	container := restful.NewContainer()
	RegisterRoutes(container, NewHandler(orch, &logger), testToken)

	apiServer := httptest.NewServer(container)
	t.Cleanup(apiServer.Close)

	return apiServer, docServer
}

func runRequest(t *testing.T, apiURL, token, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, apiURL+"/api/v1/hackrx/run", strings.NewReader(body))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	apiServer, _ := newTestServer(t)

	resp, err := http.Get(apiServer.URL + "/api/v1/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	if health.Status != "ok" {
		t.Errorf("expected status ok, got %q", health.Status)
	}
}

func TestRun_RequiresBearerToken(t *testing.T) {
	apiServer, docServer := newTestServer(t)
	body := `{"documents":"` + docServer.URL + `/policy.txt","questions":["What is the grace period?"]}`

	if resp := runRequest(t, apiServer.URL, "", body); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("missing token: expected 401, got %d", resp.StatusCode)
	}
	if resp := runRequest(t, apiServer.URL, "wrong-token", body); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("wrong token: expected 401, got %d", resp.StatusCode)
	}
}

func TestRun_HappyPath(t *testing.T) {
	apiServer, docServer := newTestServer(t)
	body := `{"documents":"` + docServer.URL + `/policy.txt","questions":["What is the grace period?","When does maternity coverage begin?"]}`

	resp := runRequest(t, apiServer.URL, testToken, body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result models.RetrievalResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}

	if len(result.Answers) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(result.Answers))
	}
	if result.Answers[0].Question != "What is the grace period?" {
		t.Errorf("answers out of input order: %q", result.Answers[0].Question)
	}
	if result.Answers[0].Text != "Thirty days." {
		t.Errorf("unexpected answer %q", result.Answers[0].Text)
	}
	if result.Document.Chunks != 2 {
		t.Errorf("expected 2 chunks in metadata, got %d", result.Document.Chunks)
	}
}

func TestRun_ValidationErrors(t *testing.T) {
	apiServer, docServer := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing document", `{"questions":["What?"]}`},
		{"no questions", `{"documents":"` + docServer.URL + `/policy.txt","questions":[]}`},
		{"malformed json", `{"documents":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if resp := runRequest(t, apiServer.URL, testToken, tt.body); resp.StatusCode != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestRun_UnreachableDocument(t *testing.T) {
	apiServer, docServer := newTestServer(t)
	body := `{"documents":"` + docServer.URL + `/missing.txt","questions":["What?"]}`

	resp := runRequest(t, apiServer.URL, testToken, body)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unreachable document, got %d", resp.StatusCode)
	}

	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if errResp.Error == "" {
		t.Error("error response must carry a message")
	}
}
