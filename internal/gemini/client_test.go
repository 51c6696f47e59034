package gemini

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("test-key", "models/gemini-1.5-flash")
	c.baseURL = srv.URL
	return c
}

func TestGenerate_ConcatenatesParts(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"[{"},{"text":"}]"}]}}]}`))
	})

	got, err := c.Generate(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "[{}]" {
		t.Errorf("got %q, want %q", got, "[{}]")
	}
}

func TestGenerate_NonOKStatusIsServiceError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, err := c.Generate(context.Background(), "system", "user")
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if svcErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", svcErr.StatusCode, http.StatusTooManyRequests)
	}
}

func TestGenerate_APIErrorBody(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"code":400,"message":"invalid model"}}`))
	})

	_, err := c.Generate(context.Background(), "system", "user")
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if svcErr.Message != "invalid model" {
		t.Errorf("message = %q", svcErr.Message)
	}
}

func TestGenerate_EmptyCandidatesIsServiceError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := c.Generate(context.Background(), "system", "user")
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
}

func TestGenerate_RecordsLatency(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"[]"}]}}]}`))
	})

	if _, err := c.Generate(context.Background(), "s", "u"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap := c.Stats.Snapshot(); snap.Count != 1 {
		t.Errorf("stats count = %d, want 1", snap.Count)
	}
}

func TestListModels_FiltersAndSorts(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"models":[
			{"name":"models/embedding-001","supportedGenerationMethods":["embedContent"]},
			{"name":"models/gemini-1.5-flash","supportedGenerationMethods":["generateContent"]},
			{"name":"models/gemini-1.5-pro","supportedGenerationMethods":["generateContent"]}
		]}`))
	})

	got := c.ListModels(context.Background())
	want := []string{"models/gemini-1.5-pro", "models/gemini-1.5-flash"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestListModels_FallbackOnServerError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	if got := c.ListModels(context.Background()); !reflect.DeepEqual(got, FallbackModels) {
		t.Errorf("got %v, want fallback list", got)
	}
}

func TestListModels_FallbackWhenUnreachable(t *testing.T) {
	c := NewClient("test-key", "models/gemini-1.5-flash")
	c.baseURL = "http://127.0.0.1:1"

	if got := c.ListModels(context.Background()); !reflect.DeepEqual(got, FallbackModels) {
		t.Errorf("got %v, want fallback list", got)
	}
}

func TestWithModel(t *testing.T) {
	c := NewClient("k", "models/a")
	if c.WithModel("") != c {
		t.Error("empty model must return the same client")
	}
	if c.WithModel("models/a") != c {
		t.Error("same model must return the same client")
	}
	other := c.WithModel("models/b")
	if other == c || other.Model() != "models/b" {
		t.Errorf("expected copy targeting models/b, got %q", other.Model())
	}
	if other.Stats != c.Stats {
		t.Error("stats tracker must be shared across model variants")
	}
	if c.Model() != "models/a" {
		t.Error("original client must be unchanged")
	}
}
