package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdfbrief/pdfbrief/internal/credentials"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *credentials.Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	creds := credentials.NewStore(filepath.Join(t.TempDir(), "credentials.json"))
	client := NewClient(server.URL, creds, 5*time.Second, zerolog.Nop())
	return client, creds
}

func TestBearerTokenAttachedWhenPersisted(t *testing.T) {
	var gotAuth string
	client, creds := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"id":"u1","email":"a@b.com"}`))
	}))

	if err := creds.Save("tok1"); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	if _, err := client.Me(context.Background()); err != nil {
		t.Fatalf("Me error: %v", err)
	}
	if gotAuth != "Bearer tok1" {
		t.Errorf("expected Authorization %q, got %q", "Bearer tok1", gotAuth)
	}
}

func TestNoBearerTokenBeforeLogin(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))

	if _, err := client.Documents(context.Background(), 0, 20); err != nil {
		t.Fatalf("Documents error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestTokenReadAtCallTime(t *testing.T) {
	var auths []string
	client, creds := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auths = append(auths, r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	}))

	if _, err := client.Documents(context.Background(), 0, 20); err != nil {
		t.Fatalf("Documents error: %v", err)
	}
	if err := creds.Save("fresh"); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if _, err := client.Documents(context.Background(), 0, 20); err != nil {
		t.Fatalf("Documents error: %v", err)
	}

	if auths[0] != "" || auths[1] != "Bearer fresh" {
		t.Errorf("expected [\"\", \"Bearer fresh\"], got %v", auths)
	}
}

func TestUnauthorizedClearsCredentialAndFiresHandler(t *testing.T) {
	client, creds := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Unauthorized"}`))
	}))

	if err := creds.Save("stale"); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	handlerFired := false
	client.SetUnauthorizedHandler(func() { handlerFired = true })

	_, err := client.Me(context.Background())
	if err == nil {
		t.Fatal("expected error from 401 response")
	}
	if !IsUnauthorized(err) {
		t.Errorf("expected unauthorized error, got %v", err)
	}
	if !handlerFired {
		t.Error("unauthorized handler should fire on 401")
	}

	token, loadErr := creds.Load()
	if loadErr != nil {
		t.Fatalf("Load error: %v", loadErr)
	}
	if token != "" {
		t.Errorf("credential should be cleared after 401, got %q", token)
	}
}

func TestErrorDetailDecoded(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"Only PDF files are allowed"}`))
	}))

	_, err := client.Upload(context.Background(), "notes.pdf", strings.NewReader("%PDF-"))
	if err == nil {
		t.Fatal("expected error from 400 response")
	}
	if got := Detail(err, "fallback"); got != "Only PDF files are allowed" {
		t.Errorf("expected server detail, got %q", got)
	}
}

func TestErrorDetailFallsBackOnUndecodableBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
	}))

	_, err := client.Documents(context.Background(), 0, 20)
	if err == nil {
		t.Fatal("expected error from 500 response")
	}
	if got := Detail(err, "Failed to load documents"); got != "Failed to load documents" {
		t.Errorf("expected fallback detail, got %q", got)
	}
}

func TestNotFoundIsDistinguished(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Document not found"}`))
	}))

	_, err := client.Document(context.Background(), 42)
	if err == nil {
		t.Fatal("expected error from 404 response")
	}
	if !IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestLoginSendsFormEncodedCredentials(t *testing.T) {
	var gotContentType, gotBody string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Write([]byte(`{"access_token":"tok1","token_type":"bearer"}`))
	}))

	token, err := client.Login(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if token.AccessToken != "tok1" {
		t.Errorf("expected access token tok1, got %q", token.AccessToken)
	}
	if gotContentType != "application/x-www-form-urlencoded" {
		t.Errorf("expected form-encoded login, got %q", gotContentType)
	}
	if !strings.Contains(gotBody, "username=a%40b.com") || !strings.Contains(gotBody, "password=pw") {
		t.Errorf("unexpected login body %q", gotBody)
	}
}

func TestUploadSendsMultipartFile(t *testing.T) {
	var gotFilename, gotContents string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotFilename = header.Filename
		data, _ := io.ReadAll(file)
		gotContents = string(data)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"document_id":7,"task_id":"t1","message":"Processing started."}`))
	}))

	result, err := client.Upload(context.Background(), "thesis.pdf", strings.NewReader("%PDF-1.7"))
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}
	if result.DocumentID != 7 {
		t.Errorf("expected document_id 7, got %d", result.DocumentID)
	}
	if gotFilename != "thesis.pdf" {
		t.Errorf("expected filename thesis.pdf, got %q", gotFilename)
	}
	if gotContents != "%PDF-1.7" {
		t.Errorf("unexpected file contents %q", gotContents)
	}
}

func TestRequestIDAttached(t *testing.T) {
	var gotRequestID string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`[]`))
	}))

	if _, err := client.Summaries(context.Background(), 0, 20); err != nil {
		t.Fatalf("Summaries error: %v", err)
	}
	if gotRequestID == "" {
		t.Error("expected X-Request-ID header on outgoing request")
	}
}
