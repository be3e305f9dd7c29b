package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = previous })

	handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/vaccine", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	line := buf.String()
	for _, want := range []string{`"method":"POST"`, `"path":"/vaccine"`, `"status":201`, "http_request"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %s in log line: %s", want, line)
		}
	}
	// A identidade só existe dentro do gate de auth; a linha de requisição
	// não carrega campo de sujeito.
	if strings.Contains(line, "subject") {
		t.Fatalf("unexpected subject field in log line: %s", line)
	}
}
