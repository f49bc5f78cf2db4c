package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rcfm/internal/clipboard"
	"rcfm/internal/config"
	"rcfm/internal/localfs"
	"rcfm/internal/rclone"
	"rcfm/internal/repository"
	"rcfm/internal/services"
	"rcfm/internal/testutil"
	"rcfm/internal/transfers"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	timeoutShort = 2 * time.Second
	tick         = 10 * time.Millisecond
)

type testEnv struct {
	handlers  *Handlers
	router    *mux.Router
	daemon    *testutil.FakeDaemon
	registry  *transfers.Registry
	clipboard *clipboard.Clipboard
	history   *repository.Repository
	root      string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	daemon := testutil.NewFakeDaemon(t)
	client := daemon.Client()
	repo := testutil.NewHistory(t)
	root := t.TempDir()
	local := localfs.New(false)

	registry := transfers.NewRegistry(client, transfers.WithHistory(repo))
	clip := clipboard.New(registry, local)
	files := services.NewFileService(client, local, root)

	h := NewHandlers(Services{
		Registry:  registry,
		Clipboard: clip,
		Files:     files,
		History:   repo,
		Daemon:    client,
		Disk:      local,
	}, config.Default())

	router := mux.NewRouter()
	h.RegisterRoutes(router)

	return &testEnv{
		handlers:  h,
		router:    router,
		daemon:    daemon,
		registry:  registry,
		clipboard: clip,
		history:   repo,
		root:      root,
	}
}

func (e *testEnv) do(t *testing.T, method, target string, body interface{}) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var response APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response), "body: %s", rec.Body.String())
	return rec, response
}

// decodeData re-decodes the generic data field into a typed value
func decodeData(t *testing.T, response APIResponse, v interface{}) {
	t.Helper()
	raw, err := json.Marshal(response.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, v))
}

func TestNewHandlers(t *testing.T) {
	registry := transfers.NewRegistry(nil)
	cfg := &config.Config{}

	handlers := NewHandlers(Services{Registry: registry}, cfg)

	assert.NotNil(t, handlers)
	assert.Equal(t, registry, handlers.registry)
	assert.Equal(t, cfg, handlers.config)
	assert.Nil(t, handlers.history)
}

func TestWriteSuccess(t *testing.T) {
	h := NewHandlers(Services{}, &config.Config{})
	w := httptest.NewRecorder()

	data := map[string]string{"key": "value"}
	h.writeSuccess(w, 200, data, "Operation successful")

	assert.Equal(t, 200, w.Code)

	var response APIResponse
	err := json.NewDecoder(w.Body).Decode(&response)
	require.NoError(t, err)

	assert.True(t, response.Success)
	assert.Equal(t, "Operation successful", response.Message)

	dataMap, ok := response.Data.(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "value", dataMap["key"])
}

func TestWriteSuccess_NilData(t *testing.T) {
	h := NewHandlers(Services{}, &config.Config{})
	w := httptest.NewRecorder()

	h.writeSuccess(w, 200, nil, "")

	var response APIResponse
	err := json.NewDecoder(w.Body).Decode(&response)
	require.NoError(t, err)

	assert.True(t, response.Success)
	assert.Nil(t, response.Data)
}

func TestWriteError_WithError(t *testing.T) {
	h := NewHandlers(Services{}, &config.Config{})
	w := httptest.NewRecorder()

	h.writeError(w, 500, "Internal server error", errors.New("something went wrong"))

	assert.Equal(t, 500, w.Code)

	var response APIResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))

	assert.False(t, response.Success)
	assert.Equal(t, "Internal server error", response.Error)
	assert.Equal(t, "something went wrong", response.Message)
}

func TestWriteError_WithoutError(t *testing.T) {
	h := NewHandlers(Services{}, &config.Config{})
	w := httptest.NewRecorder()

	h.writeError(w, 400, "Bad request", nil)

	assert.Equal(t, 400, w.Code)

	var response APIResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))

	assert.False(t, response.Success)
	assert.Equal(t, "Bad request", response.Error)
	assert.Empty(t, response.Message)
}

func TestAPIResponse_JSONFormat(t *testing.T) {
	tests := []struct {
		name     string
		response APIResponse
		wantJSON string
	}{
		{
			name: "success with data",
			response: APIResponse{
				Success: true,
				Data:    map[string]string{"test": "value"},
				Message: "ok",
			},
			wantJSON: `{"success":true,"data":{"test":"value"},"message":"ok"}`,
		},
		{
			name: "error response",
			response: APIResponse{
				Success: false,
				Error:   "error message",
			},
			wantJSON: `{"success":false,"error":"error message"}`,
		},
		{
			name:     "success without message",
			response: APIResponse{Success: true},
			wantJSON: `{"success":true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonBytes, err := json.Marshal(tt.response)
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantJSON, string(jsonBytes))
		})
	}
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"job not found", fmt.Errorf("remove 7: %w", transfers.ErrJobNotFound), http.StatusNotFound},
		{"record not found", repository.ErrRecordNotFound, http.StatusNotFound},
		{"missing file", fs.ErrNotExist, http.StatusNotFound},
		{"invalid name", services.ErrInvalidName, http.StatusBadRequest},
		{"outside root", fmt.Errorf("%w: ../x", services.ErrOutsideRoot), http.StatusBadRequest},
		{"copy into itself", fmt.Errorf("a: %w", localfs.ErrInsideSource), http.StatusBadRequest},
		{"already exists", localfs.ErrExists, http.StatusConflict},
		{"transport", &rclone.TransportError{Path: "core/pid", Err: errors.New("refused")}, http.StatusServiceUnavailable},
		{"daemon", &rclone.DaemonError{Path: "operations/list", StatusCode: 500, Message: "boom"}, http.StatusBadGateway},
		{"decode", &rclone.DecodeError{Path: "job/status", Err: errors.New("bad json")}, http.StatusBadGateway},
		{"other", errors.New("unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusForError(tt.err))
		})
	}
}

func TestRegisterRoutes_MethodNotAllowed(t *testing.T) {
	env := setupTestEnv(t)

	req := httptest.NewRequest("PUT", "/api/v1/transfers", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRegisterRoutes_SetsHeaders(t *testing.T) {
	env := setupTestEnv(t)

	rec, _ := env.do(t, "GET", "/api/v1/transfers/summary", nil)

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
