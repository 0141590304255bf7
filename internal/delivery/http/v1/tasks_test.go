package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-tracker/internal/models"
	"github.com/adanyl0v/go-task-tracker/internal/seed"
	"github.com/adanyl0v/go-task-tracker/internal/services"
	"github.com/adanyl0v/go-task-tracker/internal/storage/memory"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	now := func() time.Time { return time.Date(2026, 1, 12, 10, 0, 0, 0, time.Local) }
	svc := services.NewTaskService(zerolog.Nop(), memory.NewTaskRepository(), now)
	if _, err := svc.SeedTasks(context.Background(), seed.Defaults()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	return newRouterWithService(svc)
}

func newRouterWithService(svc services.TaskService) *gin.Engine {
	h := New(zerolog.Nop(), svc)
	router := gin.New()
	router.Use(h.HandleRequestIDMiddleware, h.HandleAccessLogMiddleware)
	RegisterRoutes(router, h)
	return router
}

func doRequest(t *testing.T, router http.Handler, method, url, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, url, nil)
	} else {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("unmarshal: %v; body=%s", err, w.Body.String())
	}
	return v
}

type errorBody struct {
	Error string `json:"error"`
}

func listTasks(t *testing.T, router http.Handler) []models.Task {
	t.Helper()
	w := doRequest(t, router, http.MethodGet, "/api/tasks", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	return decodeBody[struct {
		Tasks []models.Task `json:"tasks"`
	}](t, w).Tasks
}

func getStats(t *testing.T, router http.Handler) models.Stats {
	t.Helper()
	w := doRequest(t, router, http.MethodGet, "/api/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	return decodeBody[models.Stats](t, w)
}

func TestGetTasks_Seeded(t *testing.T) {
	router := newTestRouter(t)

	tasks := listTasks(t, router)
	if len(tasks) != 2 || tasks[0].ID != 1 || tasks[1].ID != 2 {
		t.Fatalf("tasks=%+v", tasks)
	}
	for _, task := range tasks {
		if task.Completed || task.CreatedAt != "2026-01-12" {
			t.Fatalf("task=%+v", task)
		}
	}
}

func TestGetTasks_EmptyListIsArray(t *testing.T) {
	svc := services.NewTaskService(zerolog.Nop(), memory.NewTaskRepository(), nil)
	router := newRouterWithService(svc)

	w := doRequest(t, router, http.MethodGet, "/api/tasks", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"tasks":[]}` {
		t.Fatalf("body=%s", got)
	}
}

func TestCreateTask_Scenario(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/tasks", `{"title":"X"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	created := decodeBody[struct {
		Task models.Task `json:"task"`
	}](t, w).Task
	want := models.Task{ID: 3, Title: "X", Completed: false, CreatedAt: "2026-01-12"}
	if created != want {
		t.Fatalf("task=%+v want %+v", created, want)
	}

	stats := getStats(t, router)
	if stats != (models.Stats{Total: 3, Completed: 0, Pending: 3}) {
		t.Fatalf("stats=%+v", stats)
	}
}

func TestCreateTask_TitleRequired(t *testing.T) {
	for _, body := range []string{"", "{}", "null", `{"name":"X"}`, `{"title":null}`} {
		t.Run(body, func(t *testing.T) {
			router := newTestRouter(t)

			w := doRequest(t, router, http.MethodPost, "/api/tasks", body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
			}
			if msg := decodeBody[errorBody](t, w).Error; msg != "Task title is required" {
				t.Fatalf("error=%q", msg)
			}
			if n := len(listTasks(t, router)); n != 2 {
				t.Fatalf("collection mutated: %d tasks", n)
			}
		})
	}
}

func TestCreateTask_MalformedJSON(t *testing.T) {
	router := newTestRouter(t)

	for _, body := range []string{`{"title":`, `[1,2]`, `{"title":5}`} {
		w := doRequest(t, router, http.MethodPost, "/api/tasks", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status=%d", body, w.Code)
		}
		if msg := decodeBody[errorBody](t, w).Error; msg != "invalid request body" {
			t.Fatalf("error=%q", msg)
		}
	}
	if n := len(listTasks(t, router)); n != 2 {
		t.Fatalf("collection mutated: %d tasks", n)
	}
}

func TestUpdateTask_PartialFields(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPut, "/api/tasks/1", `{"completed":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	task := decodeBody[struct {
		Task models.Task `json:"task"`
	}](t, w).Task
	if !task.Completed || task.Title != "Learn Go" {
		t.Fatalf("task=%+v", task)
	}

	w = doRequest(t, router, http.MethodPut, "/api/tasks/1", `{"title":"Learn Go generics"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	task = decodeBody[struct {
		Task models.Task `json:"task"`
	}](t, w).Task
	if !task.Completed || task.Title != "Learn Go generics" {
		t.Fatalf("task=%+v", task)
	}

	stats := getStats(t, router)
	if stats != (models.Stats{Total: 2, Completed: 1, Pending: 1}) {
		t.Fatalf("stats=%+v", stats)
	}
}

func TestUpdateTask_EmptyBodyReturnsTask(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPut, "/api/tasks/2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestUpdateTask_NotFound(t *testing.T) {
	router := newTestRouter(t)
	before := listTasks(t, router)

	for _, path := range []string{"/api/tasks/42", "/api/tasks/abc", "/api/tasks/-1"} {
		w := doRequest(t, router, http.MethodPut, path, `{"title":"ghost","completed":true}`)
		if w.Code != http.StatusNotFound {
			t.Fatalf("%s: status=%d body=%s", path, w.Code, w.Body.String())
		}
		if msg := decodeBody[errorBody](t, w).Error; msg != "Task not found" {
			t.Fatalf("error=%q", msg)
		}
	}

	after := listTasks(t, router)
	if len(after) != len(before) {
		t.Fatalf("collection mutated")
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("task %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestDeleteTask(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/tasks/2", "/api/tasks/2", "/api/tasks/999"} {
		w := doRequest(t, router, http.MethodDelete, path, "")
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status=%d body=%s", path, w.Code, w.Body.String())
		}
		msg := decodeBody[struct {
			Message string `json:"message"`
		}](t, w).Message
		if msg != "Task deleted" {
			t.Fatalf("message=%q", msg)
		}
	}

	tasks := listTasks(t, router)
	if len(tasks) != 1 || tasks[0].ID != 1 {
		t.Fatalf("tasks=%+v", tasks)
	}
}

func TestCreateAfterDeletingHighestID(t *testing.T) {
	router := newTestRouter(t)

	doRequest(t, router, http.MethodDelete, "/api/tasks/2", "")
	w := doRequest(t, router, http.MethodPost, "/api/tasks", `{"title":"next"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	task := decodeBody[struct {
		Task models.Task `json:"task"`
	}](t, w).Task
	if task.ID != 3 {
		t.Fatalf("id=%d want 3", task.ID)
	}
}

func TestStatsInvariant(t *testing.T) {
	router := newTestRouter(t)

	steps := []struct{ method, path, body string }{
		{http.MethodPost, "/api/tasks", `{"title":"a"}`},
		{http.MethodPut, "/api/tasks/1", `{"completed":true}`},
		{http.MethodPut, "/api/tasks/3", `{"completed":true}`},
		{http.MethodDelete, "/api/tasks/2", ""},
		{http.MethodPut, "/api/tasks/1", `{"completed":false}`},
	}
	for _, step := range steps {
		doRequest(t, router, step.method, step.path, step.body)

		stats := getStats(t, router)
		if stats.Total != stats.Completed+stats.Pending {
			t.Fatalf("after %s %s: stats=%+v", step.method, step.path, stats)
		}
		if stats.Total != len(listTasks(t, router)) {
			t.Fatalf("total=%d does not match list", stats.Total)
		}
	}
}

func TestRequestIDHeader(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/stats", "")
	if w.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("X-Request-Id", "req-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-Id"); got != "req-123" {
		t.Fatalf("request id=%q", got)
	}
}

type brokenService struct {
	services.TaskService
}

func (brokenService) ListTasks(context.Context) ([]*models.Task, error) {
	return nil, errors.New("db is down")
}

func (brokenService) Ping(context.Context) error {
	return errors.New("db is down")
}

func TestStorageFailures(t *testing.T) {
	router := newRouterWithService(brokenService{})

	w := doRequest(t, router, http.MethodGet, "/api/tasks", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	w = doRequest(t, router, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte(`"ok"`)) {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}
