package handler

import (
	"context"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/mealtrack/internal/middleware"
)

// fakeRecorder は記録されたドメインメトリクスを保持するDomainMetricsRecorder。
type fakeRecorder struct {
	mu             sync.Mutex
	logins         []string
	registrations  int
	mealsCreated   int
	mealsDeleted   int
	historyCreated int
	historyDeleted int
}

func (f *fakeRecorder) RecordLogin(result string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins = append(f.logins, result)
}

func (f *fakeRecorder) RecordRegistration() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registrations++
}

func (f *fakeRecorder) RecordMealCreated() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mealsCreated++
}

func (f *fakeRecorder) RecordMealDeleted() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mealsDeleted++
}

func (f *fakeRecorder) RecordHistoryCreated() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.historyCreated++
}

func (f *fakeRecorder) RecordHistoryDeleted() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.historyDeleted++
}

// withUserID は認証ミドルウェアを通過した状態のリクエストを返す。
func withUserID(r *http.Request, userID string) *http.Request {
	return r.WithContext(middleware.ContextWithUserID(r.Context(), userID))
}

// withURLParam はchiのURLパラメータを設定したリクエストを返す。
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
