package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/hitoshi/mealtrack/internal/metrics"
	"github.com/hitoshi/mealtrack/internal/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	TokenVerifier     middleware.TokenVerifier
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	MaxBodyBytes      int64

	// メトリクス（nilの場合は記録・公開しない）
	Metrics         metrics.MetricsCollector
	MetricsGatherer prometheus.Gatherer

	// ヘルスチェック
	HealthChecker HealthChecker

	// サービス
	AuthService    AuthServiceInterface
	MealService    MealServiceInterface
	HistoryService HistoryServiceInterface

	// 静的ファイル
	StaticDir    string
	FallbackPage string
}

// NewRouter は全エンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	RealIP → Logging → Metrics → Recovery → SecurityHeaders → CORS → BodyLimit
//	  /register, /login: → RateLimit(Auth)
//	  /api/*:            → Auth → RateLimit(General)
//
// どのルートにも一致しないパスは静的ファイル（フォールバックページ）として扱う。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(chimw.RealIP)
	r.Use(middleware.NewLoggingMiddleware(logger))
	if deps.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.Metrics))
	}
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewBodyLimitMiddleware(deps.MaxBodyBytes))

	authHandler := NewAuthHandler(deps.AuthService, deps.Metrics)
	mealHandler := NewMealHandler(deps.MealService, deps.Metrics)
	historyHandler := NewHistoryHandler(deps.HistoryService, deps.Metrics)
	staticHandler := NewStaticHandler(deps.StaticDir, deps.FallbackPage)

	// --- 運用エンドポイント ---
	r.Get("/health", NewHealthHandler(deps.HealthChecker))
	if deps.MetricsGatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.MetricsGatherer))
	}

	// --- 認証不要のルート ---
	r.Group(func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.AuthMiddleware())
		}
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Auth → RateLimit(General)
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(deps.TokenVerifier))
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.GeneralMiddleware())
		}

		r.Route("/meals", func(r chi.Router) {
			r.Get("/", mealHandler.ListMeals)
			r.Post("/", mealHandler.CreateMeal)
			r.Delete("/{id}", mealHandler.DeleteMeal)
		})

		r.Route("/history", func(r chi.Router) {
			r.Get("/", historyHandler.ListHistory)
			r.Post("/", historyHandler.CreateHistory)
			r.Delete("/{id}", historyHandler.DeleteHistory)
		})
	})

	// --- フォールバック ---
	// 未定義のパスとメソッドは最後に静的ハンドラーへ回す
	r.NotFound(staticHandler.ServeHTTP)
	r.MethodNotAllowed(staticHandler.ServeHTTP)

	return r
}
