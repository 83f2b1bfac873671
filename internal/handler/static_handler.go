package handler

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/hitoshi/mealtrack/internal/model"
)

// StaticHandler はAPI以外のパスを処理するフォールバックハンドラー。
// 公開ディレクトリに該当ファイルがあればそれを返し、なければフォールバックページを返す。
// クライアントサイドルーティングの画面遷移をサーバー側で解決するために使う。
type StaticHandler struct {
	root     http.FileSystem
	fallback string
}

// NewStaticHandler はStaticHandlerを生成する。
// fallbackはdirからの相対パスで指定する。
func NewStaticHandler(dir, fallback string) *StaticHandler {
	return &StaticHandler{
		root:     http.Dir(dir),
		fallback: "/" + strings.TrimPrefix(fallback, "/"),
	}
}

// ServeHTTP はhttp.Handlerを実装する。
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if isAPIPath(r.URL.Path) {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewNotFoundError())
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}

	name := path.Clean("/" + r.URL.Path)
	if name != "/" && h.serveFile(w, r, name) {
		return
	}
	if !h.serveFile(w, r, h.fallback) {
		slog.Warn("fallback page not found", slog.String("path", h.fallback))
		http.NotFound(w, r)
	}
}

// serveFile は通常ファイルが存在すればレスポンスに書き込みtrueを返す。
// ディレクトリや存在しないパスの場合は何も書き込まずfalseを返す。
func (h *StaticHandler) serveFile(w http.ResponseWriter, r *http.Request, name string) bool {
	f, err := h.root.Open(name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Debug("failed to open static file",
				slog.String("path", name),
				slog.String("error", err.Error()),
			)
		}
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return true
}

// isAPIPath は/api配下のパスかどうかを判定する。
func isAPIPath(p string) bool {
	return p == "/api" || strings.HasPrefix(p, "/api/")
}
