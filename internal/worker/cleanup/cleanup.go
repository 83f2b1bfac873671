// Package cleanup は履歴データの保持期間切れ自動削除ジョブを提供する。
// 保持日数（HISTORY_RETENTION_DAYS）を超過した履歴をワーカープロセスから定期的に削除する。
// 保持日数が0以下の場合はジョブを無効とし、何も削除しない。
package cleanup

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// DefaultInterval はクリーンアップの実行間隔のデフォルト値。
const DefaultInterval = 24 * time.Hour

// Executor はSQLのExecContextを抽象化するインターフェース。
// *sql.DB や *sql.Tx を受け付けることができる。
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// PrunedRecorder は削除件数の記録先。metrics.MetricsCollectorの部分集合。
type PrunedRecorder interface {
	RecordHistoryPruned(count int64)
}

// CleanupJob は保持期間を超過した履歴の自動削除ジョブ。
// 削除は冪等で、対象がない場合もエラーにならない。
type CleanupJob struct {
	db            Executor
	logger        *slog.Logger
	recorder      PrunedRecorder
	now           func() time.Time
	RetentionDays int // 履歴の保持日数（0以下で無効）
}

// NewCleanupJob は新しいCleanupJobを生成する。
func NewCleanupJob(db Executor, logger *slog.Logger, retentionDays int) *CleanupJob {
	return &CleanupJob{
		db:            db,
		logger:        logger,
		now:           time.Now,
		RetentionDays: retentionDays,
	}
}

// SetRecorder は削除件数のメトリクス記録先を設定する。
func (j *CleanupJob) SetRecorder(recorder PrunedRecorder) {
	j.recorder = recorder
}

// Enabled は保持期間による削除が有効かどうかを返す。
func (j *CleanupJob) Enabled() bool {
	return j.RetentionDays > 0
}

// Cutoff は削除対象となるタイムスタンプの境界を返す。これより古い履歴が削除される。
func (j *CleanupJob) Cutoff() time.Time {
	return j.now().UTC().AddDate(0, 0, -j.RetentionDays)
}

// Run は保持期間を超過した履歴を削除し、削除件数を返す。
// 無効な場合は何もせず0を返す。
func (j *CleanupJob) Run(ctx context.Context) (int64, error) {
	if !j.Enabled() {
		return 0, nil
	}

	start := time.Now()
	cutoff := j.Cutoff()

	result, err := j.db.ExecContext(ctx, `DELETE FROM history WHERE "timestamp" < $1`, cutoff)
	if err != nil {
		j.logger.Error("履歴クリーンアップジョブの実行に失敗しました",
			slog.String("error", err.Error()),
			slog.Int("retention_days", j.RetentionDays),
		)
		return 0, fmt.Errorf("履歴クリーンアップの実行に失敗: %w", err)
	}

	deletedCount, err := result.RowsAffected()
	if err != nil {
		j.logger.Error("削除件数の取得に失敗しました",
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("削除件数の取得に失敗: %w", err)
	}

	if j.recorder != nil {
		j.recorder.RecordHistoryPruned(deletedCount)
	}

	duration := time.Since(start)
	j.logger.Info("履歴クリーンアップジョブが完了しました",
		slog.Int64("deleted_count", deletedCount),
		slog.Int("retention_days", j.RetentionDays),
		slog.Time("cutoff", cutoff),
		slog.Float64("duration_ms", float64(duration.Milliseconds())),
	)

	return deletedCount, nil
}

// Start は指定間隔のティッカーでジョブを繰り返し実行する。
// 起動直後に1回実行し、コンテキストがキャンセルされるまで継続する。
// intervalが0以下の場合は DefaultInterval を使用する。
func (j *CleanupJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}

	if !j.Enabled() {
		j.logger.Info("履歴の保持期間が未設定のためクリーンアップジョブは無効です")
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	j.logger.Info("履歴クリーンアップジョブを開始しました",
		slog.Duration("interval", interval),
		slog.Int("retention_days", j.RetentionDays),
	)

	// エラーはRun内でログ出力済みのため、次の周期で再試行する
	_, _ = j.Run(ctx)

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("履歴クリーンアップジョブを停止しました")
			return
		case <-ticker.C:
			_, _ = j.Run(ctx)
		}
	}
}
