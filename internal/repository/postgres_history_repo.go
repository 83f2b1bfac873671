package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hitoshi/mealtrack/internal/model"
	"github.com/jmoiron/sqlx"
)

// PostgresHistoryRepo はPostgreSQLを使用した履歴リポジトリ。
// 任意フィールドはJSONBカラム data に格納する。
type PostgresHistoryRepo struct {
	db *sqlx.DB
}

// NewPostgresHistoryRepo はPostgresHistoryRepoを生成する。
func NewPostgresHistoryRepo(db *sqlx.DB) *PostgresHistoryRepo {
	return &PostgresHistoryRepo{db: db}
}

// historyRow はhistoryテーブルの1行を表す。
type historyRow struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Data      []byte    `db:"data"`
	Timestamp time.Time `db:"timestamp"`
}

// ListByUserID はユーザーの履歴一覧をタイムスタンプ順で返す。該当がない場合は空スライスを返す。
func (r *PostgresHistoryRepo) ListByUserID(ctx context.Context, userID string) ([]*model.HistoryEntry, error) {
	var rows []historyRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, user_id, data, "timestamp"
		 FROM history
		 WHERE user_id = $1
		 ORDER BY "timestamp", id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	entries := make([]*model.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		data, err := decodeHistoryData(row.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode history %s: %w", row.ID, err)
		}
		entries = append(entries, &model.HistoryEntry{
			ID:        row.ID,
			UserID:    row.UserID,
			Data:      data,
			Timestamp: row.Timestamp,
		})
	}
	return entries, nil
}

// Create は履歴エントリを作成する。
func (r *PostgresHistoryRepo) Create(ctx context.Context, entry *model.HistoryEntry) error {
	data := entry.Data
	if data == nil {
		data = map[string]any{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode history data: %w", err)
	}

	// lib/pq は []byte を bytea として送るため、JSONBには文字列で渡す
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO history (id, user_id, data, "timestamp")
		 VALUES ($1, $2, $3::jsonb, $4)`,
		entry.ID, entry.UserID, string(raw), entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert history: %w", err)
	}
	return nil
}

// DeleteByIDAndUserID はユーザーが所有する履歴エントリを削除する。
func (r *PostgresHistoryRepo) DeleteByIDAndUserID(ctx context.Context, id, userID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM history WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete history: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// decodeHistoryData はJSONBの内容をマップに復元する。
// 数値はjson.Numberのまま保持し、精度を落とさずにレスポンスへ戻す。
func decodeHistoryData(raw []byte) (map[string]any, error) {
	data := map[string]any{}
	if len(raw) == 0 {
		return data, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}
	return data, nil
}

// compile-time interface check
var _ HistoryRepository = (*PostgresHistoryRepo)(nil)
