package model

import "time"

// HistoryTimestampLayout は履歴タイムスタンプのISO-8601表現（ミリ秒・UTC）。
const HistoryTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// 履歴エントリでサーバーが割り当てるフィールド名。
// クライアントが同名フィールドを送ってきても上書きされる。
const (
	HistoryFieldID        = "id"
	HistoryFieldOwnerID   = "ownerId"
	HistoryFieldTimestamp = "timestamp"
)

// HistoryEntry はユーザーの履歴ログ1件を表す。
// Data はスキーマを強制しない任意のJSONオブジェクト。
type HistoryEntry struct {
	ID        string
	UserID    string
	Data      map[string]any
	Timestamp time.Time
}

// Document はAPIレスポンス用に、任意フィールドとサーバー割り当てフィールドを
// 1つのマップに平坦化して返す。サーバー割り当てフィールドが優先される。
func (e *HistoryEntry) Document() map[string]any {
	doc := make(map[string]any, len(e.Data)+3)
	for k, v := range e.Data {
		doc[k] = v
	}
	doc[HistoryFieldID] = e.ID
	doc[HistoryFieldOwnerID] = e.UserID
	doc[HistoryFieldTimestamp] = e.Timestamp.UTC().Format(HistoryTimestampLayout)
	return doc
}
