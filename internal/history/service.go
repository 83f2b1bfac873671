// Package history はユーザーの履歴ログのドメインロジックを提供する。
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/mealtrack/internal/model"
	"github.com/hitoshi/mealtrack/internal/repository"
)

// reservedFields はサーバーが割り当てるフィールド、または所有者を示すフィールド。
// クライアントが送ってきた値は保存前に取り除く。
var reservedFields = []string{
	model.HistoryFieldID,
	model.HistoryFieldOwnerID,
	model.HistoryFieldTimestamp,
	"_id",
	"userId",
}

// Service は履歴ログのサービス層。
type Service struct {
	repo repository.HistoryRepository
	now  func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.HistoryRepository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// List はユーザーの履歴一覧を返す。
func (s *Service) List(ctx context.Context, userID string) ([]*model.HistoryEntry, error) {
	entries, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("履歴一覧の取得に失敗しました: %w", err)
	}
	if entries == nil {
		entries = []*model.HistoryEntry{}
	}
	return entries, nil
}

// Create は任意フィールドを持つ履歴エントリを作成する。
// id・所有者・タイムスタンプはサーバー側で割り当て、クライアントの値は使わない。
// fieldsがnil、またはキー・値のいずれかにNUL文字を含む場合はバリデーションエラーを返す。
func (s *Service) Create(ctx context.Context, userID string, fields map[string]any) (*model.HistoryEntry, error) {
	if fields == nil || model.ContainsNUL(fields) {
		return nil, model.NewInvalidHistoryError()
	}

	data := make(map[string]any, len(fields))
	for k, v := range fields {
		data[k] = v
	}
	for _, k := range reservedFields {
		delete(data, k)
	}

	entry := &model.HistoryEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Data:      data,
		Timestamp: s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("履歴の作成に失敗しました: %w", err)
	}
	return entry, nil
}

// Delete はユーザーが所有する履歴エントリを削除する。
// IDの形式が不正な場合は model.ErrInvalidID、該当がない場合は model.ErrNotFound を返す。
func (s *Service) Delete(ctx context.Context, userID, entryID string) error {
	id, err := uuid.Parse(entryID)
	if err != nil {
		return model.ErrInvalidID
	}

	// 表記ゆれ（波括弧・ハイフンなし等）は正規形に揃えてから問い合わせる
	deleted, err := s.repo.DeleteByIDAndUserID(ctx, id.String(), userID)
	if err != nil {
		return fmt.Errorf("履歴の削除に失敗しました: %w", err)
	}
	if !deleted {
		return model.ErrNotFound
	}
	return nil
}
