// Command mealtrack は食事記録APIのサーバー・ワーカー・管理コマンドを提供する。
//
// 使い方:
//
//	mealtrack [serve]           APIサーバーを起動する
//	mealtrack worker            履歴クリーンアップワーカーを起動する
//	mealtrack migrate           データベースマイグレーションを適用する
//	mealtrack healthcheck       /health を確認する（Dockerヘルスチェック用）
//	mealtrack adduser [name]    ユーザーを作成する
//	mealtrack help              使い方を表示する
package main

import (
	"fmt"
	"os"

	"github.com/hitoshi/mealtrack/internal/app"
)

func main() {
	if err := app.Run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "mealtrack: %v\n", err)
		os.Exit(1)
	}
}
