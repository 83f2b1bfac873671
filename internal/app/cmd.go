package app

import (
	"fmt"
	"io"
)

// Command はアプリケーションの起動モードを表す。
type Command string

const (
	CommandServe  Command = "serve"
	CommandWorker Command = "worker"
	// CommandMigrate は未適用のマイグレーションを適用して終了する。
	CommandMigrate Command = "migrate"
	// CommandHealthcheck は起動中のAPIサーバーの/healthを確認する。
	// distrolessイメージにはcurlが無いため、Dockerのヘルスチェックから呼ばれる。
	CommandHealthcheck Command = "healthcheck"
	// CommandAddUser はターミナルからユーザーを作成する。
	CommandAddUser Command = "adduser"
	CommandHelp    Command = "help"
)

// commands はサブコマンドと使い方の一覧。Usageの表示順を兼ねる。
var commands = []struct {
	cmd   Command
	usage string
}{
	{CommandServe, "APIサーバーを起動する（デフォルト）"},
	{CommandWorker, "履歴の保持期間クリーンアップとメトリクスサーバーを起動する"},
	{CommandMigrate, "データベースマイグレーションを適用する"},
	{CommandHealthcheck, "APIサーバーの /health を確認する"},
	{CommandAddUser + " [username]", "ユーザーを作成する（パスワードはプロンプトで入力）"},
	{CommandHelp, "この使い方を表示する"},
}

// ParseCommand はコマンドライン引数からサブコマンドを解析する。
// 引数が空またはサポート外のコマンドの場合はCommandServeを返す。
func ParseCommand(args []string) Command {
	if len(args) == 0 {
		return CommandServe
	}

	switch name := Command(args[0]); name {
	case CommandServe, CommandWorker, CommandMigrate, CommandHealthcheck, CommandAddUser, CommandHelp:
		return name
	case "-h", "--help":
		return CommandHelp
	default:
		return CommandServe
	}
}

// Usage はサブコマンドの一覧を書き込む。
func Usage(w io.Writer) {
	fmt.Fprintln(w, "usage: mealtrack [command]")
	fmt.Fprintln(w)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-22s %s\n", c.cmd, c.usage)
	}
}
