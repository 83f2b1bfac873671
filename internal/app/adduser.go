package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hitoshi/mealtrack/internal/auth"
	"github.com/hitoshi/mealtrack/internal/config"
	"github.com/hitoshi/mealtrack/internal/model"
	"github.com/hitoshi/mealtrack/internal/repository"
	"golang.org/x/term"
)

// UserRegistrar はユーザー作成に必要なインターフェース。auth.Serviceが満たす。
type UserRegistrar interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
}

// runAddUser はDBに接続し、対話的にユーザーを作成する。
// 使い方: mealtrack adduser [username]
func runAddUser(cfg *config.Config, args []string, stdin *os.File, out io.Writer) error {
	db, err := openDB(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := auth.NewService(
		repository.NewPostgresUserRepo(db),
		auth.NewPasswordHasher(cfg.BcryptCost),
		auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL),
	)
	return addUser(context.Background(), svc, args, newPrompter(stdin, out))
}

// addUser はユーザー名とパスワードを取得してユーザーを登録する。
// ユーザー名はargsの先頭、なければプロンプトで取得する。
func addUser(ctx context.Context, registrar UserRegistrar, args []string, p *prompter) error {
	var username string
	if len(args) > 0 {
		username = strings.TrimSpace(args[0])
	}
	if username == "" {
		var err error
		if username, err = p.line("Username: "); err != nil {
			return fmt.Errorf("failed to read username: %w", err)
		}
		username = strings.TrimSpace(username)
	}

	password, err := p.secret("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	// 端末入力時のみ確認入力を求める（パイプ入力では1行のみ読む）
	if p.interactive() {
		confirm, err := p.secret("Confirm password: ")
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		if confirm != password {
			return errors.New("passwords do not match")
		}
	}

	user, err := registrar.Register(ctx, username, password)
	if err != nil {
		if errors.Is(err, model.ErrDuplicateUser) {
			return fmt.Errorf("user %q already exists", username)
		}
		return err
	}

	fmt.Fprintf(p.out, "created user %s (%s)\n", user.Username, user.ID)
	return nil
}

// prompter は標準入力からの対話入力を扱う。
// 端末の場合はパスワードをエコーせずに読み取り、それ以外は1行ずつ読み取る。
type prompter struct {
	in         *bufio.Reader
	out        io.Writer
	readSecret func() ([]byte, error)
}

func newPrompter(in *os.File, out io.Writer) *prompter {
	p := &prompter{in: bufio.NewReader(in), out: out}
	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		p.readSecret = func() ([]byte, error) { return term.ReadPassword(fd) }
	}
	return p
}

func (p *prompter) interactive() bool {
	return p.readSecret != nil
}

// line はラベルを表示して1行読み取る。末尾の改行は取り除く。
func (p *prompter) line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	s, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// secret はラベルを表示してパスワードを読み取る。
func (p *prompter) secret(label string) (string, error) {
	if !p.interactive() {
		return p.line(label)
	}
	fmt.Fprint(p.out, label)
	b, err := p.readSecret()
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
