// Command adduser 运维工具：在终端创建账号或重置密码
//
//	adduser -user alice [-role member|admin] [-password P] [-config path]
//	adduser -user admin -reset
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"projectledger/config"
	"projectledger/database"
	"projectledger/logger"
	"projectledger/models"
	"projectledger/service"

	"golang.org/x/term"
)

type options struct {
	configFile string
	username   string
	role       string
	password   string
	reset      bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.configFile, "config", "", "外部配置文件路径（可选）")
	fs.StringVar(&opts.username, "user", "", "用户名")
	fs.StringVar(&opts.role, "role", models.RoleMember, "角色: member|admin")
	fs.StringVar(&opts.password, "password", "", "密码（省略时从终端读取）")
	fs.BoolVar(&opts.reset, "reset", false, "重置已有用户的密码")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if strings.TrimSpace(opts.username) == "" {
		return nil, errors.New("必须指定 -user")
	}
	if !opts.reset && !models.IsValidRole(opts.role) {
		return nil, fmt.Errorf("无效的角色: %q", opts.role)
	}
	return opts, nil
}

// readPassword 从终端读取密码（不回显），非终端时读取一行
func readPassword(in *os.File, out io.Writer) (string, error) {
	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(out, "密码: ")
		first, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		fmt.Fprint(out, "确认密码: ")
		second, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		if string(first) != string(second) {
			return "", errors.New("两次输入的密码不一致")
		}
		return string(first), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// apply 创建账号或重置密码
func apply(ctx context.Context, users *service.UserService, opts *options) (string, error) {
	if opts.reset {
		if err := users.SetPassword(ctx, opts.username, opts.password); err != nil {
			return "", err
		}
		return fmt.Sprintf("已重置 %s 的密码", opts.username), nil
	}
	// 运维工具绕过自助注册限制，等同管理员创建
	operator := models.Session{Username: "adduser", Role: models.RoleAdmin}
	user, err := users.CreateUserAsAdmin(ctx, operator, opts.username, opts.password, opts.role)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("已创建用户 %s (id=%d, role=%s)", user.Username, user.ID, user.Role), nil
}

func run(ctx context.Context, args []string) error {
	opts, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(opts.configFile)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log.Level, true)

	if opts.password == "" {
		if opts.password, err = readPassword(os.Stdin, os.Stderr); err != nil {
			return fmt.Errorf("读取密码失败: %w", err)
		}
	}

	db, err := database.Open(ctx, &cfg.Database, log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	msg, err := apply(ctx, service.New(db, cfg, log).Users, opts)
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "adduser: %v\n", err)
		os.Exit(1)
	}
}
