package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pechorka/tokenkeeper/internal/authapi"
	"github.com/pechorka/tokenkeeper/internal/bootstrap"
	"github.com/pechorka/tokenkeeper/internal/config"
	"github.com/pechorka/tokenkeeper/internal/navigation"
	"github.com/pechorka/tokenkeeper/internal/service"
	"github.com/pechorka/tokenkeeper/internal/session"
	"github.com/pkg/errors"
)

const usage = `usage:
  tokenkeeper login <id> <password>
  tokenkeeper verify
  tokenkeeper logout`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	cfg, err := config.Load("")
	if err != nil {
		return err
	}
	log, err := bootstrap.Logger(cfg.Log)
	if err != nil {
		return err
	}

	tokens, db, err := bootstrap.Tokens(cfg.Storage)
	if err != nil {
		return err
	}
	defer db.Close()

	messages, closer, err := bootstrap.Messages(cfg.I18n, log)
	if err != nil {
		return errors.Wrap(err, "load messages")
	}
	defer closer.Close()

	svc := service.NewService(service.Config{
		Client: authapi.NewClient(authapi.Config{
			BaseURL:        cfg.API.BaseURL,
			HttpTimeout:    cfg.API.HttpTimeout,
			RefreshTimeout: cfg.API.RefreshTimeout,
		}),
		Tokens:   tokens,
		Messages: messages,
		Logger:   log,
		Lang:     cfg.I18n.Lang,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch args[0] {
	case "login":
		if len(args) != 3 {
			return errors.New(usage)
		}
		if err := svc.Login(ctx, args[1], args[2]); err != nil {
			return err
		}
		fmt.Fprintln(out, "logged in")
	case "verify":
		svc.Verify(ctx, navigation.NavigatorFunc(func(route navigation.Route) error {
			_, err := fmt.Fprintln(out, route)
			return err
		}))
	case "logout":
		if err := db.Delete(session.TokensKey); err != nil && !bootstrap.IsNotFound(err) {
			return errors.Wrap(err, "logout")
		}
		fmt.Fprintln(out, "logged out")
	default:
		return errors.New(usage)
	}
	return nil
}
