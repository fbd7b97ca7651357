package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pechorka/tokenkeeper/internal/bootstrap"
	"github.com/pechorka/tokenkeeper/internal/config"
	"github.com/pechorka/tokenkeeper/internal/handler"
	"github.com/pechorka/tokenkeeper/internal/issuer"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	log, err := bootstrap.Logger(cfg.Log)
	if err != nil {
		logrus.WithError(err).Fatal("failed to configure logger")
	}
	if len(cfg.Stub.Users) == 0 {
		log.Warn("no stub users configured, every login will be rejected")
	}

	h := handler.NewHandlers(issuer.NewService(cfg.Stub.Users), log)
	srv := &http.Server{
		Addr:              cfg.Stub.Addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.Stub.Addr).Info("starting auth stub")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	terminate := make(chan os.Signal, 1)
	signal.Notify(terminate, syscall.SIGINT, syscall.SIGTERM)
	<-terminate

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown failed")
	}
}
