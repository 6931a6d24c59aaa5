package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"worklog/internal/catalog"
	"worklog/internal/config"
	"worklog/internal/domain/jira"
	"worklog/internal/domain/user"
	"worklog/internal/domain/worklog"
	httpx "worklog/internal/http"
	middlewarex "worklog/internal/http/middleware"
	"worklog/internal/services/data"
	jirasvc "worklog/internal/services/jira"
	usersvc "worklog/internal/services/user"
	worklogsvc "worklog/internal/services/worklog"
	"worklog/internal/store/postgres"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	cfg := config.Load()
	if cfg.Local() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init DB
	pool := postgres.MustOpen(ctx, cfg.DB.DSN)
	defer pool.Close()
	repo := postgres.NewRepo(pool)

	// Redis backs the rate limiter only; the API keeps serving without it.
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable, rate limiting disabled until it recovers")
	}

	r := httpx.NewRouter(httpx.RouterDependencies{
		Config:      cfg,
		Catalog:     catalog.New(),
		DB:          repo,
		RateCounter: middlewarex.NewRedisCounter(rdb),
		Data: httpx.DataServices{
			Users:        data.NewService[*user.User](catalog.Users, repo.Users),
			JiraUsers:    data.NewService[*jira.User](catalog.JiraUsers, repo.JiraUsers),
			JiraProjects: data.NewService[*jira.Project](catalog.JiraProjects, repo.JiraProjects),
			JiraTeams:    data.NewService[*jira.Team](catalog.JiraTeams, repo.JiraTeams),
			JiraIssues:   data.NewService[*jira.Issue](catalog.JiraIssues, repo.JiraIssues),
			TimeEntries:  data.NewService[*worklog.TimeEntry](catalog.TimeEntries, repo.TimeEntries),
		},
		UserService:    usersvc.NewService(repo.Users, repo.JiraUsers),
		JiraService:    jirasvc.NewService(repo.JiraUsers, repo.JiraProjects, repo.JiraTeams, repo.JiraIssues),
		WorklogService: worklogsvc.NewService(repo.UnitOfWork, repo.TimeEntries),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Str("env", cfg.App.Env).Msgf("worklog API listening on :%s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	cancel()
	ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	log.Info().Msg("server stopped")
}
