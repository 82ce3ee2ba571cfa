// remindd is the reminder daemon. Without arguments it watches the
// external task store and fires recurring reminders on a fixed poll
// cycle, exposing health probes and metrics over HTTP. With arguments
// it runs a single command against the store and exits.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sandeepkv93/remindd/internal/commands"
	"github.com/sandeepkv93/remindd/internal/config"
	"github.com/sandeepkv93/remindd/internal/dedup"
	"github.com/sandeepkv93/remindd/internal/model"
	"github.com/sandeepkv93/remindd/internal/notify"
	"github.com/sandeepkv93/remindd/internal/pipeline"
	"github.com/sandeepkv93/remindd/internal/scheduler"
	"github.com/sandeepkv93/remindd/internal/server"
	"github.com/sandeepkv93/remindd/internal/sessionstore"
	"github.com/sandeepkv93/remindd/internal/taskstore"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration failed", "error", err)
		os.Exit(1)
	}

	client := taskstore.NewClient(cfg.StoreURL, cfg.StoreToken)

	store, closeStore, err := buildSessionStore(cfg)
	if err != nil {
		logger.Error("session store unavailable", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	notifier, err := buildNotifier(cfg)
	if err != nil {
		logger.Error("notifier unavailable", "error", err)
		os.Exit(1)
	}

	runner := scheduler.NewRunner(scheduler.Options{
		Notifier: notifier,
		Dedup:    dedup.New(store, time.Now, dedup.DefaultTTL),
		Logger:   logger,
	})

	if len(os.Args) > 1 {
		if err := runCommand(cfg, client, runner, strings.Join(os.Args[1:], " ")); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		return
	}

	runDaemon(cfg, client, runner, logger)
}

func runDaemon(cfg config.Config, client *taskstore.Client, runner *scheduler.Runner, logger *slog.Logger) {
	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.New(client, cfg.OwnerID, runner, logger).Router(),
	}
	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
		}
	}()

	refreshStop := make(chan struct{})
	refreshDone := make(chan struct{})
	go refreshLoop(cfg, client, runner, logger, refreshStop, refreshDone)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	close(refreshStop)
	<-refreshDone
	runner.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
}

// refreshLoop feeds the scheduler fresh snapshots. A failed load keeps
// the previous snapshot so reminders keep firing from known state.
func refreshLoop(cfg config.Config, client *taskstore.Client, runner *scheduler.Runner, logger *slog.Logger, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	load := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		resp, err := client.LoadTasks(ctx, cfg.OwnerID, taskstore.ListOptions{})
		if err != nil {
			logger.Warn("task refresh failed", "error", err)
			return
		}
		runner.SetTasks(resp.Tasks)
		logger.Debug("task snapshot refreshed", "count", len(resp.Tasks))
	}

	load()
	ticker := time.NewTicker(cfg.RefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			load()
		case <-stop:
			return
		}
	}
}

func runCommand(cfg config.Config, client *taskstore.Client, runner *scheduler.Runner, input string) error {
	defer runner.Stop()

	cmd, err := commands.Parse(input)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res, err := commands.Execute(cmd, commands.Handlers{
		List: func(args commands.ListArgs) (commands.Result, error) {
			resp, err := client.LoadTasks(ctx, cfg.OwnerID, taskstore.ListOptions{
				Filter: args.Filter, Sort: args.Sort, Search: args.Search,
			})
			if err != nil {
				return commands.Result{}, err
			}
			now := time.Now()
			tasks := pipeline.Apply(resp.Tasks, args.Filter, args.Sort, args.Search, now)
			return commands.Result{Message: renderTasks(tasks, now)}, nil
		},
		Add: func(args commands.AddArgs) (commands.Result, error) {
			task, err := client.CreateTask(ctx, cfg.OwnerID, model.TaskCreate{Title: args.Title})
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("created %s: %s", task.ID, task.Title)}, nil
		},
		Toggle: func(args commands.ToggleArgs) (commands.Result, error) {
			task, err := client.ToggleCompletion(ctx, cfg.OwnerID, args.TaskID)
			if err != nil {
				return commands.Result{}, err
			}
			state := "incomplete"
			if task.Completed {
				state = "completed"
			}
			return commands.Result{Message: fmt.Sprintf("%s is now %s", task.ID, state)}, nil
		},
		Delete: func(args commands.DeleteArgs) (commands.Result, error) {
			if err := client.DeleteTask(ctx, cfg.OwnerID, args.TaskID); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "deleted " + args.TaskID}, nil
		},
		Stats: func() (commands.Result, error) {
			resp, err := client.LoadTasks(ctx, cfg.OwnerID, taskstore.ListOptions{})
			if err != nil {
				return commands.Result{}, err
			}
			stats := pipeline.Stats(resp.Tasks, time.Now())
			msg := fmt.Sprintf("total %d, completed %d, incomplete %d, overdue %d, due today %d, upcoming 24h %d, no deadline %d",
				stats.Total, stats.Completed, stats.Incomplete, stats.Overdue, stats.DueToday, stats.Upcoming, stats.NoDeadline)
			return commands.Result{Message: msg}, nil
		},
		Check: func() (commands.Result, error) {
			resp, err := client.LoadTasks(ctx, cfg.OwnerID, taskstore.ListOptions{})
			if err != nil {
				return commands.Result{}, err
			}
			runner.SetTasks(resp.Tasks)
			runner.RunOnce(ctx)
			return commands.Result{Message: "reminder check complete"}, nil
		},
	})
	if err != nil {
		return err
	}
	fmt.Println(res.Message)
	return nil
}

func renderTasks(tasks []model.Task, now time.Time) string {
	if len(tasks) == 0 {
		return "no tasks"
	}
	var b strings.Builder
	for i, task := range tasks {
		if i > 0 {
			b.WriteByte('\n')
		}
		mark := " "
		if task.Completed {
			mark = "x"
		}
		fmt.Fprintf(&b, "[%s] %s  %s", mark, task.ID, task.Title)
		if task.Deadline != nil {
			fmt.Fprintf(&b, "  (due %s)", task.Deadline.Local().Format("2006-01-02 15:04"))
		}
		if task.Recurring != nil {
			fmt.Fprintf(&b, "  (repeats %s)", task.Recurring.Type)
		}
	}
	return b.String()
}

func buildSessionStore(cfg config.Config) (sessionstore.Store, func(), error) {
	switch cfg.Dedup {
	case config.DedupSQLite:
		store, err := sessionstore.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	case config.DedupRedis:
		store, err := sessionstore.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return sessionstore.NewMemory(), func() {}, nil
	}
}

func buildNotifier(cfg config.Config) (notify.Notifier, error) {
	switch cfg.Notifier {
	case config.NotifierTelegram:
		return notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
	case config.NotifierNone:
		return notify.Noop{}, nil
	default:
		return notify.Desktop{}, nil
	}
}
