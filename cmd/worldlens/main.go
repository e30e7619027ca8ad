package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cbodonnell/worldlens/pkg/api"
	"github.com/cbodonnell/worldlens/pkg/config"
	"github.com/cbodonnell/worldlens/pkg/game"
	"github.com/cbodonnell/worldlens/pkg/game/types"
	"github.com/cbodonnell/worldlens/pkg/log"
	"github.com/cbodonnell/worldlens/pkg/memory"
	"github.com/cbodonnell/worldlens/pkg/network"
	"github.com/cbodonnell/worldlens/pkg/origins"
	"github.com/cbodonnell/worldlens/pkg/process"
	"github.com/cbodonnell/worldlens/pkg/queue"
	"github.com/cbodonnell/worldlens/pkg/recorder"
	"github.com/cbodonnell/worldlens/pkg/repositories"
	"github.com/cbodonnell/worldlens/pkg/state"
	"github.com/cbodonnell/worldlens/pkg/workers"
)

func main() {
	logLevel := flag.String("log-level", "info", "Log level")
	logFile := flag.String("log-file", "", "Also write logs to this file, rotated")
	configPath := flag.String("config", "", "Path to a YAML config file")
	processName := flag.String("process", "", "Executable name of the game (overrides config)")
	tick := flag.Duration("tick", 0, "Read interval (overrides config)")
	httpPort := flag.Int("http-port", 8080, "HTTP API port, 0 disables the API")
	wsPort := flag.Int("ws-port", 8081, "WebSocket port, 0 disables streaming")
	recordPath := flag.String("record", "", "Append every snapshot to this recording")
	replayPath := flag.String("replay", "", "Serve the snapshots of a recording instead of attaching")
	printSchema := flag.Bool("print-schema", false, "Print the config JSON schema and exit")
	flag.Parse()

	if *printSchema {
		b, err := config.Schema()
		if err != nil {
			panic(fmt.Sprintf("Failed to generate schema: %v", err))
		}
		fmt.Println(string(b))
		return
	}

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	var logger *log.Logger
	if *logFile != "" {
		logger = log.NewWithFile(os.Stdout, log.FileOptions{Path: *logFile}, parsedLogLevel)
	} else {
		logger = log.New(os.Stdout, parsedLogLevel)
	}
	log.SetDefaultLogger(logger)
	defer log.Sync()
	log.Info("Log level set to %s", parsedLogLevel)

	cfg := config.Default()
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			panic(fmt.Sprintf("Failed to load config: %v", err))
		}
	}
	if *processName != "" {
		cfg.Process = *processName
	}
	if *tick > 0 {
		cfg.TickInterval = *tick
	}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("Invalid config: %v", err))
	}
	if *replayPath != "" && *replayPath == *recordPath {
		panic("Cannot record to the recording being replayed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repository, err := newRepository(ctx, os.Getenv("WORLDLENS_DATABASE_URL"))
	if err != nil {
		panic(fmt.Sprintf("Failed to create repository: %v", err))
	}
	defer repository.Close(context.Background())

	resolver, err := origins.NewRepositoryResolver(repository, origins.DefaultCacheSize)
	if err != nil {
		panic(fmt.Sprintf("Failed to create origin resolver: %v", err))
	}

	store := state.NewInMemorySnapshotStore()
	broadcastQueue := queue.NewInMemoryQueue[*types.Snapshot](queue.DefaultBufferSize)
	sinks := []func(*types.Snapshot){
		func(s *types.Snapshot) { broadcastQueue.Enqueue(s) },
	}

	if *recordPath != "" {
		rec, err := recorder.NewFileRecorder(*recordPath)
		if err != nil {
			panic(fmt.Sprintf("Failed to create recorder: %v", err))
		}
		defer func() {
			if err := rec.Close(); err != nil {
				log.Error("Failed to close recording: %v", err)
			}
			log.Info("Recorded %d snapshots to %s", rec.Frames(), *recordPath)
		}()
		sinks = append(sinks, rec.Sink)
	}

	// stored origins take precedence over the config table so they can be corrected at runtime
	originChain := origins.Chain{resolver, origins.Static(cfg.Maps)}

	if *httpPort > 0 {
		apiServer := api.NewAPIServer(api.NewAPIServerOptions{
			Port:     *httpPort,
			Store:    store,
			Origins:  resolver,
			Lister:   repository,
			Resolver: originChain,
		})
		go apiServer.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			apiServer.Stop(shutdownCtx)
		}()
	}

	if *wsPort > 0 {
		wsServer := network.NewWSServer(network.NewWSServerOptions{Port: *wsPort})
		go wsServer.Start(ctx)

		broadcastWorker := workers.NewBroadcastWorker(workers.NewBroadcastWorkerOptions{
			Broadcaster: wsServer,
			Queue:       broadcastQueue,
		})
		go broadcastWorker.Start(ctx)
	}

	if *replayPath != "" {
		if err := replay(ctx, *replayPath, cfg.TickInterval, store, sinks); err != nil {
			log.Error("Replay failed: %v", err)
		}
		return
	}

	saveWorker := workers.NewSaveSnapshotWorker(workers.NewSaveSnapshotWorkerOptions{
		Repository: repository,
		Store:      store,
		Interval:   10 * time.Second,
	})
	saveDone := make(chan struct{})
	go func() {
		saveWorker.Start(ctx)
		close(saveDone)
	}()
	defer func() {
		stop()
		<-saveDone
	}()

	log.Info("Attaching to %s", cfg.Process)
	proc, err := process.Attach(cfg.Process)
	if err != nil {
		log.Error("Failed to attach: %v", err)
		return
	}
	defer proc.Close()
	log.Info("Attached to %s (pid %d)", proc.Name, proc.Pid)

	reader, err := memory.NewReader(proc, cfg.Offsets.PointerSize)
	if err != nil {
		log.Error("Failed to create reader: %v", err)
		return
	}

	g := game.NewGame(game.NewGameOptions{
		Reader:        reader,
		Offsets:       cfg.Offsets,
		Origins:       originChain,
		DefaultOrigin: cfg.DefaultOrigin,
	})

	tracker := state.NewTracker(state.NewTrackerOptions{Store: store, Sinks: sinks})
	g.Subscribe(tracker)
	log.Info("Session %s started", tracker.Session())

	driver := game.NewDriver(game.NewDriverOptions{
		Game:           g,
		Interval:       cfg.TickInterval,
		MaxFailures:    cfg.MaxFailures,
		SessionTimeout: cfg.SessionTimeout,
	})
	if err := driver.Start(ctx); err != nil {
		if errors.Is(err, memory.ErrReadFault) {
			log.Warn("Session ended, the game may have exited: %v", err)
			return
		}
		log.Error("Session ended: %v", err)
		return
	}
	log.Info("Shutting down")
}

// newRepository opens the repository named by a sqlite:// or postgresql:// URL.
func newRepository(ctx context.Context, connStr string) (repositories.Repository, error) {
	if connStr == "" {
		connStr = "sqlite://worldlens.db"
	}

	u, err := url.Parse(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %v", err)
	}

	switch u.Scheme {
	case "sqlite":
		path := u.Host + u.Path
		if u.Opaque != "" {
			path = u.Opaque
		}
		return repositories.NewSQLiteRepository(ctx, path)
	case "postgres", "postgresql":
		return repositories.NewPostgresRepository(ctx, u.String())
	default:
		return nil, fmt.Errorf("unknown database type %s", u.Scheme)
	}
}

// replay publishes the snapshots of a recording at the tick interval.
func replay(ctx context.Context, path string, interval time.Duration, store state.SnapshotStore, sinks []func(*types.Snapshot)) error {
	log.Info("Replaying %s", path)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	frames := 0
	err := recorder.ReplayFile(path, func(s *types.Snapshot) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if err := store.Set(ctx, s); err != nil {
			return err
		}
		for _, sink := range sinks {
			sink(s)
		}
		frames++
		return nil
	})
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	log.Info("Replayed %d snapshots", frames)
	return err
}
