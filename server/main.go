package main

import (
	"context"
	"flag"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meikuraledutech/callflow"
	"github.com/meikuraledutech/callflow/cache"
	"github.com/meikuraledutech/callflow/internal/config"
	"github.com/meikuraledutech/callflow/postgres"
	"github.com/meikuraledutech/callflow/render"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "path to callflow.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	log := cfg.NewLogger()

	compiler, err := callflow.NewCompiler(cfg.Compiler)
	if err != nil {
		log.Fatalf("compiler: %v", err)
	}

	d := deps{compiler: compiler, log: log}

	if cfg.Database.URL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.Database.URL)
		if err != nil {
			log.Fatalf("connect: %v", err)
		}
		defer pool.Close()
		d.store = postgres.New(pool)
	} else {
		log.Warn("DATABASE_URL is not set, graph storage disabled")
	}

	var renderer render.Renderer = render.New(render.Options{
		Binary:  cfg.Renderer.Binary,
		Timeout: cfg.Renderer.GetTimeout(),
		Logger:  log,
	})
	if cfg.Redis.URL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := cache.NewClient(ctx, cfg.Redis.URL)
		cancel()
		if err != nil {
			log.WithError(err).Warn("render cache disabled")
		} else {
			defer client.Close()
			renderer = cache.New(client, renderer, cache.Options{TTL: cfg.Redis.GetTTL(), Logger: log})
		}
	}
	d.renderer = renderer

	app := newApp(d)
	log.WithField("addr", cfg.Server.GetAddr()).Info("callflow server listening")
	log.Fatal(app.Listen(cfg.Server.GetAddr()))
}
