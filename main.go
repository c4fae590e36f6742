package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ayeshaishere/admin-dashboard/internal/cart"
	"github.com/ayeshaishere/admin-dashboard/internal/config"
	"github.com/ayeshaishere/admin-dashboard/internal/database"
	"github.com/ayeshaishere/admin-dashboard/internal/dummyjson"
	"github.com/ayeshaishere/admin-dashboard/internal/localstore"
	"github.com/ayeshaishere/admin-dashboard/internal/router"
	"github.com/ayeshaishere/admin-dashboard/internal/session"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// ensure basic directories exist
	if err := ensureDir(filepath.Dir(cfg.Database.Path)); err != nil {
		log.Fatalf("create data dir: %v", err)
	}
	if cfg.Log.File != "" {
		if err := ensureDir(filepath.Dir(cfg.Log.File)); err != nil {
			log.Fatalf("create log dir: %v", err)
		}
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// remote demo API client
	api := dummyjson.New(cfg.API.BaseURL, cfg.APITimeout())

	// local persistence plus the two state stores
	kv := localstore.NewDB(db)
	sessions := session.New(kv, api)
	cartStore := cart.New(kv)

	// 启动时各恢复一次；在开始服务之前完成，之后不再进入 indeterminate
	sessions.Restore()
	cartStore.Load()

	r := router.SetupRouter(cfg, db, api, sessions, cartStore)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("storefront listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
