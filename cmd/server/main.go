package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	cartapp "github.com/ipakyoli/menu-service/app/cart"
	"github.com/ipakyoli/menu-service/app/catalog"
	"github.com/ipakyoli/menu-service/app/categories"
	"github.com/ipakyoli/menu-service/app/menu"
	"github.com/ipakyoli/menu-service/config"
	"github.com/ipakyoli/menu-service/models"
	"github.com/ipakyoli/menu-service/pkg/logger"
	"github.com/ipakyoli/menu-service/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	log.Info("starting menu service",
		"environment", cfg.App.Environment,
		"store_driver", cfg.Store.Driver,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := gorm.Open(cfg.Store.Dialector(), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Error("failed to open local store", "error", err)
		os.Exit(1)
	}

	kv, err := store.NewGormKV(db)
	if err != nil {
		log.Error("failed to prepare local store", "error", err)
		os.Exit(1)
	}
	local := store.NewLocalStore(kv, log)

	remote := buildRemote(ctx, cfg, log)
	facade := store.NewFacade(remote, local, log)
	facade.EnsureDefaultCategories(ctx)

	policy := models.FeePolicy{
		ServiceFeePercent:     cfg.Fees.ServiceFeePercent,
		DeliveryFee:           cfg.Fees.DeliveryFee,
		FreeDeliveryThreshold: cfg.Fees.FreeDeliveryThreshold,
	}
	cart := models.NewCart(policy, local, log)
	cart.Load()

	catalogHandler := catalog.NewCatalogHandler(facade)
	menuHandler := menu.NewMenuHandler(facade)
	categoryHandler := categories.NewCategoryHandler(facade)
	cartHandler := cartapp.NewCartHandler(cart, facade)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /status", catalogHandler.HandleGetStatus)
	mux.HandleFunc("GET /catalog", catalogHandler.HandleGetMenu)
	mux.HandleFunc("GET /catalog/categories", catalogHandler.HandleGetCategories)

	mux.HandleFunc("GET /admin/menu", menuHandler.HandleList)
	mux.HandleFunc("POST /admin/menu", menuHandler.HandleCreate)
	mux.HandleFunc("PUT /admin/menu/{id}", menuHandler.HandleUpdate)
	mux.HandleFunc("PATCH /admin/menu/{id}/availability", menuHandler.HandleToggleAvailability)
	mux.HandleFunc("DELETE /admin/menu/{id}", menuHandler.HandleDelete)
	mux.HandleFunc("POST /admin/sync", menuHandler.HandleSync)

	mux.HandleFunc("GET /admin/categories", categoryHandler.HandleGetAll)
	mux.HandleFunc("POST /admin/categories", categoryHandler.HandleCreate)
	mux.HandleFunc("DELETE /admin/categories/{id}", categoryHandler.HandleDelete)

	mux.HandleFunc("GET /cart", cartHandler.HandleGet)
	mux.HandleFunc("POST /cart/items", cartHandler.HandleAddItem)
	mux.HandleFunc("DELETE /cart/items", cartHandler.HandleRemoveItem)
	mux.HandleFunc("DELETE /cart/lines", cartHandler.HandleRemoveLine)
	mux.HandleFunc("DELETE /cart", cartHandler.HandleClear)

	server := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: logger.Middleware(log, mux),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// buildRemote connects to Firestore when a project is configured and
// falls back to the always-unavailable remote otherwise, which keeps
// the whole service usable in pure local mode.
func buildRemote(ctx context.Context, cfg *config.Config, log *slog.Logger) store.RemoteStore {
	if cfg.Firestore.ProjectID == "" {
		log.Warn("no firestore project configured, running in local mode")
		return store.Unavailable{}
	}

	var opts []option.ClientOption
	if cfg.Firestore.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firestore.CredentialsFile))
	}
	client, err := firestore.NewClient(ctx, cfg.Firestore.ProjectID, opts...)
	if err != nil {
		log.Warn("firestore client init failed, running in local mode", "error", err)
		return store.Unavailable{}
	}
	return store.NewFirestoreStore(client)
}
