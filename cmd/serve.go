package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scom-repos/scom-scatter-chart-sub000/api"
	"github.com/scom-repos/scom-scatter-chart-sub000/config"
	"github.com/scom-repos/scom-scatter-chart-sub000/database"
	"github.com/scom-repos/scom-scatter-chart-sub000/datasource"
	"github.com/scom-repos/scom-scatter-chart-sub000/services"
	"github.com/spf13/cobra"
	"github.com/yaoapp/kun/log"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the widget host API",
	Long:  "Start the widget host API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := Boot(); err != nil {
			return err
		}
		defer config.CloseLog()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		factory, closeDB, err := openFactory(ctx, config.Conf)
		if err != nil {
			return err
		}
		defer closeDB()

		server := &http.Server{
			Addr:    config.Conf.Addr(),
			Handler: api.NewServer(factory, factory.LLM).Handler(config.Conf.AllowFrom),
		}

		errs := make(chan error, 1)
		go func() {
			log.Info("[serve] listening on %s", server.Addr)
			errs <- server.ListenAndServe()
		}()

		select {
		case err := <-errs:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("[serve] stopping")
		return server.Shutdown(shutdown)
	},
}

// openFactory wires the database and language model named by cfg. Either may
// be absent; the sources needing them are then unavailable. File sources
// read only inside cfg.DataDir.
func openFactory(ctx context.Context, cfg config.Config) (datasource.Factory, func(), error) {
	factory := datasource.Factory{
		Schema:  cfg.DB.Schema,
		DataDir: cfg.DataDir,
		NoFiles: cfg.DataDir == "",
	}
	closeDB := func() {}

	if llm, err := newLLM(cfg); err != nil {
		return factory, closeDB, err
	} else if llm != nil {
		factory.LLM = llm
	}

	if cfg.DB.Enabled() {
		pool, err := database.Connect(ctx, cfg.DB.DSN(), cfg.DB.MaxConns)
		if err != nil {
			return factory, closeDB, err
		}
		factory.DB = pool
		closeDB = pool.Close
	}
	return factory, closeDB, nil
}

// newLLM returns nil when no model is configured.
func newLLM(cfg config.Config) (services.LLM, error) {
	if cfg.LLM.APIKey == "" && cfg.LLM.Provider != "ollama" {
		return nil, nil
	}
	return services.NewLLM(cfg.LLM.Provider, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.ServerURL)
}
