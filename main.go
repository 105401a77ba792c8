// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"astra-cinemas/cmd"
	"astra-cinemas/internal/api"
	"astra-cinemas/internal/data/store"
	"astra-cinemas/internal/stub"
	"astra-cinemas/internal/usecase"
	"astra-cinemas/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	// The stub backend needs no client-side wiring.
	if args[0] == "stub" {
		logger.Info("Starting stub backend", zap.String("port", config.Stub.Port))
		cmd.StubServer(stub.New(logger).Router(), config.Stub.Port)
		return
	}

	logger.Info("Starting console",
		zap.String("app", config.App.Name),
		zap.String("backend", config.Backend.BaseURL),
		zap.Bool("debug", config.App.Debug),
	)

	client := api.NewClient(config.Backend.BaseURL, logger)

	cache, err := openCache(config, logger)
	if err != nil {
		logger.Fatal("Failed to open ticket cache", zap.Error(err))
	}
	defer cache.Close()

	service := usecase.NewService(client, cache, config, logger)

	ctx := context.Background()
	if err := run(ctx, args, client, service, config, logger); err != nil {
		logger.Error("Command failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, client *api.Client, service *usecase.Service, config *utils.Config, logger *zap.Logger) error {
	switch args[0] {
	case "filmes":
		return cmd.Movies(ctx, service)

	case "sessoes":
		if len(args) < 2 {
			usage()
			return fmt.Errorf("sessoes: missing movie id")
		}
		return cmd.Showtimes(ctx, service, args[1])

	case "painel":
		cmd.Dashboard(ctx, service)
		return nil

	case "comprar":
		if len(args) < 2 {
			usage()
			return fmt.Errorf("comprar: missing showtime id")
		}
		return cmd.Purchase(ctx, client, config, logger, args[1])

	case "ingressos":
		cmd.Tickets(ctx, service, config.Backend.ClienteID)
		return nil

	case "validar":
		if len(args) < 2 {
			usage()
			return fmt.Errorf("validar: missing scan code")
		}
		return cmd.Validate(ctx, service, args[1])

	case "cancelar":
		if len(args) < 2 {
			usage()
			return fmt.Errorf("cancelar: missing order id")
		}
		return cmd.Cancel(ctx, service, args[1])
	}

	usage()
	return fmt.Errorf("unknown command %q", args[0])
}

// openCache picks the ticket cache backend from config.
func openCache(config *utils.Config, logger *zap.Logger) (store.Store, error) {
	ctx := context.Background()

	switch config.Cache.Driver {
	case "file", "":
		return store.NewFileStore(config.Cache.Path), nil
	case "postgres":
		return store.NewPostgresStore(ctx, config.Postgres)
	case "redis":
		return store.NewRedisStore(ctx, config.Redis)
	}
	return nil, fmt.Errorf("unknown cache driver %q", config.Cache.Driver)
}

func usage() {
	fmt.Println(`astra-cinemas — console do cliente Astra Cinemas

Comandos:
  filmes              lista filmes em cartaz
  sessoes <filmeId>   lista sessões de um filme
  painel              resumo do catálogo
  comprar <sessaoId>  fluxo de compra interativo
  ingressos           carteira de ingressos (cache local)
  validar <codigo>    valida um ingresso (console do staff)
  cancelar <compraId> cancela uma compra (remarcação)
  stub                sobe o backend de desenvolvimento`)
}
