package app

import (
	"context"

	"github.com/carousell/ct-go/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"

	"github.com/bloxfund/donation-proxy/internal/config"
	"github.com/bloxfund/donation-proxy/internal/repo/roblox"
	"github.com/bloxfund/donation-proxy/internal/server"
	"github.com/bloxfund/donation-proxy/internal/usecase"
)

func Invoke(funcs ...any) *fx.App {
	log := logger.MustNamed("app")
	conf := config.MustLoad()
	log.Debugw("config loaded", log.Reflect("config", conf))
	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{
				Logger: log.Unwrap().Desugar(),
			}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		fx.Provide(
			roblox.NewClient,
			roblox.NewGamePassSource,
			roblox.NewCatalogTShirtSource,
			newEnricher,
			newUserDirectory,
			newRawLister,

			usecase.NewSourceRegistry,
			usecase.NewDonationUsecase,
			usecase.NewUserUsecase,

			server.NewHandler,
		),
		fx.Supply(conf),
		fx.Invoke(RegisterListingSources),
		fx.Invoke(funcs...),
	)
}

func newEnricher(client roblox.Client, conf *config.Config) (usecase.Enricher, error) {
	return roblox.NewProductEnricher(client, conf)
}

func newUserDirectory(client roblox.Client) usecase.UserDirectory {
	return client
}

func newRawLister(client roblox.Client) server.RawLister {
	return client
}

// RegisterListingSources registers the listing sources with the registry
// using the fx lifecycle, so that config can pick which of them run.
func RegisterListingSources(
	lc fx.Lifecycle,
	registry usecase.SourceRegistry,
	gamepasses *roblox.GamePassSource,
	tshirts *roblox.CatalogTShirtSource,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			registry.RegisterSource(gamepasses.SourceName(), gamepasses)
			registry.RegisterSource(tshirts.SourceName(), tshirts)
			return nil
		},
	})
}
