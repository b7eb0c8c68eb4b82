package sibyld

import (
	"fmt"

	"github.com/sibylline/sibyl/internal/augur"
	"github.com/sibylline/sibyl/internal/augur/config"
	"github.com/sibylline/sibyl/internal/augur/options"
	"github.com/sibylline/sibyl/pkg/app"
	"github.com/sibylline/sibyl/pkg/logger"
)

const (
	AppName = "sibyld"
)

func NewApp(basename string) *app.App {
	opts := options.NewOptions()
	application := app.NewApp("sibyld",
		basename,
		app.WithOptions(opts),
		app.WithDescription(`The sibyld server answers business intelligence questions over
the sample sales warehouse, either with a single analyst agent or a
three-stage SQL, analytics and reporting pipeline, and records every
agent run as a trace document.`),
		app.WithDefaultValidArgs(),
		app.WithRunFunc(run(opts)),
	)
	return application
}

func run(opts *options.Options) app.RunFunc {
	return func(basename string) error {
		logPath := fmt.Sprintf("logs/%s.log", basename)

		if err := logger.InitLog(logPath); err != nil {
			return err
		}
		defer logger.FlushLog()

		cfg, err := config.CreateConfigFromOptions(opts)
		if err != nil {
			return err
		}

		return augur.Run(cfg)
	}
}
