package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"faceit-scout/internal/anomaly"
	"faceit-scout/internal/api"
	"faceit-scout/internal/config"
	"faceit-scout/internal/constants"
	fxmodules "faceit-scout/internal/fx"
	"faceit-scout/internal/logger"
	"faceit-scout/internal/render"
	"faceit-scout/internal/service"

	"github.com/google/uuid"
	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

var opts struct {
	Nickname string `short:"n" long:"nickname" env:"FACEIT_NICKNAME" required:"true" description:"FACEIT nickname to scout"`
	Matches  int    `short:"m" long:"matches" env:"MATCH_LIMIT" default:"30" description:"number of matches to pull (30-100)"`
	Quiet    bool   `short:"q" long:"quiet" description:"suppress the live progress line"`
}

func main() {
	p := flags.NewParser(&opts, flags.Default)
	if _, err := p.Parse(); err != nil {
		if errors.Is(err, flags.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Matches < constants.MatchLimitMin || opts.Matches > constants.MatchLimitMax {
		fmt.Fprintf(os.Stderr, "matches must be between %d and %d\n", constants.MatchLimitMin, constants.MatchLimitMax)
		os.Exit(1)
	}

	fx.New(
		fxmodules.Module,
		fx.NopLogger,
		fx.Invoke(run),
	).Run()
}

func run(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	scout *service.ScoutService,
	engine *anomaly.Engine,
	console *render.Console,
	cfg *config.Config,
	log zerolog.Logger,
) {
	log = logger.SetLevel(log, cfg.LogLevel).
		With().
		Str("run_id", uuid.New().String()).
		Logger()

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				code := 0
				if err := scoutRun(scout, engine, console, log); err != nil {
					code = 1
				}
				_ = shutdowner.Shutdown(fx.ExitCode(code))
			}()
			return nil
		},
	})
}

func scoutRun(scout *service.ScoutService, engine *anomaly.Engine, console *render.Console, log zerolog.Logger) error {
	ctx := context.Background()

	var progress service.ProgressFunc
	if !opts.Quiet {
		progress = console.Progress
	}

	log.Info().Str("nickname", opts.Nickname).Int("matches", opts.Matches).Msg("scouting player")

	profile, fromCache, err := scout.PlayerProfile(ctx, opts.Nickname, opts.Matches, progress)
	if err != nil {
		if errors.Is(err, api.ErrPlayerNotFound) {
			log.Error().Str("nickname", opts.Nickname).Msg("player not found")
		} else {
			log.Error().Err(err).Str("nickname", opts.Nickname).Msg("failed to fetch profile")
		}
		return err
	}

	console.PlayerSummary(profile, fromCache)

	cached, err := scout.CachedProfile(opts.Nickname)
	if err != nil {
		log.Error().Err(err).Str("nickname", opts.Nickname).Msg("no cached profile to analyze")
		return err
	}

	console.Report(engine.Evaluate(cached))
	return nil
}
