package fx

import (
	"faceit-scout/internal/anomaly"
	"faceit-scout/internal/api"
	"faceit-scout/internal/cache"
	"faceit-scout/internal/config"
	"faceit-scout/internal/database"
	"faceit-scout/internal/logger"
	"faceit-scout/internal/render"
	"faceit-scout/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(cache.NewStore),
	// api clients
	fx.Provide(api.NewGateway),
	fx.Provide(api.NewFaceitClient),
	fx.Provide(api.NewSteamClient),
	// svc
	fx.Provide(service.NewProfileService),
	fx.Provide(service.NewMatchCollector),
	fx.Provide(service.NewScoutService),
	fx.Provide(anomaly.NewEngine),
	// output
	fx.Provide(render.NewConsole),
)
