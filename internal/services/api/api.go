// Package api provides the HTTP API for the application
package api

import (
	"chatguard/internal/platform/config"
	"chatguard/internal/platform/logger"
	phttp "chatguard/internal/platform/net/http"
	"chatguard/internal/platform/store"

	"chatguard/internal/modkit"
	"chatguard/internal/modkit/httpkit"
	"chatguard/internal/modkit/module"
	"chatguard/internal/modkit/swaggerkit"

	metamod "chatguard/internal/services/api/meta/module"
	guarddom "chatguard/internal/services/guard/domain"
	guardmod "chatguard/internal/services/guard/module"
	replymod "chatguard/internal/services/reply/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Stack          httpkit.StackOptions
	EnableSwagger  bool
	EnableProfiler bool
}

// Mounted is what the caller keeps after Mount for background work and shutdown
type Mounted struct {
	Sweeper guarddom.SweeperPort

	guard *guardmod.Module
}

// Close releases module resources
func (m *Mounted) Close() error {
	if m == nil || m.guard == nil {
		return nil
	}
	return m.guard.Close()
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) *Mounted {
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.CH = opt.Store.CH
		deps.RDS = opt.Store.RDS
	}

	// the guard registers first, the reply pipeline gates on its port
	guard := guardmod.New(deps)
	module.Register(guard.Name(), guard.Ports())

	mods := []module.Module{
		metamod.New(deps),
		guard,
		replymod.New(deps),
	}

	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.Stack), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})

	return &Mounted{Sweeper: module.MustPortsOf[guarddom.SweeperPort](guard), guard: guard}
}
