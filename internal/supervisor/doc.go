// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package supervisor runs the serve command's long-lived services under a
suture v4 supervisor tree.

	RootSupervisor ("reelmatch")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── CacheGCService (when poster.cache_dir is set)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services restart with suture's backoff. A failing maintenance task
never takes the HTTP server down with it. Supervisor events are written to
the application logger through the sutureslog adapter.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	tree.AddMaintenanceService(services.NewCacheGCService(chain.Store, time.Hour, logger))
	return tree.Serve(ctx)
*/
package supervisor
