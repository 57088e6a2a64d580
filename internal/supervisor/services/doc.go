// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package services adapts reelmatch components to suture.Service so the
// supervisor tree can start, restart and stop them.
//
//   - HTTPServerService turns ListenAndServe/Shutdown into Serve(ctx).
//   - CacheGCService periodically compacts the persistent poster cache.
package services
