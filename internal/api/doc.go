// Package api provides the HTTP REST API and WebSocket event stream of
// ucrcore.
//
// It lists the configured devices with their capability trees and
// subscription tables, and activates or deactivates profiles:
//
//	GET  /api/v1/health
//	GET  /api/v1/devices[?io=input|output]
//	POST /api/v1/devices
//	GET  /api/v1/devices/{id}
//	DEL  /api/v1/devices/{id}
//	GET  /api/v1/devices/{id}/tree
//	GET  /api/v1/devices/{id}/subscriptions
//	GET  /api/v1/profiles
//	GET  /api/v1/profiles/active
//	GET  /api/v1/profiles/{ref}
//	POST /api/v1/profiles/{ref}/activate
//	POST /api/v1/profiles/deactivate
//	GET  /api/v1/ws
//
// A profile reference is its ID, its breadcrumb path or a unique title.
// WebSocket clients subscribe to the "profile_changed" and "input" channels;
// the WebSocket path is configurable.
//
// The server follows the lifecycle of the other components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
package api
