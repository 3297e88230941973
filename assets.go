// Package comicd provides embedded assets for production builds.
package comicd

import "embed"

// Embedded assets for production builds.
// In dev mode (IsDev=true), assets are loaded from disk for hot reloading.
// In production mode (IsDev=false), assets are served from this embedded filesystem.

//go:embed all:frontend/static
var StaticFS embed.FS
