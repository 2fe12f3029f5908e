// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package overview builds the dashboard headline cards and runs the crisis
// simulation switch. The simulation stops itself after its TTL; the timer
// belongs to the service scope and dies with it.
package overview
