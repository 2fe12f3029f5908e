// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package drought serves the drought map and the district alert feed.
//
// Water stress index classes:
//
//	wsi >= 0.8  Critical     #ef4444
//	wsi >= 0.6  High Stress  #f59e0b
//	wsi >= 0.4  Moderate     #eab308
//	otherwise   Low Stress   #10b981
package drought
