// Package domain models groundwater uranium concentration readings and the
// pure transforms that turn them into a 3D column map scene.
//
// # Data Source
//
// Readings arrive as CSV rows with four required columns:
//
//	City, Latitude, Longitude, Uranium concentration (µg/L)
//
// Coordinates are WGS-84 decimal degrees. Concentrations are micrograms per
// litre. Extra columns are ignored.
//
// # Cleaning Rules
//
// [Clean] applies these rules in order and records a [RejectReason] for every
// dropped row:
//
//  1. Concentration is coerced to a float; unparseable or non-finite values
//     become "not numeric" (the row is not dropped yet).
//  2. Rows with a missing or unparseable latitude/longitude are dropped.
//  3. Concentrations ≤ 0 are clamped to [ConcentrationFloor] (0.1 µg/L).
//     Zero and negative values are sensor artifacts; the location is kept.
//  4. Rows whose concentration is still not numeric are dropped.
//  5. Rows outside latitude [-90, 90] or longitude [-180, 180] are dropped.
//
// # Visual Encoding
//
// Color is a function of the normalized concentration
// t = clamp((v - min) / (max - min), 0, 1) under one of four [Scheme]s. When
// every reading has the same concentration the range is degenerate and all
// columns are neutral gray (128, 128, 128).
//
// Column height is linear (v * 5000 / max) unless the dataset spans more than
// two orders of magnitude (max / min > 100), in which case it is logarithmic
// (log10(v + 1) * 1000). The mode is chosen once per dataset.
//
// Zoom is a step function of the larger of the latitude and longitude ranges:
//
//	> 10° → 5 | > 5° → 6 | > 2° → 7 | otherwise 8
//
// Pitch (60°) and bearing (0°) are fixed.
package domain
