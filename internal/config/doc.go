// Package config provides centralized configuration management for the
// retail analysis toolkit.
//
// Configuration is loaded from environment variables (prefix RETAIL) merged
// over an optional YAML file, then validated. Business constants that drive
// the KPI computations (price bucket thresholds, RFM band count) live here so
// every computation stays a pure function of its inputs plus an explicit
// configuration value.
package config
