// Package config provides centralized configuration management.
// It loads configuration from multiple sources, validates it, and exposes a
// type-safe API for the rest of the application.
//
// # Configuration Sources
//
// Configuration is layered in the following order, later layers winning:
//
//	1. Default values (Default)
//	2. YAML file: $VOTES_CONFIG_FILE, config.yaml or configs/config.yaml
//	3. Environment variables prefixed with VOTES_
//
// # Environment Variables
//
//	VOTES_SERVER_PORT=8080
//	VOTES_LOGGING_LEVEL=debug
//	VOTES_PATHS_DATA_DIR=/srv/votes
//	VOTES_CHART_MARKER_SCALE=3
//
// # Sources
//
// Vote sources can only be configured in the YAML file. Each entry maps one
// file to a candidate:
//
//	sources:
//	  - name: Pedro Porto
//	    path: Relatório_de_votos_com_coordenadas.csv
//	    neighborhood_column: BAIRRO
//	    votes_column: PEDRO PORTO 2024 1T
//	    color: green
//
// Relative source paths are resolved against paths.data_dir.
//
// # Validation
//
// Load validates the result with go-playground/validator struct tags: port
// range, positive timeouts, at least one source, unique source names.
package config
