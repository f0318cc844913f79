package config

// Application constants
const (
	AppName    = "Vote Compare"
	AppVersion = "1.0.0"

	// EnvPrefix namespaces every environment variable, e.g. VOTES_SERVER_PORT
	EnvPrefix = "VOTES"

	DefaultPort       = 8080
	DefaultRateLimit  = 50 // requests per second
	DefaultBurstSize  = 100
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "json"
	DefaultDataDir    = "data"
	DefaultReportsDir = "data/reports"
	DefaultLogsDir    = "logs"

	DefaultChartTitle  = "Comparação de Votação por Bairro"
	DefaultMarkerScale = 2.0
)
