package config

// Config the service configuration
type Config struct {
	Mode          string   `json:"mode,omitempty" env:"SCATTER_MODE" envDefault:"production"` // production | development
	Host          string   `json:"host,omitempty" env:"SCATTER_HOST" envDefault:"0.0.0.0"`
	Port          int      `json:"port,omitempty" env:"PORT" envDefault:"5099"`
	AllowFrom     []string `json:"allowfrom,omitempty" envSeparator:"|" env:"SCATTER_ALLOW_FROM" envDefault:"*"` // CORS origins
	Log           string   `json:"log,omitempty" env:"SCATTER_LOG"`                                              // log file, stderr when empty
	LogMode       string   `json:"log_mode,omitempty" env:"SCATTER_LOG_MODE" envDefault:"TEXT"`                  // TEXT | JSON
	LogMaxSize    int      `json:"log_max_size,omitempty" env:"SCATTER_LOG_MAX_SIZE" envDefault:"100"`           // megabytes
	LogMaxBackups int      `json:"log_max_backups,omitempty" env:"SCATTER_LOG_MAX_BACKUPS" envDefault:"3"`
	LogMaxAge     int      `json:"log_max_age,omitempty" env:"SCATTER_LOG_MAX_AGE" envDefault:"28"` // days
	DataDir       string   `json:"data_dir,omitempty" env:"SCATTER_DATA_DIR"` // csv and excel files served by the API, none when empty
	DB            Database `json:"db,omitempty"`
	LLM           LLM      `json:"llm,omitempty"`
}

// Database the postgres connection
type Database struct {
	Host     string `json:"host,omitempty" env:"POSTGRES_HOST"`
	Port     int    `json:"port,omitempty" env:"POSTGRES_PORT" envDefault:"5432"`
	User     string `json:"user,omitempty" env:"POSTGRES_USER"`
	Password string `json:"-" env:"POSTGRES_PASSWORD"`
	Name     string `json:"name,omitempty" env:"POSTGRES_DB"`
	SSLMode  string `json:"sslmode,omitempty" env:"POSTGRES_SSLMODE" envDefault:"disable"`
	MaxConns int32  `json:"max_conns,omitempty" env:"POSTGRES_MAX_CONNS" envDefault:"10"`
	Schema   string `json:"schema,omitempty" env:"POSTGRES_SCHEMA" envDefault:"public"`
}

// LLM the language model used by prompt data sources and suggestions
type LLM struct {
	Provider  string `json:"provider,omitempty" env:"LLM_PROVIDER" envDefault:"huggingface"` // huggingface | openai | ollama
	APIKey    string `json:"-" env:"API_KEY"`
	Model     string `json:"model,omitempty" env:"LLM_MODEL"`
	ServerURL string `json:"server_url,omitempty" env:"OLLAMA_URL"`
}
