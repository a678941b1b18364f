package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Database  DatabaseConfig  `yaml:"database" mapstructure:"database"`
	CORS      CORSConfig      `yaml:"cors" mapstructure:"cors"`
	OpenAI    OpenAIConfig    `yaml:"openai" mapstructure:"openai"`
	GeminiAI  GeminiAIConfig  `yaml:"gemini_ai" mapstructure:"gemini_ai"`
	YouTube   YouTubeConfig   `yaml:"youtube" mapstructure:"youtube"`
	SerpAPI   SerpAPIConfig   `yaml:"serpapi" mapstructure:"serpapi"`
	JWT       JWTConfig       `yaml:"jwt" mapstructure:"jwt"`
	Discovery DiscoveryConfig `yaml:"discovery" mapstructure:"discovery"`
	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port string `yaml:"port" mapstructure:"port"`
}

type DatabaseConfig struct {
	URL string `yaml:"url" mapstructure:"url"`
}

type CORSConfig struct {
	AllowOrigins     []string `yaml:"allow_origins" mapstructure:"allow_origins"`
	AllowMethods     []string `yaml:"allow_methods" mapstructure:"allow_methods"`
	AllowHeaders     []string `yaml:"allow_headers" mapstructure:"allow_headers"`
	ExposeHeaders    []string `yaml:"expose_headers" mapstructure:"expose_headers"`
	AllowCredentials bool     `yaml:"allow_credentials" mapstructure:"allow_credentials"`
}

type OpenAIConfig struct {
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	Model  string `yaml:"model" mapstructure:"model"`
}

type GeminiAIConfig struct {
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	Model  string `yaml:"model" mapstructure:"model"`
}

type YouTubeConfig struct {
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
}

type SerpAPIConfig struct {
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
}

type JWTConfig struct {
	SecretKey string `yaml:"secret_key" mapstructure:"secret_key"`
}

// DiscoveryConfig carries the search pipeline policy. The thresholds and
// duration cutoffs vary across deployments, so they are configuration
// rather than constants.
type DiscoveryConfig struct {
	// MinScore is the per-level relevance threshold a video must reach.
	MinScore map[string]int `yaml:"min_score" mapstructure:"min_score"`
	// MinDurationSeconds is the per-level minimum video length.
	MinDurationSeconds map[string]int `yaml:"min_duration_seconds" mapstructure:"min_duration_seconds"`
	// MaxDurationSeconds is the hard video length ceiling.
	MaxDurationSeconds int `yaml:"max_duration_seconds" mapstructure:"max_duration_seconds"`
	// MaxCandidates bounds how many videos are sent to the scorer.
	MaxCandidates int `yaml:"max_candidates" mapstructure:"max_candidates"`
	// SweetSpotBonus is added to the score when sorting videos whose
	// duration falls inside [SweetSpotMinSeconds, MaxDurationSeconds].
	// It biases ranking only, never the filter.
	SweetSpotBonus      int `yaml:"sweet_spot_bonus" mapstructure:"sweet_spot_bonus"`
	SweetSpotMinSeconds int `yaml:"sweet_spot_min_seconds" mapstructure:"sweet_spot_min_seconds"`
	// ScoreConcurrency bounds parallel scorer calls per request.
	ScoreConcurrency int           `yaml:"score_concurrency" mapstructure:"score_concurrency"`
	CacheTTL         time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
	CallTimeout      time.Duration `yaml:"call_timeout" mapstructure:"call_timeout"`
}

type RateLimitConfig struct {
	Requests int           `yaml:"requests" mapstructure:"requests"`
	Window   time.Duration `yaml:"window" mapstructure:"window"`
}

func LoadConfig(configPath string, envPath string) (*Config, error) {
	// Load .env file first
	if err := godotenv.Load(envPath); err != nil {
		return nil, err
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	// "openai.api_key" resolves from OPENAI_API_KEY.
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	config.applyDefaults()

	return &config, nil
}

func (c *Config) applyDefaults() {
	if len(c.Discovery.MinScore) == 0 {
		c.Discovery.MinScore = map[string]int{
			"beginner":     60,
			"intermediate": 65,
			"advanced":     70,
		}
	}
	if len(c.Discovery.MinDurationSeconds) == 0 {
		c.Discovery.MinDurationSeconds = map[string]int{
			"beginner":     300,
			"intermediate": 600,
			"advanced":     900,
		}
	}
	if c.Discovery.MaxDurationSeconds == 0 {
		c.Discovery.MaxDurationSeconds = 3600
	}
	if c.Discovery.MaxCandidates == 0 {
		c.Discovery.MaxCandidates = 8
	}
	if c.Discovery.SweetSpotBonus == 0 {
		c.Discovery.SweetSpotBonus = 5
	}
	if c.Discovery.SweetSpotMinSeconds == 0 {
		c.Discovery.SweetSpotMinSeconds = 300
	}
	if c.Discovery.ScoreConcurrency == 0 {
		c.Discovery.ScoreConcurrency = 4
	}
	if c.Discovery.CacheTTL == 0 {
		c.Discovery.CacheTTL = time.Hour
	}
	if c.Discovery.CallTimeout == 0 {
		c.Discovery.CallTimeout = 8 * time.Second
	}
	if c.RateLimit.Requests == 0 {
		c.RateLimit.Requests = 10
	}
	if c.RateLimit.Window == 0 {
		c.RateLimit.Window = time.Minute
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.GeminiAI.Model == "" {
		c.GeminiAI.Model = "gemini-1.5-flash-latest"
	}
}
