package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrMissingCredential is returned when a required API key or token is not set.
var ErrMissingCredential = errors.New("missing credential")

// News source kinds.
const (
	SourceNewsAPI = "newsapi"
	SourceRSS     = "rss"
)

// LLM providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Generation modes.
const (
	ModeNews  = "news"
	ModeTopic = "topic"
)

// News configures the headline source.
type News struct {
	Source      string
	APIKey      string
	Endpoint    string
	Language    string
	SortBy      string
	PageSize    int
	Count       int
	RSSFeeds    []string
	HTTPTimeout time.Duration
}

// LLM configures the text-generation backend.
type LLM struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxRetries  int
	MaxTokens   int
}

// Persona configures the prompt voice.
type Persona struct {
	Name     string
	Hashtags string
	Mode     string
}

// X holds posting backend credentials.
type X struct {
	Endpoint       string
	ConsumerKey    string
	ConsumerSecret string
	AccessToken    string
	AccessSecret   string
	MaxLength      int
	DryRun         bool
}

// Schedule configures the run loop.
type Schedule struct {
	Interval time.Duration
	Cron     string
	RunOnce  bool
}

// Bot is the full configuration of the posting bot.
type Bot struct {
	News         News
	LLM          LLM
	Persona      Persona
	X            X
	Schedule     Schedule
	StatusAddr   string
	KafkaBrokers []string
	KafkaTopic   string
}

// LoadBot builds a Bot config from environment variables.
func LoadBot() (*Bot, error) {
	provider := strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenAI))

	c := &Bot{
		News: News{
			Source:      strings.ToLower(getEnv("NEWS_SOURCE", SourceNewsAPI)),
			APIKey:      getEnv("NEWS_API_KEY", ""),
			Endpoint:    getEnv("NEWS_API_ENDPOINT", "https://newsapi.org/v2/top-headlines"),
			Language:    getEnv("NEWS_LANGUAGE", "en"),
			SortBy:      getEnv("NEWS_SORT_BY", "popularity"),
			PageSize:    getInt("NEWS_PAGE_SIZE", 20),
			Count:       getInt("NEWS_COUNT", 5),
			RSSFeeds:    splitAndTrim(getEnv("NEWS_RSS_FEEDS", "")),
			HTTPTimeout: getDuration("NEWS_HTTP_TIMEOUT", "30s"),
		},
		LLM: LLM{
			Provider:    provider,
			APIKey:      firstEnv("LLM_API_KEY", defaultKeyVar(provider)),
			BaseURL:     getEnv("LLM_BASE_URL", defaultBaseURL(provider)),
			Model:       getEnv("LLM_MODEL", defaultModel(provider)),
			Temperature: getFloat("LLM_TEMPERATURE", 0.6),
			MaxRetries:  getInt("LLM_MAX_RETRIES", 2),
			MaxTokens:   getInt("LLM_MAX_TOKENS", 512),
		},
		Persona: Persona{
			Name:     getEnv("PERSONA_NAME", "Zappo"),
			Hashtags: getEnv("PERSONA_HASHTAGS", "#Zappo_bot #Zappo"),
			Mode:     strings.ToLower(getEnv("GENERATION_MODE", ModeNews)),
		},
		X: X{
			Endpoint:       getEnv("X_API_ENDPOINT", "https://api.twitter.com"),
			ConsumerKey:    firstEnv("X_API_KEY", "TWITTER_API_KEY"),
			ConsumerSecret: firstEnv("X_API_SECRET", "TWITTER_API_SECRET"),
			AccessToken:    firstEnv("X_ACCESS_TOKEN", "TWITTER_ACCESS_TOKEN"),
			AccessSecret:   firstEnv("X_ACCESS_SECRET", "TWITTER_ACCESS_SECRET"),
			MaxLength:      getInt("POST_MAX_LENGTH", 280),
			DryRun:         getBool("DRY_RUN", false),
		},
		Schedule: Schedule{
			Interval: getDuration("SCHEDULE_INTERVAL", "40m"),
			Cron:     getEnv("SCHEDULE_CRON", ""),
			RunOnce:  getBool("RUN_ONCE", false),
		},
		StatusAddr:   getEnv("STATUS_ADDR", ""),
		KafkaBrokers: splitAndTrim(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "bot_runs"),
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Bot) validate() error {
	switch c.News.Source {
	case SourceNewsAPI:
		if c.News.APIKey == "" {
			return fmt.Errorf("%w: NEWS_API_KEY", ErrMissingCredential)
		}
	case SourceRSS:
		if len(c.News.RSSFeeds) == 0 {
			return fmt.Errorf("NEWS_RSS_FEEDS must contain at least one feed")
		}
	default:
		return fmt.Errorf("NEWS_SOURCE must be %q or %q", SourceNewsAPI, SourceRSS)
	}
	if c.News.Count <= 0 {
		return fmt.Errorf("NEWS_COUNT must be positive")
	}
	if c.News.PageSize <= 0 {
		return fmt.Errorf("NEWS_PAGE_SIZE must be positive")
	}

	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("LLM_PROVIDER must be %q or %q", ProviderOpenAI, ProviderAnthropic)
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("%w: LLM_API_KEY or %s", ErrMissingCredential, defaultKeyVar(c.LLM.Provider))
	}
	if c.LLM.MaxRetries < 0 {
		return fmt.Errorf("LLM_MAX_RETRIES cannot be negative")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("LLM_TEMPERATURE must be between 0 and 2")
	}

	switch c.Persona.Mode {
	case ModeNews, ModeTopic:
	default:
		return fmt.Errorf("GENERATION_MODE must be %q or %q", ModeNews, ModeTopic)
	}

	if !c.X.DryRun {
		creds := []struct{ name, value string }{
			{"X_API_KEY", c.X.ConsumerKey},
			{"X_API_SECRET", c.X.ConsumerSecret},
			{"X_ACCESS_TOKEN", c.X.AccessToken},
			{"X_ACCESS_SECRET", c.X.AccessSecret},
		}
		for _, cred := range creds {
			if cred.value == "" {
				return fmt.Errorf("%w: %s", ErrMissingCredential, cred.name)
			}
		}
	}
	if c.X.MaxLength <= 3 {
		return fmt.Errorf("POST_MAX_LENGTH must be greater than 3")
	}

	if c.Schedule.Interval <= 0 && c.Schedule.Cron == "" {
		return fmt.Errorf("SCHEDULE_INTERVAL must be positive")
	}

	return nil
}

func defaultKeyVar(provider string) string {
	if provider == ProviderAnthropic {
		return "ANTHROPIC_API_KEY"
	}
	return "GROQ_API_KEY"
}

func defaultBaseURL(provider string) string {
	if provider == ProviderAnthropic {
		return ""
	}
	return "https://api.groq.com/openai/v1/"
}

func defaultModel(provider string) string {
	if provider == ProviderAnthropic {
		return "claude-3-5-haiku-latest"
	}
	return "llama-3.1-70b-versatile"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// firstEnv returns the first non-empty value among keys.
func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := getEnv(key, ""); v != "" {
			return v
		}
	}
	return ""
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key, fallback string) time.Duration {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		fd, ferr := time.ParseDuration(fallback)
		if ferr != nil {
			panic(fmt.Sprintf("invalid fallback duration %q: %v", fallback, ferr))
		}
		return fd
	}
	return d
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
