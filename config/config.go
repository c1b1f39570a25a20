package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

var defaultURLs = []string{
	"https://www.tuni.fi/sportuni/omasivu/?page=selection&lang=en&type=3&area=2&week=0",
	"https://www.tuni.fi/sportuni/omasivu/?page=selection&lang=en&type=3&area=2&week=1",
}

var defaultSearchTexts = []string{
	"16:00 Badminton",
	"16:30 Badminton",
	"17:00 Badminton",
	"17:30 Badminton",
	"18:00 Badminton",
	"18:30 Badminton",
	"19:00 Badminton",
	"19:30 Badminton",
	"20:00 Badminton",
	"20:30 Badminton",
	"21:00 Badminton",
	"21:30 Badminton",
}

const (
	// Weekend opening hours differ from weekdays; only these slot times are
	// actually orderable on Sat/Sun. Overridable via WEEKEND_SLOT_TIMES.
	defaultWeekendSlotTimes = "16:00,16:30,17:00,18:00"

	defaultStateFile     = "notification-state.json"
	defaultCheckInterval = 5 * time.Minute
	defaultScrapeBudget  = 8 * time.Minute
)

// Config is built once from the environment and not mutated afterwards.
type Config struct {
	URLs             []string
	SearchTexts      []string
	WeekendSlotTimes map[string]bool

	StateBackend  string // "file" (default) or "redis"
	StateFile     string
	RedisAddr     string
	RedisPassword string

	EmailFrom string
	EmailTo   []string
	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string

	TelegramToken   string
	TelegramChatIDs []int64

	CheckInterval time.Duration
	ScrapeBudget  time.Duration
}

// Load reads the process environment. Every missing required variable is
// reported by name in a single error so a broken deployment fails loudly
// instead of half-working.
func Load() (*Config, error) {
	cfg := &Config{
		URLs:             defaultURLs,
		SearchTexts:      defaultSearchTexts,
		WeekendSlotTimes: parseTimeSet(envOr("WEEKEND_SLOT_TIMES", defaultWeekendSlotTimes)),
		StateBackend:     envOr("STATE_BACKEND", "file"),
		StateFile:        envOr("STATE_FILE", defaultStateFile),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		EmailFrom:        os.Getenv("EMAIL_FROM"),
		EmailTo:          splitList(os.Getenv("EMAIL_TO")),
		SMTPHost:         os.Getenv("SMTP_SERVER"),
		SMTPUser:         os.Getenv("SMTP_USER"),
		SMTPPass:         os.Getenv("SMTP_PASS"),
		TelegramToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		CheckInterval:    defaultCheckInterval,
		ScrapeBudget:     defaultScrapeBudget,
	}

	if raw := os.Getenv("SOURCE_URLS"); raw != "" {
		cfg.URLs = splitList(raw)
	}
	if raw := os.Getenv("SEARCH_TEXTS"); raw != "" {
		cfg.SearchTexts = splitList(raw)
	}
	if raw := os.Getenv("CHECK_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid CHECK_INTERVAL %q: %w", raw, err)
		}
		cfg.CheckInterval = d
	}
	if raw := os.Getenv("SCRAPE_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SCRAPE_TIMEOUT %q: %w", raw, err)
		}
		cfg.ScrapeBudget = d
	}

	cfg.SMTPPort, _ = strconv.Atoi(os.Getenv("SMTP_PORT"))

	for _, id := range splitList(os.Getenv("TELEGRAM_CHAT_IDS")) {
		chatID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_IDS entry %q: %w", id, err)
		}
		cfg.TelegramChatIDs = append(cfg.TelegramChatIDs, chatID)
	}

	var missing []string
	if cfg.EmailFrom == "" {
		missing = append(missing, "EMAIL_FROM")
	}
	if len(cfg.EmailTo) == 0 {
		missing = append(missing, "EMAIL_TO")
	}
	if cfg.SMTPHost == "" {
		missing = append(missing, "SMTP_SERVER")
	}
	if cfg.SMTPPort == 0 {
		missing = append(missing, "SMTP_PORT")
	}
	if cfg.SMTPUser == "" {
		missing = append(missing, "SMTP_USER")
	}
	if cfg.SMTPPass == "" {
		missing = append(missing, "SMTP_PASS")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}

	if cfg.StateBackend == "redis" && cfg.RedisAddr == "" {
		return nil, fmt.Errorf("missing environment variables: REDIS_ADDR (required with STATE_BACKEND=redis)")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitList splits on commas and semicolons, trimming blanks.
func splitList(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseTimeSet(raw string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range splitList(raw) {
		set[t] = true
	}
	return set
}
