package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	AI           AIConfig
	Scoring      ScoringConfig
	Invite       InviteConfig
	Session      SessionConfig
	Notification NotificationConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	LogJSON     bool
	LogDebug    bool
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration

	MigrationsDir string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

// AIConfig controls the Gemini-backed calls. A missing API key disables the
// AI paths: extraction fails fast and scoring falls back to the deterministic
// engine.
type AIConfig struct {
	GeminiAPIKey string
	Model        string
	CallTimeout  time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
}

// ScoringConfig holds the match score weights. The two weights are normalized
// at load time so they always sum to 1.
type ScoringConfig struct {
	SkillWeight     float64
	SeniorityWeight float64
	CorrectionBound int
	MaxResumeChars  int
}

type InviteConfig struct {
	TokenTTL      time.Duration
	QuestionCount int
	Workers       int
}

type SessionConfig struct {
	Timeout time.Duration
}

type NotificationConfig struct {
	BaseURL        string
	AssessmentBase string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		LogJSON:     optBool("LOG_JSON", false),
		LogDebug:    optBool("LOG_DEBUG", false),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),

		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 2)),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", time.Hour),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute),

		MigrationsDir: opt("DB_MIGRATIONS_DIR"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  optDuration("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		RefreshExpiresIn: optDuration("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}

	cfg.AI = AIConfig{
		GeminiAPIKey: opt("GEMINI_API_KEY"),
		Model:        withDefault(opt("GEMINI_MODEL"), "gemini-2.5-flash"),
		CallTimeout:  optDuration("AI_CALL_TIMEOUT", 30*time.Second),
		MaxRetries:   optInt("AI_MAX_RETRIES", 2),
		RetryBackoff: optDuration("AI_RETRY_BACKOFF", 2*time.Second),
	}

	cfg.Scoring = ScoringConfig{
		SkillWeight:     optFloat("SCORING_SKILL_WEIGHT", 0.6),
		SeniorityWeight: optFloat("SCORING_SENIORITY_WEIGHT", 0.4),
		CorrectionBound: optInt("SCORING_CORRECTION_BOUND", 10),
		MaxResumeChars:  optInt("SCORING_MAX_RESUME_CHARS", 30000),
	}
	normalizeWeights(&cfg.Scoring)

	cfg.Invite = InviteConfig{
		TokenTTL:      optDuration("INVITE_TOKEN_TTL", 72*time.Hour),
		QuestionCount: optInt("INVITE_QUESTION_COUNT", 5),
		Workers:       optInt("INVITE_WORKERS", 4),
	}

	cfg.Session = SessionConfig{
		Timeout: optDuration("SESSION_TIMEOUT", 2*time.Hour),
	}

	cfg.Notification = NotificationConfig{
		BaseURL:        opt("NOTIFICATION_BASE_URL"),
		AssessmentBase: opt("ASSESSMENT_LINK_BASE"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func normalizeWeights(s *ScoringConfig) {
	if s.SkillWeight < 0 {
		s.SkillWeight = 0
	}
	if s.SeniorityWeight < 0 {
		s.SeniorityWeight = 0
	}
	sum := s.SkillWeight + s.SeniorityWeight
	if sum <= 0 {
		s.SkillWeight = 0.6
		s.SeniorityWeight = 0.4
		return
	}
	s.SkillWeight /= sum
	s.SeniorityWeight /= sum
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func optBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func optInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func optFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func optDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
