package marketadmin

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/marketadmin/pkg/logger"
	"github.com/dmitrymomot/marketadmin/pkg/requestid"
	"github.com/dmitrymomot/marketadmin/pkg/storage"
)

// Config is the console configuration, loaded from the environment with
// config.Load.
type Config struct {
	BaseURL   string        `env:"ADMIN_API_BASE_URL,required,notEmpty"`
	Timeout   time.Duration `env:"ADMIN_API_TIMEOUT" envDefault:"15s"`
	LoginPath string        `env:"ADMIN_LOGIN_PATH" envDefault:"/login"`
	UserAgent string        `env:"ADMIN_USER_AGENT" envDefault:"marketadmin"`

	Storage storage.Config

	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`
	Env       string `env:"APP_ENV" envDefault:"development"`
}

// NewLogger builds the process logger from cfg. Environment defaults are
// applied first, then explicit level and format overrides.
func NewLogger(cfg Config, service string) *slog.Logger {
	return logger.New(
		logger.WithEnvironment(cfg.Env, service),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithFormat(logger.Format(cfg.LogFormat)),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
}
