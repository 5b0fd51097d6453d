// Package logger builds the *slog.Logger used across marketadmin.
//
// New applies functional options (format, level, output, static attributes,
// context extractors) and wraps the chosen slog handler with
// LogHandlerDecorator so values stored in a context.Context, such as the
// outbound request id, are attached to every record logged with that
// context.
//
// Attribute helpers (Error, UserID, Role, RequestID, Method, Path, Status,
// Duration, Component, Event) keep key names consistent between the API
// client, the session manager and the CLI.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "adminctl"),
//	    logger.WithLevelName(cfg.LogLevel),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.ErrorContext(ctx, "api request failed",
//	    logger.Method("GET"), logger.Path("/admin/users"), logger.Status(500))
//
// Error returns an empty attribute for nil errors, so it can be passed
// unconditionally.
package logger
