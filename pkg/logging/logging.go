// Package logging configures the process-wide zap logger.
package logging

import (
	"go.uber.org/zap"
)

// Logger is the global logger instance.
var Logger *zap.Logger

// Setup builds the global logger. In debug mode it uses the development
// config (console encoder, Debug level); otherwise the production config.
func Setup(debug bool, appName, appVersion string) error {
	var err error
	var cfg zap.Config

	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}

	Logger, err = cfg.Build()
	if err != nil {
		Logger = zap.NewExample()
		return err
	}

	zap.ReplaceGlobals(Logger)
	return nil
}

// Or returns logger if non-nil and a no-op logger otherwise. Library
// packages use it so a nil logger is never dereferenced.
func Or(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
