package utils

import (
	"go.uber.org/zap"
)

// Logger is the process-wide logger. Components receive it by injection;
// the shared instance exists so startup code has a logger before wiring.
var Logger *zap.Logger

func InitLogger() {
	var err error
	Logger, err = zap.NewProduction()
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
}

// GetLogger returns the shared logger, initializing it on first use.
func GetLogger() *zap.Logger {
	if Logger == nil {
		InitLogger()
	}
	return Logger
}
