// Package logger builds the structured loggers shared by the tools and
// the server.
package logger

import (
	"go.uber.org/zap"
)

// New returns a production logger tagged with the tool name.
func New(tool string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.With(zap.String("tool", tool)), nil
}

// NewDevelopment returns a human-readable logger for interactive runs.
func NewDevelopment(tool string) (*zap.Logger, error) {
	l, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return l.With(zap.String("tool", tool)), nil
}
