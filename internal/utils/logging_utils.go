package utils

import (
	"context"
	"os"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

func GenerateTraceId() string {
	return uuid.New().String()
}

func logEntry(entry *log.Entry, level, message string) {
	switch level {
	case "debug":
		entry.Debug(message)
	case "info":
		entry.Info(message)
	case "warn":
		entry.Warn(message)
	case "error":
		entry.Error(message)
	case "fatal":
		entry.Fatal(message)
	case "panic":
		entry.Panic(message)
	default:
		entry.Info(message)
	}
}

func serviceName() string {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "server-sst"
	}
	return service
}

func LogMessage(level, message string) {
	entry := log.WithFields(log.Fields{
		"service": serviceName(),
	})

	logEntry(entry, level, message)
}

// LogMessageWithFields logs a message enriched with the request's trace id
// when present in the context.
func LogMessageWithFields(ctx context.Context, level, message string) {
	fields := log.Fields{
		"service": serviceName(),
	}

	if traceId, ok := ctx.Value(TraceIdKey.String()).(string); ok {
		fields["traceId"] = traceId
	}

	logEntry(log.WithFields(fields), level, message)
}

// LogMessageWithFieldsAndError logs a message plus the underlying error, for
// failures whose detail must never reach the client.
func LogMessageWithFieldsAndError(ctx context.Context, level, message string, err error) {
	LogMessageWithFields(ctx, level, message+": "+err.Error())
}
