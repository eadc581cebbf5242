// Package logging builds the structured logger shared by ucrcore packages.
//
// It wraps log/slog with JSON or text output, level filtering and the
// default fields service and version on every entry:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// The returned *Logger satisfies the small Logger interfaces declared by
// the device, profile, mqttio and api packages:
//
//	logger := logging.New(cfg.Logging, version)
//	registry.SetLogger(logger.With("component", "device"))
package logging
