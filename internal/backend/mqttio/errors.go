package mqttio

import "errors"

var (
	// ErrUnknownCodec is returned by NewCodec for an unsupported codec name.
	ErrUnknownCodec = errors.New("mqttio: unknown codec")

	// ErrRequestTimeout is returned when a broker call exceeds the request timeout.
	ErrRequestTimeout = errors.New("mqttio: request timed out")

	// ErrMalformedTopic is returned for a report topic outside the prefix.
	ErrMalformedTopic = errors.New("mqttio: malformed topic")

	// ErrNoBroker is returned by New without a broker.
	ErrNoBroker = errors.New("mqttio: broker is required")
)
