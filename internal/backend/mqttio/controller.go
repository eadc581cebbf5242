package mqttio

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Stopfield/UCR/internal/backend"
	"github.com/Stopfield/UCR/internal/infrastructure/mqtt"
)

// Broker is the subset of *mqtt.Client the controller uses.
type Broker interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
	Unsubscribe(topic string) error
}

// Logger is the logging surface of the controller.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Options configures a Controller.
type Options struct {
	Topics mqtt.Topics

	// Codec defaults to JSON.
	Codec Codec

	QoS byte

	// RequestTimeout bounds each broker call. Zero waits as long as the
	// broker client does.
	RequestTimeout time.Duration

	Logger Logger
}

// routeKey identifies one logical input subscription on a topic.
type routeKey struct {
	sub     backend.SubscriptionDescriptor
	binding uuid.UUID
}

func keyOf(req backend.InputSubscriptionRequest) routeKey {
	return routeKey{sub: req.Subscription, binding: req.BindingID}
}

// route is one input subscription sharing a broker topic.
type route struct {
	key     routeKey
	handler backend.InputHandler
}

// Controller is a backend.Controller that talks to providers over MQTT.
//
// Several subscriptions may target the same physical control; they share
// one broker subscription and each receives every event.
type Controller struct {
	broker  Broker
	topics  mqtt.Topics
	codec   Codec
	qos     byte
	timeout time.Duration

	logger   Logger
	loggerMu sync.RWMutex

	reportsMu sync.RWMutex
	inputs    backend.ProviderList
	outputs   backend.ProviderList

	routesMu sync.Mutex
	routes   map[string][]route
}

var _ backend.Controller = (*Controller)(nil)

// New creates a controller. Call Start to begin receiving reports.
func New(broker Broker, opts Options) (*Controller, error) {
	if broker == nil {
		return nil, ErrNoBroker
	}
	if opts.Codec == nil {
		opts.Codec = jsonCodec{}
	}
	if opts.Logger == nil {
		opts.Logger = noopLogger{}
	}
	return &Controller{
		broker:  broker,
		topics:  opts.Topics,
		codec:   opts.Codec,
		qos:     opts.QoS,
		timeout: opts.RequestTimeout,
		logger:  opts.Logger,
		inputs:  make(backend.ProviderList),
		outputs: make(backend.ProviderList),
		routes:  make(map[string][]route),
	}, nil
}

// SetLogger replaces the controller's logger.
func (c *Controller) SetLogger(logger Logger) {
	if logger == nil {
		logger = noopLogger{}
	}
	c.loggerMu.Lock()
	c.logger = logger
	c.loggerMu.Unlock()
}

func (c *Controller) log() Logger {
	c.loggerMu.RLock()
	defer c.loggerMu.RUnlock()
	return c.logger
}

// Start subscribes to the provider report topics.
func (c *Controller) Start() error {
	if err := c.call(func() error {
		return c.broker.Subscribe(c.topics.AllProviderReports(mqtt.ReportInput), c.qos, c.reportHandler(mqtt.ReportInput))
	}); err != nil {
		return fmt.Errorf("subscribing to input reports: %w", err)
	}
	if err := c.call(func() error {
		return c.broker.Subscribe(c.topics.AllProviderReports(mqtt.ReportOutput), c.qos, c.reportHandler(mqtt.ReportOutput))
	}); err != nil {
		return fmt.Errorf("subscribing to output reports: %w", err)
	}
	return nil
}

// Close drops every broker subscription the controller holds. The
// subscriptions are not announced to providers.
func (c *Controller) Close() error {
	c.routesMu.Lock()
	topics := make([]string, 0, len(c.routes)+2)
	for topic := range c.routes {
		topics = append(topics, topic)
	}
	c.routes = make(map[string][]route)
	c.routesMu.Unlock()

	topics = append(topics,
		c.topics.AllProviderReports(mqtt.ReportInput),
		c.topics.AllProviderReports(mqtt.ReportOutput))

	var firstErr error
	for _, topic := range topics {
		if err := c.call(func() error { return c.broker.Unsubscribe(topic) }); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("unsubscribing %s: %w", topic, err)
		}
	}
	return firstErr
}

// call runs fn, giving up after the request timeout.
func (c *Controller) call(fn func() error) error {
	if c.timeout <= 0 {
		return fn()
	}
	done := make(chan error, 1)
	go func() { done <- fn() }()

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()
	select {
	case err := <-done:
		return err
	case <-timer.C:
		return fmt.Errorf("%w after %v", ErrRequestTimeout, c.timeout)
	}
}

func (c *Controller) publish(topic string, v any) error {
	payload, err := c.codec.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %T: %w", v, err)
	}
	return c.call(func() error { return c.broker.Publish(topic, payload, c.qos, false) })
}

func (c *Controller) control(provider, handle string, req ControlRequest) bool {
	if err := c.publish(c.topics.DeviceControl(provider, handle), req); err != nil {
		c.log().Warn("control request failed",
			"op", req.Op, "provider", provider, "device_handle", handle, "error", err)
		return false
	}
	return true
}

// SubscribeInput routes events of req.Binding to req.Handler and asks the
// provider to start reporting it.
func (c *Controller) SubscribeInput(req backend.InputSubscriptionRequest) bool {
	topic := c.inputTopic(req)
	key := keyOf(req)

	c.routesMu.Lock()
	first := len(c.routes[topic]) == 0
	c.routes[topic] = append(c.routes[topic], route{key: key, handler: req.Handler})
	c.routesMu.Unlock()

	if first {
		if err := c.call(func() error { return c.broker.Subscribe(topic, c.qos, c.eventHandler(topic)) }); err != nil {
			c.log().Warn("input subscription failed", "topic", topic, "error", err)
			c.removeRoute(topic, key)
			return false
		}
	}

	binding := req.Binding
	if !c.control(req.Provider.ProviderName, req.Device.DeviceHandle, ControlRequest{
		Op:           OpSubscribeInput,
		Subscription: req.Subscription,
		Binding:      &binding,
	}) {
		if c.removeRoute(topic, key) {
			c.dropTopic(topic)
		}
		return false
	}
	return true
}

// UnsubscribeInput stops routing events to the subscription and tells the
// provider. A subscription that is not routed is already in the requested
// state; the call succeeds without touching the broker.
func (c *Controller) UnsubscribeInput(req backend.InputSubscriptionRequest) bool {
	topic := c.inputTopic(req)
	key := keyOf(req)

	c.routesMu.Lock()
	_, found := c.indexOf(topic, key)
	c.routesMu.Unlock()
	if !found {
		c.log().Debug("input route already absent",
			"topic", topic, "subscriber_id", req.Subscription.SubscriberID, "binding_id", req.BindingID)
		return true
	}

	success := true
	if c.removeRoute(topic, key) {
		success = c.dropTopic(topic)
	} else if c.subscriptionRouted(topic, req.Subscription) {
		// Another binding of the subscription still reads this control.
		return true
	}
	binding := req.Binding
	ok := c.control(req.Provider.ProviderName, req.Device.DeviceHandle, ControlRequest{
		Op:           OpUnsubscribeInput,
		Subscription: req.Subscription,
		Binding:      &binding,
	})
	return success && ok
}

// SubscribeOutput asks the provider to lease the device.
func (c *Controller) SubscribeOutput(req backend.OutputSubscriptionRequest) bool {
	return c.control(req.Provider.ProviderName, req.Device.DeviceHandle, ControlRequest{
		Op:           OpSubscribeOutput,
		Subscription: req.Subscription,
	})
}

// UnsubscribeOutput releases the lease.
func (c *Controller) UnsubscribeOutput(req backend.OutputSubscriptionRequest) bool {
	return c.control(req.Provider.ProviderName, req.Device.DeviceHandle, ControlRequest{
		Op:           OpUnsubscribeOutput,
		Subscription: req.Subscription,
	})
}

// SetOutputState publishes value to the control's output topic. Failures
// are logged.
func (c *Controller) SetOutputState(req backend.OutputSubscriptionRequest, b backend.BindingDescriptor, value int) {
	topic := c.topics.OutputState(req.Provider.ProviderName, req.Device.DeviceHandle, int(b.Type), b.Index, b.SubIndex)
	if err := c.publish(topic, OutputValue{Subscription: req.Subscription, Value: value}); err != nil {
		c.log().Warn("output write failed", "topic", topic, "value", value, "error", err)
	}
}

// GetInputList returns a snapshot of the cached input reports.
func (c *Controller) GetInputList() backend.ProviderList {
	return c.snapshot(mqtt.ReportInput)
}

// GetOutputList returns a snapshot of the cached output reports.
func (c *Controller) GetOutputList() backend.ProviderList {
	return c.snapshot(mqtt.ReportOutput)
}

func (c *Controller) snapshot(direction string) backend.ProviderList {
	c.reportsMu.RLock()
	defer c.reportsMu.RUnlock()
	src := c.list(direction)
	out := make(backend.ProviderList, len(src))
	for name, report := range src {
		out[name] = report
	}
	return out
}

// list must be called with reportsMu held.
func (c *Controller) list(direction string) backend.ProviderList {
	if direction == mqtt.ReportOutput {
		return c.outputs
	}
	return c.inputs
}

func (c *Controller) inputTopic(req backend.InputSubscriptionRequest) string {
	return c.topics.InputEvent(req.Provider.ProviderName, req.Device.DeviceHandle,
		int(req.Binding.Type), req.Binding.Index, req.Binding.SubIndex)
}

// indexOf must be called with routesMu held.
func (c *Controller) indexOf(topic string, key routeKey) (int, bool) {
	for i, r := range c.routes[topic] {
		if r.key == key {
			return i, true
		}
	}
	return 0, false
}

// removeRoute drops the first route of key on topic and reports whether
// the topic has no routes left.
func (c *Controller) removeRoute(topic string, key routeKey) bool {
	c.routesMu.Lock()
	defer c.routesMu.Unlock()
	if i, ok := c.indexOf(topic, key); ok {
		rs := c.routes[topic]
		c.routes[topic] = append(rs[:i:i], rs[i+1:]...)
	}
	if len(c.routes[topic]) == 0 {
		delete(c.routes, topic)
		return true
	}
	return false
}

func (c *Controller) subscriptionRouted(topic string, sub backend.SubscriptionDescriptor) bool {
	c.routesMu.Lock()
	defer c.routesMu.Unlock()
	for _, r := range c.routes[topic] {
		if r.key.sub == sub {
			return true
		}
	}
	return false
}

func (c *Controller) dropTopic(topic string) bool {
	if err := c.call(func() error { return c.broker.Unsubscribe(topic) }); err != nil {
		c.log().Warn("input unsubscribe failed", "topic", topic, "error", err)
		return false
	}
	return true
}

// eventHandler decodes events on topic and fans them out to its routes.
func (c *Controller) eventHandler(topic string) mqtt.MessageHandler {
	return func(_ string, payload []byte) error {
		var ev InputEvent
		if err := c.codec.Unmarshal(payload, &ev); err != nil {
			return fmt.Errorf("decoding input event on %s: %w", topic, err)
		}

		c.routesMu.Lock()
		handlers := make([]backend.InputHandler, 0, len(c.routes[topic]))
		for _, r := range c.routes[topic] {
			if r.handler != nil {
				handlers = append(handlers, r.handler)
			}
		}
		c.routesMu.Unlock()

		for _, h := range handlers {
			h(ev.Value)
		}
		return nil
	}
}

// reportHandler stores provider reports. An empty retained payload removes
// the provider.
func (c *Controller) reportHandler(direction string) mqtt.MessageHandler {
	return func(topic string, payload []byte) error {
		name, err := c.providerFromTopic(topic)
		if err != nil {
			return err
		}

		if len(payload) == 0 {
			c.reportsMu.Lock()
			delete(c.list(direction), name)
			c.reportsMu.Unlock()
			c.log().Info("provider report cleared", "provider", name, "direction", direction)
			return nil
		}

		var report backend.ProviderReport
		if err := c.codec.Unmarshal(payload, &report); err != nil {
			return fmt.Errorf("decoding %s report from %s: %w", direction, name, err)
		}
		if report.ProviderDescriptor.ProviderName == "" {
			report.ProviderDescriptor.ProviderName = name
		}

		c.reportsMu.Lock()
		c.list(direction)[report.ProviderDescriptor.ProviderName] = report
		c.reportsMu.Unlock()
		c.log().Debug("provider report updated",
			"provider", report.ProviderDescriptor.ProviderName, "direction", direction, "devices", len(report.Devices))
		return nil
	}
}

// providerFromTopic extracts the unescaped provider level of a report topic.
func (c *Controller) providerFromTopic(topic string) (string, error) {
	rest, ok := strings.CutPrefix(topic, c.topics.Prefix+"/")
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMalformedTopic, topic)
	}
	level, _, ok := strings.Cut(rest, "/")
	if !ok || level == "" {
		return "", fmt.Errorf("%w: %s", ErrMalformedTopic, topic)
	}
	name, err := url.PathUnescape(level)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrMalformedTopic, topic, err)
	}
	return name, nil
}
