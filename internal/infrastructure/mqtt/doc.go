// Package mqtt provides the broker connection used to reach device providers.
//
// Providers publish their capability reports and input events on the
// broker, and receive subscription requests and output writes from the
// core. The Client wraps paho.mqtt.golang with:
//   - auto-reconnect with subscriptions restored after each reconnect
//   - a retained online/offline status with Last Will for crash detection
//   - handler panic recovery
//
// Topic names are built with Topics so every component agrees on the
// layout:
//
//	{prefix}/{provider}/report/{input|output}
//	{prefix}/{provider}/{handle}/control
//	{prefix}/{provider}/{handle}/input/{type}/{index}/{sub}
//	{prefix}/{provider}/{handle}/output/{type}/{index}/{sub}
//	{prefix}/core/status
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT, mqtt.Topics{Prefix: "ucr"})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	err = client.Subscribe(topics.AllProviderReports("input"), 1,
//	    func(topic string, payload []byte) error {
//	        return decode(payload)
//	    })
package mqtt
