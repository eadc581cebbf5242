// Package mqttio implements backend.Controller over an MQTT broker.
//
// Providers publish retained capability reports on
// {prefix}/{provider}/report/{input|output}; the controller caches them and
// serves GetInputList and GetOutputList from the cache. Subscription
// requests are published to the device's control topic, and input events
// for each subscribed binding are decoded and passed to the registered
// handler unchanged:
//
//	ctrl, err := mqttio.New(client, mqttio.Options{
//	    Topics: mqtt.Topics{Prefix: "ucr"},
//	    Codec:  codec,
//	    QoS:    1,
//	})
//	if err := ctrl.Start(); err != nil {
//	    return err
//	}
//	defer ctrl.Close()
//
// Payloads are encoded with a Codec, JSON or CBOR.
package mqttio
