//go:build integration

package mqtt

import (
	"testing"
	"time"
)

// These tests need a broker at 127.0.0.1:1883:
//
//	go test -tags=integration -count=1 ./internal/infrastructure/mqtt/...

func TestIntegration_PublishSubscribe(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.Username = ""
	cfg.Auth.Password = ""
	cfg.Broker.ClientID = "ucr-integration-test"

	topics := Topics{Prefix: "ucr-it"}
	c, err := Connect(cfg, topics)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer c.Close()

	received := make(chan string, 1)
	filter := topics.InputEvent("vjoy", "+", 0, 1, 0)
	if err := c.Subscribe(filter, 1, func(topic string, payload []byte) error {
		received <- string(payload)
		return nil
	}); err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	if !c.HasSubscription(filter) {
		t.Fatalf("subscription %q not tracked", filter)
	}

	if err := c.Publish(topics.InputEvent("vjoy", "1", 0, 1, 0), []byte("512"), 1, false); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	select {
	case got := <-received:
		if got != "512" {
			t.Errorf("payload = %q, want 512", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
	}

	if err := c.Unsubscribe(filter); err != nil {
		t.Errorf("Unsubscribe() error = %v", err)
	}
}
