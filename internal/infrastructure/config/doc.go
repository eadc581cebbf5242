// Package config handles loading and validating ucrcore configuration.
//
// Values come from built-in defaults, then the YAML file, then UCR_*
// environment variables. Validate reports every problem in one error.
//
// Credentials (MQTT password, InfluxDB token) should be supplied through
// the environment rather than the file.
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Backend.TopicPrefix)
package config
