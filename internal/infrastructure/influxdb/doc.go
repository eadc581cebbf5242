// Package influxdb records backend activity in InfluxDB.
//
// backend.Metered writes one point per output write and per subscription
// outcome through Client.WritePoint. Writes are non-blocking and batched
// according to batch_size and flush_interval:
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//	ctrl := backend.NewMetered(mqttCtrl, client)
//
// Connection and health check errors are returned directly; write errors
// arrive through the SetOnError callback.
package influxdb
