// Package influxdb provides InfluxDB connectivity for knxlink request metrics.
//
// It wraps the official influxdb-client-go v2 library for connection
// management and batched writes. Connect pings the server once before
// returning.
//
// Every finished request is written as one point:
//
//	knxlink_request,action=read,datapoint=dpst-9-1,group_address=1/2/3,status=SUCCESS duration_ms=18i,exit_code=0i,packets=1i
//
// # Usage
//
//	client, err := influxdb.Connect(ctx, cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.WriteRequestMetric(influxdb.RequestMetric{Action: "read", GroupAddress: "1/2/3"})
//
// Writes are non-blocking; Close flushes whatever is still buffered.
package influxdb
