// Package recorder hands the outcome of every request to the optional
// sinks: the SQLite history, an MQTT result topic and InfluxDB metrics.
package recorder
