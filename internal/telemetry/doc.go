// Package telemetry records thing property history in InfluxDB.
//
// Every published data snapshot becomes one point per property on the
// "thing_data" measurement, tagged with the gateway, thing id, thing kind
// and property name. Writes are non-blocking and batched by the InfluxDB
// client; asynchronous write failures surface through an error callback.
//
// Telemetry is optional. When disabled in config the gateway simply runs
// without a sink.
package telemetry
