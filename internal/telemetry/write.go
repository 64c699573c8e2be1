package telemetry

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// measurement is the single measurement all property points land on.
const measurement = "thing_data"

// WriteThingData records one data snapshot for a thing, one point per
// property. The write is non-blocking; points are batched and sent
// asynchronously.
func (c *Client) WriteThingData(thingID, thingKind string, data map[string]any) {
	now := time.Now()
	for _, p := range propertyPoints(c.gateway, thingID, thingKind, data, now) {
		c.writeAPI.WritePoint(p)
	}
}

// propertyPoints converts a property snapshot into InfluxDB points.
//
// Numeric and boolean values land in a typed field; strings (including
// colors) land in a "value_str" field so a property can change type
// without colliding with a previously written field type.
func propertyPoints(gateway, thingID, thingKind string, data map[string]any, ts time.Time) []*write.Point {
	points := make([]*write.Point, 0, len(data))
	for name, value := range data {
		fields := fieldsFor(value)
		if fields == nil {
			continue
		}
		points = append(points, write.NewPoint(
			measurement,
			map[string]string{
				"gateway":  gateway,
				"thing_id": thingID,
				"kind":     thingKind,
				"property": name,
			},
			fields,
			ts,
		))
	}
	return points
}

// fieldsFor maps a property value onto point fields, or nil for values
// that cannot be recorded (nil, maps, slices).
func fieldsFor(value any) map[string]any {
	switch v := value.(type) {
	case int:
		return map[string]any{"value": float64(v)}
	case int32:
		return map[string]any{"value": float64(v)}
	case int64:
		return map[string]any{"value": float64(v)}
	case float32:
		return map[string]any{"value": float64(v)}
	case float64:
		return map[string]any{"value": v}
	case bool:
		return map[string]any{"value_bool": v}
	case string:
		return map[string]any{"value_str": v}
	default:
		return nil
	}
}
