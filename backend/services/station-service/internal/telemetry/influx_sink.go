package telemetry

import (
	"context"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/juju/errors"

	"evstation/backend/services/station-service/internal/events"
)

const measurement = "station_metrics"

type pointWriter interface {
	WritePoint(ctx context.Context, point ...*write.Point) error
}

// InfluxSink records a station metrics point for every owner action.
type InfluxSink struct {
	client influxdb2.Client
	writer pointWriter
}

// NewInfluxClient connects to InfluxDB v2 and verifies the server is healthy.
func NewInfluxClient(ctx context.Context, url, token string) (influxdb2.Client, error) {
	client := influxdb2.NewClient(url, token)
	if _, err := client.Health(ctx); err != nil {
		client.Close()
		return nil, errors.Annotatef(err, "influxdb health check %s", url)
	}
	return client, nil
}

// NewInfluxSink writes to org/bucket through a blocking write API.
func NewInfluxSink(client influxdb2.Client, org, bucket string) *InfluxSink {
	return &InfluxSink{
		client: client,
		writer: client.WriteAPIBlocking(org, bucket),
	}
}

// Publish writes one point tagged with the action and session.
func (s *InfluxSink) Publish(ctx context.Context, event events.Event) error {
	return s.writer.WritePoint(ctx, StationPoint(event))
}

// Close releases the client.
func (s *InfluxSink) Close() {
	if s.client != nil {
		s.client.Close()
	}
}

// StationPoint converts event into an Influx point.
func StationPoint(event events.Event) *write.Point {
	station := event.Station
	return write.NewPoint(
		measurement,
		map[string]string{
			"kind":       string(event.Kind),
			"session_id": event.Session.ID,
		},
		map[string]interface{}{
			"grid_load":           station.GridLoad,
			"load_limit":          station.LoadLimit,
			"power_consumed":      station.PowerConsumed,
			"chargers_in_use":     station.ChargersInUse,
			"chargers_available":  station.ChargersAvailable,
			"session_power":       event.Session.Power,
			"session_ai_disabled": event.Session.AIDisabled,
		},
		event.At,
	)
}
