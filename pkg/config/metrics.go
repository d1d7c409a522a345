package config

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "dagr.config"

type lookupOutcome string

const (
	outcomeFound    lookupOutcome = "found"
	outcomeAbsent   lookupOutcome = "absent"
	outcomeMissing  lookupOutcome = "missing"
	outcomeMismatch lookupOutcome = "mismatch"
	outcomeInvalid  lookupOutcome = "unsupported"
)

type resolutionSource string

const (
	sourceOverride   resolutionSource = "override"
	sourceBinDir     resolutionSource = "bin_dir"
	sourceSearchPath resolutionSource = "search_path"
	sourceNotFound   resolutionSource = "not_found"
)

type configMetrics struct {
	initOnce sync.Once

	lookups     metric.Int64Counter
	resolutions metric.Int64Counter
}

var metricsContainer configMetrics

func metricsRecorder() *configMetrics {
	metricsContainer.initOnce.Do(func() {
		meter := otel.GetMeterProvider().Meter(meterName)
		metricsContainer.lookups = createConfigCounter(
			meter,
			"dagr_config_lookups_total",
			"Typed configuration lookups by kind and outcome",
		)
		metricsContainer.resolutions = createConfigCounter(
			meter,
			"dagr_config_executable_resolutions_total",
			"Executable resolutions by the layer that produced the path",
		)
	})
	return &metricsContainer
}

func createConfigCounter(meter metric.Meter, name string, description string) metric.Int64Counter {
	counter, err := meter.Int64Counter(
		name,
		metric.WithDescription(description),
		metric.WithUnit("1"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create config counter %s: %w", name, err))
	}
	return counter
}

func recordLookup(ctx context.Context, kind Kind, outcome lookupOutcome) {
	recorder := metricsRecorder()
	if recorder.lookups == nil {
		return
	}
	recorder.lookups.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("kind", kind.String()),
			attribute.String("outcome", string(outcome)),
		),
	)
}

func recordResolution(ctx context.Context, source resolutionSource) {
	recorder := metricsRecorder()
	if recorder.resolutions == nil {
		return
	}
	recorder.resolutions.Add(ctx, 1,
		metric.WithAttributes(attribute.String("source", string(source))),
	)
}
