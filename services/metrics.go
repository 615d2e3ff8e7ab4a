package services

import (
	"context"
	"time"

	awspkg "github.com/Lari-oliv/olive-beauty/pkg/aws"
)

var serviceDims = map[string]string{"Service": "olive-beauty"}

// recordCount emits a counter without blocking the request.
func recordCount(m awspkg.MetricsRecorder, name string) {
	if m == nil || !m.IsEnabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = m.RecordCount(ctx, name, serviceDims)
	}()
}

func recordValue(m awspkg.MetricsRecorder, name string, value float64) {
	if m == nil || !m.IsEnabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = m.RecordValue(ctx, name, value, serviceDims)
	}()
}
