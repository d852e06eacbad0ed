package collector

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v3/host"
	"go.uber.org/zap"
)

// Collect runs the collectors one after another, hands every record to sink
// and returns the snapshot. A failing category does not stop the others;
// its error is joined into the returned error next to the partial result.
func Collect(ctx context.Context, collectors []*Collector, sink Sink) (*Inventory, error) {
	inv := &Inventory{
		ID:          uuid.NewString(),
		CollectedAt: time.Now().UTC(),
		Records:     make(map[Category][]Record, len(collectors)),
	}
	inv.Hostname, inv.Platform = hostFacts(ctx)

	var errs []error
	for _, c := range collectors {
		records, err := c.Fetch(ctx)
		if err != nil {
			c.logger.Error("failed to query inventory", zap.String("command", c.profile.Command), zap.Error(err))
			errs = append(errs, err)
			continue
		}

		for _, rec := range records {
			if sink != nil {
				sink.Emit(rec)
			}
		}
		inv.Records[c.Category()] = records
	}

	return inv, errors.Join(errs...)
}

func hostFacts(ctx context.Context) (hostname, platform string) {
	info, err := host.InfoWithContext(ctx)
	if err == nil {
		platform = info.Platform
		if info.PlatformVersion != "" {
			platform += " " + info.PlatformVersion
		}
		if info.Hostname != "" {
			return info.Hostname, platform
		}
	}
	hostname, _ = os.Hostname()
	return hostname, platform
}
