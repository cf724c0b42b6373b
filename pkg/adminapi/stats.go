package adminapi

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/me/adminctl/pkg/model"
)

// StatsPeriod selects a breakdown window for period statistics.
type StatsPeriod string

const (
	StatsDaily   StatsPeriod = "diarias"
	StatsWeekly  StatsPeriod = "semanales"
	StatsMonthly StatsPeriod = "mensuales"
)

// Stats fetches the aggregate account counts.
func (c *Client) Stats(ctx context.Context) (*model.Statistics, error) {
	body, err := c.do(ctx, "GET", "/estadisticas", nil, true)
	if err != nil {
		return nil, err
	}
	return unmarshalData[*model.Statistics](body)
}

// PeriodStats fetches the per-period registration breakdown. The payload
// shape varies by deployment, so the data field is returned raw.
func (c *Client) PeriodStats(ctx context.Context, period StatsPeriod) (json.RawMessage, error) {
	switch period {
	case StatsDaily, StatsWeekly, StatsMonthly:
	default:
		return nil, fmt.Errorf("unknown statistics period %q", period)
	}

	body, err := c.do(ctx, "GET", "/estadisticas/"+string(period), nil, true)
	if err != nil {
		return nil, err
	}
	return unmarshalData[json.RawMessage](body)
}
