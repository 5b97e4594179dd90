package camunda

import (
	"context"
	"fmt"
	"time"

	"scheme-finder/internal/common/config"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

const defaultRequestTimeout = 10 * time.Second

// Client is the gateway connection shared by every job worker.
type Client struct {
	zbc            zbc.Client
	address        string
	requestTimeout time.Duration
}

// NewClient dials the gateway and waits for a topology response, so a bad
// address fails at startup rather than on the first job poll.
func NewClient(cfg config.CamundaConfig) (*Client, error) {
	zc, err := zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         cfg.BrokerAddress,
		UsePlaintextConnection: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Zeebe client: %w", err)
	}

	c := &Client{
		zbc:            zc,
		address:        cfg.BrokerAddress,
		requestTimeout: config.GetDuration(cfg.RequestTimeout),
	}
	if c.requestTimeout <= 0 {
		c.requestTimeout = defaultRequestTimeout
	}

	if err := c.HealthCheck(context.Background()); err != nil {
		_ = zc.Close()
		return nil, fmt.Errorf("failed to connect to Zeebe broker at %s: %w", cfg.BrokerAddress, err)
	}
	return c, nil
}

func (c *Client) Zeebe() zbc.Client { return c.zbc }

func (c *Client) Close() error {
	return c.zbc.Close()
}

// HealthCheck asks the gateway for its topology and reports whether any
// broker answered. Registered as the "zeebe" readiness check.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	topology, err := c.zbc.NewTopologyCommand().Send(ctx)
	if err != nil {
		return fmt.Errorf("zeebe topology request to %s failed: %w", c.address, err)
	}
	if len(topology.GetBrokers()) == 0 {
		return fmt.Errorf("zeebe gateway %s reports no brokers", c.address)
	}
	return nil
}
