package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"scheme-finder/internal/common/config"

	"github.com/elastic/go-elasticsearch/v8"
)

type ElasticsearchClient struct {
	Client *elasticsearch.Client
}

func NewElasticsearch(cfg config.ElasticsearchConfig) (*ElasticsearchClient, error) {
	addresses := cfg.Addresses
	if len(addresses) == 0 && cfg.URL != "" {
		addresses = []string{cfg.URL}
	}

	esCfg := elasticsearch.Config{
		Addresses: addresses,
	}
	if cfg.Username != "" {
		esCfg.Username = cfg.Username
		esCfg.Password = cfg.Password
	}

	es, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	return &ElasticsearchClient{Client: es}, nil
}

func (c *ElasticsearchClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := c.Client.Ping(c.Client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping error: %s", res.Status())
	}
	return nil
}

// SchemeIndexMapping keeps the eligibility fields as keywords so the
// catalog round-trips exactly; name and description stay searchable.
const SchemeIndexMapping = `{
  "mappings": {
    "properties": {
      "id":                {"type": "keyword"},
      "name":              {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "description":       {"type": "text"},
      "benefits":          {"type": "text"},
      "minAge":            {"type": "integer"},
      "maxAge":            {"type": "integer"},
      "genderEligibility": {"type": "keyword"},
      "minEducation":      {"type": "keyword"},
      "area":              {"type": "keyword"},
      "state":             {"type": "keyword"},
      "targetGroups":      {"type": "keyword"},
      "department":        {"type": "keyword"},
      "applicationLink":   {"type": "keyword", "index": false},
      "position":          {"type": "integer"}
    }
  }
}`

// EnsureIndex creates index with SchemeIndexMapping unless it already exists.
func (c *ElasticsearchClient) EnsureIndex(ctx context.Context, index string) error {
	res, err := c.Client.Indices.Exists([]string{index}, c.Client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index %s: %w", index, err)
	}
	res.Body.Close()
	if res.StatusCode == 200 {
		return nil
	}

	res, err = c.Client.Indices.Create(
		index,
		c.Client.Indices.Create.WithContext(ctx),
		c.Client.Indices.Create.WithBody(strings.NewReader(SchemeIndexMapping)),
	)
	if err != nil {
		return fmt.Errorf("create index %s: %w", index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("create index %s: %s", index, res.Status())
	}
	return nil
}
