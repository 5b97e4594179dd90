package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"

	"scheme-finder/internal/models"
)

// maxIndexedSchemes bounds a single search page; the catalog is small and
// static so no scrolling is done.
const maxIndexedSchemes = 1000

type schemeDoc struct {
	models.Scheme
	Position int `json:"position"`
}

// ElasticsearchSource reads the catalog from a search index written by Index.
type ElasticsearchSource struct {
	client *elasticsearch.Client
	index  string
}

func NewElasticsearchSource(client *elasticsearch.Client, index string) *ElasticsearchSource {
	return &ElasticsearchSource{client: client, index: index}
}

func (e *ElasticsearchSource) Name() string { return "elasticsearch" }

func (e *ElasticsearchSource) Load(ctx context.Context) ([]models.Scheme, error) {
	query := map[string]interface{}{
		"size":  maxIndexedSchemes,
		"query": map[string]interface{}{"match_all": map[string]interface{}{}},
		"sort":  []interface{}{map[string]interface{}{"position": "asc"}},
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	res, err := e.client.Search(
		e.client.Search.WithContext(ctx),
		e.client.Search.WithIndex(e.index),
		e.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", e.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search %s: %s", e.index, res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source schemeDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := make([]models.Scheme, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source.Scheme)
	}
	return out, nil
}

// Index writes schemes with a bulk request, keeping slice order in the
// position field, then deletes documents whose id is not in schemes. Both
// steps refresh the index so Load sees the result immediately.
func (e *ElasticsearchSource) Index(ctx context.Context, schemes []models.Scheme) error {
	if len(schemes) == 0 {
		return errors.New("refusing to index an empty catalog")
	}
	if err := e.bulkIndex(ctx, schemes); err != nil {
		return err
	}

	ids := make([]string, len(schemes))
	for i, s := range schemes {
		ids[i] = s.ID
	}
	return e.pruneExcept(ctx, ids)
}

func (e *ElasticsearchSource) bulkIndex(ctx context.Context, schemes []models.Scheme) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for i, s := range schemes {
		meta := map[string]interface{}{"index": map[string]interface{}{"_index": e.index, "_id": s.ID}}
		if err := enc.Encode(meta); err != nil {
			return err
		}
		if err := enc.Encode(schemeDoc{Scheme: s, Position: i}); err != nil {
			return err
		}
	}

	res, err := e.client.Bulk(
		strings.NewReader(buf.String()),
		e.client.Bulk.WithContext(ctx),
		e.client.Bulk.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("bulk index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("bulk index: %s", res.Status())
	}

	var summary struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&summary); err != nil {
		return fmt.Errorf("decode bulk response: %w", err)
	}
	if summary.Errors {
		return fmt.Errorf("bulk index: one or more documents were rejected")
	}
	return nil
}

func (e *ElasticsearchSource) pruneExcept(ctx context.Context, ids []string) error {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must_not": map[string]interface{}{
					"ids": map[string]interface{}{"values": ids},
				},
			},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return err
	}

	res, err := e.client.DeleteByQuery(
		[]string{e.index},
		&buf,
		e.client.DeleteByQuery.WithContext(ctx),
		e.client.DeleteByQuery.WithRefresh(true),
		e.client.DeleteByQuery.WithConflicts("proceed"),
	)
	if err != nil {
		return fmt.Errorf("delete dropped schemes: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("delete dropped schemes: %s", res.Status())
	}
	return nil
}
