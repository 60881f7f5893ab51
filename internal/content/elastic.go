package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"ai-readiness-funnel/internal/common/logger"

	"github.com/elastic/go-elasticsearch/v8"
)

const DefaultIndex = "site-content"

var ErrSearchFailed = errors.New("SEARCH_QUERY_FAILED")

// ElasticSearcher queries an Elasticsearch index holding the site content.
// When a query fails it answers from the fallback searcher instead.
type ElasticSearcher struct {
	client   *elasticsearch.Client
	index    string
	fallback Searcher
	logger   logger.Logger
}

func NewElasticSearcher(client *elasticsearch.Client, index string, fallback Searcher, log logger.Logger) *ElasticSearcher {
	if index == "" {
		index = DefaultIndex
	}
	return &ElasticSearcher{
		client:   client,
		index:    index,
		fallback: fallback,
		logger:   log.WithFields(map[string]interface{}{"component": "content-search", "index": index}),
	}
}

// IndexAll bulk-indexes items using their IDs as document IDs.
func (e *ElasticSearcher) IndexAll(ctx context.Context, items []Item) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, item := range items {
		meta := map[string]interface{}{"index": map[string]interface{}{"_index": e.index, "_id": item.ID}}
		if err := enc.Encode(meta); err != nil {
			return err
		}
		if err := enc.Encode(item); err != nil {
			return err
		}
	}

	res, err := e.client.Bulk(
		bytes.NewReader(buf.Bytes()),
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

	var body struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return fmt.Errorf("bulk index: decode response: %w", err)
	}
	if body.Errors {
		return errors.New("bulk index: one or more documents failed")
	}

	e.logger.Info("site content indexed", map[string]interface{}{"documents": len(items)})
	return nil
}

func (e *ElasticSearcher) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if len(tokenize(query)) == 0 {
		return []Result{}, nil
	}
	limit = normalizeLimit(limit)

	results, err := e.search(ctx, query, limit)
	if err == nil {
		return results, nil
	}
	if e.fallback == nil {
		return nil, err
	}
	e.logger.Warn("elasticsearch query failed, using in-memory search", map[string]interface{}{
		"error": err.Error(),
	})
	return e.fallback.Search(ctx, query, limit)
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string  `json:"_id"`
			Score  float64 `json:"_score"`
			Source Item    `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (e *ElasticSearcher) search(ctx context.Context, query string, limit int) ([]Result, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"title^3", "tags^2", "summary"},
			},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	res, err := e.client.Search(
		e.client.Search.WithContext(ctx),
		e.client.Search.WithIndex(e.index),
		e.client.Search.WithBody(bytes.NewReader(payload)),
		e.client.Search.WithSize(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("%w: %s: %s", ErrSearchFailed, res.Status(), msg)
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrSearchFailed, err)
	}

	results := make([]Result, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		item := hit.Source
		if item.ID == "" {
			item.ID = hit.ID
		}
		results = append(results, Result{Item: item, Score: hit.Score})
	}
	return results, nil
}
