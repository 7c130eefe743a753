package search

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/revuehub/api/internal/domain/entity"
)

// TitleIndex mirrors catalog titles into Elasticsearch for name search. All
// methods are nil-safe: with no client configured, indexing is a no-op and
// Search reports itself unavailable so callers fall back to SQL.
type TitleIndex struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewTitleIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *TitleIndex {
	return &TitleIndex{ES: es, Index: index, Logger: logger}
}

// Enabled reports whether a search backend is configured.
func (i *TitleIndex) Enabled() bool {
	return i != nil && i.ES != nil && i.Index != ""
}

// Put indexes the title document. Failures are logged, not propagated: the
// catalog write already succeeded and search lag is acceptable.
func (i *TitleIndex) Put(ctx context.Context, t *entity.Title) {
	if !i.Enabled() {
		return
	}
	doc := map[string]any{
		"id":   t.ID,
		"name": t.Name,
		"year": t.Year,
	}
	if t.Category != nil {
		doc["category"] = t.Category.Slug
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      i.Index,
		DocumentID: strconv.FormatInt(t.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, i.ES)
	if err != nil {
		if i.Logger != nil {
			i.Logger.WithError(err).WithField("title_id", t.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && i.Logger != nil {
		i.Logger.WithField("status", res.Status()).WithField("title_id", t.ID).Warn("es index response error")
	}
}

// Remove drops the title document.
func (i *TitleIndex) Remove(ctx context.Context, titleID int64) {
	if !i.Enabled() {
		return
	}
	req := esapi.DeleteRequest{Index: i.Index, DocumentID: strconv.FormatInt(titleID, 10)}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, i.ES)
	if err != nil {
		if i.Logger != nil {
			i.Logger.WithError(err).WithField("title_id", titleID).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search returns ids of titles whose name matches q.
func (i *TitleIndex) Search(ctx context.Context, q string, size int) ([]int64, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"match": map[string]any{
				"name": q,
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := i.ES.Search(
		i.ES.Search.WithContext(c),
		i.ES.Search.WithIndex(i.Index),
		i.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source struct {
					ID int64 `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.Source.ID)
	}
	return ids, nil
}

// NewClient builds an Elasticsearch client, or returns nil when no addresses
// are configured.
func NewClient(addrs []string, user, pass string) (*elasticsearch.Client, error) {
	if len(addrs) == 0 {
		return nil, nil
	}
	return elasticsearch.NewClient(elasticsearch.Config{
		Addresses: addrs,
		Username:  user,
		Password:  pass,
	})
}
