package blob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
)

// Elasticsearch stores the blob as the "value" field of a single document
// whose id is the key.
type Elasticsearch struct {
	client *elasticsearch.Client
	index  string
	key    string
}

type blobDocument struct {
	Value string `json:"value"`
}

type getResponse struct {
	Found  bool         `json:"found"`
	Source blobDocument `json:"_source"`
}

func NewElasticsearch(client *elasticsearch.Client, index, key string) *Elasticsearch {
	return &Elasticsearch{client: client, index: index, key: key}
}

func (e *Elasticsearch) Read(ctx context.Context) ([]byte, error) {
	res, err := e.client.Get(e.index, e.key, e.client.Get.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("elasticsearch get: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch get: %s: %s", res.Status(), body)
	}

	var doc getResponse
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode elasticsearch response: %w", err)
	}
	if !doc.Found {
		return nil, ErrNotFound
	}
	return []byte(doc.Source.Value), nil
}

func (e *Elasticsearch) Write(ctx context.Context, data []byte) error {
	body, err := json.Marshal(blobDocument{Value: string(data)})
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	res, err := e.client.Index(
		e.index,
		bytes.NewReader(body),
		e.client.Index.WithDocumentID(e.key),
		e.client.Index.WithRefresh("true"),
		e.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return fmt.Errorf("elasticsearch index: %s: %s", res.Status(), msg)
	}
	return nil
}

func (e *Elasticsearch) Backend() string { return "elasticsearch" }
