package search

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
)

func buildRequestBody(data map[string]interface{}) io.Reader {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	return bytes.NewReader(jsonData)
}

func parseResponse(res *opensearchapi.Response, target interface{}) error {
	return json.NewDecoder(res.Body).Decode(target)
}
