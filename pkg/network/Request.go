package network

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

// Raw performs a plain HTTP request against the server API and returns
// the response unparsed. Callers own the response body.
func Raw(ctx context.Context, client *http.Client, URL string, method string, data interface{}) (*http.Response, error) {
	var req *http.Request
	var err error

	if data != nil {
		var marshaled []byte
		marshaled, err = json.Marshal(data)

		if err != nil {
			return nil, err
		}

		req, err = http.NewRequestWithContext(ctx, method, URL, bytes.NewBuffer(marshaled))
	} else {
		req, err = http.NewRequestWithContext(ctx, method, URL, nil)
	}

	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "deltactl")

	return client.Do(req)
}
