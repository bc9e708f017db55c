// Package client provides methods to call the json rpc and restful api.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"net"
	"net/http"
	"time"
)

var (
	httpClient *http.Client
	httpCtx    = context.Background()
)

// InitHTTPClient init http client
func InitHTTPClient() {
	httpClient = createHTTPClient()
}

const (
	maxIdleConns        int = 100
	maxIdleConnsPerHost int = 10
	maxConnsPerHost     int = 50
	idleConnTimeout     int = 90
)

// createHTTPClient for connection re-use
func createHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxConnsPerHost:     maxConnsPerHost,
			MaxIdleConns:        maxIdleConns,
			MaxIdleConnsPerHost: maxIdleConnsPerHost,
			IdleConnTimeout:     time.Duration(idleConnTimeout) * time.Second,
		},
		Timeout: defaultTimeout * time.Second,
	}
}

// HTTPPost http post
func HTTPPost(url string, body interface{}, headers map[string]string, timeout int) (*http.Response, error) {
	req, err := http.NewRequestWithContext(httpCtx, http.MethodPost, url, nil)
	if err != nil {
		return nil, err
	}

	for key, val := range headers {
		req.Header.Add(key, val)
	}
	if err := addPostBody(req, body); err != nil {
		return nil, err
	}

	return doRequest(req, timeout)
}

func addPostBody(req *http.Request, body interface{}) error {
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		req.Header.Set("Content-type", "application/json")
		req.GetBody = func() (io.ReadCloser, error) {
			return ioutil.NopCloser(bytes.NewBuffer(jsonData)), nil
		}
		req.Body, _ = req.GetBody()
	}
	return nil
}

func doRequest(req *http.Request, timeoutSeconds int) (*http.Response, error) {
	timeout := time.Duration(timeoutSeconds) * time.Second
	if httpClient == nil {
		client := http.Client{
			Timeout: timeout,
		}
		return client.Do(req)
	}
	client := *httpClient
	client.Timeout = timeout
	return client.Do(req)
}
