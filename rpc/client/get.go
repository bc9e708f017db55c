package client

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// RPCGet rest api get
func RPCGet(result interface{}, url string) error {
	return RPCGetRequest(result, url, nil, nil, defaultTimeout)
}

// RPCGetWithTimeout rest api get with timeout
func RPCGetWithTimeout(result interface{}, url string, timeout int) error {
	return RPCGetRequest(result, url, nil, nil, timeout)
}

// RPCGetRequest rest api get with params and headers
func RPCGetRequest(result interface{}, url string, params, headers map[string]string, timeout int) error {
	client := resty.New().SetTimeout(time.Duration(timeout) * time.Second)
	resp, err := client.R().SetQueryParams(params).SetHeaders(headers).Get(url)
	if err != nil {
		return fmt.Errorf("GET request error: %v (url: %v, params: %v)", err, url, params)
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("error response status: %v (url: %v) message: %v", resp.StatusCode(), url, resp.String())
	}
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return fmt.Errorf("unmarshal result error: %v", err)
	}
	return nil
}
