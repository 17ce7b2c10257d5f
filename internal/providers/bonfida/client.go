package bonfida

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://sns-sdk-proxy.bonfida.workers.dev"
	defaultTimeout = 15 * time.Second
)

// Config 描述 Bonfida SNS 代理服务的接入信息。
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client 通过 Bonfida 代理解析 .sol 域名到所有者地址。
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient 根据配置创建域名解析客户端。
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Resolve 解析域名（不含 .sol 后缀）并返回所有者的 base58 地址。
func (c *Client) Resolve(ctx context.Context, domain string) (string, error) {
	if domain == "" {
		return "", errors.New("域名不能为空")
	}

	endpoint := c.baseURL + "/resolve/" + url.PathEscape(domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("构建域名解析请求失败: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("请求域名解析服务失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("域名解析服务返回状态 %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded struct {
		Result string `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("解析域名解析响应失败: %w", err)
	}
	if decoded.Result == "" {
		return "", fmt.Errorf("域名 %s 未解析到所有者", domain)
	}
	return decoded.Result, nil
}
