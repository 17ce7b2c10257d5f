package jupiter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultQuoteURL = "https://quote-api.jup.ag/v6"
	defaultPriceURL = "https://api.jup.ag/price/v2"
	defaultTimeout  = 30 * time.Second
)

// Config 描述调用 Jupiter 聚合器 API 所需的信息。
type Config struct {
	QuoteURL string
	PriceURL string
	Timeout  time.Duration
}

// Client 通过 HTTP 调用 Jupiter 提供的报价、兑换与价格能力。
// 所有方法都是只读或纯构造性的：兑换交易由调用方自行签名广播。
type Client struct {
	quoteURL   string
	priceURL   string
	httpClient *http.Client
}

// NewClient 根据配置创建 Jupiter 客户端。
func NewClient(cfg Config) *Client {
	quoteURL := strings.TrimRight(strings.TrimSpace(cfg.QuoteURL), "/")
	if quoteURL == "" {
		quoteURL = defaultQuoteURL
	}
	priceURL := strings.TrimRight(strings.TrimSpace(cfg.PriceURL), "/")
	if priceURL == "" {
		priceURL = defaultPriceURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		quoteURL:   quoteURL,
		priceURL:   priceURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Price 查询代币对 USDC 的当前价格，返回十进制字符串。
func (c *Client) Price(ctx context.Context, mint string) (string, error) {
	endpoint := c.priceURL + "?ids=" + url.QueryEscape(mint)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("构建价格请求失败: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("请求 Jupiter 价格失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("Jupiter 价格接口返回状态 %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded struct {
		Data map[string]struct {
			Price json.RawMessage `json:"price"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("解析 Jupiter 价格响应失败: %w", err)
	}

	entry, ok := decoded.Data[mint]
	if !ok || len(entry.Price) == 0 {
		return "", errors.New("价格数据不可用")
	}
	return normalizePrice(entry.Price)
}

// normalizePrice 兼容价格字段既可能是字符串也可能是数字的情况。
func normalizePrice(raw json.RawMessage) (string, error) {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if asString == "" {
			return "", errors.New("价格数据为空")
		}
		return asString, nil
	}
	var asNumber float64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return strconv.FormatFloat(asNumber, 'f', -1, 64), nil
	}
	return "", errors.New("无法解析的价格字段")
}

// Quote 获取一次兑换报价，amount 以输入代币的最小单位计。
// 返回原始报价对象，原样传给 Swap。
func (c *Client) Quote(ctx context.Context, inputMint, outputMint string, amount uint64) (map[string]any, error) {
	endpoint := fmt.Sprintf("%s/quote?inputMint=%s&outputMint=%s&amount=%d&dynamicSlippage=true",
		c.quoteURL, url.QueryEscape(inputMint), url.QueryEscape(outputMint), amount)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("构建报价请求失败: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求 Jupiter 报价失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("Jupiter 报价接口返回状态 %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var quote map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return nil, fmt.Errorf("解析 Jupiter 报价响应失败: %w", err)
	}
	return quote, nil
}

// Swap 基于报价构建兑换交易，返回 base64 编码的未签名交易。
func (c *Client) Swap(ctx context.Context, quote map[string]any, userPublicKey string) (string, error) {
	payload, err := json.Marshal(map[string]any{
		"quoteResponse":           quote,
		"userPublicKey":           userPublicKey,
		"wrapAndUnwrapSol":        true,
		"dynamicComputeUnitLimit": true,
		"dynamicSlippage":         true,
	})
	if err != nil {
		return "", fmt.Errorf("序列化兑换请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.quoteURL+"/swap", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("构建兑换请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("请求 Jupiter 兑换失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("Jupiter 兑换接口返回状态 %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded struct {
		SwapTransaction string `json:"swapTransaction"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("解析 Jupiter 兑换响应失败: %w", err)
	}
	if decoded.SwapTransaction == "" {
		return "", errors.New("兑换响应缺少 swapTransaction 字段")
	}
	return decoded.SwapTransaction, nil
}
