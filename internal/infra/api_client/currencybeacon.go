package api_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/NastyaGoryachaya/currency-rate-service/internal/config"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/domain"
	derrors "github.com/NastyaGoryachaya/currency-rate-service/internal/errors"
	"github.com/shopspring/decimal"
)

const currencyBeaconName = string(domain.ProviderCurrencyBeacon)

// CurrencyBeaconClient — клиент API CurrencyBeacon (/timeseries, /convert)
type CurrencyBeaconClient struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
}

// cbEnvelope — общий конверт ответа: payload лежит в response, ошибка в meta
type cbEnvelope struct {
	Meta struct {
		Code        int    `json:"code"`
		ErrorType   string `json:"error_type"`
		ErrorDetail string `json:"error_detail"`
	} `json:"meta"`
	Response json.RawMessage `json:"response"`
}

type cbConversion struct {
	Timestamp int64           `json:"timestamp"`
	Date      string          `json:"date"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Amount    decimal.Decimal `json:"amount"`
	Value     decimal.Decimal `json:"value"`
}

// NewCurrencyBeaconClient - Создаёт клиента с ключом из строки провайдера.
func NewCurrencyBeaconClient(cfg config.CurrencyBeaconConfig, apiKey string) *CurrencyBeaconClient {
	ua := cfg.UserAgent
	if ua == "" {
		ua = "currency-rate-service/1.0"
	}
	return &CurrencyBeaconClient{
		baseURL:   cfg.BaseURL,
		apiKey:    apiKey,
		userAgent: ua,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// FetchRange — курсы source к targets за каждый день [from, to]
func (c *CurrencyBeaconClient) FetchRange(ctx context.Context, source string, targets []string, from, to time.Time) (domain.RateMatrix, error) {
	params := url.Values{}
	params.Set("start_date", domain.FormatDate(from))
	params.Set("end_date", domain.FormatDate(to))
	params.Set("base", source)
	params.Set("symbols", strings.Join(targets, ","))

	payload, err := c.get(ctx, "timeseries", params)
	if err != nil {
		return nil, err
	}

	var matrix domain.RateMatrix
	if err := json.Unmarshal(payload, &matrix); err != nil {
		return nil, derrors.Data("%s: decoding time series: %v", currencyBeaconName, err)
	}
	return matrix, nil
}

// FetchConversion — конвертация суммы по текущему курсу провайдера
func (c *CurrencyBeaconClient) FetchConversion(ctx context.Context, source, target string, amount decimal.Decimal) (domain.Conversion, error) {
	params := url.Values{}
	params.Set("from", source)
	params.Set("to", target)
	params.Set("amount", amount.String())

	payload, err := c.get(ctx, "convert", params)
	if err != nil {
		return domain.Conversion{}, err
	}

	var conv cbConversion
	if err := json.Unmarshal(payload, &conv); err != nil {
		return domain.Conversion{}, derrors.Data("%s: decoding conversion: %v", currencyBeaconName, err)
	}
	if conv.Date == "" {
		return domain.Conversion{}, derrors.Data("%s: conversion date missing", currencyBeaconName)
	}
	return domain.Conversion{
		Timestamp:         conv.Timestamp,
		Date:              conv.Date,
		SourceCurrency:    conv.From,
		ExchangedCurrency: conv.To,
		Amount:            conv.Amount,
		Value:             conv.Value,
	}, nil
}

// get выполняет запрос и возвращает содержимое поля response
func (c *CurrencyBeaconClient) get(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, derrors.Configuration("invalid base URL %q: %v", c.baseURL, err)
	}
	u.Path, _ = url.JoinPath(u.Path, endpoint)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: request failed: %w", derrors.ErrProvider, currencyBeaconName, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: reading body: %w", derrors.ErrProvider, currencyBeaconName, err)
	}

	var env cbEnvelope
	decodeErr := json.Unmarshal(body, &env)

	if resp.StatusCode != http.StatusOK {
		detail := env.Meta.ErrorDetail
		if decodeErr != nil || detail == "" {
			detail = truncate(strings.TrimSpace(string(body)), 200)
		}
		return nil, &derrors.UpstreamError{Provider: currencyBeaconName, Status: resp.StatusCode, Detail: detail}
	}
	if decodeErr != nil {
		return nil, derrors.Data("%s: decoding response: %v", currencyBeaconName, decodeErr)
	}
	if len(env.Response) == 0 || bytes.Equal(env.Response, []byte("null")) {
		return nil, derrors.Data("%s: %s payload not found", currencyBeaconName, endpoint)
	}
	return env.Response, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
