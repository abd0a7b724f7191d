package service

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"live_trader/internal/models"
	"live_trader/internal/modules/config"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

const placeOrderPath = "/api/v3/orders/sync"

// Client: REST-шлюз Fyers API v3. Авторизация: "appId:accessToken".
type Client struct {
	http        *http.Client
	baseURL     string
	appID       string
	accessToken string
}

func NewClient(cfg *config.Config) *Client {
	timeout := cfg.Fyers.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http:        &http.Client{Timeout: timeout},
		baseURL:     strings.TrimRight(cfg.Fyers.BaseURL, "/"),
		appID:       cfg.Fyers.AppID,
		accessToken: cfg.Fyers.AccessToken,
	}
}

type placeOrderResponse struct {
	S       string `json:"s"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

// SubmitOrder отправляет ордер синхронно.
// Отказ брокера: это OrderResult со статусом != ok и err == nil;
// err != nil только когда ответа от брокера нет или его не разобрать.
func (c *Client) SubmitOrder(ctx context.Context, intent models.OrderIntent) (models.OrderResult, error) {
	payload, err := sonic.Marshal(intent)
	if err != nil {
		return failed(err), errors.Wrap(err, "SubmitOrder marshal")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+placeOrderPath, bytes.NewReader(payload))
	if err != nil {
		return failed(err), errors.Wrap(err, "SubmitOrder new request")
	}
	req.Header.Set("Authorization", c.appID+":"+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return failed(err), errors.Wrap(err, "SubmitOrder do")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return failed(err), errors.Wrap(err, "SubmitOrder read body")
	}

	var r placeOrderResponse
	if err := sonic.Unmarshal(data, &r); err != nil {
		res := models.OrderResult{Status: "error", Code: resp.StatusCode, Raw: string(data)}
		return res, errors.Wrapf(err, "SubmitOrder decode http %d", resp.StatusCode)
	}

	res := models.OrderResult{
		Status:  r.S,
		Code:    r.Code,
		Message: r.Message,
		ID:      r.ID,
		Raw:     string(data),
	}
	// 2xx с s=ok: единственный успешный случай
	if resp.StatusCode/100 != 2 && res.OK() {
		res.Status = "error"
	}
	return res, nil
}

func failed(err error) models.OrderResult {
	return models.OrderResult{Status: "error", Message: err.Error(), Raw: err.Error()}
}
