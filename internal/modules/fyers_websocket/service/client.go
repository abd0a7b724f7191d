package service

import (
	"context"
	"net/http"
	"sync"
	"time"

	"live_trader/internal/models"
	"live_trader/internal/modules/config"
	"live_trader/pkg/logger"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
)

const (
	pingInterval   = 20 * time.Second
	reconnectDelay = time.Second
)

// ConnState получает состояние сокета (health).
type ConnState interface {
	SetWSConnected(v bool)
}

type Client struct {
	url         string
	appID       string
	accessToken string

	wsDialer *websocket.Dialer
	state    ConnState

	pingEvery time.Duration
	retry     time.Duration
}

func NewClient(cfg *config.Config, state ConnState) *Client {
	return &Client{
		url:         cfg.Fyers.DataURL,
		appID:       cfg.Fyers.AppID,
		accessToken: cfg.Fyers.AccessToken,
		wsDialer:    &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		state:       state,
		pingEvery:   pingInterval,
		retry:       reconnectDelay,
	}
}

type subscribeFrame struct {
	Type    string   `json:"T"`
	Symbols []string `json:"SLIST"`
	SubType int      `json:"SUB_T"`
}

type tickFrame struct {
	Type     string  `json:"type"`
	Symbol   string  `json:"symbol"`
	LTP      float64 `json:"ltp"`
	FeedTime int64   `json:"exch_feed_time"`
}

// StreamTicks: одно соединение на все символы, переподключение до отмены ctx.
// Канал закрывается при отмене ctx.
func (c *Client) StreamTicks(ctx context.Context, symbols []string) <-chan models.Tick {
	ch := make(chan models.Tick)

	go func() {
		defer close(ch)
		defer c.setConnected(false)

		if len(symbols) == 0 {
			logger.Warn("[WS] no symbols to stream")
			return
		}

		for ctx.Err() == nil {
			if err := c.session(ctx, symbols, ch); err != nil {
				logger.Warn("[WS] session %s: %v", c.url, err)
			}
			c.setConnected(false)

			select {
			case <-ctx.Done():
				return
			case <-time.After(c.retry):
			}
		}
	}()

	return ch
}

func (c *Client) session(ctx context.Context, symbols []string, out chan<- models.Tick) error {
	logger.Info("[WS] connect %s %d symbols", c.url, len(symbols))

	header := http.Header{}
	if c.appID != "" || c.accessToken != "" {
		header.Set("Authorization", c.appID+":"+c.accessToken)
	}
	conn, _, err := c.wsDialer.DialContext(ctx, c.url, header)
	if err != nil {
		return err
	}
	defer conn.Close()

	// gorilla: не больше одного писателя одновременно
	var wmu sync.Mutex
	write := func(mt int, data []byte) error {
		wmu.Lock()
		defer wmu.Unlock()
		return conn.WriteMessage(mt, data)
	}

	sub, err := sonic.Marshal(subscribeFrame{Type: "SUB_DATA", Symbols: symbols, SubType: 1})
	if err != nil {
		return err
	}
	if err := write(websocket.TextMessage, sub); err != nil {
		return err
	}
	c.setConnected(true)

	done := make(chan struct{})
	defer close(done)
	go func() {
		t := time.NewTicker(c.pingEvery)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				// разблокировать ReadMessage
				_ = conn.Close()
				return
			case <-done:
				return
			case <-t.C:
				if err := write(websocket.TextMessage, []byte("ping")); err != nil {
					logger.Warn("[WS] ping: %v", err)
				}
			}
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		tick, ok := parseTick(msg)
		if !ok {
			continue
		}

		select {
		case out <- tick:
		case <-ctx.Done():
			return nil
		}
	}
}

// parseTick: только кадры с символом и положительной ltp; pong и служебные пропускаем.
func parseTick(msg []byte) (models.Tick, bool) {
	if len(msg) == 0 || msg[0] != '{' {
		return models.Tick{}, false
	}
	var f tickFrame
	if err := sonic.Unmarshal(msg, &f); err != nil {
		return models.Tick{}, false
	}
	if f.Symbol == "" || f.LTP <= 0 {
		return models.Tick{}, false
	}

	at := time.Now()
	if f.FeedTime > 0 {
		at = time.Unix(f.FeedTime, 0)
	}
	return models.Tick{Symbol: f.Symbol, LTP: f.LTP, At: at}, true
}

func (c *Client) setConnected(v bool) {
	if c.state != nil {
		c.state.SetWSConnected(v)
	}
}
