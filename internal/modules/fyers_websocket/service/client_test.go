package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"live_trader/internal/models"
	"live_trader/internal/modules/config"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeState struct{ connected atomic.Bool }

func (s *fakeState) SetWSConnected(v bool) { s.connected.Store(v) }

var upgrader = websocket.Upgrader{}

func newFeed(t *testing.T, h func(conn *websocket.Conn)) (*Client, *fakeState) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		h(conn)
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Fyers.DataURL = "ws" + strings.TrimPrefix(srv.URL, "http")
	cfg.Fyers.AppID = "APP"
	cfg.Fyers.AccessToken = "TOKEN"

	st := &fakeState{}
	c := NewClient(cfg, st)
	c.retry = 10 * time.Millisecond
	return c, st
}

func recvTick(t *testing.T, ch <-chan models.Tick) models.Tick {
	t.Helper()
	select {
	case tick, ok := <-ch:
		require.True(t, ok, "stream closed")
		return tick
	case <-time.After(2 * time.Second):
		t.Fatal("no tick")
		return models.Tick{}
	}
}

func TestStreamTicksSubscribesAndEmits(t *testing.T) {
	subCh := make(chan subscribeFrame, 1)
	c, st := newFeed(t, func(conn *websocket.Conn) {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var sub subscribeFrame
		_ = sonic.Unmarshal(msg, &sub)
		subCh <- sub

		_ = conn.WriteMessage(websocket.TextMessage, []byte("pong"))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"sf","symbol":"NSE:RELIANCE-EQ","ltp":0}`))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"sf","ltp":10}`))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"sf","symbol":"NSE:RELIANCE-EQ","ltp":2450.5,"exch_feed_time":1700000000}`))

		// держим соединение до закрытия клиентом
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ticks := c.StreamTicks(ctx, []string{"NSE:RELIANCE-EQ"})
	tick := recvTick(t, ticks)

	assert.Equal(t, "NSE:RELIANCE-EQ", tick.Symbol)
	assert.Equal(t, 2450.5, tick.LTP)
	assert.Equal(t, int64(1700000000), tick.At.Unix())
	assert.True(t, st.connected.Load())

	sub := <-subCh
	assert.Equal(t, "SUB_DATA", sub.Type)
	assert.Equal(t, []string{"NSE:RELIANCE-EQ"}, sub.Symbols)
	assert.Equal(t, 1, sub.SubType)

	cancel()
	require.Eventually(t, func() bool {
		_, ok := <-ticks
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
	assert.False(t, st.connected.Load())
}

func TestStreamTicksSendsPing(t *testing.T) {
	pings := make(chan string, 4)
	c, _ := newFeed(t, func(conn *websocket.Conn) {
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if string(msg) == "ping" {
				pings <- string(msg)
			}
		}
	})
	c.pingEvery = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_ = c.StreamTicks(ctx, []string{"NSE:SBIN-EQ"})

	select {
	case p := <-pings:
		assert.Equal(t, "ping", p)
	case <-time.After(2 * time.Second):
		t.Fatal("no ping")
	}
}

func TestStreamTicksReconnects(t *testing.T) {
	var conns atomic.Int32
	c, _ := newFeed(t, func(conn *websocket.Conn) {
		n := conns.Add(1)
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		if n == 1 {
			// первое соединение рвём сразу после подписки
			return
		}
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"symbol":"NSE:SBIN-EQ","ltp":601.25}`))
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tick := recvTick(t, c.StreamTicks(ctx, []string{"NSE:SBIN-EQ"}))
	assert.Equal(t, 601.25, tick.LTP)
	assert.False(t, tick.At.IsZero())
	assert.GreaterOrEqual(t, conns.Load(), int32(2))
}

func TestStreamTicksNoSymbols(t *testing.T) {
	c := NewClient(&config.Config{}, nil)
	_, ok := <-c.StreamTicks(context.Background(), nil)
	assert.False(t, ok)
}

func TestParseTick(t *testing.T) {
	cases := []struct {
		name string
		msg  string
		ok   bool
	}{
		{"pong", "pong", false},
		{"garbage json", "{oops", false},
		{"no symbol", `{"ltp":1}`, false},
		{"negative ltp", `{"symbol":"X","ltp":-1}`, false},
		{"valid", `{"symbol":"X","ltp":1.5}`, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := parseTick([]byte(tc.msg))
			assert.Equal(t, tc.ok, ok)
		})
	}
}
