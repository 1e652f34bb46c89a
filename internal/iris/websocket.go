package iris

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kapu/plex-request-bot-go/internal/constants"
	"go.uber.org/zap"
)

// MessageHandler receives every decoded inbound message.
type MessageHandler func(message *Message)

type StateCallback func(state WebSocketState)

// WebSocket follows the gateway's message stream and reconnects after read or
// dial failures until the attempt budget is used up.
type WebSocket struct {
	wsURL                string
	dialer               *websocket.Dialer
	maxReconnectAttempts int
	reconnectDelay       time.Duration
	logger               *zap.Logger

	mu      sync.RWMutex
	state   WebSocketState
	conn    *websocket.Conn
	onState StateCallback
}

func NewWebSocket(wsURL string, maxReconnectAttempts int, reconnectDelay time.Duration, logger *zap.Logger) *WebSocket {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebSocket{
		wsURL: wsURL,
		dialer: &websocket.Dialer{
			Proxy:            websocket.DefaultDialer.Proxy,
			HandshakeTimeout: constants.WebSocketConfig.HandshakeTimeout,
		},
		maxReconnectAttempts: maxReconnectAttempts,
		reconnectDelay:       reconnectDelay,
		logger:               logger,
		state:                WSStateDisconnected,
	}
}

// OnStateChange registers a single observer for state transitions.
func (ws *WebSocket) OnStateChange(callback StateCallback) {
	ws.mu.Lock()
	ws.onState = callback
	ws.mu.Unlock()
}

// Run blocks until ctx is cancelled (nil) or reconnecting gives up (error).
func (ws *WebSocket) Run(ctx context.Context, handler MessageHandler) error {
	attempts := 0
	for {
		ws.setState(WSStateConnecting)
		conn, _, err := ws.dialer.DialContext(ctx, ws.wsURL, nil)
		if err == nil {
			attempts = 0
			ws.setConn(conn)
			ws.setState(WSStateConnected)
			ws.logger.Info("WebSocket connected", zap.String("url", ws.wsURL))
			err = ws.listen(ctx, conn, handler)
			ws.setConn(nil)
		}

		if ctx.Err() != nil {
			ws.setState(WSStateDisconnected)
			return nil
		}

		attempts++
		if attempts > ws.maxReconnectAttempts {
			ws.setState(WSStateFailed)
			ws.logger.Error("Max reconnect attempts reached", zap.Int("attempts", attempts-1), zap.Error(err))
			return fmt.Errorf("websocket %s: giving up after %d attempts: %w", ws.wsURL, attempts-1, err)
		}

		ws.setState(WSStateReconnecting)
		ws.logger.Warn("Scheduling reconnect",
			zap.Int("attempt", attempts),
			zap.Int("max", ws.maxReconnectAttempts),
			zap.Duration("delay", ws.reconnectDelay),
			zap.Error(err),
		)

		select {
		case <-time.After(ws.reconnectDelay):
		case <-ctx.Done():
			ws.setState(WSStateDisconnected)
			return nil
		}
	}
}

func (ws *WebSocket) listen(ctx context.Context, conn *websocket.Conn, handler MessageHandler) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		ws.handleMessage(data, handler)
	}
}

func (ws *WebSocket) handleMessage(data []byte, handler MessageHandler) {
	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		dataStr := string(data)
		if len(dataStr) > 200 {
			dataStr = dataStr[:200]
		}
		ws.logger.Warn("Failed to parse message", zap.Error(err), zap.String("data", dataStr))
		return
	}
	if handler != nil {
		handler(&message)
	}
}

func (ws *WebSocket) setConn(conn *websocket.Conn) {
	ws.mu.Lock()
	ws.conn = conn
	ws.mu.Unlock()
}

func (ws *WebSocket) setState(newState WebSocketState) {
	ws.mu.Lock()
	oldState := ws.state
	ws.state = newState
	callback := ws.onState
	ws.mu.Unlock()

	if oldState == newState {
		return
	}
	ws.logger.Debug("WebSocket state changed",
		zap.String("from", oldState.String()),
		zap.String("to", newState.String()),
	)
	if callback != nil {
		callback(newState)
	}
}

func (ws *WebSocket) GetState() WebSocketState {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return ws.state
}

func (ws *WebSocket) IsConnected() bool {
	return ws.GetState() == WSStateConnected
}

// Close drops the current connection. Run reconnects unless its context is
// also cancelled.
func (ws *WebSocket) Close() error {
	ws.mu.RLock()
	conn := ws.conn
	ws.mu.RUnlock()
	if conn == nil {
		return nil
	}
	return conn.Close()
}
