package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/partytable/internal/decks"
	"github.com/lox/partytable/internal/spy"
	"github.com/lox/partytable/internal/wheel"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var ErrConnectionClosed = websocket.ErrCloseSent

// sessions holds the connection's running games, at most one per game.
type sessions struct {
	spy   *spy.Game
	wheel *wheel.Game
	deck  *decks.Game
}

// Connection wraps one websocket client. All session mutation happens on the
// read loop, so actions on a session never interleave; the write pump is the
// only writer to the socket.
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	logger    *log.Logger
	srv       *Server
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	mu     sync.RWMutex
	userID string

	games sessions
}

// NewConnection creates a connection wrapper.
func NewConnection(conn *websocket.Conn, logger *log.Logger, srv *Server) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		conn:   conn,
		send:   make(chan *Message, 256),
		logger: logger.WithPrefix("conn"),
		srv:    srv,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins handling the connection.
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
		if c.srv != nil {
			c.srv.forget(c)
		}
	})
	return err
}

// SendMessage queues a message to the client.
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed, expected during shutdown.
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// UserID returns the user associated with this connection.
func (c *Connection) UserID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

func (c *Connection) setUserID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userID = id
}

func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		c.handleMessage(&msg)
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage dispatches one client message. Each handler validates and
// applies exactly one discrete action, persists, then replies.
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "user", c.UserID())

	if msg.Type != MessageTypeHello && c.UserID() == "" {
		c.sendError(ErrorCodeBadMessage, "say hello first")
		return
	}

	switch msg.Type {
	case MessageTypeHello:
		dispatch(c, msg, c.handleHello)
	case MessageTypeSpyStart:
		dispatch(c, msg, c.handleSpyStart)
	case MessageTypeSpyName:
		dispatch(c, msg, c.handleSpyName)
	case MessageTypeSpyConfirm:
		c.handleSpyConfirm()
	case MessageTypeSpyReveal:
		c.handleSpyReveal()
	case MessageTypeSpyVote:
		c.handleSpyVote()
	case MessageTypeSpyEliminate:
		dispatch(c, msg, c.handleSpyEliminate)
	case MessageTypeSpyGuessed:
		c.handleSpyGuessed()
	case MessageTypeWheelStart:
		dispatch(c, msg, c.handleWheelStart)
	case MessageTypeWheelBet:
		dispatch(c, msg, c.handleWheelBet)
	case MessageTypeWheelSpin:
		c.handleWheelSpin()
	case MessageTypeDeckStart:
		dispatch(c, msg, c.handleDeckStart)
	case MessageTypeDeckDraw:
		c.handleDeckDraw()
	case MessageTypeQuit:
		dispatch(c, msg, c.handleQuit)
	default:
		c.sendError(ErrorCodeBadMessage, "unknown message type: "+string(msg.Type))
	}
}

// dispatch decodes a typed payload and invokes the handler.
func dispatch[T any](c *Connection, msg *Message, handler func(T)) {
	var data T
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(ErrorCodeBadMessage, "failed to parse "+string(msg.Type)+" data")
			return
		}
	}
	handler(data)
}

func (c *Connection) sendError(code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{Code: code, Message: message})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}
	_ = c.SendMessage(errorMsg)
}

func (c *Connection) reply(messageType MessageType, data any) {
	msg, err := NewMessage(messageType, data)
	if err != nil {
		c.logger.Error("Failed to create message", "type", messageType, "error", err)
		return
	}
	_ = c.SendMessage(msg)
}

func (c *Connection) sendState(game string, state any) {
	raw, err := json.Marshal(state)
	if err != nil {
		c.logger.Error("Failed to marshal state", "game", game, "error", err)
		return
	}
	c.reply(MessageTypeState, StateData{Game: game, State: raw})
}
