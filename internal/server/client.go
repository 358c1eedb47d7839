package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/palemoky/bisca/internal/logger"
	"github.com/palemoky/bisca/internal/protocol"
	"github.com/palemoky/bisca/internal/protocol/codec"
)

const (
	// 写入超时
	writeWait = 10 * time.Second

	// 读取超时（pong 等待时间）
	pongWait = 60 * time.Second

	// ping 发送间隔（必须小于 pongWait）
	pingPeriod = (pongWait * 9) / 10

	// 消息最大大小
	maxMessageSize = 4096

	// 发送缓冲
	sendBufferSize = 256
)

// frame 待写出的一帧
type frame struct {
	data   []byte
	binary bool
}

// Client 代表一个连接的玩家
type Client struct {
	ID string // 玩家唯一 ID
	IP string // 客户端 IP 地址

	server *Server
	conn   *websocket.Conn
	send   chan frame

	mu     sync.RWMutex
	name   string
	roomID string
	format codec.Format // 回复跟随客户端最近一次发来的帧类型
	closed bool
}

// NewClient 创建新客户端
func NewClient(s *Server, conn *websocket.Conn) *Client {
	return &Client{
		ID:     uuid.NewString(),
		name:   GenerateNickname(),
		server: s,
		conn:   conn,
		send:   make(chan frame, sendBufferSize),
	}
}

// ReadPump 从 WebSocket 读取消息
func (c *Client) ReadPump() {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
		}
		c.handleDisconnect()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		kind, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.WithError(err).Debug("读取错误")
			}
			return
		}

		format := codec.FormatJSON
		if kind == websocket.BinaryMessage {
			format = codec.FormatProto
		}
		c.setFormat(format)

		msg, err := codec.Decode(data, format)
		if err != nil {
			log.WithError(err).Debug("消息解析错误")
			c.SendMessage(codec.NewRejection(protocol.ErrCodeInvalidMsg))
			continue
		}

		c.server.handler.Handle(c, msg)
	}
}

// WritePump 向 WebSocket 写入消息
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case f, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// 通道已关闭
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			kind := websocket.TextMessage
			if f.binary {
				kind = websocket.BinaryMessage
			}
			if err := c.conn.WriteMessage(kind, f.data); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendMessage 发送消息给客户端，缓冲满时断开
func (c *Client) SendMessage(msg *protocol.Message) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return
	}

	data, err := codec.Encode(msg, c.format)
	if err != nil {
		log.WithError(err).Warn("消息编码错误")
		return
	}

	select {
	case c.send <- frame{data: data, binary: c.format == codec.FormatProto}:
	default:
		// 发送缓冲区已满，交给写协程关闭连接
		log.Warnf("客户端 %s 发送缓冲区已满", c.ID)
		go c.Close()
	}
}

// handleDisconnect 断线等同于离开房间：对局中由托管接手
func (c *Client) handleDisconnect() {
	c.server.roomManager.LeaveRoom(c)
	c.server.unregisterClient(c)
	c.Close()
}

// Close 关闭客户端连接
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *Client) setFormat(f codec.Format) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.format = f
}

// GetID 实现 types.ClientInterface
func (c *Client) GetID() string { return c.ID }

// GetName 实现 types.ClientInterface
func (c *Client) GetName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

// SetName 实现 types.ClientInterface
func (c *Client) SetName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.name = name
}

// GetRoom 实现 types.ClientInterface
func (c *Client) GetRoom() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roomID
}

// SetRoom 设置客户端所在房间
func (c *Client) SetRoom(roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roomID = roomID
}
