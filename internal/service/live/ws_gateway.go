// Package live 实现会话与消息的实时订阅推送
// ws_gateway.go
// 核心职责：WebSocket 连接生命周期管理
// 1. 建立 WebSocket 连接 (Upgrade)
// 2. 封装 Client 对象，管理读写协程 (Read/Write Loop)
// 3. 解析前端的订阅/退订指令并转交 Hub
package live

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"zhixiao_school_server/pkg/constants"
)

// clientCommand 前端指令
// action: subscribe / unsubscribe
// kind:   conversations / messages
// id:     用户 UUID（conversations）或会话 UUID（messages）
type clientCommand struct {
	Action string `json:"action"`
	Kind   string `json:"kind"`
	Id     string `json:"id"`
}

// Client 表示一个 WebSocket 客户端连接
type Client struct {
	Conn     *websocket.Conn
	UserId   string
	SendBack chan []byte // 给前端的推送帧
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	// 允许任何来源连接，前端与后端不同源时默认会被 403 拦截
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Read 从 WebSocket 读取订阅指令并转交 Hub
func (c *Client) Read() {
	zap.L().Info("ws read goroutine start", zap.String("user_id", c.UserId))
	defer func() {
		GlobalHub.Logout <- c
		_ = c.Conn.Close()
	}()
	for {
		_, jsonMessage, err := c.Conn.ReadMessage() // 阻塞状态
		if err != nil {
			zap.L().Info("ws read closed", zap.String("user_id", c.UserId), zap.Error(err))
			return
		}
		var cmd clientCommand
		if err := json.Unmarshal(jsonMessage, &cmd); err != nil {
			zap.L().Error("ws command unmarshal failed", zap.Error(err))
			continue
		}
		if cmd.Kind != "conversations" && cmd.Kind != "messages" {
			zap.L().Warn("ws unknown subscription kind", zap.String("kind", cmd.Kind))
			continue
		}
		req := subRequest{client: c, kind: cmd.Kind, id: cmd.Id}
		switch cmd.Action {
		case "subscribe":
			GlobalHub.subscribe <- req
		case "unsubscribe":
			GlobalHub.unsubscribe <- req
		default:
			zap.L().Warn("ws unknown action", zap.String("action", cmd.Action))
		}
	}
}

// Write 从发送通道读取快照帧并写入 WebSocket
func (c *Client) Write() {
	zap.L().Info("ws write goroutine start", zap.String("user_id", c.UserId))
	for frame := range c.SendBack { // 阻塞状态
		if err := c.Conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			zap.L().Error("ws write failed", zap.String("user_id", c.UserId), zap.Error(err))
			return
		}
	}
}

// NewClientInit 建立 WebSocket 连接并启动读写协程
// userId 取自 JWT 认证中间件写入的上下文，不信任查询参数
func NewClientInit(c *gin.Context, userId string) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error("ws upgrade failed", zap.Error(err))
		return
	}
	client := &Client{
		Conn:     conn,
		UserId:   userId,
		SendBack: make(chan []byte, constants.CHANNEL_SIZE),
	}
	GlobalHub.Login <- client
	go client.Read()
	go client.Write()
	zap.L().Info("ws连接成功", zap.String("user_id", userId))
}
