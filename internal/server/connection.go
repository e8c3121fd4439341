package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/palemoky/mushig/internal/protocol"
	"github.com/palemoky/mushig/internal/types"
)

// handleWebSocket 处理 WebSocket 连接
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket 升级失败: %v", err)
		return
	}

	// 创建客户端；带 player_id 参数的是断线重连，找回原身份
	client := NewClient(s, conn)
	lastRoom := s.resumeIdentity(client, r.URL.Query().Get("player_id"))
	s.registerClient(client)

	// 发送连接成功消息
	client.SendMessage(protocol.MustNewMessage(protocol.MsgConnected, protocol.ConnectedPayload{
		PlayerID:     client.ID,
		PlayerName:   client.Name,
		LastRoomCode: lastRoom,
	}))

	log.Printf("✅ 玩家 %s (%s) 已连接", client.Name, client.ID)

	// 启动客户端读写协程
	go client.ReadPump()
	go client.WritePump()
}

// resumeIdentity 凭重连记录找回昵称和上次所在房间。
// 该身份仍有在线连接时不允许接管，按新玩家处理。
func (s *Server) resumeIdentity(client *Client, prevID string) string {
	if prevID == "" || s.redisStore == nil {
		return ""
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	sess, err := s.redisStore.LoadSession(ctx, prevID)
	if err != nil || sess == nil {
		return ""
	}
	if s.GetClientByID(prevID) != nil {
		return ""
	}

	client.ID = prevID
	if sess.PlayerName != "" {
		client.Name = sess.PlayerName
	}

	// 房间可能已解散，交给客户端自行重新加入
	if s.roomManager != nil && s.roomManager.GetRoom(sess.RoomCode) == nil {
		return ""
	}
	return sess.RoomCode
}

// handleHealth 健康检查接口
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// registerClient 注册客户端
func (s *Server) registerClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[client.ID] = client
}

// unregisterClient 注销客户端
func (s *Server) unregisterClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	if _, ok := s.clients[client.ID]; ok {
		delete(s.clients, client.ID)
		log.Printf("❌ 玩家 %s (%s) 已断开", client.Name, client.ID)
	}
}

// Interface implementations for types.ServerInterface

func (s *Server) GetClientByID(id string) types.ClientInterface {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	// 不能直接返回 map 取值：nil *Client 装进接口后不等于 nil
	if c, ok := s.clients[id]; ok {
		return c
	}
	return nil
}

func (s *Server) RegisterClient(id string, client types.ClientInterface) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	if c, ok := client.(*Client); ok {
		s.clients[id] = c
	}
}

func (s *Server) UnregisterClient(id string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	delete(s.clients, id)
}
