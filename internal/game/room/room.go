package room

import (
	"sync"
	"time"

	"github.com/palemoky/mushig/internal/game/session"
	"github.com/palemoky/mushig/internal/protocol"
	"github.com/palemoky/mushig/internal/types"
)

const (
	roomCodeLength = 6            // 房间号长度
	roomCodeChars  = "0123456789" // 房间号字符集
)

// Room 一个游戏房间：权威状态在 Session 里，这里只管连接。
// 实现 session.Notifier，把会话事件转发给房间内的连接。
type Room struct {
	Code      string
	Session   *session.GameSession
	CreatedAt time.Time

	mu      sync.RWMutex
	clients map[string]types.ClientInterface // playerID → 连接
}

// NewRoom 创建房间：host 坐 0 号位，其余座位是机器人
func NewRoom(code string, host types.ClientInterface, hostName string, timing session.Timing) *Room {
	r := &Room{
		Code:      code,
		CreatedAt: time.Now(),
		clients:   map[string]types.ClientInterface{host.GetID(): host},
	}
	r.Session = session.NewGameSession(code, r, timing, host.GetID(), hostName)
	return r
}

// Broadcast 发给房间内全部连接（session.Notifier 实现）
func (r *Room) Broadcast(msg *protocol.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.clients {
		c.SendMessage(msg)
	}
}

// SendTo 发给指定玩家的连接（session.Notifier 实现）
func (r *Room) SendTo(playerID string, msg *protocol.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.clients[playerID]; ok {
		c.SendMessage(msg)
	}
}

// BroadcastExcept 发给除某玩家外的全部连接（聊天转发用）
func (r *Room) BroadcastExcept(playerID string, msg *protocol.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, c := range r.clients {
		if id != playerID {
			c.SendMessage(msg)
		}
	}
}

// AddClient 登记一条连接
func (r *Room) AddClient(client types.ClientInterface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[client.GetID()] = client
}

// RemoveClient 注销一条连接
func (r *Room) RemoveClient(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, playerID)
}

// ClientCount 当前连接数
func (r *Room) ClientCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Close 停掉会话并清空连接表
func (r *Room) Close() {
	r.Session.Stop()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients = make(map[string]types.ClientInterface)
}
