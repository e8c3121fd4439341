package room

import (
	"context"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/palemoky/mushig/internal/apperrors"
	"github.com/palemoky/mushig/internal/game/session"
	"github.com/palemoky/mushig/internal/protocol"
	"github.com/palemoky/mushig/internal/server/storage"
	"github.com/palemoky/mushig/internal/types"
)

const (
	// finishedRecordTTL 终局房间的战绩记录在 Redis 里保留的时长
	finishedRecordTTL = 10 * time.Minute
	// emptyRoomGrace 无连接房间的保留时间，给断线玩家留重连窗口
	emptyRoomGrace = 5 * time.Minute
)

// Manager 房间管理器
type Manager struct {
	redisStore  *storage.RedisStore
	timing      session.Timing
	idleTimeout time.Duration
	rooms       map[string]*Room
	mu          sync.RWMutex
}

// NewManager 创建房间管理器：先恢复上次进程落盘的房间，再启动清理协程
func NewManager(rs *storage.RedisStore, timing session.Timing, idleTimeout time.Duration) *Manager {
	m := &Manager{
		redisStore:  rs,
		timing:      timing,
		idleTimeout: idleTimeout,
		rooms:       make(map[string]*Room),
	}

	m.restoreRooms()

	go m.cleanupLoop()

	return m
}

// restoreRooms 把上次进程落盘的房间恢复成等待中的房间：分数保留，
// 座位先由机器人代管，等玩家凭重连记录回来。已终局的记录只留作战绩，不重建。
func (m *Manager) restoreRooms() {
	if m.redisStore == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	codes, err := m.redisStore.GetAllRoomCodes(ctx)
	if err != nil {
		log.Printf("⚠️  读取落盘房间失败: %v", err)
		return
	}

	for _, code := range codes {
		data, err := m.redisStore.LoadRoom(ctx, code)
		if err != nil || data == nil {
			continue
		}
		if data.Phase == session.PhaseFinished.String() {
			continue
		}

		room := NewRoomFromData(data, m.timing)
		m.mu.Lock()
		m.rooms[code] = room
		m.mu.Unlock()

		log.Printf("🏠 房间 %s 已恢复到等待阶段（第 %d 轮）", code, data.RoundNumber)
	}
}

// CreateRoom 创建房间，创建者坐 0 号位当房主。
// name 为空则用连接上的随机昵称。
func (m *Manager) CreateRoom(client types.ClientInterface, name string) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if name == "" {
		name = client.GetName()
	}

	code := m.generateRoomCode()
	room := NewRoom(code, client, name, m.timing)
	client.SetRoom(code)
	m.rooms[code] = room

	m.saveRoomAsync(room)
	m.savePlayerSessionAsync(client, code, true)

	log.Printf("🏠 房间 %s 已创建，房主 %s", code, name)

	return room, nil
}

// JoinRoom 加入房间，顶替一个机器人座位
func (m *Manager) JoinRoom(client types.ClientInterface, code, name string) (*Room, int, error) {
	m.mu.RLock()
	room, exists := m.rooms[code]
	m.mu.RUnlock()
	if !exists {
		return nil, -1, apperrors.ErrRoomNotFound
	}

	if name == "" {
		name = client.GetName()
	}

	// 先登记连接再入座，入座时推的第一份快照才到得了新人手里
	room.AddClient(client)
	seat, err := room.Session.Join(client.GetID(), name)
	if err != nil {
		room.RemoveClient(client.GetID())
		return nil, -1, err
	}

	client.SetRoom(code)

	m.saveRoomAsync(room)
	m.savePlayerSessionAsync(client, code, true)

	return room, seat, nil
}

// LeaveRoom 主动离开房间：座位交还机器人，玩家→房间记录一并清掉
func (m *Manager) LeaveRoom(client types.ClientInterface) {
	if m.leave(client) {
		m.deletePlayerSessionAsync(client.GetID())
	}
}

// DisconnectClient 断线离开：座位交还机器人，但保留玩家→房间记录，
// 重连后凭 player_id 找回原房间
func (m *Manager) DisconnectClient(client types.ClientInterface) {
	roomCode := client.GetRoom()
	if roomCode == "" {
		m.deletePlayerSessionAsync(client.GetID())
		return
	}
	if m.leave(client) {
		m.savePlayerSessionAsync(client, roomCode, false)
	}
}

// leave 离座公共逻辑；没真人了就解散。返回是否真的离开了某个房间
func (m *Manager) leave(client types.ClientInterface) bool {
	roomCode := client.GetRoom()
	if roomCode == "" {
		return false
	}

	m.mu.RLock()
	room, exists := m.rooms[roomCode]
	m.mu.RUnlock()
	if !exists {
		return false
	}

	room.RemoveClient(client.GetID())
	client.SetRoom("")

	_, humansLeft := room.Session.Leave(client.GetID())

	if humansLeft == 0 {
		m.removeRoom(roomCode)
		return true
	}

	m.saveRoomAsync(room)
	return true
}

// GetRoom 获取房间
func (m *Manager) GetRoom(code string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rooms[code]
}

// GetRoomByPlayerID 通过玩家所在房间号找房间
func (m *Manager) GetRoomByPlayerID(client types.ClientInterface) *Room {
	code := client.GetRoom()
	if code == "" {
		return nil
	}
	return m.GetRoom(code)
}

// GetRoomList 获取可加入的房间列表（等待中且有机器人座位可顶）
func (m *Manager) GetRoomList() []protocol.RoomListItem {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var rooms []protocol.RoomListItem
	for _, room := range m.rooms {
		item := room.Session.Summary()
		if item.Phase == session.PhaseWaiting.String() && item.HumanCount < session.TableSize {
			rooms = append(rooms, item)
		}
	}
	return rooms
}

// GetActiveGamesCount 获取打牌中的房间数量
func (m *Manager) GetActiveGamesCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, room := range m.rooms {
		switch room.Session.Phase() {
		case session.PhaseDealing, session.PhaseExchanging,
			session.PhaseTrumpExchanging, session.PhasePlaying:
			count++
		}
	}
	return count
}

// SaveRoom 把房间状态存回 Redis（best effort）
func (m *Manager) SaveRoom(room *Room) {
	m.saveRoomAsync(room)
}

// removeRoom 解散房间并清掉落盘数据
func (m *Manager) removeRoom(code string) {
	m.mu.Lock()
	room, exists := m.rooms[code]
	if exists {
		delete(m.rooms, code)
	}
	m.mu.Unlock()
	if !exists {
		return
	}

	room.Close()
	if m.redisStore != nil {
		if room.Session.Phase() == session.PhaseFinished {
			// 终局战绩保留一段时间供查询，之后自然过期
			data := room.ToRoomData()
			go func() {
				ctx := context.Background()
				_ = m.redisStore.SaveRoom(ctx, code, data)
				_ = m.redisStore.SetRoomExpiration(ctx, code, finishedRecordTTL)
			}()
		} else {
			go func() { _ = m.redisStore.DeleteRoom(context.Background(), code) }()
		}
	}
	log.Printf("🏠 房间 %s 已解散", code)
}

// saveRoomAsync 异步保存，Redis 不可用时静默跳过
func (m *Manager) saveRoomAsync(room *Room) {
	if m.redisStore == nil {
		return
	}
	data := room.ToRoomData()
	go func() { _ = m.redisStore.SaveRoom(context.Background(), room.Code, data) }()
}

// savePlayerSessionAsync 记录玩家→房间的对应关系（best effort）
func (m *Manager) savePlayerSessionAsync(client types.ClientInterface, roomCode string, online bool) {
	if m.redisStore == nil {
		return
	}
	data := &storage.PlayerSessionData{
		PlayerID:   client.GetID(),
		PlayerName: client.GetName(),
		RoomCode:   roomCode,
		IsOnline:   online,
	}
	if !online {
		data.DisconnectedAt = time.Now().Unix()
	}
	go func() { _ = m.redisStore.SaveSession(context.Background(), data) }()
}

// deletePlayerSessionAsync 清掉玩家→房间记录
func (m *Manager) deletePlayerSessionAsync(playerID string) {
	if m.redisStore == nil {
		return
	}
	go func() { _ = m.redisStore.DeleteSession(context.Background(), playerID) }()
}

// generateRoomCode 生成唯一房间号
func (m *Manager) generateRoomCode() string {
	for {
		code := make([]byte, roomCodeLength)
		for i := range code {
			code[i] = roomCodeChars[rand.IntN(len(roomCodeChars))]
		}
		codeStr := string(code)
		if _, exists := m.rooms[codeStr]; !exists {
			return codeStr
		}
	}
}

// cleanupLoop 定期清理闲置房间
func (m *Manager) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.cleanup()
	}
}

// cleanup 清理长时间无状态变化或已没有连接的房间
func (m *Manager) cleanup() {
	m.mu.RLock()
	var stale []string
	now := time.Now()
	for code, room := range m.rooms {
		idle := now.Sub(room.Session.LastActivity()) > m.idleTimeout
		// 无连接的房间留一个重连窗口再回收
		empty := room.ClientCount() == 0 && now.Sub(room.CreatedAt) > emptyRoomGrace
		if idle || empty {
			stale = append(stale, code)
		}
	}
	m.mu.RUnlock()

	for _, code := range stale {
		if room := m.GetRoom(code); room != nil {
			room.Broadcast(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, "房间闲置已关闭"))
		}
		m.removeRoom(code)
		log.Printf("🧹 房间 %s 闲置已清理", code)
	}
}
