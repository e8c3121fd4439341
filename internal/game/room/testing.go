//go:build !production

package room

import (
	"time"

	"github.com/palemoky/mushig/internal/game/session"
	"github.com/palemoky/mushig/internal/types"
)

// NewManagerForTest 创建不带 Redis、不跑清理协程的管理器
func NewManagerForTest(timing session.Timing, idleTimeout time.Duration) *Manager {
	return &Manager{
		timing:      timing,
		idleTimeout: idleTimeout,
		rooms:       make(map[string]*Room),
	}
}

// AddRoomForTest 添加房间用于测试
func (m *Manager) AddRoomForTest(room *Room) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[room.Code] = room
}

// NewRoomForTest 用指定房间号创建房间
func NewRoomForTest(code string, host types.ClientInterface, timing session.Timing) *Room {
	return NewRoom(code, host, host.GetName(), timing)
}

// CleanupForTest 手动触发一次清理
func (m *Manager) CleanupForTest() {
	m.cleanup()
}
