package room

import (
	"time"

	"github.com/palemoky/mushig/internal/game/session"
	"github.com/palemoky/mushig/internal/server/storage"
	"github.com/palemoky/mushig/internal/types"
)

// ToRoomData 将 Room 转换为可序列化的 RoomData。
// 只落公开信息：手牌、树、将牌都不进 Redis。
func (r *Room) ToRoomData() *storage.RoomData {
	seats := r.Session.SeatSummaries()

	data := &storage.RoomData{
		Code:        r.Code,
		Phase:       r.Session.Phase().String(),
		RoundNumber: r.Session.RoundNumber(),
		DealerSeat:  r.Session.DealerSeat(),
		Seats:       make([]storage.SeatData, 0, len(seats)),
		CreatedAt:   r.CreatedAt.Unix(),
	}

	for _, s := range seats {
		data.Seats = append(data.Seats, storage.SeatData{
			PlayerID: s.PlayerID,
			Name:     s.Name,
			Seat:     s.Seat,
			Score:    s.Score,
			IsBot:    s.IsBot,
			IsHost:   s.IsHost,
		})
	}

	return data
}

// NewRoomFromData 用落盘数据重建房间：还没有任何连接，
// 座位先由机器人代管，分数和轮次保留
func NewRoomFromData(data *storage.RoomData, timing session.Timing) *Room {
	r := &Room{
		Code:      data.Code,
		CreatedAt: time.Now(),
		clients:   make(map[string]types.ClientInterface),
	}

	var seats [session.TableSize]session.RestoredSeat
	for _, sd := range data.Seats {
		if sd.Seat < 0 || sd.Seat >= session.TableSize {
			continue
		}
		seats[sd.Seat] = session.RestoredSeat{Name: sd.Name, Score: sd.Score}
	}

	r.Session = session.RestoreGameSession(data.Code, r, timing, data.RoundNumber, data.DealerSeat, seats)
	return r
}
