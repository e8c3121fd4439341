package session

import (
	"fmt"
	"log"
	"time"

	"github.com/palemoky/mushig/internal/apperrors"
	"github.com/palemoky/mushig/internal/game/card"
	"github.com/palemoky/mushig/internal/protocol"
)

// NewGameSession 创建会话：房主坐 0 号位，其余座位由机器人顶替
func NewGameSession(roomCode string, notifier Notifier, timing Timing, hostID, hostName string) *GameSession {
	gs := &GameSession{
		roomCode:     roomCode,
		notifier:     notifier,
		timing:       timing,
		phase:        PhaseWaiting,
		roundNumber:  1,
		activeSeat:   -1,
		lastActivity: time.Now(),
	}

	gs.seats[0] = &Seat{
		Index:    0,
		PlayerID: hostID,
		Name:     hostName,
		Score:    StartScore,
		IsHost:   true,
	}
	for i := 1; i < TableSize; i++ {
		gs.seats[i] = newBotSeat(roomCode, i)
	}

	return gs
}

// RestoredSeat 重建会话时保留的座位信息
type RestoredSeat struct {
	Name  string
	Score int
}

// RestoreGameSession 用落盘数据重建会话：回到等待阶段，分数保留，
// 座位全部先由机器人代管，等玩家重新入座
func RestoreGameSession(roomCode string, notifier Notifier, timing Timing, roundNumber, dealerIdx int, seats [TableSize]RestoredSeat) *GameSession {
	gs := &GameSession{
		roomCode:     roomCode,
		notifier:     notifier,
		timing:       timing,
		phase:        PhaseWaiting,
		roundNumber:  roundNumber,
		dealerIdx:    dealerIdx,
		activeSeat:   -1,
		lastActivity: time.Now(),
	}
	if gs.roundNumber < 1 {
		gs.roundNumber = 1
	}

	for i := 0; i < TableSize; i++ {
		s := newBotSeat(roomCode, i)
		if seats[i].Name != "" {
			s.Name = seats[i].Name
		}
		if seats[i].Score > 0 {
			s.Score = seats[i].Score
		}
		gs.seats[i] = s
	}

	return gs
}

// newBotSeat 生成一个机器人座位
func newBotSeat(roomCode string, idx int) *Seat {
	return &Seat{
		Index:    idx,
		PlayerID: fmt.Sprintf("bot:%s:%d", roomCode, idx),
		Name:     BotName(idx),
		Score:    StartScore,
		Ready:    true, // 机器人永远就绪
		IsBot:    true,
	}
}

// RoomCode 返回房间号
func (gs *GameSession) RoomCode() string {
	return gs.roomCode
}

// Phase 返回当前阶段
func (gs *GameSession) Phase() Phase {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.phase
}

// LastActivity 返回最近一次状态变化的时间
func (gs *GameSession) LastActivity() time.Time {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.lastActivity
}

// HumanCount 返回真人座位数
func (gs *GameSession) HumanCount() int {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	count := 0
	for _, s := range gs.seats {
		if !s.IsBot {
			count++
		}
	}
	return count
}

// Stop 停掉所有计时器（房间销毁时调用）
func (gs *GameSession) Stop() {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.turnSeq++
	gs.stopTurnTimer()
	gs.stopReadyTimer()
}

// touch 记录状态变化时间（须持锁调用）
func (gs *GameSession) touch() {
	gs.lastActivity = time.Now()
}

// seatByPlayerID 按玩家 ID 找座位（须持锁调用）
func (gs *GameSession) seatByPlayerID(playerID string) *Seat {
	for _, s := range gs.seats {
		if s.PlayerID == playerID {
			return s
		}
	}
	return nil
}

// Join 顶替一个机器人座位入座，只在 waiting/ready 阶段允许
func (gs *GameSession) Join(playerID, name string) (int, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.phase != PhaseWaiting && gs.phase != PhaseReady {
		return -1, apperrors.ErrSeatUnavailable
	}

	var seat *Seat
	for _, s := range gs.seats {
		if s.IsBot {
			seat = s
			break
		}
	}
	if seat == nil {
		return -1, apperrors.ErrRoomFull
	}

	gs.turnSeq++
	gs.touch()

	// 新人继承该座位的累计得分，轮次状态照旧
	seat.PlayerID = playerID
	seat.Name = name
	seat.IsBot = false
	seat.Ready = false

	// 恢复的房间还没有房主，第一个回来的真人接任
	hasHost := false
	for _, s := range gs.seats {
		if s.IsHost {
			hasHost = true
			break
		}
	}
	if !hasHost {
		seat.IsHost = true
	}

	// ready 阶段有人加入则退回 waiting，等新人就绪
	if gs.phase == PhaseReady {
		gs.stopReadyTimer()
		gs.phase = PhaseWaiting
	}

	gs.notifier.Broadcast(protocol.MustNewMessage(protocol.MsgSeatTaken, protocol.SeatTakenPayload{
		Seat:       seat.Index,
		PlayerID:   playerID,
		PlayerName: name,
	}))
	gs.pushSnapshots()

	log.Printf("👤 玩家 %s 入座房间 %s 的 %d 号位", name, gs.roomCode, seat.Index)

	return seat.Index, nil
}

// Leave 真人离座，座位交还机器人继续打；返回剩余真人数量
func (gs *GameSession) Leave(playerID string) (left bool, humansLeft int) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	seat := gs.seatByPlayerID(playerID)
	if seat == nil || seat.IsBot {
		return false, gs.humanCountLocked()
	}

	gs.touch()

	wasHost := seat.IsHost
	oldName := seat.Name

	seat.PlayerID = fmt.Sprintf("bot:%s:%d", gs.roomCode, seat.Index)
	seat.Name = BotName(seat.Index)
	seat.IsBot = true
	seat.IsHost = false
	seat.Ready = true

	// 房主移交给剩下的第一个真人
	if wasHost {
		for _, s := range gs.seats {
			if !s.IsBot {
				s.IsHost = true
				gs.notifier.Broadcast(protocol.MustNewMessage(protocol.MsgHostChanged, protocol.HostChangedPayload{
					Seat: s.Index,
				}))
				break
			}
		}
	}

	gs.notifier.Broadcast(protocol.MustNewMessage(protocol.MsgSeatReleased, protocol.SeatReleasedPayload{
		Seat:    seat.Index,
		BotName: seat.Name,
	}))

	log.Printf("👋 玩家 %s 离开房间 %s，%d 号位由 %s 接管", oldName, gs.roomCode, seat.Index, seat.Name)

	// 轮到该座位行动时，作废原回合换机器人继续；
	// 别的座位正在行动时不能动 turnSeq，否则会吞掉在途的机器人定时器
	if gs.activeSeat == seat.Index {
		gs.turnSeq++
		gs.stopTurnTimer()
		gs.scheduleBot()
	}

	// 等待阶段少了一个未就绪的真人，可能凑齐就绪
	if gs.phase == PhaseWaiting {
		gs.checkAllReady()
	}

	gs.pushSnapshots()

	return true, gs.humanCountLocked()
}

func (gs *GameSession) humanCountLocked() int {
	count := 0
	for _, s := range gs.seats {
		if !s.IsBot {
			count++
		}
	}
	return count
}

// SetReady 设置就绪状态，只在 waiting 阶段有效
func (gs *GameSession) SetReady(playerID string, ready bool) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	seat := gs.seatByPlayerID(playerID)
	if seat == nil {
		return apperrors.ErrNotInRoom
	}
	if gs.phase != PhaseWaiting {
		return apperrors.ErrInvalidPhase
	}

	gs.turnSeq++
	gs.touch()
	seat.Ready = ready

	gs.notifier.Broadcast(protocol.MustNewMessage(protocol.MsgPlayerReady, protocol.PlayerReadyPayload{
		Seat:  seat.Index,
		Ready: ready,
	}))

	gs.checkAllReady()
	return nil
}

// checkAllReady 全员就绪则进入 ready 缓冲，缓冲结束后发牌（须持锁调用）
func (gs *GameSession) checkAllReady() {
	if gs.humanCountLocked() == 0 {
		return // 纯机器人桌不开局，等回收
	}
	for _, s := range gs.seats {
		if !s.Ready {
			return
		}
	}

	gs.phase = PhaseReady
	seq := gs.turnSeq

	gs.stopReadyTimer()
	gs.readyTimer = time.AfterFunc(gs.timing.ReadyDelay, func() {
		gs.mu.Lock()
		defer gs.mu.Unlock()
		if gs.turnSeq != seq || gs.phase != PhaseReady {
			return
		}
		gs.startRound()
	})
}

// startRound 洗牌发牌：每座位 5 张，翻一张明将，余牌为树（须持锁调用）
func (gs *GameSession) startRound() {
	deck := card.NewDeck()
	deck.Shuffle()

	gs.turnSeq++
	gs.touch()
	gs.phase = PhaseDealing

	pos := 0
	for _, s := range gs.seats {
		s.Hand = append([]card.Card(nil), deck[pos:pos+HandSize]...)
		pos += HandSize
		s.HousesBuilt = 0
		s.Entry = EntryUndecided
		s.HasExchanged = false
	}

	trump := deck[pos]
	pos++
	gs.trumpCard = &trump
	gs.trumpSuit = trump.Suit
	gs.hasTrump = true
	gs.tree = append([]card.Card(nil), deck[pos:]...)
	gs.house = nil
	gs.completed = nil

	for _, s := range gs.seats {
		gs.sendTo(s, protocol.MustNewMessage(protocol.MsgRoundStart, protocol.RoundStartPayload{
			RoundNumber: gs.roundNumber,
			DealerSeat:  gs.dealerIdx,
			Hand:        toCardInfos(s.Hand),
			TrumpCard:   toCardInfo(trump),
			TreeCount:   len(gs.tree),
		}))
	}

	log.Printf("🎴 房间 %s 第 %d 轮发牌，庄家 %d 号位，明将 %s",
		gs.roomCode, gs.roundNumber, gs.dealerIdx, trump)

	// 从庄家下一位开始决定进圈
	gs.promptEntryFrom(gs.dealerIdx + 1)
}

// resetForNextRound 清掉轮内状态，庄家顺移一位（须持锁调用）
func (gs *GameSession) resetForNextRound() {
	for _, s := range gs.seats {
		s.Hand = nil
		s.HousesBuilt = 0
		s.Entry = EntryUndecided
		s.HasExchanged = false
		s.Ready = s.IsBot
	}
	gs.tree = nil
	gs.trumpCard = nil
	gs.hasTrump = false
	gs.house = nil
	gs.completed = nil
	gs.dealerIdx = (gs.dealerIdx + 1) % TableSize
	gs.roundNumber++
	gs.activeSeat = -1
	gs.phase = PhaseWaiting

	gs.checkAllReady()
}

// sendTo 给某座位的真人单发消息（机器人座位静默跳过）
func (gs *GameSession) sendTo(s *Seat, msg *protocol.Message) {
	if s.IsBot {
		return
	}
	gs.notifier.SendTo(s.PlayerID, msg)
}

// pushSnapshots 给每个真人座位推送按其视角脱敏的快照（须持锁调用）
func (gs *GameSession) pushSnapshots() {
	for _, s := range gs.seats {
		if s.IsBot {
			continue
		}
		gs.notifier.SendTo(s.PlayerID, protocol.MustNewMessage(protocol.MsgGameState, gs.snapshotLocked(s.Index)))
	}
}
