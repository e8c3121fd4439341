package session

import (
	"sync"
	"time"

	"github.com/palemoky/mushig/internal/game/card"
	"github.com/palemoky/mushig/internal/protocol"
)

const (
	// TableSize 固定 5 个座位，空位由机器人顶替
	TableSize = 5
	// HandSize 每轮每座位 5 张手牌
	HandSize = 5
	// HousesPerRound 每轮 5 房，打完即结算
	HousesPerRound = 5
	// StartScore 初始 15 分，减到 0 及以下即出局获胜
	StartScore = 15
)

// Phase 一轮内的阶段
type Phase int

const (
	PhaseWaiting        Phase = iota // 等待全员就绪
	PhaseReady                       // 就绪缓冲，即将发牌
	PhaseDealing                     // 已发牌，各座位决定进圈/弃圈
	PhaseExchanging                  // 进圈座位依次与树换牌
	PhaseTrumpExchanging             // 庄家决定是否换走明将
	PhasePlaying                     // 出牌建房
	PhaseFinished                    // 有人打到 ≤0 分，整局终止
)

var phaseNames = map[Phase]string{
	PhaseWaiting:         "waiting",
	PhaseReady:           "ready",
	PhaseDealing:         "dealing",
	PhaseExchanging:      "exchanging",
	PhaseTrumpExchanging: "trump_exchanging",
	PhasePlaying:         "playing",
	PhaseFinished:        "finished",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// EntryState 进圈决定的三种状态
type EntryState int

const (
	EntryUndecided EntryState = iota
	EntryEntered
	EntryDeclined
)

var entryNames = map[EntryState]string{
	EntryUndecided: "undecided",
	EntryEntered:   "entered",
	EntryDeclined:  "declined",
}

func (e EntryState) String() string {
	if name, ok := entryNames[e]; ok {
		return name
	}
	return "unknown"
}

// Seat 一个座位（真人或机器人）
type Seat struct {
	Index        int
	PlayerID     string
	Name         string
	Hand         []card.Card
	Score        int
	IsHost       bool
	Ready        bool
	HousesBuilt  int
	Entry        EntryState
	HasExchanged bool
	IsBot        bool
}

// PlayedCard 当前房中的一张牌及其来源座位
type PlayedCard struct {
	Card card.Card
	Seat int
}

// CompletedHouse 已结算的一房
type CompletedHouse struct {
	Cards       []PlayedCard
	WinnerSeat  int
	LeadSuit    card.Suit
	HighestCard card.Card
}

// Notifier 把会话事件送往传输层。
// 实现不得同步回调会话方法，否则会与会话内部锁死锁。
type Notifier interface {
	Broadcast(msg *protocol.Message)
	SendTo(playerID string, msg *protocol.Message)
}

// Timing 会话用到的全部时间参数
type Timing struct {
	TurnTimeout  time.Duration // 真人行动超时
	ReadyDelay   time.Duration // 全员就绪到发牌的缓冲
	BotThinkMin  time.Duration // 机器人思考下限
	BotThinkMax  time.Duration // 机器人思考上限
}

// DefaultTiming 默认时间参数
func DefaultTiming() Timing {
	return Timing{
		TurnTimeout: 30 * time.Second,
		ReadyDelay:  3 * time.Second,
		BotThinkMin: 800 * time.Millisecond,
		BotThinkMax: 2 * time.Second,
	}
}

// GameSession 一个房间的权威游戏状态。
// 所有修改都在内部锁下串行执行；延迟触发的机器人决定和超时
// 回调会先校验 turnSeq，过期则静默丢弃。
type GameSession struct {
	roomCode string
	notifier Notifier
	timing   Timing

	phase       Phase
	roundNumber int
	seats       [TableSize]*Seat
	dealerIdx   int
	activeSeat  int // -1 表示当前无行动座位

	tree      []card.Card
	trumpCard *card.Card
	trumpSuit card.Suit
	hasTrump  bool

	house     []PlayedCard
	completed []CompletedHouse

	lastActivity time.Time

	// turnSeq 每次状态推进自增，用于识别过期的延迟操作
	turnSeq    uint64
	turnTimer  *time.Timer
	readyTimer *time.Timer

	mu sync.RWMutex
}
