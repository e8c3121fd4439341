package protocol

// CardInfo 一张牌的传输表示
type CardInfo struct {
	Suit  int    `json:"suit"`
	Rank  int    `json:"rank"`
	Label string `json:"label"` // 如 "A♠"，便于客户端直接展示
}

// SeatInfo 座位的公开信息（手牌只暴露张数）
type SeatInfo struct {
	Seat      int    `json:"seat"`
	PlayerID  string `json:"player_id"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Ready     bool   `json:"ready"`
	IsBot     bool   `json:"is_bot"`
	IsHost    bool   `json:"is_host"`
	IsDealer  bool   `json:"is_dealer"`
	Entry     string `json:"entry"` // undecided/entered/declined
	HandCount int    `json:"hand_count"`
	Houses    int    `json:"houses"` // 本轮已建房数
}

// PlayedCardInfo 房中的一张牌
type PlayedCardInfo struct {
	Seat int      `json:"seat"`
	Card CardInfo `json:"card"`
}

// GameStateDTO 按座位脱敏后的状态快照
type GameStateDTO struct {
	RoomCode    string           `json:"room_code"`
	Phase       string           `json:"phase"`
	RoundNumber int              `json:"round_number"`
	Seats       []SeatInfo       `json:"seats"`
	YourSeat    int              `json:"your_seat"`
	Hand        []CardInfo       `json:"hand"` // 只含观察者自己的手牌
	ActiveSeat  int              `json:"active_seat"`
	DealerSeat  int              `json:"dealer_seat"`
	TrumpSuit   string           `json:"trump_suit,omitempty"`
	TrumpCard   *CardInfo        `json:"trump_card,omitempty"`
	TreeCount   int              `json:"tree_count"`
	House       []PlayedCardInfo `json:"house"`
	HousesDone  int              `json:"houses_done"`
}

// --- 客户端请求 Payloads ---

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// CreateRoomPayload 创建房间请求
type CreateRoomPayload struct {
	Name string `json:"name"` // 房主昵称
}

// JoinRoomPayload 加入房间请求
type JoinRoomPayload struct {
	RoomCode string `json:"room_code"`
	Name     string `json:"name"`
}

// ReadyPayload 准备请求
type ReadyPayload struct {
	Ready bool `json:"ready"`
}

// DecideEntryPayload 进圈决定
type DecideEntryPayload struct {
	Enter bool `json:"enter"`
}

// ExchangeCardsPayload 换牌请求，indices 为要交给树的手牌下标
type ExchangeCardsPayload struct {
	Indices []int `json:"indices"`
}

// ExchangeTrumpPayload 庄家换将请求，Skip 为 true 则放弃
type ExchangeTrumpPayload struct {
	Index int  `json:"index"`
	Skip  bool `json:"skip"`
}

// PlayCardPayload 出牌请求
type PlayCardPayload struct {
	Index int `json:"index"`
}

// ChatPayload 聊天消息
type ChatPayload struct {
	Text string `json:"text"`
}

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	// LastRoomCode 断线重连时找回的上次所在房间，客户端可凭此重新加入
	LastRoomCode string `json:"last_room_code,omitempty"`
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"`
	ServerTimestamp int64 `json:"server_timestamp"`
}

// RoomCreatedPayload 房间创建成功响应
type RoomCreatedPayload struct {
	RoomCode string `json:"room_code"`
	Seat     int    `json:"seat"`
}

// RoomJoinedPayload 加入房间成功响应
type RoomJoinedPayload struct {
	RoomCode string     `json:"room_code"`
	Seat     int        `json:"seat"`
	Seats    []SeatInfo `json:"seats"`
}

// RoomListItem 房间列表项
type RoomListItem struct {
	RoomCode   string `json:"room_code"`
	HumanCount int    `json:"human_count"` // 真人座位数
	MaxPlayers int    `json:"max_players"`
	Phase      string `json:"phase"`
}

// RoomListPayload 房间列表响应
type RoomListPayload struct {
	Rooms []RoomListItem `json:"rooms"`
}

// SeatTakenPayload 有人顶替机器人入座
type SeatTakenPayload struct {
	Seat       int    `json:"seat"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// SeatReleasedPayload 有人离座，机器人接管
type SeatReleasedPayload struct {
	Seat    int    `json:"seat"`
	BotName string `json:"bot_name"`
}

// PlayerReadyPayload 玩家准备通知
type PlayerReadyPayload struct {
	Seat  int  `json:"seat"`
	Ready bool `json:"ready"`
}

// HostChangedPayload 房主变更通知
type HostChangedPayload struct {
	Seat int `json:"seat"`
}

// RoundStartPayload 新一轮开始（按座位单发，含各自手牌）
type RoundStartPayload struct {
	RoundNumber int        `json:"round_number"`
	DealerSeat  int        `json:"dealer_seat"`
	Hand        []CardInfo `json:"hand"`
	TrumpCard   CardInfo   `json:"trump_card"`
	TreeCount   int        `json:"tree_count"`
}

// TurnPayload 轮到某座位行动（进圈/换牌/出牌共用）
type TurnPayload struct {
	Seat    int `json:"seat"`
	Timeout int `json:"timeout"` // 秒
}

// EntryDecidedPayload 进圈决定通知
type EntryDecidedPayload struct {
	Seat    int  `json:"seat"`
	Entered bool `json:"entered"`
	Forced  bool `json:"forced"` // 被规则强制进圈
}

// CardsExchangedPayload 换牌完成通知（牌面只发给本人，其他人只看张数）
type CardsExchangedPayload struct {
	Seat      int        `json:"seat"`
	Count     int        `json:"count"`
	NewCards  []CardInfo `json:"new_cards,omitempty"`
	TreeCount int        `json:"tree_count"`
}

// TrumpExchangedPayload 庄家换将结果
type TrumpExchangedPayload struct {
	Seat      int       `json:"seat"`
	Exchanged bool      `json:"exchanged"`
	TrumpCard *CardInfo `json:"trump_card,omitempty"` // 换将后的明牌
}

// CardPlayedPayload 出牌通知
type CardPlayedPayload struct {
	Seat int      `json:"seat"`
	Card CardInfo `json:"card"`
}

// HouseDonePayload 一房结算通知
type HouseDonePayload struct {
	WinnerSeat  int              `json:"winner_seat"`
	HighestCard CardInfo         `json:"highest_card"`
	Cards       []PlayedCardInfo `json:"cards"`
	HousesDone  int              `json:"houses_done"`
}

// SeatScore 轮结算中单个座位的得分变化
type SeatScore struct {
	Seat   int  `json:"seat"`
	Houses int  `json:"houses"`
	Delta  int  `json:"delta"`
	Score  int  `json:"score"`
	Busted bool `json:"busted"` // 得分已 ≤0
}

// RoundResultPayload 一轮结算
type RoundResultPayload struct {
	RoundNumber int         `json:"round_number"`
	Scores      []SeatScore `json:"scores"`
	GameOver    bool        `json:"game_over"`
}

// GameOverPayload 整局结束
type GameOverPayload struct {
	WinnerSeats []int       `json:"winner_seats"` // 率先打到 ≤0 的座位
	Scores      []SeatScore `json:"scores"`
}

// LegalPlaysPayload 可出牌集合
type LegalPlaysPayload struct {
	Indices []int `json:"indices"`
}

// ChatBroadcastPayload 聊天广播
type ChatBroadcastPayload struct {
	Seat int    `json:"seat"`
	Name string `json:"name"`
	Text string `json:"text"`
}

// OnlineCountPayload 在线人数
type OnlineCountPayload struct {
	Count int `json:"count"`
}

// ErrorPayload 错误响应
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
