package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	// 连接操作
	MsgPing MessageType = "ping" // 心跳 ping

	// 房间操作
	MsgCreateRoom  MessageType = "create_room"  // 创建房间
	MsgJoinRoom    MessageType = "join_room"    // 加入房间
	MsgLeaveRoom   MessageType = "leave_room"   // 离开房间
	MsgReady       MessageType = "ready"        // 准备就绪
	MsgCancelReady MessageType = "cancel_ready" // 取消准备
	MsgGetRoomList MessageType = "get_room_list"

	// 游戏操作
	MsgDecideEntry   MessageType = "decide_entry"   // 决定进圈/弃圈
	MsgExchangeCards MessageType = "exchange_cards" // 与树换牌
	MsgExchangeTrump MessageType = "exchange_trump" // 庄家换将牌
	MsgPlayCard      MessageType = "play_card"      // 出牌
	MsgGetLegalPlays MessageType = "get_legal_plays"
	MsgGetGameState  MessageType = "get_game_state" // 断线重连后拉取快照

	// 聊天
	MsgChat MessageType = "chat"

	// 大厅统计
	MsgGetOnlineCount MessageType = "get_online_count"
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgConnected MessageType = "connected" // 连接成功
	MsgPong      MessageType = "pong"      // 心跳 pong

	// 房间相关
	MsgRoomCreated    MessageType = "room_created"  // 房间创建成功
	MsgRoomJoined     MessageType = "room_joined"   // 加入房间成功
	MsgRoomListResult MessageType = "room_list_result"
	MsgSeatTaken      MessageType = "seat_taken"    // 有人顶替机器人入座
	MsgSeatReleased   MessageType = "seat_released" // 有人离座，机器人接管
	MsgPlayerReady    MessageType = "player_ready"  // 玩家准备
	MsgHostChanged    MessageType = "host_changed"  // 房主变更

	// 游戏流程
	MsgRoundStart        MessageType = "round_start"         // 发牌完成，新一轮开始
	MsgEntryTurn         MessageType = "entry_turn"          // 轮到决定进圈
	MsgEntryDecided      MessageType = "entry_decided"       // 某座位已决定
	MsgExchangeTurn      MessageType = "exchange_turn"       // 轮到换牌
	MsgCardsExchanged    MessageType = "cards_exchanged"     // 某座位换牌完成
	MsgTrumpExchangeTurn MessageType = "trump_exchange_turn" // 轮到庄家换将
	MsgTrumpExchanged    MessageType = "trump_exchanged"     // 庄家换将结果
	MsgPlayTurn          MessageType = "play_turn"           // 轮到出牌
	MsgCardPlayed        MessageType = "card_played"         // 有人出牌
	MsgHouseDone         MessageType = "house_done"          // 一房结算
	MsgRoundResult       MessageType = "round_result"        // 一轮结算
	MsgGameOver          MessageType = "game_over"           // 整局结束
	MsgLegalPlays        MessageType = "legal_plays"         // 可出牌集合
	MsgGameState         MessageType = "game_state"          // 状态快照（按座位脱敏）

	// 聊天
	MsgChatBroadcast MessageType = "chat_broadcast" // 聊天转发

	// 大厅统计
	MsgOnlineCount MessageType = "online_count" // 在线人数

	// 错误
	MsgError MessageType = "error" // 错误消息
)
