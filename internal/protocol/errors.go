package protocol

// 错误码
const (
	ErrCodeUnknown    = 1000
	ErrCodeInvalidMsg = 1001

	ErrCodeRoomNotFound    = 2001
	ErrCodeRoomFull        = 2002
	ErrCodeNotInRoom       = 2003
	ErrCodeSeatUnavailable = 2004 // 无机器人座位可顶替或加入时机不对

	ErrCodeInvalidPhase = 3001 // 当前阶段不允许该操作
	ErrCodeNotYourTurn  = 3002
	ErrCodeIllegalCard  = 3003 // 出牌不在合法集合内
	ErrCodeOutOfBounds  = 3004 // 下标超出手牌/树范围
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:         "未知错误",
	ErrCodeInvalidMsg:      "无效的消息格式",
	ErrCodeRoomNotFound:    "房间不存在",
	ErrCodeRoomFull:        "房间已满",
	ErrCodeNotInRoom:       "您不在房间中",
	ErrCodeSeatUnavailable: "没有可加入的座位",
	ErrCodeInvalidPhase:    "当前阶段不能进行该操作",
	ErrCodeNotYourTurn:     "还没轮到您",
	ErrCodeIllegalCard:     "这张牌现在不能出",
	ErrCodeOutOfBounds:     "牌的序号不合法",
}
