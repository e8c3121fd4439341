package apperrors

import (
	"github.com/palemoky/mushig/internal/protocol"
)

// GameError 游戏错误（房间和会话共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrRoomNotFound    = &GameError{Code: protocol.ErrCodeRoomNotFound, Message: "房间不存在"}
	ErrRoomFull        = &GameError{Code: protocol.ErrCodeRoomFull, Message: "房间已满"}
	ErrNotInRoom       = &GameError{Code: protocol.ErrCodeNotInRoom, Message: "您不在房间中"}
	ErrSeatUnavailable = &GameError{Code: protocol.ErrCodeSeatUnavailable, Message: "没有可加入的座位"}
	ErrInvalidPhase    = &GameError{Code: protocol.ErrCodeInvalidPhase, Message: "当前阶段不能进行该操作"}
	ErrNotYourTurn     = &GameError{Code: protocol.ErrCodeNotYourTurn, Message: "还没轮到您"}
	ErrIllegalCard     = &GameError{Code: protocol.ErrCodeIllegalCard, Message: "这张牌现在不能出"}
	ErrOutOfBounds     = &GameError{Code: protocol.ErrCodeOutOfBounds, Message: "牌的序号不合法"}
)
