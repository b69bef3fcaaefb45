package game

import "errors"

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomNotJoinable = errors.New("room is not accepting players")
	ErrNeedMorePlayers = errors.New("need at least 2 players to start")
	ErrMissingColors   = errors.New("every player needs an assigned color")
)
