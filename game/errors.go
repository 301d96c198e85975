package game

import "errors"

var (
	ErrRoomNotFound   = errors.New("Room not found")
	ErrRoomFull       = errors.New("Room full")
	ErrGameInProgress = errors.New("Game already in progress")
	ErrNicknameTaken  = errors.New("Nickname already taken")
	ErrSendBufferFull = errors.New("Send buffer full")
)
