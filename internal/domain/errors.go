package domain

import "errors"

// Domain errors
var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomFull         = errors.New("room is full")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrInvalidPhase     = errors.New("invalid action for current phase")
	ErrNotHost          = errors.New("only the host can perform this action")
	ErrNotDrawer        = errors.New("only the drawer can perform this action")
	ErrNotEnoughPlayers = errors.New("not enough players to start")
	ErrInvalidWord      = errors.New("word is not one of the offered choices")
	ErrInvalidSettings  = errors.New("settings value out of range")
)
