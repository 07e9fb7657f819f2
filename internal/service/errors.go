package service

import (
	"errors"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/remote"
)

var (
	ErrMatchNotFound   = errors.New("match not found")
	ErrMatchNotReady   = errors.New("waiting for the opponent to join")
	ErrNameRequired    = errors.New("player name is required")
	ErrInvalidRoomCode = errors.New("invalid room code")
	ErrRoomsDisabled   = errors.New("networked rooms are not configured")
	ErrRoomFull        = errors.New("room already has two players")
	ErrPersistence     = errors.New("persistence unavailable")
	ErrRoomNotFound    = remote.ErrRoomNotFound
)
