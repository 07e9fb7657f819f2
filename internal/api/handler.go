package api

import (
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/service"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/storage"
)

// MatchHandler groups the match, room and player HTTP handlers.
type MatchHandler struct {
	svc *service.Manager
	// repo may be nil; player endpoints then answer 503.
	repo storage.Repository
}

func NewMatchHandler(svc *service.Manager, repo storage.Repository) *MatchHandler {
	return &MatchHandler{svc: svc, repo: repo}
}
