package handler

import (
	"pawlink/backend/internal/chathub"
	"pawlink/backend/internal/config"
	"pawlink/backend/internal/storage"
)

// Handler wires the HTTP surface to the chat coordinator and storage.
type Handler struct {
	Hub     *chathub.CoordinatorService
	Storage storage.Storage
	Cfg     *config.Config
}

func NewHandler(hub *chathub.CoordinatorService, s storage.Storage, cfg *config.Config) *Handler {
	return &Handler{Hub: hub, Storage: s, Cfg: cfg}
}
