package handlers

import (
	"encoding/json"

	"LandokProject/logger"
	"LandokProject/service/chat"
)

// JoinRoomHandler puts the connection into the room named by the payload.
// Clients join the room of their own identity to receive addressed events;
// the admin UI joins "admin".
type JoinRoomHandler struct{}

func NewJoinRoomHandler() chat.Handler { return &JoinRoomHandler{} }

func (h *JoinRoomHandler) Event() string { return chat.EventJoinRoom }

func (h *JoinRoomHandler) Handle(ctx *chat.Context, f *chat.Frame, c *chat.Client) error {
	var userID string
	if err := json.Unmarshal(f.Data, &userID); err != nil {
		return err
	}
	ctx.S.Join(c.ConnID, userID)
	logger.Infof("[ws] connID=%s joined room=%s", c.ConnID, userID)
	return nil
}
