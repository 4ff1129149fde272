package handlers

import (
	"encoding/json"

	"LandokProject/service/chat"

	"github.com/pkg/errors"
)

// SeenByAdminHandler notifies a user's room that the admin has read their
// messages. Echoed under the same event name it arrived with.
type SeenByAdminHandler struct{}

func NewSeenByAdminHandler() chat.Handler { return &SeenByAdminHandler{} }

func (h *SeenByAdminHandler) Event() string { return chat.EventSeenByAdmin }

func (h *SeenByAdminHandler) Handle(ctx *chat.Context, f *chat.Frame, c *chat.Client) error {
	var p chat.SeenPayload
	if err := json.Unmarshal(f.Data, &p); err != nil {
		return err
	}
	if p.User == "" {
		return errors.New("seenByAdmin missing user")
	}
	ctx.S.EmitRoom(p.User, chat.EventSeenByAdmin, p)
	return nil
}
