package handlers

import (
	"encoding/json"

	"LandokProject/logger"
	"LandokProject/service/chat"

	"github.com/pkg/errors"
)

// SendMessageHandler re-emits an inbound chat message as receiveMessage to
// the room named by the payload's own receiver field. The stated
// destination is trusted; persistence is the HTTP chat route's job.
type SendMessageHandler struct{}

func NewSendMessageHandler() chat.Handler { return &SendMessageHandler{} }

func (h *SendMessageHandler) Event() string { return chat.EventSendMessage }

func (h *SendMessageHandler) Handle(ctx *chat.Context, f *chat.Frame, c *chat.Client) error {
	var msg chat.MessagePayload
	if err := json.Unmarshal(f.Data, &msg); err != nil {
		return err
	}
	if msg.Receiver == "" {
		return errors.New("sendMessage missing receiver")
	}
	ctx.S.EmitRoom(msg.Receiver, chat.EventReceiveMessage, msg)
	logger.Infof("[ws] message routed to room=%s", msg.Receiver)
	return nil
}
