package handlers

import (
	"LandokProject/service/chat"
)

// Register wires the default inbound handlers into the server.
func Register(s *chat.Server) {
	s.Disp().Register(NewJoinRoomHandler())
	s.Disp().Register(NewSendMessageHandler())
	s.Disp().Register(NewSeenByAdminHandler())
}
