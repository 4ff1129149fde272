package handlers

import (
	"encoding/json"
	"testing"
	"time"

	"LandokProject/service/chat"
)

func setup(t *testing.T) (*chat.Server, *chat.Context) {
	t.Helper()
	s := chat.NewServer(chat.Config{})
	Register(s)
	return s, &chat.Context{S: s}
}

func addClient(s *chat.Server, id string) *chat.Client {
	c := chat.NewClient(id, nil, 8)
	s.Registry().Add(c)
	return c
}

func frame(t *testing.T, event string, payload any) *chat.Frame {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	return &chat.Frame{Event: event, Data: data}
}

func recv(t *testing.T, c *chat.Client) *chat.Frame {
	t.Helper()
	select {
	case raw := <-c.Send:
		f, err := chat.ParseFrameJSON(raw)
		if err != nil {
			t.Fatalf("bad frame delivered: %v", err)
		}
		return f
	case <-time.After(time.Second):
		t.Fatal("no frame delivered")
		return nil
	}
}

func TestJoinThenMessageRouting(t *testing.T) {
	s, ctx := setup(t)
	alice := addClient(s, "conn-alice")
	admin := addClient(s, "conn-admin")

	if err := s.Disp().Dispatch(ctx, frame(t, chat.EventJoinRoom, "alice"), alice); err != nil {
		t.Fatalf("joinRoom: %v", err)
	}
	if err := s.Disp().Dispatch(ctx, frame(t, chat.EventJoinRoom, "admin"), admin); err != nil {
		t.Fatalf("joinRoom: %v", err)
	}

	msg := chat.MessagePayload{Sender: "alice", Receiver: "admin", Content: "hello", Timestamp: "now"}
	if err := s.Disp().Dispatch(ctx, frame(t, chat.EventSendMessage, msg), alice); err != nil {
		t.Fatalf("sendMessage: %v", err)
	}

	f := recv(t, admin)
	if f.Event != chat.EventReceiveMessage {
		t.Errorf("expected receiveMessage, got %s", f.Event)
	}
	var got chat.MessagePayload
	if err := json.Unmarshal(f.Data, &got); err != nil {
		t.Fatal(err)
	}
	if got != msg {
		t.Errorf("payload altered in transit: %+v", got)
	}

	// Sender is not in room "admin"; nothing comes back to alice.
	select {
	case raw := <-alice.Send:
		t.Fatalf("sender must not receive its own routed message: %s", raw)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSendMessageRoutesByPayloadReceiver(t *testing.T) {
	s, ctx := setup(t)
	sender := addClient(s, "conn-s")
	bob := addClient(s, "conn-bob")
	s.Join("conn-s", "alice") // sender identity room is irrelevant to routing
	s.Join("conn-bob", "bob")

	msg := chat.MessagePayload{Sender: "alice", Receiver: "bob", Content: "hi"}
	if err := s.Disp().Dispatch(ctx, frame(t, chat.EventSendMessage, msg), sender); err != nil {
		t.Fatal(err)
	}
	if f := recv(t, bob); f.Event != chat.EventReceiveMessage {
		t.Errorf("expected receiveMessage, got %s", f.Event)
	}
}

func TestSendMessageMissingReceiver(t *testing.T) {
	s, ctx := setup(t)
	c := addClient(s, "conn-1")
	err := s.Disp().Dispatch(ctx, frame(t, chat.EventSendMessage, chat.MessagePayload{Sender: "x"}), c)
	if err == nil {
		t.Error("expected error for missing receiver")
	}
}

func TestSeenByAdminEchoedToUserRoom(t *testing.T) {
	s, ctx := setup(t)
	user := addClient(s, "conn-u")
	s.Join("conn-u", "user-9")
	admin := addClient(s, "conn-a")

	err := s.Disp().Dispatch(ctx, frame(t, chat.EventSeenByAdmin, chat.SeenPayload{User: "user-9"}), admin)
	if err != nil {
		t.Fatal(err)
	}

	f := recv(t, user)
	if f.Event != chat.EventSeenByAdmin {
		t.Errorf("expected seenByAdmin, got %s", f.Event)
	}
	var p chat.SeenPayload
	if err := json.Unmarshal(f.Data, &p); err != nil || p.User != "user-9" {
		t.Errorf("payload = %s err = %v", f.Data, err)
	}
}

func TestUnknownEventRejected(t *testing.T) {
	s, ctx := setup(t)
	c := addClient(s, "conn-1")
	if err := s.Disp().Dispatch(ctx, frame(t, "selfDestruct", 1), c); err == nil {
		t.Error("expected error for unregistered event")
	}
}
