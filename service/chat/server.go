package chat

import (
	"LandokProject/logger"
)

// Config for the realtime server.
type Config struct {
	AllowedOrigins []string
	SendQueueSize  int // per-client outbound queue; <=0 => 64
	FanoutWorkers  int // <=0 => 4
	FanoutQueue    int // <=0 => 256
}

func (c *Config) norm() {
	if c.SendQueueSize <= 0 {
		c.SendQueueSize = 64
	}
	if c.FanoutWorkers <= 0 {
		c.FanoutWorkers = 4
	}
	if c.FanoutQueue <= 0 {
		c.FanoutQueue = 256
	}
}

// Server owns the connection registry, the event dispatcher and the fanout
// pool. It is built once in main and handed to every collaborator that
// emits events; there is no global accessor.
type Server struct {
	conf     Config
	registry *Registry
	fanout   *Fanout
	disp     *Dispatcher
	origins  map[string]bool
}

func NewServer(conf Config) *Server {
	conf.norm()
	origins := make(map[string]bool, len(conf.AllowedOrigins))
	for _, o := range conf.AllowedOrigins {
		origins[o] = true
	}
	return &Server{
		conf:     conf,
		registry: NewRegistry(),
		fanout:   NewFanout(conf.FanoutWorkers, conf.FanoutQueue),
		disp:     NewDispatcher(),
		origins:  origins,
	}
}

func (s *Server) Disp() *Dispatcher   { return s.disp }
func (s *Server) Registry() *Registry { return s.registry }

// Join adds a connection to a room (idempotent).
func (s *Server) Join(connID, room string) {
	s.registry.Join(connID, room)
}

// EmitRoom delivers payload under event to every member of room.
// An empty room is a silent no-op; undelivered frames are lost.
func (s *Server) EmitRoom(room, event string, payload any) {
	conns := s.registry.Room(room)
	if len(conns) == 0 {
		return
	}
	raw, err := EncodeFrameJSON(event, payload)
	if err != nil {
		logger.Errorf("[chat] encode event=%s failed: %v", event, err)
		return
	}
	s.fanout.Broadcast(conns, raw)
}

// Broadcast delivers payload under event to every live connection,
// regardless of room membership.
func (s *Server) Broadcast(event string, payload any) {
	conns := s.registry.All()
	if len(conns) == 0 {
		return
	}
	raw, err := EncodeFrameJSON(event, payload)
	if err != nil {
		logger.Errorf("[chat] encode event=%s failed: %v", event, err)
		return
	}
	s.fanout.Broadcast(conns, raw)
}

func (s *Server) originAllowed(origin string) bool {
	if origin == "" {
		// Non-browser clients send no Origin header; let them through.
		return true
	}
	return s.origins[origin]
}
