package socket

import (
	"log"

	socketio "github.com/googollee/go-socket.io"
)

// Server wraps the socket.io server. Clients join a per-user room after
// connecting; the HTTP boundary pushes match notifications into those rooms.
// Matching never depends on this channel being connected.
type Server struct {
	*socketio.Server
}

// NewServer initializes and returns a new socket.io server
func NewServer() *Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("Socket connected:", c.ID())
		return nil
	})

	// Clients announce who they are to receive their match events
	server.OnEvent("/", "join", func(c socketio.Conn, userID string) {
		if userID == "" {
			log.Println("Invalid userId in join request")
			return
		}
		c.Join(userRoom(userID))
	})

	server.OnError("/", func(c socketio.Conn, err error) {
		log.Println("Socket error:", err)
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("Socket disconnected:", reason)
	})

	return &Server{Server: server}
}

// NotifyMatch tells both users that their mutual like became a match.
func (s *Server) NotifyMatch(userA, userB string) {
	s.BroadcastToRoom("/", userRoom(userA), "newMatch", map[string]string{"userId": userB})
	s.BroadcastToRoom("/", userRoom(userB), "newMatch", map[string]string{"userId": userA})
}

func userRoom(userID string) string {
	return "user:" + userID
}
