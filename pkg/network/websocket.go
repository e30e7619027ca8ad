package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cbodonnell/worldlens/pkg/game/types"
	"github.com/cbodonnell/worldlens/pkg/log"
	"github.com/cbodonnell/worldlens/pkg/messages"
	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// WSServer streams snapshots to overlay clients over WebSocket.
type WSServer struct {
	port    int
	tls     *TLSConfig
	clients *ClientManager
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewWSServerOptions struct {
	Port int
	TLS  *TLSConfig
}

// NewWSServer creates a new WebSocket server.
func NewWSServer(opts NewWSServerOptions) *WSServer {
	return &WSServer{
		port:    opts.Port,
		tls:     opts.TLS,
		clients: NewClientManager(),
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (s *WSServer) Clients() *ClientManager {
	return s.clients
}

// Handler upgrades requests to WebSocket connections. Clients pick JSON text
// frames with ?format=json, otherwise they receive binary frames.
func (s *WSServer) Handler(ctx context.Context) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		format := FormatBinary
		if r.URL.Query().Get("format") == "json" {
			format = FormatJSON
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("Failed to upgrade to WebSocket: %v", err)
			return
		}

		client, err := s.clients.ConnectClient(conn, format)
		if err != nil {
			log.Error("Failed to connect client: %v", err)
			conn.Close()
			return
		}
		log.Info("Client %d connected from %s", client.ID, conn.RemoteAddr().String())

		go s.writePump(client)
		go s.readPump(ctx, client)
	})
}

// Start starts the WebSocket server and blocks until ctx is done.
func (s *WSServer) Start(ctx context.Context) {
	mux := http.NewServeMux()
	mux.Handle("/", s.Handler(ctx))

	addr := fmt.Sprintf(":%d", s.port)
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	var listenAndServe func() error
	if s.tls != nil {
		log.Info("WebSocket server listening on %s with TLS", addr)
		listenAndServe = func() error {
			return server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("WebSocket server listening on %s", addr)
		listenAndServe = server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("WebSocket server closed")
			return
		}
		log.Error("WebSocket server error: %v", err)
	}
}

// readPump discards client input and disconnects the client when the
// connection closes or ctx is done.
func (s *WSServer) readPump(ctx context.Context, client *Client) {
	done := make(chan struct{})
	defer func() {
		close(done)
		s.clients.DisconnectClient(client.ID)
		log.Info("Client %d disconnected", client.ID)
	}()

	go func() {
		select {
		case <-ctx.Done():
			client.Conn.Close()
		case <-done:
		}
	}()

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("Error reading from client %d: %v", client.ID, err)
			}
			return
		}
	}
}

func (s *WSServer) writePump(client *Client) {
	defer client.Conn.Close()

	for frame := range client.send {
		messageType := websocket.BinaryMessage
		if client.Format == FormatJSON {
			messageType = websocket.TextMessage
		}
		client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.Conn.WriteMessage(messageType, frame); err != nil {
			log.Debug("Failed to write to client %d: %v", client.ID, err)
			return
		}
	}
	client.Conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
}

// Broadcast sends a snapshot to every connected client in the format it
// asked for. Each encoding is produced at most once. Slow clients drop frames.
func (s *WSServer) Broadcast(snapshot *types.Snapshot) error {
	clients := s.clients.GetClients()
	if len(clients) == 0 {
		return nil
	}

	var binary, text []byte
	for _, client := range clients {
		var frame []byte
		switch client.Format {
		case FormatJSON:
			if text == nil {
				b, err := json.Marshal(snapshot)
				if err != nil {
					return fmt.Errorf("failed to marshal snapshot: %w", err)
				}
				text = b
			}
			frame = text
		default:
			if binary == nil {
				b, err := messages.SerializeSnapshot(snapshot)
				if err != nil {
					return fmt.Errorf("failed to serialize snapshot: %w", err)
				}
				binary = b
			}
			frame = binary
		}
		if !s.clients.Enqueue(client.ID, frame) {
			log.Trace("Dropped snapshot %d for client %d", snapshot.Tick, client.ID)
		}
	}
	return nil
}
