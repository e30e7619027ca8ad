package network

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/gorilla/websocket"
)

const (
	// ClientIDMaxRetries represents the maximum number of retries when generating a unique ID
	ClientIDMaxRetries = 1024
	// ClientSendBufferSize is the number of frames buffered per client before frames are dropped
	ClientSendBufferSize = 16
)

type Format int

const (
	// FormatBinary sends compressed flatbuffer frames
	FormatBinary Format = iota
	// FormatJSON sends JSON text frames
	FormatJSON
)

// Client represents a connected overlay
type Client struct {
	ID     uint32
	Conn   *websocket.Conn
	Format Format

	send chan []byte
}

// ClientManager manages connected clients
type ClientManager struct {
	clients     map[uint32]*Client
	clientsLock sync.RWMutex
}

// NewClientManager creates a new ClientManager
func NewClientManager() *ClientManager {
	return &ClientManager{
		clients: make(map[uint32]*Client),
	}
}

// GetClients returns a slice of all connected clients.
func (cm *ClientManager) GetClients() []*Client {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()

	clients := make([]*Client, 0, len(cm.clients))
	for _, c := range cm.clients {
		clients = append(clients, c)
	}
	return clients
}

func (cm *ClientManager) Count() int {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	return len(cm.clients)
}

// ConnectClient registers a connection under a new unique ID.
func (cm *ClientManager) ConnectClient(conn *websocket.Conn, format Format) (*Client, error) {
	cm.clientsLock.Lock()
	defer cm.clientsLock.Unlock()

	id, err := cm.generateUniqueID()
	if err != nil {
		return nil, err
	}

	client := &Client{
		ID:     id,
		Conn:   conn,
		Format: format,
		send:   make(chan []byte, ClientSendBufferSize),
	}
	cm.clients[id] = client
	return client, nil
}

// DisconnectClient removes a client and closes its send channel. It is safe
// to call more than once.
func (cm *ClientManager) DisconnectClient(clientID uint32) {
	cm.clientsLock.Lock()
	defer cm.clientsLock.Unlock()

	client, ok := cm.clients[clientID]
	if !ok {
		return
	}
	delete(cm.clients, clientID)
	close(client.send)
}

// Enqueue queues a frame for a client. It reports false when the client's
// buffer is full or the client is gone.
func (cm *ClientManager) Enqueue(clientID uint32, frame []byte) bool {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()

	client, ok := cm.clients[clientID]
	if !ok {
		return false
	}
	select {
	case client.send <- frame:
		return true
	default:
		return false
	}
}

// generateUniqueID must be called with the lock held.
func (cm *ClientManager) generateUniqueID() (uint32, error) {
	for i := 0; i < ClientIDMaxRetries; i++ {
		id := rand.Uint32()
		if id == 0 {
			continue
		}
		if _, ok := cm.clients[id]; !ok {
			return id, nil
		}
	}
	return 0, fmt.Errorf("failed to generate a unique client id after %d retries", ClientIDMaxRetries)
}
