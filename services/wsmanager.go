package services

import (
	"sync"

	"github.com/gorilla/websocket"
)

// wsClient сериализует записи в соединение: gorilla/websocket допускает
// не больше одного пишущего на соединение одновременно
type wsClient struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsClient) write(message []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, message)
}

// WSConnManager хранит открытые WebSocket-соединения по пользователям.
// Один пользователь может держать несколько соединений (вкладки, устройства).
type WSConnManager struct {
	mu    sync.RWMutex
	users map[int64][]*wsClient
}

func NewWSConnManager() *WSConnManager {
	return &WSConnManager{
		users: make(map[int64][]*wsClient),
	}
}

func (m *WSConnManager) Add(userID int64, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[userID] = append(m.users[userID], &wsClient{conn: conn})
}

func (m *WSConnManager) Remove(userID int64, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	clients := m.users[userID]
	for i, client := range clients {
		if client.conn == conn {
			m.users[userID] = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(m.users[userID]) == 0 {
		delete(m.users, userID)
	}
}

// Send пишет сообщение во все соединения пользователя, ошибки игнорируются
func (m *WSConnManager) Send(userID int64, message []byte) {
	m.mu.RLock()
	clients := make([]*wsClient, len(m.users[userID]))
	copy(clients, m.users[userID])
	m.mu.RUnlock()

	for _, client := range clients {
		_ = client.write(message)
	}
}

func (m *WSConnManager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for userID, clients := range m.users {
		for _, client := range clients {
			_ = client.conn.Close()
		}
		delete(m.users, userID)
	}
}
