package services

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"quizevent/models"

	"github.com/gorilla/websocket"
)

// Hub fans out submission results to websocket watchers. Each client watches
// a single quiz; a committed submission is broadcast to everyone watching
// that quiz.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

type Client struct {
	hub    *Hub
	socket *websocket.Conn
	send   chan []byte
	quizID uint
}

type resultMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// submissionSummary is the wire shape for a broadcast result. Answer details
// stay server-side; watchers only see who scored what.
type submissionSummary struct {
	SubmissionID uint      `json:"submission_id"`
	QuizID       uint      `json:"quiz_id"`
	UserID       uint      `json:"user_id"`
	Score        int       `json:"score"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			log.Printf("Results watcher registered for quiz %d (total watchers: %d)", client.quizID, h.watcherCount())

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mutex.Unlock()
		}
	}
}

func (h *Hub) watcherCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// SubmissionRecorded implements SubmissionNotifier. Broadcasting is
// best-effort: a slow watcher is dropped rather than blocking the workflow.
func (h *Hub) SubmissionRecorded(submission *models.Submission) {
	message := resultMessage{
		Type: "submission_recorded",
		Payload: submissionSummary{
			SubmissionID: submission.ID,
			QuizID:       submission.QuizID,
			UserID:       submission.UserID,
			Score:        submission.Score,
			SubmittedAt:  submission.CreatedAt,
		},
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling submission broadcast: %v", err)
		return
	}

	h.mutex.Lock()
	for client := range h.clients {
		if client.quizID != submission.QuizID {
			continue
		}
		select {
		case client.send <- data:
		default:
			close(client.send)
			delete(h.clients, client)
		}
	}
	h.mutex.Unlock()
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// RegisterClient attaches a websocket connection as a watcher of the given
// quiz and starts its pumps.
func (h *Hub) RegisterClient(conn *websocket.Conn, quizID uint) {
	client := &Client{
		hub:    h,
		socket: conn,
		send:   make(chan []byte, 16),
		quizID: quizID,
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.socket.Close()
	}()

	c.socket.SetReadLimit(512)
	c.socket.SetReadDeadline(time.Now().Add(pongWait))
	c.socket.SetPongHandler(func(string) error {
		return c.socket.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		// Watchers never send application messages; reads only service
		// control frames and detect disconnects.
		if _, _, err := c.socket.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.socket.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.socket.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.socket.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.socket.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.socket.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.socket.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
