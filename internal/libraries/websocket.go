package libraries

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// WebSocketMessage represents the standard structure for all websocket messages
type WebSocketMessageType string

const (
	WebSocketMessageTypePing             WebSocketMessageType = "ping"
	WebSocketMessageTypePong             WebSocketMessageType = "pong"
	WebSocketMessageTypeError            WebSocketMessageType = "error"
	WebSocketMessageTypeSubscribe        WebSocketMessageType = "subscribe"
	WebSocketMessageTypeAnnotationsSaved WebSocketMessageType = "annotations_saved"
	WebSocketMessageTypeReportReady      WebSocketMessageType = "report_ready"
)

type Client struct {
	ID        string
	DrawingID string
	Conn      *websocket.Conn
	Send      chan []byte
	once      sync.Once
}

type Hub struct {
	Clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan []byte

	subscribe chan subscription
	targeted  chan targetedMessage
}

type subscription struct {
	client    *Client
	drawingID string
}

// targetedMessage goes only to clients subscribed to the drawing.
type targetedMessage struct {
	drawingID string
	data      []byte
}

type WebSocketMessage struct {
	Type WebSocketMessageType `json:"type"`
	Data interface{}          `json:"data,omitempty"`
}

type SubscribePayload struct {
	DrawingID string `json:"drawing_id"`
}

// AnnotationsSavedPayload notifies viewers of a drawing that a page was saved
type AnnotationsSavedPayload struct {
	DrawingID string `json:"drawing_id"`
	Page      int    `json:"page"`
	Count     int    `json:"count"`
}

type ReportReadyPayload struct {
	DrawingID string `json:"drawing_id"`
	TradeType string `json:"trade_type"`
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan []byte),
		subscribe:  make(chan subscription),
		targeted:   make(chan targetedMessage),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client.ID] = client
		case client := <-h.Unregister:
			h.drop(client)
		case sub := <-h.subscribe:
			sub.client.DrawingID = sub.drawingID
		case message := <-h.Broadcast:
			for _, client := range h.Clients {
				h.deliver(client, message)
			}
		case message := <-h.targeted:
			for _, client := range h.Clients {
				if client.DrawingID == message.drawingID {
					h.deliver(client, message.data)
				}
			}
		}
	}
}

// deliver never blocks the hub loop: a client whose buffer is full is
// dropped so one stalled connection cannot stall the broadcast path.
func (h *Hub) deliver(client *Client, message []byte) {
	select {
	case client.Send <- message:
	default:
		log.Println("dropping slow websocket client:", client.ID)
		h.drop(client)
	}
}

func (h *Hub) drop(client *Client) {
	if _, exists := h.Clients[client.ID]; exists {
		delete(h.Clients, client.ID)
		client.once.Do(func() {
			close(client.Send)
		})
	}
}

func (h *Hub) BroadcastMessage(message []byte) {
	h.Broadcast <- message
}

func (h *Hub) SendMessage(client *Client, message []byte) {
	client.Send <- message
}

// BroadcastAnnotationsSaved tells clients subscribed to the drawing that a
// page was saved so open viewers can reload it.
func (h *Hub) BroadcastAnnotationsSaved(drawingID string, page, count int) {
	msg := WebSocketMessage{
		Type: WebSocketMessageTypeAnnotationsSaved,
		Data: &AnnotationsSavedPayload{
			DrawingID: drawingID,
			Page:      page,
			Count:     count,
		},
	}
	bytes, err := json.Marshal(msg)
	if err != nil {
		log.Println("failed to marshal annotations saved message:", err)
		return
	}
	h.targeted <- targetedMessage{drawingID: drawingID, data: bytes}
}

func (h *Hub) BroadcastReportReady(drawingID, tradeType string) {
	msg := WebSocketMessage{
		Type: WebSocketMessageTypeReportReady,
		Data: &ReportReadyPayload{
			DrawingID: drawingID,
			TradeType: tradeType,
		},
	}
	bytes, err := json.Marshal(msg)
	if err != nil {
		log.Println("failed to marshal report ready message:", err)
		return
	}
	h.targeted <- targetedMessage{drawingID: drawingID, data: bytes}
}

// SendErrorMessage sends a standardized error message to a client
func SendErrorMessage(hub *Hub, client *Client, errorMsg string) {
	errorResp := WebSocketMessage{
		Type: WebSocketMessageTypeError,
		Data: &ErrorPayload{Message: errorMsg},
	}
	errorBytes, err := json.Marshal(errorResp)
	if err != nil {
		log.Println("failed to marshal error response:", err)
		return
	}
	hub.SendMessage(client, errorBytes)
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// sendPongMessage sends a standardized pong message to a client
func sendPongMessage(hub *Hub, client *Client) {
	pongResp := WebSocketMessage{
		Type: WebSocketMessageTypePong,
	}
	pongBytes, err := json.Marshal(pongResp)
	if err != nil {
		log.Println("failed to marshal pong response:", err)
		return
	}
	hub.SendMessage(client, pongBytes)
}

// parseWebSocketMessage parses incoming websocket message and returns the message structure
func parseWebSocketMessage(msg []byte) (*WebSocketMessage, error) {
	var rawMessage struct {
		Type WebSocketMessageType `json:"type"`
		Data json.RawMessage      `json:"data,omitempty"`
	}
	if err := json.Unmarshal(msg, &rawMessage); err != nil {
		return nil, err
	}

	message := &WebSocketMessage{
		Type: rawMessage.Type,
	}

	if len(rawMessage.Data) > 0 {
		switch rawMessage.Type {
		case WebSocketMessageTypeSubscribe:
			var payload SubscribePayload
			if err := json.Unmarshal(rawMessage.Data, &payload); err != nil {
				return nil, err
			}
			message.Data = &payload
		default:
			var data interface{}
			if err := json.Unmarshal(rawMessage.Data, &data); err != nil {
				return nil, err
			}
			message.Data = data
		}
	}

	return message, nil
}

func WebSocketHandler(hub *Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client := &Client{
			ID:   uuid.NewString(),
			Conn: conn,
			Send: make(chan []byte, 256),
		}

		hub.Register <- client

		// Write loop
		go func() {
			defer func() {
				hub.Unregister <- client
				conn.Close()
			}()
			for msg := range client.Send {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					log.Println("write error:", err)
					return
				}
			}
		}()

		// Read loop
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				log.Println("read error:", err)
				break
			}

			message, err := parseWebSocketMessage(msg)
			if err != nil {
				log.Println("failed to parse JSON:", err)
				SendErrorMessage(hub, client, "Invalid JSON format")
				continue
			}

			switch message.Type {
			case WebSocketMessageTypePing:
				sendPongMessage(hub, client)
			case WebSocketMessageTypeSubscribe:
				payload, ok := message.Data.(*SubscribePayload)
				if !ok || payload.DrawingID == "" {
					SendErrorMessage(hub, client, "Drawing ID is required")
					continue
				}
				// routed through the hub loop, which owns DrawingID
				hub.subscribe <- subscription{client: client, drawingID: payload.DrawingID}
			default:
				SendErrorMessage(hub, client, "Type is invalid or not provided")
			}
		}

		hub.Unregister <- client
		conn.Close()
	})
}
