package chathub

import (
	"encoding/json"
	"log"
	"time"

	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/models"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// WebSocketClient implements the Client interface over a gorilla/websocket
// connection.
type WebSocketClient struct {
	Identity string
	Conn     *websocket.Conn
	Hub      *ManagerService
	Send     chan models.Event
}

func (c *WebSocketClient) GetIdentity() string { return c.Identity }

func (c *WebSocketClient) GetSendChannel() chan<- models.Event { return c.Send }

// Run starts the read and write pumps.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close shuts down the Send channel, which stops the write pump.
func (c *WebSocketClient) Close() {
	close(c.Send)
	// readPump stops on its own once the connection closes.
}

func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message: %v", err)
			}
			break
		}

		var evt models.Event
		if err := json.Unmarshal(message, &evt); err != nil {
			log.Printf("Error decoding event from client %s: %v", c.Identity, err)
			continue
		}

		c.Hub.InboundCh <- Inbound{Client: c, Event: evt}
	}
}

func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case evt, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed by the hub.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(evt)
			if err != nil {
				log.Printf("Error encoding event for client %s: %v", c.Identity, err)
				continue
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(data)

			// Fold whatever else is already buffered into the same frame.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				extra, err := json.Marshal(<-c.Send)
				if err != nil {
					continue
				}
				w.Write(extra)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
