package server

import (
	"net/http"
	"time"

	"github.com/Noquela/Sands-of-Duat-sub000/internal/domain"
	"github.com/Noquela/Sands-of-Duat-sub000/internal/engine"
	"github.com/Noquela/Sands-of-Duat-sub000/pkg/api"
	"github.com/Noquela/Sands-of-Duat-sub000/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и CombatService
type Client struct {
	Service  *engine.CombatService
	Conn     *websocket.Conn
	Send     chan *api.ServerResponse
	EntityID domain.EntityID
	CombatID string
}

func NewClient(service *engine.CombatService, conn *websocket.Conn) *Client {
	return &Client{
		Service:  service,
		Conn:     conn,
		Send:     make(chan *api.ServerResponse, 256),
		EntityID: domain.NoEntity,
	}
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		if c.EntityID != domain.NoEntity {
			c.Service.Hub.Unregister(c.EntityID)
			// Без подписчика ход сущности возьмет на себя AI
			if combat := c.Service.GetCombat(c.CombatID); combat != nil {
				combat.DetachController(c.EntityID)
			}
			logger.Log.WithField("entity_id", c.EntityID).Info("Client disconnected")
		}
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Warn("failed to close websocket connection")
		}
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// 1. HANDSHAKE: клиент называет бой и сущность, которой управляет
	var loginCmd api.ClientCommand
	if err := c.Conn.ReadJSON(&loginCmd); err != nil {
		logger.Log.Warn("Handshake failed")
		return
	}

	entityID, ok := domain.ParseEntityID(loginCmd.Token)
	if !ok {
		logger.Log.WithField("token", loginCmd.Token).Warn("Bad entity token in handshake")
		return
	}

	combat := c.Service.GetCombat(loginCmd.CombatID)
	if combat == nil {
		logger.Log.WithField("combat_id", loginCmd.CombatID).Warn("Unknown combat in handshake")
		return
	}

	name, ok := combat.AttachController(entityID, "session_"+entityID.String())
	if !ok {
		logger.Log.WithField("entity_id", entityID).Warn("Unknown entity in handshake")
		return
	}

	c.EntityID = entityID
	c.CombatID = combat.ID

	logger.Log.WithFields(logrus.Fields{
		"combat_id": combat.ID,
		"entity_id": entityID,
		"name":      name,
	}).Info("Client logged in")

	// 2. ПОДПИСКА НА ОБНОВЛЕНИЯ
	updates := c.Service.Hub.Register(entityID)

	go func() {
		for msg := range updates {
			c.Send <- msg
		}
		close(c.Send)
	}()

	// Первый снимок сразу, не дожидаясь хода
	c.Service.Hub.SendTo(entityID, combat.Snapshot(entityID))

	// 3. ЦИКЛ ЧТЕНИЯ КОМАНД
	for {
		var cmd api.ClientCommand
		err := c.Conn.ReadJSON(&cmd)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Errorf("WS Error: %v", err)
			}
			break
		}

		// Клиент не может говорить за чужую сущность или чужой бой
		cmd.Token = c.EntityID.String()
		cmd.CombatID = c.CombatID

		if err := c.Service.ProcessCommand(cmd); err != nil {
			logger.Log.WithError(err).Debug("Command rejected")
		}
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Warn("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
