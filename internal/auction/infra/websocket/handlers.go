package websocket

import (
	"context"
	"encoding/json"

	"github.com/cristianortiz/iplAuctioneer/internal/auction/application"
	"github.com/cristianortiz/iplAuctioneer/internal/shared/logger"
	"github.com/cristianortiz/iplAuctioneer/internal/shared/websocket"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// AuctionWSHandler handles the ws inbound msgs wich are specific for the
// auction module, every auctioneer intent is dispatched synchronously to the
// application service and the fresh snapshot goes back to the session group
type AuctionWSHandler struct {
	auctionService application.AuctionService // application layer dependency
	hub            *websocket.Hub             // shared hub dependency to send msgs
}

// NewAuctionWSHandler creates a new instance of AuctionWSHandler
func NewAuctionWSHandler(auctionService application.AuctionService, hub *websocket.Hub) *AuctionWSHandler {
	return &AuctionWSHandler{
		auctionService: auctionService,
		hub:            hub,
	}
}

// ListenForMessages starts a goroutine that listens the Hub inbound channel
// for messages and processes every one of them
func (h *AuctionWSHandler) ListenForMessages(ctx context.Context) {
	log.Info("AuctionWSHandler started listening for inbound messages from hub")
	for {
		select {
		case <-ctx.Done():
			log.Info("AuctionWSHandler stopped listening for inbound messages from hub")
			return
		case msg := <-h.hub.InboundMessages:
			go h.processMessage(ctx, msg.Client, msg.Data)
		}
	}
}

// processMessage dispatches the message by its type
func (h *AuctionWSHandler) processMessage(ctx context.Context, client *websocket.Client, data []byte) {
	var baseMsg BaseMessage
	if err := json.Unmarshal(data, &baseMsg); err != nil {
		h.sendErrorToClient(client, "invalid message format")
		return
	}
	switch baseMsg.Type {
	case MessageTypeClientProposeBid:
		h.handleProposeBid(ctx, client, data)
	case MessageTypeClientCommit:
		h.handleCommit(ctx, client, data)
	case MessageTypeClientMarkUnsold:
		h.handleMarkUnsold(ctx, client)
	case MessageTypeClientCancel:
		h.handleCancel(ctx, client)
	case MessageTypeClientCorrect:
		h.handleCorrect(ctx, client, data)
	default:
		h.sendErrorToClient(client, "unknown message type")
	}
}

func (h *AuctionWSHandler) handleProposeBid(ctx context.Context, client *websocket.Client, data []byte) {
	var msg ClientProposeBidMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		h.sendErrorToClient(client, "invalid propose bid message format")
		return
	}

	snap, err := h.auctionService.ProposeBid(ctx, msg.Payload.Price)
	if err != nil {
		h.sendErrorToClient(client, err.Error())
		return
	}
	h.broadcastSnapshot(client, snap)
}

func (h *AuctionWSHandler) handleCommit(ctx context.Context, client *websocket.Client, data []byte) {
	var msg ClientCommitMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		h.sendErrorToClient(client, "invalid commit message format")
		return
	}

	snap, err := h.auctionService.Commit(ctx, msg.Payload.Team, msg.Payload.Price)
	if err != nil {
		h.sendErrorToClient(client, err.Error())
		return
	}
	h.broadcastSnapshot(client, snap)
}

func (h *AuctionWSHandler) handleMarkUnsold(ctx context.Context, client *websocket.Client) {
	snap, err := h.auctionService.MarkUnsold(ctx)
	if err != nil {
		h.sendErrorToClient(client, err.Error())
		return
	}
	h.broadcastSnapshot(client, snap)
}

func (h *AuctionWSHandler) handleCancel(ctx context.Context, client *websocket.Client) {
	snap, err := h.auctionService.CancelBid(ctx)
	if err != nil {
		h.sendErrorToClient(client, err.Error())
		return
	}
	h.broadcastSnapshot(client, snap)
}

func (h *AuctionWSHandler) handleCorrect(ctx context.Context, client *websocket.Client, data []byte) {
	var msg ClientCorrectMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		h.sendErrorToClient(client, "invalid correct message format")
		return
	}

	snap, err := h.auctionService.Correct(ctx, msg.Payload.Index, msg.Payload.Team, msg.Payload.Price)
	if err != nil {
		h.sendErrorToClient(client, err.Error())
		return
	}
	h.broadcastSnapshot(client, snap)
}

// broadcastSnapshot serializes the snapshot and sends it to every client in
// the session group
func (h *AuctionWSHandler) broadcastSnapshot(client *websocket.Client, snap *application.SnapshotDTO) {
	msg := ServerSnapshotMessage{
		BaseMessage: BaseMessage{Type: MessageTypeServerSnapshot},
	}
	msg.Payload.Snapshot = snap

	data, err := json.Marshal(msg)
	if err != nil {
		log.Error("failed to marshal ServerSnapshotMessage", zap.Error(err))
		h.sendErrorToClient(client, "failed to serialize snapshot")
		return
	}
	h.hub.BroadcastToSession(client.SessionID, data)
}

// sendErrorToClient serializes and sends an error msg to a specific client
func (h *AuctionWSHandler) sendErrorToClient(client *websocket.Client, errorMessage string) {
	errMsg := ServerErrorMessage{
		BaseMessage: BaseMessage{MessageTypeServerError},
	}
	errMsg.Payload.Error = errorMessage
	data, err := json.Marshal(errMsg)
	if err != nil {
		log.Error("failed to marshal ServerErrorMessage", zap.Error(err))
		return
	}
	select {
	case client.Send <- data:
		log.Debug("sent error message to client")
	default:
		log.Warn("client send channel full or closed, could not send error msg")
	}
}
