package websocket

import "github.com/cristianortiz/iplAuctioneer/internal/auction/application"

// MessageType defines ws type message
type MessageType string

const (
	MessageTypeClientProposeBid MessageType = "client_propose_bid" // auctioneer typed a candidate price
	MessageTypeClientCommit     MessageType = "client_commit"      // confirm assignment of current player to a team
	MessageTypeClientMarkUnsold MessageType = "client_mark_unsold" // record current player as unsold
	MessageTypeClientCancel     MessageType = "client_cancel"      // drop the pending proposal
	MessageTypeClientCorrect    MessageType = "client_correct"     // replace a past decision
	MessageTypeServerSnapshot   MessageType = "server_snapshot"    // full engine view after every state change
	MessageTypeServerError      MessageType = "server_error"       // server msg indicating error
)

// BaseMessage is base struct for all the WS messages, includes a Type field
// for identify the message type
type BaseMessage struct {
	Type MessageType `json:"type"`
}

// ClientProposeBidMessage carries a candidate price for the current player
type ClientProposeBidMessage struct {
	BaseMessage
	Payload struct {
		Price float64 `json:"price"`
	} `json:"payload"`
}

// ClientCommitMessage confirms the current player going to a team at a price
type ClientCommitMessage struct {
	BaseMessage
	Payload struct {
		Team  string  `json:"team"`
		Price float64 `json:"price"`
	} `json:"payload"`
}

// ClientMarkUnsoldMessage records the current player as unsold, no payload
type ClientMarkUnsoldMessage struct {
	BaseMessage
}

// ClientCancelMessage drops the pending proposal, no payload
type ClientCancelMessage struct {
	BaseMessage
}

// ClientCorrectMessage replaces the decision at a processed ledger index
type ClientCorrectMessage struct {
	BaseMessage
	Payload struct {
		Index int     `json:"index"`
		Team  string  `json:"team"`
		Price float64 `json:"price"`
	} `json:"payload"`
}

// ServerSnapshotMessage broadcasts the fresh engine view to the session group
type ServerSnapshotMessage struct {
	BaseMessage
	Payload struct {
		Snapshot *application.SnapshotDTO `json:"snapshot"`
	} `json:"payload"`
}

type ServerErrorMessage struct {
	BaseMessage
	Payload struct {
		Error string `json:"error"`
	} `json:"payload"`
}
