// Package protocol defines the cross-chain message contract shared by the
// poll factory (sender side) and the poll actor (receiver side). A message
// reproduces the validation and effect of its corresponding local operation
// on the chain that owns the poll; the routing substrate carries the acting
// identity explicitly, so no signer re-authentication happens at this layer.
package protocol

import (
	"encoding/json"
	"fmt"
)

type Kind string

const (
	KindInitializePoll Kind = "initialize_poll"
	KindNominate       Kind = "nominate"
	KindVote           Kind = "vote"
	KindStartVote      Kind = "start_vote"
	KindClosePoll      Kind = "close_poll"
)

// Message is the sealed set of cross-chain message variants.
type Message interface {
	Kind() Kind
}

// InitializePoll seeds a freshly spawned chain. Delivery is assumed
// exactly-once by the routing substrate: re-delivery silently resets the
// topic, admin, and phase flags of an already-initialized poll.
type InitializePoll struct {
	Topic         string `json:"topic"`
	VotesPerVoter uint32 `json:"votes_per_voter"`
	AdminID       string `json:"admin_id"`
}

func (InitializePoll) Kind() Kind { return KindInitializePoll }

type Nominate struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

func (Nominate) Kind() Kind { return KindNominate }

type Vote struct {
	UserID   string   `json:"user_id"`
	Rankings []string `json:"rankings"`
}

func (Vote) Kind() Kind { return KindVote }

type StartVote struct {
	UserID string `json:"user_id"`
}

func (StartVote) Kind() Kind { return KindStartVote }

type ClosePoll struct {
	UserID string `json:"user_id"`
}

func (ClosePoll) Kind() Kind { return KindClosePoll }

// Envelope is the wire shape a message travels in. TargetChain is the chain
// the routing substrate must deliver to; MessageID exists for logging and
// outbox bookkeeping, not for dedup.
type Envelope struct {
	MessageID   string          `json:"message_id"`
	TargetChain string          `json:"target_chain"`
	MessageKind Kind            `json:"kind"`
	Payload     json.RawMessage `json:"payload"`
}

// Encode wraps a message into an envelope addressed to targetChain.
func Encode(messageID string, targetChain string, message Message) (Envelope, error) {
	payload, err := json.Marshal(message)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s message: %w", message.Kind(), err)
	}
	return Envelope{
		MessageID:   messageID,
		TargetChain: targetChain,
		MessageKind: message.Kind(),
		Payload:     payload,
	}, nil
}

// Decode restores the typed message variant from an envelope. Unknown kinds
// are an error so every variant gets exhaustive handling downstream.
func Decode(envelope Envelope) (Message, error) {
	switch envelope.MessageKind {
	case KindInitializePoll:
		var message InitializePoll
		if err := json.Unmarshal(envelope.Payload, &message); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", envelope.MessageKind, err)
		}
		return message, nil
	case KindNominate:
		var message Nominate
		if err := json.Unmarshal(envelope.Payload, &message); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", envelope.MessageKind, err)
		}
		return message, nil
	case KindVote:
		var message Vote
		if err := json.Unmarshal(envelope.Payload, &message); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", envelope.MessageKind, err)
		}
		return message, nil
	case KindStartVote:
		var message StartVote
		if err := json.Unmarshal(envelope.Payload, &message); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", envelope.MessageKind, err)
		}
		return message, nil
	case KindClosePoll:
		var message ClosePoll
		if err := json.Unmarshal(envelope.Payload, &message); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", envelope.MessageKind, err)
		}
		return message, nil
	default:
		return nil, fmt.Errorf("unknown message kind %q", envelope.MessageKind)
	}
}

// Marshal serializes an envelope for transport or outbox storage.
func Marshal(envelope Envelope) ([]byte, error) {
	return json.Marshal(envelope)
}

// Unmarshal restores an envelope from its wire bytes.
func Unmarshal(raw []byte) (Envelope, error) {
	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return Envelope{}, fmt.Errorf("unmarshal message envelope: %w", err)
	}
	return envelope, nil
}
