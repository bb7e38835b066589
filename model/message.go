package model

import (
	"strings"

	"github.com/teranos/a2ml/errors"
)

// Direction of a message relative to the engine.
type Direction string

const (
	Incoming Direction = "incoming"
	Outgoing Direction = "outgoing"
)

// MessageKind is the "messageType" of a message.
type MessageKind string

const (
	Publish MessageKind = "publish"
	Reply   MessageKind = "reply"
)

const messageSuffix = "Message"

// MessageSpec is the decoded form of a message definition.
type MessageSpec struct {
	Action      string
	Direction   string
	MessageType string
	Name        string
	Description string
	Payload     []ValueSpec
	Reply       []ValueSpec
}

// Message is a named request or event defined within an Interface.
type Message struct {
	Action      string
	Direction   Direction
	Kind        MessageKind
	Description string
	Payload     []*Value
	Reply       []*Value // same slice as Payload when Kind is Reply

	altName string
	iface   *Interface
}

// NewMessage validates spec and creates a Message defined by iface.
// The message is not registered; call Interface.AddMessage.
func NewMessage(iface *Interface, spec MessageSpec) (*Message, error) {
	if spec.Action == "" {
		return nil, errors.NewKind(errors.MissingField, "message definition has no action").
			ForField("action").InFile(iface.SourceFile)
	}
	if spec.Direction == "" {
		return nil, errors.NewKind(errors.MissingField, "message %s has no direction", spec.Action).
			ForField("direction").InFile(iface.SourceFile)
	}

	dir := Direction(spec.Direction)
	if dir != Incoming && dir != Outgoing {
		return nil, errors.NewKind(errors.MalformedDocument,
			"invalid direction %q for message %s, expecting incoming or outgoing", spec.Direction, spec.Action).
			ForField("direction").InFile(iface.SourceFile)
	}

	kind := Publish
	if spec.MessageType != "" {
		kind = MessageKind(spec.MessageType)
		if kind != Publish && kind != Reply {
			return nil, errors.NewKind(errors.MalformedDocument,
				"invalid messageType %q for message %s, expecting publish or reply", spec.MessageType, spec.Action).
				ForField("messageType").InFile(iface.SourceFile)
		}
	}

	m := &Message{
		Action:      spec.Action,
		Direction:   dir,
		Kind:        kind,
		Description: spec.Description,
		altName:     nameOverride(spec.Action, spec.Name),
		iface:       iface,
	}

	for _, vs := range spec.Payload {
		v, err := NewValue(m, vs)
		if err != nil {
			return nil, err
		}
		m.Payload = append(m.Payload, v)
	}

	if kind == Reply {
		m.Reply = m.Payload
		return m, nil
	}
	for _, vs := range spec.Reply {
		v, err := NewValue(m, vs)
		if err != nil {
			return nil, err
		}
		m.Reply = append(m.Reply, v)
	}
	return m, nil
}

// nameOverride returns the base name to use instead of the action, or "" when the
// declared name adds nothing ("Foo" or "FooMessage" for action "Foo").
func nameOverride(action, name string) string {
	if name == "" {
		return ""
	}
	base := strings.TrimSuffix(name, messageSuffix)
	if base == action || base == "" {
		return ""
	}
	return base
}

// Name returns the display name, "{override-or-action}Message".
func (m *Message) Name() string {
	if m.altName != "" {
		return m.altName + messageSuffix
	}
	return m.Action + messageSuffix
}

// Symbol returns "{namespace}.{display name}".
func (m *Message) Symbol() string { return Qualify(m.iface.Namespace, m.Name()) }

// Topic returns the defining interface's topic.
func (m *Message) Topic() string { return m.iface.Topic }

// Interface returns the defining interface.
func (m *Message) Interface() *Interface { return m.iface }

// OwnerInterface implements Owner.
func (m *Message) OwnerInterface() *Interface { return m.iface }

// OwnerSymbol implements Owner.
func (m *Message) OwnerSymbol() string { return m.Symbol() }

// IsReply reports whether the message is itself a reply.
func (m *Message) IsReply() bool { return m.Kind == Reply }

// Values returns payload followed by reply values. For reply messages the payload
// and reply are the same values and are returned once.
func (m *Message) Values() []*Value {
	if m.Kind == Reply {
		return m.Payload
	}
	values := make([]*Value, 0, len(m.Payload)+len(m.Reply))
	values = append(values, m.Payload...)
	return append(values, m.Reply...)
}
