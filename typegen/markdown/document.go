package markdown

import (
	"fmt"

	"github.com/teranos/a2ml/model"
	"github.com/teranos/a2ml/typegen"
)

type document struct {
	Topic       string
	Namespace   string
	Path        string
	Version     string
	Description string
	Messages    []messageDoc
	Types       []typeDoc
}

type messageDoc struct {
	Name        string
	Action      string
	Direction   string
	Kind        string
	Description string
	Payload     []valueDoc
	Reply       []valueDoc // publish messages only
}

type typeDoc struct {
	Name        string
	Kind        string
	Description string
	Values      []valueDoc // struct fields or enum members
	Target      string     // alias target as declared
	Resolved    string     // alias target with every alias expanded
}

type valueDoc struct {
	Name        string
	Type        string
	Required    bool
	Default     string
	Example     string
	Wire        string // enum members
	Description string
}

func buildDocument(r *typegen.Resolver, iface *model.Interface) (*document, error) {
	doc := &document{
		Topic:       iface.Topic,
		Namespace:   iface.Namespace,
		Path:        iface.Path,
		Version:     iface.Version,
		Description: iface.Description,
	}

	for _, msg := range iface.Messages() {
		md := messageDoc{
			Name:        msg.Name(),
			Action:      msg.Action,
			Direction:   string(msg.Direction),
			Kind:        string(msg.Kind),
			Description: msg.Description,
		}
		var err error
		if md.Payload, err = values(r, msg.Payload); err != nil {
			return nil, err
		}
		if !msg.IsReply() {
			if md.Reply, err = values(r, msg.Reply); err != nil {
				return nil, err
			}
		}
		doc.Messages = append(doc.Messages, md)
	}

	for _, t := range iface.Types() {
		td := typeDoc{
			Name:        t.Name,
			Kind:        string(t.Kind),
			Description: t.Description,
		}
		switch t.Kind {
		case model.KindEnum:
			for _, v := range t.Values {
				wire := v.Name
				if v.Fixed != nil {
					wire = fmt.Sprint(v.Fixed)
				}
				td.Values = append(td.Values, valueDoc{Name: v.Name, Wire: wire, Description: v.Description})
			}
		case model.KindStruct:
			var err error
			if td.Values, err = values(r, t.Values); err != nil {
				return nil, err
			}
		case model.KindAlias:
			target, err := r.Resolve(t.Symbol(), iface)
			if err != nil {
				return nil, err
			}
			td.Target = t.AliasTarget
			td.Resolved = target.Native
		}
		doc.Types = append(doc.Types, td)
	}

	return doc, nil
}

func values(r *typegen.Resolver, vals []*model.Value) ([]valueDoc, error) {
	out := make([]valueDoc, 0, len(vals))
	for _, v := range vals {
		res, err := r.ResolveValue(v)
		if err != nil {
			return nil, err
		}
		out = append(out, valueDoc{
			Name:        v.Name,
			Type:        res.Declared,
			Required:    v.Required(),
			Default:     literal(v.Default),
			Example:     literal(v.Example),
			Description: v.Description,
		})
	}
	return out, nil
}

func literal(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("`%v`", v)
}
