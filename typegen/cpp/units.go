package cpp

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/teranos/a2ml/model"
	"github.com/teranos/a2ml/typegen"
)

// unitData is everything the templates need to render one header/source pair.
type unitData struct {
	Kind       string // "message", "struct" or "enum"
	Name       string
	Symbol     string
	Doc        []string
	Guard      string
	Dir        string // relative to include/ and src/
	HeaderPath string
	Namespaces []string
	Closing    []string // Namespaces reversed
	Includes   []string
	Aliases    []aliasData
	Fields     []fieldData  // struct fields
	Members    []memberData // enum members
	Message    *messageData
	JSON       []jsonBlock // serializers for value-carrying structs
}

type jsonBlock struct {
	Type   string
	Fields []fieldData
}

type aliasData struct {
	Name string
	Type string
	Doc  []string
}

type fieldData struct {
	Name     string
	Type     string
	Default  string // C++ initializer, empty for required fields
	Required bool
	Indent   string
	Doc      []string
}

type memberData struct {
	Name string
	Wire string // serialized form
	Doc  []string
}

type messageData struct {
	Topic       string
	Action      string
	Version     string
	Direction   string
	MessageType string
	Payload     []fieldData
	Reply       *replyData // publish messages that declare reply values
}

type replyData struct {
	Name    string
	Payload []fieldData
}

// valueSet resolves the values of one unit, handling alias name collisions.
type valueSet struct {
	unit     *model.Interface
	name     string
	values   []*model.Value
	resolved map[*model.Value]*typegen.Resolved
	aliases  []aliasData
	includes map[string]bool
}

func resolveValues(r *typegen.Resolver, unit *model.Interface, name string, values []*model.Value) (*valueSet, error) {
	vs := &valueSet{
		unit:     unit,
		name:     name,
		values:   values,
		resolved: make(map[*model.Value]*typegen.Resolved, len(values)),
		includes: make(map[string]bool),
	}

	if err := vs.resolveAll(r); err != nil {
		return nil, err
	}

	// Aliases sharing a local name with another alias, with a struct or enum the
	// unit references, or with the unit itself, cannot be declared; those are
	// written as their native type instead.
	bySymbol := make(map[string]*model.Type)
	taken := map[string]bool{name: true}
	for _, res := range vs.resolved {
		for _, a := range res.Aliases {
			bySymbol[a.Symbol()] = a
		}
		for _, t := range res.Types {
			taken[t.Name] = true
		}
	}
	byName := make(map[string][]string)
	for symbol, a := range bySymbol {
		byName[a.Name] = append(byName[a.Name], symbol)
	}
	expand := make(map[string]bool)
	for aliasName, symbols := range byName {
		if len(symbols) > 1 || taken[aliasName] {
			for _, s := range symbols {
				expand[s] = true
			}
		}
	}
	if len(expand) > 0 {
		r = r.WithExpanded(expand)
		if err := vs.resolveAll(r); err != nil {
			return nil, err
		}
	}

	symbols := make([]string, 0, len(bySymbol))
	for s := range bySymbol {
		if !expand[s] {
			symbols = append(symbols, s)
		}
	}
	sort.Strings(symbols)
	for _, s := range symbols {
		a := bySymbol[s]
		res, err := r.ResolveAlias(a, unit)
		if err != nil {
			return nil, err
		}
		vs.aliases = append(vs.aliases, aliasData{Name: a.Name, Type: res.Native, Doc: docLines(a.Description, "")})
	}
	return vs, nil
}

func (vs *valueSet) resolveAll(r *typegen.Resolver) error {
	vs.includes = make(map[string]bool)
	for _, v := range vs.values {
		res, err := r.ResolveValue(v)
		if err != nil {
			return err
		}
		vs.resolved[v] = res
		for _, inc := range res.Includes {
			vs.includes[inc] = true
		}
	}
	return nil
}

func (vs *valueSet) fields(values []*model.Value, indent string) []fieldData {
	out := make([]fieldData, 0, len(values))
	for _, v := range values {
		res := vs.resolved[v]
		f := fieldData{
			Name:     v.Name,
			Type:     res.Declared,
			Required: v.Required(),
			Indent:   indent,
			Doc:      docLines(v.Description, indent),
		}
		if v.Optional() {
			f.Default = defaultLiteral(v.Default, res)
		}
		out = append(out, f)
	}
	return out
}

func newUnit(kind string, iface *model.Interface, name, symbol, desc string) *unitData {
	ns := NamespaceSegments(iface.Namespace)
	closing := make([]string, len(ns))
	for i := range ns {
		closing[i] = ns[len(ns)-1-i]
	}
	return &unitData{
		Kind:       kind,
		Name:       name,
		Symbol:     symbol,
		Doc:        docLines(desc, ""),
		Guard:      IncludeGuard(symbol),
		Dir:        MessageDir(iface.Path),
		HeaderPath: HeaderPath(iface.Path, name),
		Namespaces: ns,
		Closing:    closing,
	}
}

// setIncludes merges the base set, the value includes and extra, drops the unit's
// own header and sorts the result.
func (u *unitData) setIncludes(vs *valueSet, extra ...string) {
	set := make(map[string]bool)
	for _, inc := range BaseIncludes {
		set[inc] = true
	}
	for inc := range vs.includes {
		set[inc] = true
	}
	for _, inc := range extra {
		set[inc] = true
	}
	delete(set, u.HeaderPath)

	u.Includes = make([]string, 0, len(set))
	for inc := range set {
		u.Includes = append(u.Includes, inc)
	}
	sort.Strings(u.Includes)
}

func buildMessageUnit(r *typegen.Resolver, m *model.Model, msg *model.Message) (*unitData, error) {
	iface := msg.Interface()
	vs, err := resolveValues(r, iface, msg.Name(), msg.Values())
	if err != nil {
		return nil, err
	}

	u := newUnit("message", iface, msg.Name(), msg.Symbol(), msg.Description)
	u.setIncludes(vs, UUIDInclude)
	u.Aliases = vs.aliases

	md := &messageData{
		Topic:       iface.Topic,
		Action:      msg.Action,
		Version:     m.Version,
		Direction:   strings.ToUpper(string(msg.Direction)),
		MessageType: "Publish",
		Payload:     vs.fields(msg.Payload, "        "),
	}
	if msg.IsReply() {
		md.MessageType = "Reply"
	} else if len(msg.Reply) > 0 {
		md.Reply = &replyData{
			Name:    msg.Name() + "Reply",
			Payload: vs.fields(msg.Reply, "        "),
		}
	}
	u.Message = md
	u.JSON = append(u.JSON, jsonBlock{Type: u.Name + "::Payload", Fields: md.Payload})
	if md.Reply != nil {
		u.JSON = append(u.JSON, jsonBlock{Type: md.Reply.Name + "::Payload", Fields: md.Reply.Payload})
	}
	return u, nil
}

func buildTypeUnit(r *typegen.Resolver, t *model.Type) (*unitData, error) {
	iface := t.Interface()

	if t.IsEnum() {
		u := newUnit("enum", iface, t.Name, t.Symbol(), t.Description)
		u.setIncludes(&valueSet{})
		for _, v := range t.Values {
			wire := v.Name
			if v.Fixed != nil {
				wire = fmt.Sprint(v.Fixed)
			}
			u.Members = append(u.Members, memberData{Name: v.Name, Wire: wire, Doc: docLines(v.Description, "    ")})
		}
		return u, nil
	}

	vs, err := resolveValues(r, iface, t.Name, t.Values)
	if err != nil {
		return nil, err
	}
	u := newUnit("struct", iface, t.Name, t.Symbol(), t.Description)
	u.setIncludes(vs)
	u.Aliases = vs.aliases
	u.Fields = vs.fields(t.Values, "    ")
	u.JSON = []jsonBlock{{Type: u.Name, Fields: u.Fields}}
	return u, nil
}

// defaultLiteral renders a declared default as a C++ initializer.
func defaultLiteral(v any, res *typegen.Resolved) string {
	if res.Native == Primitives[model.TypeString].Type {
		return Quote(fmt.Sprint(v))
	}
	if len(res.Types) == 1 && res.Types[0].IsEnum() && !strings.HasPrefix(res.Native, "std::vector<") {
		return res.Native + "::" + fmt.Sprint(v)
	}

	switch x := v.(type) {
	case bool, int, int64, uint64:
		return fmt.Sprint(x)
	case float64:
		lit := strconv.FormatFloat(x, 'f', -1, 64)
		if !strings.Contains(lit, ".") {
			lit += ".0"
		}
		if res.Native == Primitives[model.TypeFloat].Type {
			lit += "f"
		}
		return lit
	default:
		return "{}"
	}
}

// docLines turns a description into comment lines with the given indentation.
func docLines(desc, indent string) []string {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(desc, "\n") {
		lines = append(lines, strings.TrimRight(indent+"// "+strings.TrimSpace(line), " "))
	}
	return lines
}
