package parser

import (
	"fmt"
	"math"
	"strconv"

	"github.com/teranos/a2ml/errors"
	"github.com/teranos/a2ml/logger"
	"github.com/teranos/a2ml/model"
)

// Document field names.
const (
	fieldTopic       = "topic"
	fieldNamespace   = "namespace"
	fieldPath        = "path"
	fieldVersion     = "version"
	fieldDesc        = "desc"
	fieldMessages    = "messages"
	fieldTypes       = "types"
	fieldAction      = "action"
	fieldDirection   = "direction"
	fieldMessageType = "messageType"
	fieldName        = "name"
	fieldPayload     = "payload"
	fieldReply       = "reply"
	fieldType        = "type"
	fieldValues      = "values"
	fieldAlias       = "alias"
	fieldDefault     = "default"
	fieldExample     = "example"
	fieldValue       = "value"
)

// Load validates one decoded definition document and adds its Interface, with all
// messages and types, to m. path is used for error messages only.
func Load(tree map[string]any, path string, exported bool, m *model.Model) (*model.Interface, error) {
	d := node{tree: tree, file: path}

	spec := model.InterfaceSpec{SourceFile: path, Exported: exported}
	var err error
	if spec.Topic, err = d.requiredString(fieldTopic); err != nil {
		return nil, err
	}
	if spec.Namespace, err = d.requiredString(fieldNamespace); err != nil {
		return nil, err
	}
	if spec.Path, err = d.requiredString(fieldPath); err != nil {
		return nil, err
	}
	if spec.Version, err = d.version(); err != nil {
		return nil, err
	}
	if spec.Description, err = d.optionalString(fieldDesc); err != nil {
		return nil, err
	}

	if spec.Version != "" && spec.Version != m.Version {
		logger.Warnw("Forcing version",
			logger.FieldInterface, spec.Topic,
			logger.FieldFile, path,
			"declared", spec.Version,
			logger.FieldVersion, m.Version,
		)
	}

	iface, err := model.NewInterface(spec)
	if err != nil {
		return nil, err
	}
	if err := m.AddInterface(iface); err != nil {
		return nil, err
	}

	messages, err := d.list(fieldMessages)
	if err != nil {
		return nil, err
	}
	for _, md := range messages {
		ms, err := md.messageSpec()
		if err != nil {
			return nil, err
		}
		msg, err := model.NewMessage(iface, ms)
		if err != nil {
			return nil, err
		}
		if err := iface.AddMessage(msg); err != nil {
			return nil, err
		}
	}

	types, err := d.list(fieldTypes)
	if err != nil {
		return nil, err
	}
	for _, td := range types {
		ts, err := td.typeSpec()
		if err != nil {
			return nil, err
		}
		typ, err := model.NewType(iface, ts)
		if err != nil {
			return nil, err
		}
		if err := iface.AddType(typ); err != nil {
			return nil, err
		}
	}

	return iface, nil
}

// node is one mapping of the decoded tree with the file it came from.
type node struct {
	tree  map[string]any
	file  string
	where string // "messages[2]", "types[0].values[1]", for error messages
}

func (n node) malformed(field, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if n.where != "" {
		msg = n.where + ": " + msg
	}
	return errors.NewKind(errors.MalformedDocument, "%s", msg).ForField(field).InFile(n.file)
}

func (n node) requiredString(field string) (string, error) {
	s, err := n.optionalString(field)
	if err != nil {
		return "", err
	}
	if s == "" {
		msg := fmt.Sprintf("missing required field %q", field)
		if n.where != "" {
			msg = n.where + ": " + msg
		}
		return "", errors.NewKind(errors.MissingField, "%s", msg).ForField(field).InFile(n.file)
	}
	return s, nil
}

func (n node) optionalString(field string) (string, error) {
	v, ok := n.tree[field]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", n.malformed(field, "field %q must be a string, got %T", field, v)
	}
	return s, nil
}

// version reads the version field, accepting the numbers YAML and TOML produce
// for unquoted versions such as 4.0.
func (n node) version() (string, error) {
	v, ok := n.tree[fieldVersion]
	if !ok || v == nil {
		return "", nil
	}
	switch x := v.(type) {
	case string:
		return x, nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		if x == math.Trunc(x) {
			return strconv.FormatFloat(x, 'f', 1, 64), nil
		}
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	default:
		return "", n.malformed(fieldVersion, "field %q must be a string or number, got %T", fieldVersion, v)
	}
}

// list returns the mappings under field; an absent field is an empty list.
func (n node) list(field string) ([]node, error) {
	v, ok := n.tree[field]
	if !ok || v == nil {
		return nil, nil
	}

	var items []any
	switch x := v.(type) {
	case []any:
		items = x
	case []map[string]any:
		items = make([]any, len(x))
		for i := range x {
			items[i] = x[i]
		}
	default:
		return nil, n.malformed(field, "field %q must be a list, got %T", field, v)
	}

	out := make([]node, 0, len(items))
	for i, item := range items {
		where := fmt.Sprintf("%s[%d]", field, i)
		if n.where != "" {
			where = n.where + "." + where
		}
		m, ok := asMap(item)
		if !ok {
			return nil, n.malformed(field, "%s must be a mapping, got %T", where, item)
		}
		out = append(out, node{tree: m, file: n.file, where: where})
	}
	return out, nil
}

func asMap(v any) (map[string]any, bool) {
	switch x := v.(type) {
	case map[string]any:
		return x, true
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, val := range x {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			m[key] = val
		}
		return m, true
	default:
		return nil, false
	}
}

func (n node) messageSpec() (model.MessageSpec, error) {
	var spec model.MessageSpec
	var err error
	if spec.Action, err = n.requiredString(fieldAction); err != nil {
		return spec, err
	}
	if spec.Direction, err = n.requiredString(fieldDirection); err != nil {
		return spec, err
	}
	if spec.MessageType, err = n.optionalString(fieldMessageType); err != nil {
		return spec, err
	}
	if spec.Name, err = n.optionalString(fieldName); err != nil {
		return spec, err
	}
	if spec.Description, err = n.optionalString(fieldDesc); err != nil {
		return spec, err
	}
	if spec.Payload, err = n.valueSpecs(fieldPayload); err != nil {
		return spec, err
	}
	if spec.Reply, err = n.valueSpecs(fieldReply); err != nil {
		return spec, err
	}
	return spec, nil
}

func (n node) typeSpec() (model.TypeSpec, error) {
	var spec model.TypeSpec
	var err error
	if spec.Name, err = n.requiredString(fieldName); err != nil {
		return spec, err
	}
	if spec.Kind, err = n.requiredString(fieldType); err != nil {
		return spec, err
	}
	if spec.Alias, err = n.optionalString(fieldAlias); err != nil {
		return spec, err
	}
	if spec.Description, err = n.optionalString(fieldDesc); err != nil {
		return spec, err
	}
	if spec.Values, err = n.valueSpecs(fieldValues); err != nil {
		return spec, err
	}
	return spec, nil
}

func (n node) valueSpecs(field string) ([]model.ValueSpec, error) {
	items, err := n.list(field)
	if err != nil {
		return nil, err
	}

	specs := make([]model.ValueSpec, 0, len(items))
	for _, item := range items {
		var spec model.ValueSpec
		if spec.Name, err = item.requiredString(fieldName); err != nil {
			return nil, err
		}
		if spec.Type, err = item.optionalString(fieldType); err != nil {
			return nil, err
		}
		if spec.Description, err = item.optionalString(fieldDesc); err != nil {
			return nil, err
		}
		spec.Default = item.tree[fieldDefault]
		spec.Example = item.tree[fieldExample]
		spec.Value = item.tree[fieldValue]
		specs = append(specs, spec)
	}
	return specs, nil
}
