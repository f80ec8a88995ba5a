package protocol

import (
	"fmt"
	"strconv"
	"strings"

	errspkg "github.com/drblury/omlflow/internal/runtime/errors"
)

// FieldType is an OML column type.
type FieldType string

const (
	TypeInt32  FieldType = "int32"
	TypeUint32 FieldType = "uint32"
	TypeInt64  FieldType = "int64"
	TypeUint64 FieldType = "uint64"
	TypeDouble FieldType = "double"
	TypeString FieldType = "string"
	TypeBlob   FieldType = "blob"
	TypeGUID   FieldType = "guid"
	TypeBool   FieldType = "bool"
	// TypeLong is the legacy 32-bit integer type still accepted by servers.
	TypeLong FieldType = "long"
)

var knownTypes = map[FieldType]struct{}{
	TypeInt32: {}, TypeUint32: {}, TypeInt64: {}, TypeUint64: {},
	TypeDouble: {}, TypeString: {}, TypeBlob: {}, TypeGUID: {},
	TypeBool: {}, TypeLong: {},
}

// Field is one named, typed column of a measurement point.
type Field struct {
	Name string
	Type FieldType
}

func (f Field) String() string {
	return f.Name + ":" + string(f.Type)
}

// Schema is the ordered column list of a measurement point.
type Schema []Field

// String renders the schema as the descriptor used in "schema:" header lines.
func (s Schema) String() string {
	parts := make([]string, len(s))
	for i, f := range s {
		parts[i] = f.String()
	}
	return strings.Join(parts, " ")
}

// Validate checks every field name and type.
func (s Schema) Validate() error {
	seen := make(map[string]struct{}, len(s))
	for i, f := range s {
		if f.Name == "" || strings.ContainsAny(f.Name, ": \t\n") {
			return fmt.Errorf("%w: field %d has invalid name %q", errspkg.ErrInvalidSchema, i, f.Name)
		}
		if _, ok := knownTypes[f.Type]; !ok {
			return fmt.Errorf("%w: field %q has unknown type %q", errspkg.ErrInvalidSchema, f.Name, f.Type)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%w: field %q declared twice", errspkg.ErrInvalidSchema, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

// ParseSchema parses a "name:type name:type" descriptor.
func ParseSchema(descriptor string) (Schema, error) {
	tokens := strings.Fields(descriptor)
	schema := make(Schema, 0, len(tokens))
	for _, tok := range tokens {
		name, typ, ok := strings.Cut(tok, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q is not name:type", errspkg.ErrInvalidSchema, tok)
		}
		schema = append(schema, Field{Name: name, Type: FieldType(typ)})
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return schema, nil
}

// SchemaLine renders one "schema:" header line, without the trailing newline.
func SchemaLine(streamID int, appName, mpName, descriptor string) string {
	return "schema: " + strconv.Itoa(streamID) + " " + TableName(appName, mpName) + " " + descriptor
}
