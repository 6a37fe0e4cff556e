package domain

import "strings"

// TypeKind is the __TypeKind enum from the introspection schema.
type TypeKind string

const (
	KindScalar      TypeKind = "SCALAR"
	KindObject      TypeKind = "OBJECT"
	KindInterface   TypeKind = "INTERFACE"
	KindUnion       TypeKind = "UNION"
	KindEnum        TypeKind = "ENUM"
	KindInputObject TypeKind = "INPUT_OBJECT"
	KindList        TypeKind = "LIST"
	KindNonNull     TypeKind = "NON_NULL"
)

// Schema is the __schema introspection payload.
type Schema struct {
	QueryType        *TypeName   `json:"queryType"`
	MutationType     *TypeName   `json:"mutationType,omitempty"`
	SubscriptionType *TypeName   `json:"subscriptionType,omitempty"`
	Types            []Type      `json:"types"`
	Directives       []Directive `json:"directives,omitempty"`
}

// TypeName is the minimal type reference used for root type declarations.
type TypeName struct {
	Name string `json:"name"`
}

// Type is a full __Type. Which fields are populated depends on Kind:
// Fields for OBJECT/INTERFACE, InputFields for INPUT_OBJECT, EnumValues for
// ENUM, PossibleTypes for INTERFACE/UNION, OfType for LIST/NON_NULL.
type Type struct {
	Kind          TypeKind     `json:"kind"`
	Name          string       `json:"name,omitempty"`
	Description   string       `json:"description,omitempty"`
	Fields        []Field      `json:"fields,omitempty"`
	Interfaces    []TypeRef    `json:"interfaces,omitempty"`
	PossibleTypes []TypeRef    `json:"possibleTypes,omitempty"`
	EnumValues    []EnumValue  `json:"enumValues,omitempty"`
	InputFields   []InputValue `json:"inputFields,omitempty"`
}

// TypeRef is the recursive kind/name/ofType chain from the TypeRef fragment.
type TypeRef struct {
	Kind   TypeKind `json:"kind"`
	Name   string   `json:"name,omitempty"`
	OfType *TypeRef `json:"ofType,omitempty"`
}

type Field struct {
	Name              string       `json:"name"`
	Description       string       `json:"description,omitempty"`
	Args              []InputValue `json:"args,omitempty"`
	Type              TypeRef      `json:"type"`
	IsDeprecated      bool         `json:"isDeprecated,omitempty"`
	DeprecationReason string       `json:"deprecationReason,omitempty"`
}

type InputValue struct {
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Type         TypeRef `json:"type"`
	DefaultValue *string `json:"defaultValue,omitempty"`
}

type EnumValue struct {
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	IsDeprecated      bool   `json:"isDeprecated,omitempty"`
	DeprecationReason string `json:"deprecationReason,omitempty"`
}

type Directive struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Locations   []string     `json:"locations"`
	Args        []InputValue `json:"args,omitempty"`
}

// NamedType unwraps LIST/NON_NULL wrappers and returns the underlying type name.
func (r TypeRef) NamedType() string {
	t := r
	for t.OfType != nil {
		t = *t.OfType
	}
	return t.Name
}

// IsNonNull reports whether the outermost wrapper is NON_NULL.
func (r TypeRef) IsNonNull() bool { return r.Kind == KindNonNull }

// Unwrap removes one wrapper level. Zero value on a leaf.
func (r TypeRef) Unwrap() TypeRef {
	if r.OfType == nil {
		return TypeRef{}
	}
	return *r.OfType
}

// String renders the reference in SDL notation, e.g. "[Episode!]!".
func (r TypeRef) String() string {
	switch r.Kind {
	case KindNonNull:
		return r.Unwrap().String() + "!"
	case KindList:
		return "[" + r.Unwrap().String() + "]"
	default:
		return r.Name
	}
}

// IsIntrospectionType reports whether name is a __-prefixed meta type.
func IsIntrospectionType(name string) bool {
	return strings.HasPrefix(name, "__")
}

// IsBuiltinScalar reports whether name is one of the five spec scalars.
func IsBuiltinScalar(name string) bool {
	switch name {
	case "Int", "Float", "String", "Boolean", "ID":
		return true
	}
	return false
}

// QueryTypeName returns the root query type name, defaulting to Query.
func (s *Schema) QueryTypeName() string {
	if s.QueryType != nil && s.QueryType.Name != "" {
		return s.QueryType.Name
	}
	return "Query"
}
