package pdf

// Kind identifies the type of a PDF object.
type Kind int

const (
	Null Kind = iota
	Bool
	Int
	Real
	String
	Name
	Array
	Dictionary
	Stream
	Ref
)

// Object is any PDF object. Only the fields of its Kind are set.
type Object struct {
	Kind  Kind
	Bool  bool
	Int   int64
	Real  float64
	Str   []byte
	Name  string
	Array []*Object
	Dict  Dict
	Data  []byte // raw, still encoded, stream data
	Ref   Reference
}

var null = &Object{Kind: Null}

// Number returns the numeric value of an Int or Real object.
func (o *Object) Number() (float64, bool) {
	if o == nil {
		return 0, false
	}
	switch o.Kind {
	case Int:
		return float64(o.Int), true
	case Real:
		return o.Real, true
	}
	return 0, false
}

// Reference is an indirect object reference (N G R).
type Reference struct {
	Number int
	Gen    int
}

// Dict is a PDF dictionary.
type Dict map[string]*Object

// Int returns the integer value of key.
func (d Dict) Int(key string) (int64, bool) {
	o, ok := d[key]
	if !ok {
		return 0, false
	}
	switch o.Kind {
	case Int:
		return o.Int, true
	case Real:
		return int64(o.Real), true
	}
	return 0, false
}

// Name returns the name value of key.
func (d Dict) Name(key string) (string, bool) {
	o, ok := d[key]
	if !ok || o.Kind != Name {
		return "", false
	}
	return o.Name, true
}
