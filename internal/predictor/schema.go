package predictor

import "fmt"

// Field names one input column.
type Field string

const (
	FieldMake               Field = "Make"
	FieldModel              Field = "Model"
	FieldVehicleClass       Field = "VehicleClass"
	FieldEngineSize         Field = "EngineSize"
	FieldTransmission       Field = "Transmission"
	FieldFuelType           Field = "FuelType"
	FieldFuelConsumptionHwy Field = "FuelConsumptionHwy"
)

// Kind tells whether a column is encoded from labels or parsed as a number.
type Kind int

const (
	Categorical Kind = iota
	Numeric
)

func (k Kind) String() string {
	switch k {
	case Categorical:
		return "categorical"
	case Numeric:
		return "numeric"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Column is one slot of the feature vector.
type Column struct {
	Field Field
	Kind  Kind
}

// Schema is the fixed column order of the feature vector. Assembly, scaling
// and the model all resolve positions through it; reordering the columns of a
// schema used with existing artifacts silently corrupts predictions, which is
// why artifacts record the column names they were fitted with.
type Schema struct {
	columns []Column
	index   map[Field]int
}

// DefaultSchema is the 7-slot layout of the CO2 model.
var DefaultSchema = MustSchema(
	Column{FieldMake, Categorical},
	Column{FieldModel, Categorical},
	Column{FieldVehicleClass, Categorical},
	Column{FieldEngineSize, Numeric},
	Column{FieldTransmission, Categorical},
	Column{FieldFuelType, Categorical},
	Column{FieldFuelConsumptionHwy, Numeric},
)

// NewSchema builds a schema from columns in vector order.
func NewSchema(cols ...Column) (*Schema, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("schema has no columns")
	}
	s := &Schema{columns: append([]Column(nil), cols...), index: make(map[Field]int, len(cols))}
	for i, c := range cols {
		if c.Field == "" {
			return nil, fmt.Errorf("schema column %d has no name", i)
		}
		if _, dup := s.index[c.Field]; dup {
			return nil, fmt.Errorf("duplicate schema column %s", c.Field)
		}
		s.index[c.Field] = i
	}
	return s, nil
}

// MustSchema is NewSchema that panics on error. Meant for package-level vars.
func MustSchema(cols ...Column) *Schema {
	s, err := NewSchema(cols...)
	if err != nil {
		panic(err)
	}
	return s
}

// Width is the number of slots in a feature vector.
func (s *Schema) Width() int { return len(s.columns) }

// Columns returns a copy of the columns in vector order.
func (s *Schema) Columns() []Column { return append([]Column(nil), s.columns...) }

// Fields returns the column names in vector order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.columns))
	for i, c := range s.columns {
		out[i] = c.Field
	}
	return out
}

// Index returns the vector position of f.
func (s *Schema) Index(f Field) (int, bool) {
	i, ok := s.index[f]
	return i, ok
}

// KindOf returns the kind of column f.
func (s *Schema) KindOf(f Field) (Kind, bool) {
	i, ok := s.index[f]
	if !ok {
		return 0, false
	}
	return s.columns[i].Kind, true
}

// Categorical returns the categorical fields in vector order.
func (s *Schema) Categorical() []Field { return s.fieldsOf(Categorical) }

// Numeric returns the numeric fields in vector order.
func (s *Schema) Numeric() []Field { return s.fieldsOf(Numeric) }

// NumericIndices returns the vector positions of the numeric columns.
func (s *Schema) NumericIndices() []int {
	var out []int
	for i, c := range s.columns {
		if c.Kind == Numeric {
			out = append(out, i)
		}
	}
	return out
}

// Matches reports whether names lists exactly the schema's columns, in order.
func (s *Schema) Matches(names []Field) bool {
	if len(names) != len(s.columns) {
		return false
	}
	for i, c := range s.columns {
		if names[i] != c.Field {
			return false
		}
	}
	return true
}

func (s *Schema) fieldsOf(k Kind) []Field {
	var out []Field
	for _, c := range s.columns {
		if c.Kind == k {
			out = append(out, c.Field)
		}
	}
	return out
}
