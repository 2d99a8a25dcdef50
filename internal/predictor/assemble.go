package predictor

// Vector is a feature vector laid out by a Schema.
type Vector []float64

// Clone returns a copy of v.
func (v Vector) Clone() Vector { return append(Vector(nil), v...) }

// Assemble lays r out as a feature vector in schema order. Categorical values
// are encoded through table; numeric values must parse as finite numbers.
// The first failing column, in schema order, is reported.
func Assemble(schema *Schema, table *EncodingTable, r Record) (Vector, error) {
	if table == nil {
		return nil, ErrEncodingNotLoaded
	}
	v := make(Vector, schema.Width())
	for i, c := range schema.columns {
		raw, ok := r.Value(c.Field)
		if !ok {
			return nil, &MissingFieldError{Field: c.Field}
		}
		switch c.Kind {
		case Categorical:
			code, err := table.Encode(c.Field, raw)
			if err != nil {
				return nil, err
			}
			v[i] = float64(code)
		case Numeric:
			x, err := parseNumeric(c.Field, raw)
			if err != nil {
				return nil, err
			}
			v[i] = x
		}
	}
	return v, nil
}
