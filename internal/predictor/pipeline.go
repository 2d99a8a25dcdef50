package predictor

// Pipeline runs the serving path over one artifact set. It holds no mutable
// state; a single Pipeline may be shared by any number of goroutines.
type Pipeline struct {
	schema *Schema
	art    *Artifacts
}

// NewPipeline binds schema to art. A nil art yields a pipeline whose stages
// fail with the matching not-loaded error.
func NewPipeline(schema *Schema, art *Artifacts) *Pipeline {
	if art == nil {
		art = &Artifacts{}
	}
	return &Pipeline{schema: schema, art: art}
}

// Schema returns the column layout used by p.
func (p *Pipeline) Schema() *Schema { return p.schema }

// Artifacts returns the artifact set used by p. Callers must not modify it.
func (p *Pipeline) Artifacts() *Artifacts { return p.art }

// Assemble builds the feature vector for r.
func (p *Pipeline) Assemble(r Record) (Vector, error) {
	return Assemble(p.schema, p.art.Encoding, r)
}

// Scale applies the stored scaler to an assembled vector.
func (p *Pipeline) Scale(v Vector) (Vector, error) {
	return p.art.Scaler.Transform(p.schema, v)
}

// Predict applies the model to a scaled vector.
func (p *Pipeline) Predict(v Vector) (float64, error) {
	return p.art.Model.Predict(v)
}

// Infer runs Assemble, Scale and Predict strictly in that order and stops at
// the first error. The model is never applied to an unscaled vector.
func (p *Pipeline) Infer(r Record) (float64, error) {
	v, err := p.Assemble(r)
	if err != nil {
		return 0, err
	}
	scaled, err := p.Scale(v)
	if err != nil {
		return 0, err
	}
	return p.Predict(scaled)
}
