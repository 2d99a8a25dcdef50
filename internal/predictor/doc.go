// Package predictor implements the feature-transformation and inference
// contract for CO2 emission predictions. It is split into small files by
// concern:
//
//   - schema.go: the ordered column layout shared by every stage.
//   - record.go: raw, text-valued input records.
//   - encoder.go: per-field categorical encoders and the EncodingTable.
//   - assemble.go: raw record -> feature vector in schema order.
//   - scaler.go: standardisation of the numeric columns.
//   - linear.go: the fitted linear model (ordinary least squares).
//   - pipeline.go: Infer = Assemble -> Scale -> Predict.
//   - fit.go: FitAll, producing one immutable Artifacts set.
//   - errors.go: error kinds and IsX helpers.
//
// Artifacts are never mutated after FitAll returns (or after a store loads
// them), so a Pipeline is safe for unlimited concurrent use without locking.
package predictor
