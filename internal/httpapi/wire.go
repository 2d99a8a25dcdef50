package httpapi

import (
	"strings"

	"co2d/internal/predictor"
	"co2d/pkg/types"
)

var wireNames = map[predictor.Field]string{
	predictor.FieldMake:               types.WireMake,
	predictor.FieldModel:              types.WireModel,
	predictor.FieldVehicleClass:       types.WireVehicleClass,
	predictor.FieldEngineSize:         types.WireEngineSize,
	predictor.FieldTransmission:       types.WireTransmission,
	predictor.FieldFuelType:           types.WireFuelType,
	predictor.FieldFuelConsumptionHwy: types.WireFuelConsumptionHwy,
}

// WireName returns the request-body name of f.
func WireName(f predictor.Field) string {
	if w, ok := wireNames[f]; ok {
		return w
	}
	return string(f)
}

// FieldFromName resolves a schema or wire field name, ignoring case.
func FieldFromName(s *predictor.Schema, name string) (predictor.Field, bool) {
	for _, f := range s.Fields() {
		if strings.EqualFold(name, string(f)) || strings.EqualFold(name, WireName(f)) {
			return f, true
		}
	}
	return "", false
}

// RecordFromRequest converts a request body into a record. Absent fields stay
// absent so assembly reports them.
func RecordFromRequest(req *types.PredictRequest) predictor.Record {
	r := make(predictor.Record, 7)
	setText(r, predictor.FieldMake, req.Make)
	setText(r, predictor.FieldModel, req.Model)
	setText(r, predictor.FieldVehicleClass, req.VehicleClass)
	setText(r, predictor.FieldTransmission, req.Transmission)
	setText(r, predictor.FieldFuelType, req.FuelType)
	if req.EngineSize != nil {
		r[predictor.FieldEngineSize] = string(*req.EngineSize)
	}
	if req.FuelConsumptionHwy != nil {
		r[predictor.FieldFuelConsumptionHwy] = string(*req.FuelConsumptionHwy)
	}
	return r
}

// RequestFromRecord is the inverse of RecordFromRequest.
func RequestFromRecord(r predictor.Record) types.PredictRequest {
	var req types.PredictRequest
	req.Make = text(r, predictor.FieldMake)
	req.Model = text(r, predictor.FieldModel)
	req.VehicleClass = text(r, predictor.FieldVehicleClass)
	req.Transmission = text(r, predictor.FieldTransmission)
	req.FuelType = text(r, predictor.FieldFuelType)
	if v, ok := r.Value(predictor.FieldEngineSize); ok {
		n := types.NumberText(v)
		req.EngineSize = &n
	}
	if v, ok := r.Value(predictor.FieldFuelConsumptionHwy); ok {
		n := types.NumberText(v)
		req.FuelConsumptionHwy = &n
	}
	return req
}

func setText(r predictor.Record, f predictor.Field, v *string) {
	if v != nil {
		r[f] = *v
	}
}

func text(r predictor.Record, f predictor.Field) *string {
	if v, ok := r.Value(f); ok {
		return &v
	}
	return nil
}
