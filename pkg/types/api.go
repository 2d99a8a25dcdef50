package types

// RootResponse is returned by GET /.
type RootResponse struct {
	// example: CO2 Emissions Prediction API
	Message string `json:"message" example:"CO2 Emissions Prediction API"`
}

// PredictRequest is the body of POST /predict. Every field is required.
type PredictRequest struct {
	// Vehicle make.
	// example: FORD
	Make *string `json:"Make" example:"FORD"`
	// Vehicle model.
	// example: F-150
	Model *string `json:"Model" example:"F-150"`
	// Vehicle class.
	// example: PICKUP TRUCK - STANDARD
	VehicleClass *string `json:"Vehicle_Class" example:"PICKUP TRUCK - STANDARD"`
	// Engine size in litres. Number or numeric string.
	// example: 3.5
	EngineSize *NumberText `json:"Engine_Size_L" swaggertype:"number" example:"3.5"`
	// Transmission code.
	// example: AS6
	Transmission *string `json:"Transmission" example:"AS6"`
	// Fuel type code.
	// example: X
	FuelType *string `json:"Fuel_Type" example:"X"`
	// Highway fuel consumption in L/100 km. Number or numeric string.
	// example: 10.8
	FuelConsumptionHwy *NumberText `json:"Fuel_Consumption_Hwy_L_100km" swaggertype:"number" example:"10.8"`
}

// PredictResponse is returned by POST /predict.
type PredictResponse struct {
	// Predicted CO2 emissions in g/km.
	// example: 301.7
	Prediction float64 `json:"prediction" example:"301.7"`
	// Version of the artifact set that produced the prediction.
	// example: 3f9c2a71d04be815
	Version string `json:"version" example:"3f9c2a71d04be815"`
}

// LabelsResponse is returned by GET /labels, keyed by wire field name.
type LabelsResponse struct {
	Labels map[string][]string `json:"labels"`
	// example: 3f9c2a71d04be815
	Version string `json:"version" example:"3f9c2a71d04be815"`
}

// FieldLabelsResponse is returned by GET /labels/{field}.
type FieldLabelsResponse struct {
	// example: Fuel_Type
	Field  string   `json:"field" example:"Fuel_Type"`
	Labels []string `json:"labels"`
	// example: 3f9c2a71d04be815
	Version string `json:"version" example:"3f9c2a71d04be815"`
}

// SchemaResponse is returned by GET /schema.
type SchemaResponse struct {
	Columns []ColumnInfo `json:"columns"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: unknown category "HONDA" for field Make
	Error string `json:"error" example:"unknown category \"HONDA\" for field Make"`
	// HTTP status code.
	// example: 422
	Code int `json:"code" example:"422"`
	// Offending input field (wire name), when the error is tied to one.
	// example: Make
	Field string `json:"field,omitempty" example:"Make"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Serving state: loading, ready or error.
	// example: ready
	State string `json:"state" example:"ready"`
	// Version of the artifact set in use.
	// example: 3f9c2a71d04be815
	Version string `json:"version,omitempty" example:"3f9c2a71d04be815"`
	// When the artifact set was fitted (unix seconds).
	// example: 1700000000
	FittedAtUnix int64 `json:"fitted_at_unix,omitempty" example:"1700000000"`
	// Training rows used for the fit.
	// example: 7385
	Rows int `json:"rows" example:"7385"`
	// Training R^2 of the fit.
	// example: 0.86
	R2 float64 `json:"r2" example:"0.86"`
	// Artifact store description.
	// example: file:/var/lib/co2d/artifacts
	Store string `json:"store,omitempty" example:"file:/var/lib/co2d/artifacts"`
	// Successful artifact loads (startup + reloads).
	// example: 2
	LoadsTotal uint64 `json:"loads_total" example:"2"`
	// Failed reload attempts.
	// example: 0
	ReloadFailures uint64 `json:"reload_failures" example:"0"`
	// Predictions served.
	// example: 1024
	PredictionsTotal uint64 `json:"predictions_total" example:"1024"`
	// Predictions rejected because of the input.
	// example: 3
	PredictionErrors uint64 `json:"prediction_errors" example:"3"`
	// Entries currently held in the prediction cache.
	// example: 12
	CacheEntries int `json:"cache_entries" example:"12"`
	// Last error observed by the manager (if any).
	LastError string `json:"last_error,omitempty"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
