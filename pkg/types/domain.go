package types

// ColumnInfo describes one slot of the feature vector.
type ColumnInfo struct {
	// Position in the feature vector.
	// example: 3
	Index int `json:"index" example:"3"`
	// Schema field name.
	// example: EngineSize
	Name string `json:"name" example:"EngineSize"`
	// Name used in request bodies.
	// example: Engine_Size_L
	Wire string `json:"wire" example:"Engine_Size_L"`
	// categorical or numeric.
	// example: numeric
	Kind string `json:"kind" example:"numeric"`
}
