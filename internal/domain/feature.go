package domain

// FeatureRequest is the payload submitted to POST /new-endpoint.
type FeatureRequest struct {
	Param1        string `json:"param1" binding:"required"`
	Param2        int    `json:"param2" binding:"required"`
	OptionalParam *bool  `json:"optionalParam,omitempty"`
}

// FeatureResponse is the envelope the feature endpoint answers with. Data is
// optional and endpoint-defined, so it stays a free-form object.
type FeatureResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// DecodeFeatureResponse parses a feature envelope. The success and message
// fields must be present; data may be omitted.
func DecodeFeatureResponse(data []byte) (FeatureResponse, error) {
	var out FeatureResponse
	if err := decodeObject(data, &out, "success", "message"); err != nil {
		return FeatureResponse{}, err
	}
	return out, nil
}
