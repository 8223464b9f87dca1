package api

import (
	"encoding/json"
	"fmt"
)

// Envelope is the normalized response wrapper every façade call returns:
// {status: 0|1, data, message}. The backend has shipped three envelope
// shapes over time; NormalizeEnvelope folds them all into this one.
type Envelope struct {
	Status  int             `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
}

// OK reports whether the envelope signals success.
func (e *Envelope) OK() bool {
	return e.Status == 1
}

// UnmarshalData decodes the data payload into v.
func (e *Envelope) UnmarshalData(v any) error {
	if len(e.Data) == 0 {
		return fmt.Errorf("response has no data")
	}
	return json.Unmarshal(e.Data, v)
}

// envelopeShape tags the raw body shapes the backend has produced.
type envelopeShape int

const (
	shapeStatus  envelopeShape = iota // {"status": 0|1, ...} — current
	shapeSuccess                      // {"success": bool, ...} — legacy
	shapeRaw                          // bare payload, no wrapper
)

// rawEnvelope probes a JSON object for the fields that identify its shape.
type rawEnvelope struct {
	Status  *int            `json:"status"`
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (r *rawEnvelope) shape() envelopeShape {
	switch {
	case r.Status != nil:
		return shapeStatus
	case r.Success != nil:
		return shapeSuccess
	default:
		return shapeRaw
	}
}

// NormalizeEnvelope maps any of the known body shapes to the canonical
// envelope. The mapping is total: every valid JSON body lands in exactly
// one case, and an unrecognized object is a raw payload, not an error.
func NormalizeEnvelope(body []byte) (*Envelope, error) {
	var raw rawEnvelope
	if err := json.Unmarshal(body, &raw); err != nil {
		// Not an object (array, scalar) but still valid JSON: raw payload.
		var probe any
		if jsonErr := json.Unmarshal(body, &probe); jsonErr != nil {
			return nil, jsonErr
		}
		return wrapRaw(body), nil
	}

	switch raw.shape() {
	case shapeStatus:
		return &Envelope{Status: *raw.Status, Data: raw.Data, Message: raw.Message}, nil
	case shapeSuccess:
		status := 0
		if *raw.Success {
			status = 1
		}
		return &Envelope{Status: status, Data: raw.Data, Message: raw.Message}, nil
	default:
		return wrapRaw(body), nil
	}
}

func wrapRaw(body []byte) *Envelope {
	return &Envelope{
		Status:  1,
		Data:    json.RawMessage(body),
		Message: "Request successful",
	}
}

// wrapText wraps a non-JSON text body as a successful raw payload.
func wrapText(body []byte) *Envelope {
	data, _ := json.Marshal(string(body))
	return &Envelope{
		Status:  1,
		Data:    data,
		Message: "Request successful",
	}
}
