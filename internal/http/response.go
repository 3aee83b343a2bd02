package http

import (
	"encoding/json"
	"net/http"
	"time"
)

// SuccessEnvelope padroniza respostas com dados.
type SuccessEnvelope struct {
	Data  any   `json:"data"`
	Error any   `json:"error"`
	Meta  *Meta `json:"meta,omitempty"`
}

// Meta identifica o snapshot usado na derivação.
type Meta struct {
	SnapshotVersion string    `json:"snapshot_version"`
	LoadedAt        time.Time `json:"loaded_at"`
	ETag            string    `json:"-"`
}

// ErrorEnvelope padroniza respostas de erro.
type ErrorEnvelope struct {
	Data  any        `json:"data"`
	Error *ErrorBody `json:"error"`
}

// ErrorBody descreve falhas normalizadas.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// WriteJSON escreve envelope de sucesso.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	writeEnvelope(w, status, SuccessEnvelope{Data: data})
}

// WriteJSONMeta escreve envelope de sucesso com a versão do snapshot.
// Respostas dependem do portador do token e nunca vão para caches
// compartilhados.
func WriteJSONMeta(w http.ResponseWriter, status int, data any, meta *Meta) {
	if meta != nil && meta.ETag != "" {
		w.Header().Set("ETag", meta.ETag)
	}
	w.Header().Set("Cache-Control", "private, no-cache")
	w.Header().Add("Vary", "Authorization")
	writeEnvelope(w, status, SuccessEnvelope{Data: data, Meta: meta})
}

// WriteError escreve envelope de erro e mantém formato consistente.
func WriteError(w http.ResponseWriter, status int, code, message string, details interface{}) {
	writeEnvelope(w, status, ErrorEnvelope{
		Error: &ErrorBody{Code: code, Message: message, Details: details},
	})
}

func writeEnvelope(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
