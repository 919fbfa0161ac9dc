package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func SendJSON(w http.ResponseWriter, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Set("Content-Type", "application/json")
	return w.Write(payload)
}

func SendJSONOrLog(w http.ResponseWriter,
	logger *slog.Logger,
	v any,
) {
	_, err := SendJSON(w, v)
	if err != nil {
		logger.Error(
			"failed to send data",
			slog.Any("data", v),
			slog.Any("error", err),
		)
	}
}

// SendErrorOrLog writes status and a {"error": ...} body.
func SendErrorOrLog(
	w http.ResponseWriter,
	logger *slog.Logger,
	status int,
	e error,
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	payload, err := json.Marshal(wrapError(e))
	if err == nil {
		_, err = w.Write(payload)
	}
	if err != nil {
		logger.Error(
			"failed to send error message",
			slog.Any("sent error", e),
			slog.Any("error", err),
		)
	}
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}
