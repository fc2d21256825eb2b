package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gamma-omg/linguaflow/internal/pkg/serr"
)

func ReadJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(out)
}

func WriteJSON(w http.ResponseWriter, status int, resp any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	return enc.Encode(resp)
}

func HandleErr(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("request error",
		"error", err,
		"method", r.Method,
		"url", r.URL.String(),
		"remote_addr", r.RemoteAddr,
	)

	var se *serr.ServiceError
	if errors.As(err, &se) {
		if writeErr := WriteJSON(w, se.StatusCode, map[string]string{"error": se.Msg}); writeErr != nil {
			slog.Error("write error response", "error", writeErr)
		}
		return
	}

	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
