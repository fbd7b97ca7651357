package respond

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Application error codes carried in error bodies. They mirror the HTTP
// status so clients may check either.
const (
	CODE_INVALID_JSON   = http.StatusBadRequest
	CODE_UNAUTHORIZED   = http.StatusUnauthorized
	CODE_INTERNAL_ERROR = http.StatusInternalServerError
)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

func ErrorWithCode(w http.ResponseWriter, httpCode, appCode int) {
	ErrorWithMessage(w, httpCode, appCode, "")
}

func ErrorWithMessage(w http.ResponseWriter, httpCode, appCode int, msg string) {
	writeJSON(w, httpCode, Error{Code: appCode, Message: msg})
}

func JSON(w http.ResponseWriter, v interface{}) {
	writeJSON(w, http.StatusOK, v)
}

func writeJSON(w http.ResponseWriter, httpCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpCode)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		logrus.WithError(err).Error("failed to encode response")
	}
}
