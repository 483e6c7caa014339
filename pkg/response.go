package pkg

import (
	"net/http"

	log "github.com/sirupsen/logrus"
)

var ContentType = struct {
	JSON string
	YAML string
	Text string
}{
	JSON: "application/json",
	YAML: "application/yaml",
	Text: "text/plain; charset=utf-8",
}

func WriteResponse(w http.ResponseWriter, contentType, message string, status int) {
	WriteResponseBytes(w, contentType, []byte(message), status)
}

func WriteResponseBytes(w http.ResponseWriter, contentType string, message []byte, status int) {
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(status)

	if _, err := w.Write(message); err != nil {
		log.Errorf("failed to write response [%s]: %s", message, err)
	}
}
