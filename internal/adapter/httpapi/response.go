package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/homes-service/internal/home/domain"
)

// Messages returned in {"message": ...} bodies.
const (
	MsgNoImage          = "No image provided"
	MsgImageInvalid     = "Image data not valid"
	MsgSomethingWrong   = "Something went wrong"
	MsgInvalidBody      = "Invalid request body"
	MsgBodyTooLarge     = "Request body too large"
	MsgHomeNotFound     = "Home not found"
	MsgInvalidHome      = "Invalid home data"
	msgMethodNotAllowed = "HTTP method %s is not supported."
)

type messageResponse struct {
	Message string             `json:"message"`
	Errors  domain.FieldErrors `json:"errors,omitempty"`
}

type uploadResponse struct {
	URL string `json:"url"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}
