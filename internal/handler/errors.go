package handler

import (
	"auth-service/internal/apperror"
	"auth-service/internal/model/requestresponse"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
)

const maxBodyBytes = 1 << 20

// WriteError : единственное место, где ошибка превращается в HTTP ответ.
// Для 5xx клиент получает общее сообщение, подробности уходят в лог.
func WriteError(w http.ResponseWriter, err error) {
	kind := apperror.KindOf(err)
	status := apperror.HTTPStatus(kind)
	msg := apperror.MessageOf(err)

	if status >= http.StatusInternalServerError {
		log.Printf("[Handler] внутренняя ошибка (%s): %v", kind, err)
		kind = apperror.Internal
		msg = "Internal server error"
	}
	if msg == "" {
		msg = http.StatusText(status)
	}

	writeJSON(w, status, requestresponse.ErrorResponse{
		Errors: []requestresponse.ErrorItem{{Type: string(kind), Msg: msg}},
	})
}

func writeValidationErrors(w http.ResponseWriter, items []requestresponse.ErrorItem) {
	writeJSON(w, http.StatusBadRequest, requestresponse.ErrorResponse{Errors: items})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Println("ошибка кодирования ответа:", err)
	}
}

// decodeJSON : некорректное тело запроса считается ошибкой валидации
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) []requestresponse.ErrorItem {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	decoder := json.NewDecoder(r.Body)

	if err := decoder.Decode(v); err != nil {
		msg := "Invalid JSON body"
		if errors.Is(err, io.EOF) {
			msg = "Request body is required"
		}
		return bodyError(msg)
	}
	// после объекта допускаются только пробелы
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return bodyError("Invalid JSON body")
	}
	return nil
}

func bodyError(msg string) []requestresponse.ErrorItem {
	return []requestresponse.ErrorItem{{
		Type:     string(apperror.ValidationError),
		Msg:      msg,
		Location: "body",
	}}
}
