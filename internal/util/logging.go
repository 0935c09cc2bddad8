package util

import (
	"fmt"
	"log"
	"strings"
)

// LogError логирует ошибку и возвращает ее обернутой в message.
func LogError(message string, err error) error {
	log.Printf("%s: %v", message, err)
	return fmt.Errorf("%s: %w", message, err)
}

// MaskEmail : "john.doe@example.com" -> "j***@example.com", для логов.
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}
