package requestresponse

// ErrorItem : одна ошибка в ответе
type ErrorItem struct {
	Type     string `json:"type" example:"ValidationError"`
	Msg      string `json:"msg" example:"Email is required!"`
	Path     string `json:"path" example:"email"`
	Location string `json:"location" example:"body"`
}

// ErrorResponse : тело ответа с ошибками
type ErrorResponse struct {
	Errors []ErrorItem `json:"errors"`
}
