package dto

import "Vidtube/internal/apperror"

// Response 所有成功响应的外层结构
type Response struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// ErrorResponse 所有失败响应的外层结构，errors永远是数组，data永远是null
type ErrorResponse struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Errors     []string    `json:"errors"`
	Data       interface{} `json:"data"`
	Success    bool        `json:"success"`
}

func Success(statusCode int, data interface{}, message string) Response {
	if message == "" {
		message = "Success"
	}
	return Response{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	}
}

func Failure(err *apperror.Error) ErrorResponse {
	details := err.Errors
	if details == nil {
		details = []string{}
	}
	return ErrorResponse{
		StatusCode: err.StatusCode,
		Message:    err.Message,
		Errors:     details,
		Success:    false,
	}
}
