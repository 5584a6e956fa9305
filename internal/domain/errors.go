package domain

import (
	"errors"
	"fmt"
)

// BackendErrorKind - вид ошибки обращения к бэкенду
type BackendErrorKind string

const (
	// NetworkError - запрос не удалось выполнить
	NetworkError BackendErrorKind = "network"
	// ServerError - запрос выполнен, но статус неуспешный или ответ битый
	ServerError BackendErrorKind = "server"
)

// BackendError - ошибка обращения к эндпоинту бэкенда
type BackendError struct {
	Kind       BackendErrorKind
	Endpoint   string
	StatusCode int
	Detail     string
	Err        error
}

func (e *BackendError) Error() string {
	switch {
	case e.Kind == NetworkError:
		return fmt.Sprintf("%s: backend unreachable: %v", e.Endpoint, e.Err)
	case e.StatusCode != 0 && e.Detail != "":
		return fmt.Sprintf("%s: backend returned status %d: %s", e.Endpoint, e.StatusCode, e.Detail)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: backend returned status %d", e.Endpoint, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Endpoint, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Endpoint, e.Detail)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

func NewNetworkError(endpoint string, err error) *BackendError {
	return &BackendError{Kind: NetworkError, Endpoint: endpoint, Err: err}
}

func NewStatusError(endpoint string, status int, detail string) *BackendError {
	return &BackendError{Kind: ServerError, Endpoint: endpoint, StatusCode: status, Detail: detail}
}

func NewMalformedError(endpoint string, err error) *BackendError {
	return &BackendError{Kind: ServerError, Endpoint: endpoint, Detail: "malformed payload", Err: err}
}

// IsNetworkError / IsServerError распознают вид ошибки бэкенда в цепочке
func IsNetworkError(err error) bool {
	var be *BackendError
	return errors.As(err, &be) && be.Kind == NetworkError
}

func IsServerError(err error) bool {
	var be *BackendError
	return errors.As(err, &be) && be.Kind == ServerError
}

// ErrStaleFetch - результат загрузки устарел: после неё уже стартовала новая
var ErrStaleFetch = errors.New("dashboard fetch superseded by a newer reload")

// HumanMessage сводит любую ошибку загрузки к одному сообщению для пользователя
func HumanMessage(err error) string {
	if err == nil {
		return ""
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "Unable to load data"
}
