package worker

import (
	"context"
)

// Worker - фоновая задача веб-сервиса: отправка тревог из очереди
// и чистка просроченных состояний дашборда. Жизненным циклом управляет WorkerManager.
type Worker interface {
	// Start блокируется до отмены ctx или Stop
	Start(ctx context.Context) error

	// Stop просит воркер завершиться, дочитав то, что уже принято
	Stop() error

	// Name - имя для логов
	Name() string
}
