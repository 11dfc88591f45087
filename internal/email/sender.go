package email

import (
	"context"
	"errors"
)

// Message es un correo listo para enviar. Si HTML esta vacio se envia Text.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Sender entrega mensajes a traves de un relay externo.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) Send(_ context.Context, _ Message) error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}
