package nats

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/nats-io/nats.go"

	"github.com/agency/cryptoservice/internal/common"
	"github.com/agency/cryptoservice/internal/server/services"
)

const (
	SubjectSave    = "save.msg"
	SubjectReceive = "receive.msg"
)

// Responses for callers. Internal failure details never cross the wire.
const (
	msgNotFound       = "Message not found or already deleted."
	msgInternalError  = "Failed to process request"
	msgInvalidRequest = "Malformed request payload"
)

func (s *Server) handleSave(msg *nats.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), s.requestTimeout)
	defer cancel()

	var req SaveMessageRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		s.logger.Warn(ctx, "malformed save request", "error", err.Error())
		s.reply(ctx, msg, &SaveMessageResponse{Success: false, ErrorMessage: msgInvalidRequest})
		return
	}

	result, err := s.service.Save(ctx, req.Message)
	s.reply(ctx, msg, saveResponse(result, err))
}

func (s *Server) handleReceive(msg *nats.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), s.requestTimeout)
	defer cancel()

	var req ReceiveMessageRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		s.logger.Warn(ctx, "malformed receive request", "error", err.Error())
		s.reply(ctx, msg, &ReceiveMessageResponse{Success: false, ErrorMessage: msgInvalidRequest})
		return
	}
	req.Normalize()

	result, err := s.service.Redeem(ctx, req.ID, req.Password, req.AesKey)
	s.reply(ctx, msg, receiveResponse(result, err))
}

// saveResponse maps a service result to the wire shape.
func saveResponse(result *services.SaveResult, err error) *SaveMessageResponse {
	if err == nil {
		return &SaveMessageResponse{
			ID:       result.ID,
			Password: result.Password,
			AesKey:   result.Key,
			Success:  true,
		}
	}

	if errors.Is(err, common.ErrorValidation) {
		return &SaveMessageResponse{Success: false, ErrorMessage: err.Error()}
	}

	return &SaveMessageResponse{Success: false, ErrorMessage: msgInternalError}
}

// receiveResponse maps a service result to the wire shape. A record that
// never existed and one that was destroyed produce the same response.
func receiveResponse(result *services.RedeemResult, err error) *ReceiveMessageResponse {
	if err == nil {
		return &ReceiveMessageResponse{
			Message: result.Message,
			Success: true,
			Deleted: result.Deleted,
		}
	}

	var credErr *services.WrongCredentialsError
	switch {
	case errors.Is(err, common.ErrorValidation):
		return &ReceiveMessageResponse{Success: false, ErrorMessage: err.Error()}
	case errors.Is(err, common.ErrorNotFound):
		return &ReceiveMessageResponse{Success: false, ErrorMessage: msgNotFound, Deleted: true}
	case errors.As(err, &credErr):
		remaining := credErr.RemainingTries
		return &ReceiveMessageResponse{
			Success:        false,
			ErrorMessage:   credErr.Reason,
			RemainingTries: &remaining,
			Deleted:        credErr.Deleted,
		}
	default:
		return &ReceiveMessageResponse{Success: false, ErrorMessage: msgInternalError}
	}
}

func (s *Server) reply(ctx context.Context, msg *nats.Msg, response any) {
	if msg.Reply == "" {
		s.logger.Warn(ctx, "no reply subject, dropping response", "subject", msg.Subject)
		return
	}

	data, err := json.Marshal(response)
	if err != nil {
		s.logger.Error(ctx, "failed to marshal response", "error", err.Error())
		return
	}

	if err := msg.Respond(data); err != nil {
		s.logger.Error(ctx, "failed to send reply", "error", err.Error())
	}
}
