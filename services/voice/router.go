// File: services/voice/router.go
package voice

import (
	"context"
	"encoding/json"
	"fmt"

	"frontdesk/config"
	"frontdesk/models"
	"frontdesk/utils"

	"go.uber.org/zap"
)

// Sender delivers outbound messages on the call channel. The websocket
// handler supplies the real implementation; tests capture messages.
type Sender interface {
	Send(msg any) error
}

// Router owns the call session for the lifetime of one channel connection and
// dispatches inbound events by kind. All mutation of the session happens on
// the single message-processing path, so no locking is needed.
type Router struct {
	dispatcher *Dispatcher
	session    models.CallSession
	ended      bool
}

func NewRouter(dispatcher *Dispatcher) *Router {
	return &Router{dispatcher: dispatcher}
}

// Session exposes the live session state (summary logging, tests).
func (r *Router) Session() *models.CallSession {
	return &r.session
}

// HandleMessage processes one raw inbound frame. Failures while handling a
// single message are reported on the channel and never terminate it; the
// return value is true once the call has ended and no further messages should
// be sent.
func (r *Router) HandleMessage(ctx context.Context, raw []byte, send Sender) (ended bool) {
	logger := utils.GetLogger()

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("Panic handling channel message", zap.Any("recover", rec))
			r.sendError(send, fmt.Sprintf("internal error: %v", rec))
		}
	}()

	var event models.InboundEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		logger.Warn("Malformed channel message", zap.Error(err))
		r.sendError(send, "invalid message: "+err.Error())
		return false
	}

	switch event.Type {
	case models.EventCallStarted:
		r.session.CallID = event.CallID
		logger.Info("Call started", zap.String("callId", event.CallID))
		if err := send.Send(models.ConfigMessage{
			Type:  models.MessageConfig,
			Agent: config.GetAgentPrompt(),
		}); err != nil {
			logger.Error("Failed to send agent config", zap.Error(err))
		}

	case models.EventTranscript:
		if event.Speaker == "customer" {
			ExtractCustomerInfo(event.Transcript, &r.session)
		}

	case models.EventFunctionCall:
		result := r.dispatcher.Dispatch(ctx, event.FunctionName, event.Arguments, &r.session)
		if err := send.Send(models.FunctionResultMessage{
			Type:         models.MessageFunctionCallResult,
			FunctionName: event.FunctionName,
			Result:       result,
		}); err != nil {
			logger.Error("Failed to send function result",
				zap.String("function", event.FunctionName), zap.Error(err))
		}

	case models.EventCallEnded:
		logger.Info("Call ended",
			zap.String("callId", event.CallID),
			zap.String("customer", r.session.CustomerName),
			zap.Bool("bookingConfirmed", r.session.BookingConfirmed),
		)
		r.ended = true
		return true

	default:
		logger.Debug("Ignoring unknown event type", zap.String("type", event.Type))
	}

	return false
}

func (r *Router) sendError(send Sender, message string) {
	if r.ended {
		return
	}
	if err := send.Send(models.ErrorMessage{Type: models.MessageError, Message: message}); err != nil {
		utils.GetLogger().Error("Failed to send error message", zap.Error(err))
	}
}
