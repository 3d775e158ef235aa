// internal/workers/assessment/notify-results/handler.go
package notifyresults

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"career-assessment-workers/internal/common/aws"
	apperrors "career-assessment-workers/internal/common/errors"
	"career-assessment-workers/internal/common/logger"
	"career-assessment-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "notify-results"
)

const recipientQuery = `SELECT id, COALESCE(full_name, ''), COALESCE(email, ''), COALESCE(phone, '') FROM users WHERE id = $1`

type Handler struct {
	config       *Config
	db           *sql.DB
	email        *aws.EmailSender
	sms          *aws.SMSSender
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
}

// NewHandler wires the worker. A nil sender disables its channel.
func NewHandler(config *Config, db *sql.DB, email *aws.EmailSender, sms *aws.SMSSender, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		db:           db,
		email:        email,
		sms:          sms,
		errorHandler: apperrors.NewErrorHandler(log),
		logger:       log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, apperrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || input.UserID == "" {
		return nil, apperrors.NewInvalidInputError("userId is required")
	}

	output := &Output{
		NotificationID: uuid.New().String(),
		Status:         StatusDisabled,
		SentAt:         time.Now().UTC().Format(time.RFC3339),
	}
	emailOn := h.config.EmailEnabled && h.email != nil
	smsOn := h.config.SMSEnabled && h.sms != nil
	if !emailOn && !smsOn {
		return output, nil
	}

	recipient, err := h.getRecipient(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	matches := input.Matches
	if h.config.SummarySize > 0 && len(matches) > h.config.SummarySize {
		matches = matches[:h.config.SummarySize]
	}

	if emailOn && recipient.Email != "" && validation.ValidateEmail(recipient.Email) {
		text, html, err := renderEmail(summary{
			Name:            recipient.Name,
			HollandCode:     input.HollandCode,
			PersonalityType: input.PersonalityType,
			Matches:         matches,
		})
		if err != nil {
			return nil, apperrors.NewNotificationSendFailedError("email", err)
		}
		id, err := h.email.Send(ctx, recipient.Email, subject, text, html)
		if err != nil {
			return nil, apperrors.NewNotificationSendFailedError("email", err)
		}
		output.EmailMessageID = id
		output.Status = StatusSent
	}

	if smsOn && recipient.Phone != "" && validation.ValidatePhone(recipient.Phone) {
		id, err := h.sms.Send(ctx, recipient.Phone, renderSMS(matches))
		if err != nil {
			// SMS is best effort once the email is out.
			h.logger.Warn("sms send failed", map[string]interface{}{
				"userId": input.UserID,
				"error":  err.Error(),
			})
		} else {
			output.SMSMessageID = id
			output.Status = StatusSent
		}
	}

	h.logger.Info("results notification processed", map[string]interface{}{
		"userId":         input.UserID,
		"notificationId": output.NotificationID,
		"status":         output.Status,
		"matches":        len(matches),
	})
	return output, nil
}

func (h *Handler) getRecipient(ctx context.Context, userID string) (*Recipient, error) {
	if h.db == nil {
		return nil, apperrors.NewDatabaseConnectionFailedError(errors.New("database not configured"))
	}
	var r Recipient
	err := h.db.QueryRowContext(ctx, recipientQuery, userID).Scan(&r.UserID, &r.Name, &r.Email, &r.Phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewRecipientNotFoundError(userID)
	}
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("recipient", err)
	}
	return &r, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
