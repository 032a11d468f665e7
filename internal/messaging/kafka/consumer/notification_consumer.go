package consumer

import (
	"context"
	"encoding/json"

	"topcv/internal/events"
	"topcv/internal/mail"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeUserRegistered turns user.registered events into OTP verification
// mails. Delivery failure leaves the message uncommitted so it is retried;
// decode failure commits and drops (the payload will never become valid).
func ConsumeUserRegistered(
	ctx context.Context,
	reader *kafkago.Reader,
	sender mail.Sender,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.user_registered")
	log.Info("user registered consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("user registered consumer stopped")
				return
			}
			log.Error("fetch user registered message failed", zap.Error(err))
			continue
		}

		var event events.UserRegisteredEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode user_registered event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := sender.SendOtpMail(event.Email, event.FullName, event.OtpCode); err != nil {
			log.Error("send otp mail failed",
				zap.String("email", event.Email),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit user registered message failed", zap.Error(err))
			continue
		}

		log.Info("otp mail sent from user_registered event",
			zap.String("email", event.Email),
		)
	}
}

// ConsumeApplicationSubmitted notifies the employer when a seeker applies.
func ConsumeApplicationSubmitted(
	ctx context.Context,
	reader *kafkago.Reader,
	sender mail.Sender,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.application_submitted")
	log.Info("application submitted consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("application submitted consumer stopped")
				return
			}
			log.Error("fetch application submitted message failed", zap.Error(err))
			continue
		}

		var event events.ApplicationSubmittedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode application_submitted event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if event.EmployerEmail == "" {
			log.Warn("application_submitted event without employer email, skipping",
				zap.String("application_id", event.ApplicationID),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := sender.SendApplicationReceivedMail(event.EmployerEmail, event.JobTitle, event.ApplicantName); err != nil {
			log.Error("send application mail failed",
				zap.String("application_id", event.ApplicationID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit application submitted message failed", zap.Error(err))
			continue
		}

		log.Info("employer notified from application_submitted event",
			zap.String("application_id", event.ApplicationID),
			zap.String("job_post_id", event.JobPostID),
		)
	}
}
