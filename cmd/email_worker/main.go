package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/autoforge-api/config"
	"github.com/oksasatya/autoforge-api/pkg/helpers"
	"github.com/oksasatya/autoforge-api/pkg/mailer"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env, cfg.LogLevel)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Fatal("Mailgun not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// prefetch for fair dispatch across workers
	if err := ch.Qos(16, 0, false); err != nil {
		logger.Fatalf("qos: %v", err)
	}
	if _, err := ch.QueueDeclare(cfg.RabbitMQEmailQueue, true, false, false, false, nil); err != nil {
		logger.Fatalf("queue declare: %v", err)
	}
	msgs, err := ch.Consume(cfg.RabbitMQEmailQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	policy := mailer.DefaultRetryPolicy()
	go func() {
		defer close(done)
		for msg := range msgs {
			err := mailer.Handle(ctx, msg.Body, mg)
			retries := mailer.RetryCount(msg.Headers)
			switch policy.Decide(err, retries) {
			case mailer.Ack:
				_ = msg.Ack(false)
			case mailer.Drop:
				logger.WithError(err).WithField("retries", retries).Warn("dropping email job")
				_ = msg.Nack(false, false)
			case mailer.Retry:
				delay := policy.Backoff(retries)
				logger.WithError(err).WithFields(logrus.Fields{"retries": retries, "delay": delay}).Error("send failed, retrying")
				select {
				case <-ctx.Done():
					_ = msg.Nack(false, true)
					continue
				case <-time.After(delay):
				}
				// republish with the bumped count, then ack the original
				if perr := ch.PublishWithContext(ctx, "", cfg.RabbitMQEmailQueue, false, false, amqp.Publishing{
					ContentType:  msg.ContentType,
					DeliveryMode: amqp.Persistent,
					Headers:      mailer.WithRetry(msg.Headers, retries),
					Body:         msg.Body,
				}); perr != nil {
					logger.WithError(perr).Error("republish failed, requeueing")
					_ = msg.Nack(false, true)
					continue
				}
				_ = msg.Ack(false)
			}
		}
	}()

	logger.Infof("email worker listening on queue=%s", cfg.RabbitMQEmailQueue)
	<-stop
	logger.Info("shutting down...")
	cancel()
	_ = ch.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
