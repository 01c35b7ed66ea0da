package application

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"gopkg.in/gomail.v2"

	"inspection_service/domain"
)

var (
	smtpServer   = os.Getenv("SMTP_SERVER")
	smtpPortEnv  = os.Getenv("SMTP_SERVER_PORT")
	smtpEmail    = os.Getenv("SMTP_AUTH_MAIL")
	smtpPassword = os.Getenv("SMTP_AUTH_PASSWORD")
)

// DecisionMailer tells an establishment owner about a status decision. The
// SMTP hop sits behind a circuit breaker so a dead mail server stops being
// dialed after a few consecutive failures.
type DecisionMailer struct {
	dialer *gomail.Dialer
	cb     *gobreaker.CircuitBreaker
}

func NewDecisionMailer() *DecisionMailer {
	port, err := strconv.Atoi(smtpPortEnv)
	if err != nil {
		port = 587
	}
	return &DecisionMailer{
		dialer: gomail.NewDialer(smtpServer, port, smtpEmail, smtpPassword),
		cb:     CircuitBreaker("decisionMailer"),
	}
}

func (mailer *DecisionMailer) SendDecisionMail(to, establishmentName, status, reason string) error {
	message := gomail.NewMessage()
	message.SetHeader("From", smtpEmail)
	message.SetHeader("To", to)
	message.SetHeader("Subject", fmt.Sprintf("Inspection update for %s", establishmentName))

	var bodyString string
	switch status {
	case domain.StatusApproved:
		bodyString = fmt.Sprintf("Your accommodation submission for %s has been approved.", establishmentName)
	case domain.StatusApprovedAttachment:
		bodyString = fmt.Sprintf("An inspection appointment has been confirmed for %s.", establishmentName)
	case domain.StatusDeclined:
		bodyString = fmt.Sprintf("Your accommodation submission for %s has been declined.\nReason: %s", establishmentName, reason)
	default:
		bodyString = fmt.Sprintf("The status of your submission for %s is now %s.", establishmentName, status)
	}
	message.SetBody("text", bodyString)

	_, err := mailer.cb.Execute(func() (interface{}, error) {
		return nil, mailer.dialer.DialAndSend(message)
	})
	return err
}

func CircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(
		gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     10 * time.Second,
			Interval:    0,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 2
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				log.Printf("Circuit Breaker '%s' changed from '%s' to '%s'\n", name, from, to)
			},
		},
	)
}
