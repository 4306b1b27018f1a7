package finance

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	gonanoid "github.com/matoous/go-nanoid/v2"
	errs "github.com/pkg/errors"

	"github.com/trezcool/gateway/core"
	"github.com/trezcool/gateway/core/deferred"
	"github.com/trezcool/gateway/core/user"
)

const confirmationAlphabet = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZ"

var (
	ErrPaymentInProgress = errors.New("a payment is already being processed")

	NowFunc = time.Now // mockable
)

type (
	Service struct {
		repo       Repository
		ledger     Ledger
		validate   *validator.Validate
		translator ut.Translator
		mailSvc    core.EmailService
		logger     core.Logger
		delay      time.Duration
	}

	confirmationData struct {
		Name             string
		Amount           string
		ConfirmationID   string
		RemainingBalance string
	}
)

func NewService(
	repo Repository,
	ledger Ledger,
	validate *validator.Validate,
	translator ut.Translator,
	mailSvc core.EmailService,
	logger core.Logger,
	delay time.Duration,
) *Service {
	return &Service{
		repo:       repo,
		ledger:     ledger,
		validate:   validate,
		translator: translator,
		mailSvc:    mailSvc,
		logger:     logger,
		delay:      delay,
	}
}

// Account returns the student account with the session's completed payments credited.
func (svc *Service) Account(ctx context.Context, sessionID string) (Account, error) {
	acct, err := svc.repo.GetAccount(ctx)
	if err != nil {
		return Account{}, errs.Wrap(err, "getting account")
	}
	payments, err := svc.Payments(ctx, sessionID)
	if err != nil {
		return Account{}, err
	}
	items := make([]LineItem, 0, len(acct.Items)+len(payments))
	items = append(items, acct.Items...)
	for _, p := range payments {
		if p.Status != StatusCompleted {
			continue
		}
		items = append(items, LineItem{Description: "Online Payment " + p.ConfirmationID, Amount: -p.Amount})
		acct.Balance += p.Amount
	}
	acct.Items = items
	acct.Balance = core.Round(acct.Balance, 2)
	return acct, nil
}

func (svc *Service) Aid(ctx context.Context) (AidSummary, error) {
	year, err := svc.repo.GetAidYear(ctx)
	if err != nil {
		return AidSummary{}, errs.Wrap(err, "getting aid year")
	}
	return Summarize(year), nil
}

// Payments returns the payments made in the session, oldest first.
func (svc *Service) Payments(ctx context.Context, sessionID string) ([]Payment, error) {
	payments, err := svc.ledger.Payments(ctx, sessionID)
	if err != nil {
		return nil, errs.Wrap(err, "getting payments")
	}
	return payments, nil
}

// Pay validates the form and records the payment as processing.
// The returned task resolves once the payment completes, after the configured delay.
// Only one payment per session is processed at a time.
func (svc *Service) Pay(ctx context.Context, sessionID string, usr *user.User, req PaymentRequest) (Payment, *deferred.Task[Payment], error) {
	if err := req.Validate(svc.validate, svc.translator); err != nil {
		return Payment{}, nil, err
	}

	id, err := gonanoid.New(10)
	if err != nil {
		return Payment{}, nil, errs.Wrap(err, "generating payment id")
	}
	p := Payment{
		ID:          id,
		Amount:      req.Amount,
		CardLast4:   req.CardLast4(),
		Status:      StatusProcessing,
		SubmittedAt: NowFunc().UTC(),
	}
	if err = svc.ledger.Begin(ctx, sessionID, p); err != nil {
		return Payment{}, nil, errs.Wrap(err, "recording payment")
	}

	var recipient *user.User
	if !usr.IsZero() {
		u := *usr
		recipient = &u
	}
	return p, deferred.After(svc.delay, func() Payment {
		done := svc.complete(p)
		if err := svc.ledger.Save(context.Background(), sessionID, done); err != nil {
			// the session ended while the payment was processing
			err = errs.Wrapf(err, "saving payment %s", done.ID)
			svc.logger.Warn(err.Error(), err, recipient)
			return done
		}
		svc.sendConfirmation(sessionID, recipient, done)
		return done
	}), nil
}

func (svc *Service) complete(p Payment) Payment {
	conf, err := gonanoid.Generate(confirmationAlphabet, 10)
	if err != nil {
		conf = p.ID
	}
	now := NowFunc().UTC()
	p.ConfirmationID = conf
	p.Status = StatusCompleted
	p.CompletedAt = &now
	return p
}

func (svc *Service) sendConfirmation(sessionID string, usr *user.User, p Payment) {
	if usr == nil {
		return
	}
	acct, err := svc.Account(context.Background(), sessionID)
	if err != nil {
		svc.logger.Error(err.Error(), err, usr)
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: usr.FullName(), Address: usr.Email}},
		Subject:      "Payment confirmation",
		TemplateName: "payment_confirmation",
		TemplateData: confirmationData{
			Name:             usr.FirstName,
			Amount:           fmt.Sprintf("%.2f", p.Amount),
			ConfirmationID:   p.ConfirmationID,
			RemainingBalance: fmt.Sprintf("%.2f", acct.AmountDue()),
		},
	})
}
