// Package flow is the registration controller: it decides between the form and the
// summary, and runs the submit, confirm, edit and pay actions against a browser's slot.
package flow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"celerium-registration/internal/domain/billing"
	"celerium-registration/internal/domain/enrollment"
	"celerium-registration/internal/infra/payment"
	"celerium-registration/internal/infra/storage"
)

type State string

const (
	StateForm    State = "FORM"
	StateSummary State = "SUMMARY"
)

var (
	// ErrAlreadyPending is returned when submitting while a registration is pending.
	ErrAlreadyPending = errors.New("a registration is already pending")
	// ErrNothingPending is returned by summary actions when the slot is empty.
	ErrNothingPending = errors.New("no pending registration")
)

// PaymentError wraps a failed Pay action.
type PaymentError struct {
	Err error
}

func (e *PaymentError) Error() string { return e.Err.Error() }
func (e *PaymentError) Unwrap() error { return e.Err }

// Ledger records payment attempts.
type Ledger interface {
	Record(ctx context.Context, p *billing.Payment) error
}

// View is what the browser should be shown after a load or an action.
type View struct {
	State        State                  `json:"state"`
	Registration *enrollment.Registrant `json:"registration,omitempty"`
	Notice       *Notice                `json:"notice,omitempty"`
	RedirectURL  string                 `json:"redirect_url,omitempty"`
	// Input echoes a rejected submission so the form can be refilled.
	Input *enrollment.Submission `json:"-"`
}

type Flow struct {
	store   storage.Store
	gateway payment.Gateway
	ledger  Ledger
	logger  *slog.Logger
}

type Option func(*Flow)

func WithLedger(l Ledger) Option {
	return func(f *Flow) { f.ledger = l }
}

func WithLogger(l *slog.Logger) Option {
	return func(f *Flow) { f.logger = l }
}

func New(store storage.Store, gateway payment.Gateway, opts ...Option) *Flow {
	f := &Flow{store: store, gateway: gateway, logger: slog.Default()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Load returns the summary when the browser has a pending registration, the form otherwise.
func (f *Flow) Load(ctx context.Context, browserID string) (View, error) {
	reg, err := f.pending(ctx, browserID)
	if errors.Is(err, ErrNothingPending) {
		return View{State: StateForm}, nil
	}
	if err != nil {
		return View{}, err
	}
	return View{State: StateSummary, Registration: reg}, nil
}

// Submit validates, prices and stores a registration.
// A *enrollment.ValidationError comes back together with the form view carrying the notice.
func (f *Flow) Submit(ctx context.Context, browserID string, sub enrollment.Submission) (View, error) {
	current, err := f.Load(ctx, browserID)
	if err != nil {
		return View{}, err
	}
	if current.State == StateSummary {
		return current, ErrAlreadyPending
	}

	reg, quote, err := enrollment.NewRegistrant(sub)
	if err != nil {
		var verr *enrollment.ValidationError
		if errors.As(err, &verr) {
			return View{State: StateForm, Notice: errorNotice("¡Error!", verr.Message), Input: &sub}, err
		}
		return View{}, err
	}
	if quote.Miss {
		f.logger.Warn("frequency not in pricing table, amount set to 0",
			"browser_id", browserID, "age", reg.Age, "frequency", sub.Frequency)
	}

	raw, err := json.Marshal(reg)
	if err != nil {
		return View{}, fmt.Errorf("encode registration: %w", err)
	}
	if err := f.store.Set(ctx, browserID, enrollment.StorageKey, raw); err != nil {
		return View{}, err
	}

	f.logger.Info("registration stored", "browser_id", browserID, "amount_due", reg.AmountDue)
	return View{State: StateSummary, Registration: &reg}, nil
}

// Confirm finishes the registration: the slot is cleared and the empty form is shown.
func (f *Flow) Confirm(ctx context.Context, browserID string) (View, error) {
	reg, err := f.pending(ctx, browserID)
	if err != nil {
		return View{State: StateForm}, err
	}
	if err := f.store.Remove(ctx, browserID, enrollment.StorageKey); err != nil {
		return View{}, err
	}

	f.logger.Info("registration confirmed", "browser_id", browserID, "amount_due", reg.AmountDue)
	return View{
		State:  StateForm,
		Notice: successNotice("¡Gracias!", "Te has inscrito correctamente."),
	}, nil
}

// Edit discards the pending registration and returns to an empty form.
func (f *Flow) Edit(ctx context.Context, browserID string) (View, error) {
	if err := f.store.Remove(ctx, browserID, enrollment.StorageKey); err != nil {
		return View{}, err
	}
	return View{State: StateForm}, nil
}

// Pay makes a single payment attempt for the pending amount. The slot is never
// modified here; failures come back as a *PaymentError next to the summary view.
func (f *Flow) Pay(ctx context.Context, browserID string) (View, error) {
	reg, err := f.pending(ctx, browserID)
	if err != nil {
		return View{State: StateForm}, err
	}
	view := View{State: StateSummary, Registration: reg}

	receipt, err := f.gateway.Pay(ctx, payment.Request{
		Amount:      reg.AmountDue,
		Description: fmt.Sprintf("Inscripción %s %s", reg.FirstName, reg.LastName),
		Reference:   browserID,
	})
	f.record(ctx, browserID, reg.AmountDue, receipt, err)

	if err != nil {
		f.logger.Error("payment failed", "browser_id", browserID, "amount", reg.AmountDue, "error", err)
		view.Notice = errorNotice("Error", err.Error())
		return view, &PaymentError{Err: err}
	}

	if receipt.CheckoutURL != "" {
		view.RedirectURL = receipt.CheckoutURL
		return view, nil
	}

	view.Notice = successNotice("Pago Exitoso",
		fmt.Sprintf("Tu pago de $%s ha sido procesado correctamente.", receipt.Settled))
	return view, nil
}

func (f *Flow) pending(ctx context.Context, browserID string) (*enrollment.Registrant, error) {
	raw, err := f.store.Get(ctx, browserID, enrollment.StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNothingPending
	}
	if err != nil {
		return nil, err
	}

	var reg enrollment.Registrant
	if err := json.Unmarshal(raw, &reg); err != nil {
		// a corrupt slot is treated as empty, like a page that cannot parse its storage
		f.logger.Warn("discarding unreadable registration", "browser_id", browserID, "error", err)
		if rmErr := f.store.Remove(ctx, browserID, enrollment.StorageKey); rmErr != nil {
			return nil, rmErr
		}
		return nil, ErrNothingPending
	}
	return &reg, nil
}

func (f *Flow) record(ctx context.Context, browserID string, amount int64, receipt payment.Receipt, payErr error) {
	if f.ledger == nil {
		return
	}

	p := &billing.Payment{
		BrowserID: browserID,
		Provider:  f.gateway.Provider(),
		Amount:    amount,
	}
	switch {
	case errors.Is(payErr, payment.ErrRejected):
		p.Status = billing.StatusRejected
	case payErr != nil:
		p.Status = billing.StatusFailed
	case receipt.CheckoutURL != "":
		p.Status = billing.StatusPending
	default:
		p.Status = billing.StatusSettled
	}
	// a Checkout redirect settles later through the webhook
	if payErr != nil {
		msg := payErr.Error()
		p.Error = &msg
	} else if receipt.CheckoutURL == "" {
		settled := receipt.Settled
		p.Settled = &settled
	}
	if receipt.SessionID != "" {
		id := receipt.SessionID
		p.CheckoutSessionID = &id
	}

	if err := f.ledger.Record(context.WithoutCancel(ctx), p); err != nil {
		f.logger.Error("failed to record payment", "browser_id", browserID, "error", err)
	}
}
