package sale

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BarberiaDigital/barberia-api/internal/domain/sale"
	"github.com/BarberiaDigital/barberia-api/internal/events"
	"github.com/BarberiaDigital/barberia-api/internal/gateway"
	"github.com/BarberiaDigital/barberia-api/internal/httperr"
	"github.com/BarberiaDigital/barberia-api/internal/models"
	"github.com/BarberiaDigital/barberia-api/internal/timezone"
)

const methodMercadoPago = "mercadopago"

type RegisterPaymentInput struct {
	SaleID    uint
	Method    string
	Amount    float64
	Reference string

	ActorID uint
}

type RegisterPayment struct {
	repo    domain.Repository
	gateway *gateway.MercadoPago
	events  *events.Dispatcher
}

func NewRegisterPayment(
	repo domain.Repository,
	gw *gateway.MercadoPago,
	ev *events.Dispatcher,
) *RegisterPayment {
	return &RegisterPayment{repo: repo, gateway: gw, events: ev}
}

func (uc *RegisterPayment) Execute(
	ctx context.Context,
	in RegisterPaymentInput,
) (Summary, error) {

	if in.Amount <= 0 {
		return Summary{}, httperr.ErrBusiness(httperr.CodeInvalidAmount)
	}
	if in.Method == "" {
		return Summary{}, httperr.ErrBusiness("invalid_method")
	}

	// La verificación contra la pasarela es una llamada de red: va
	// antes de abrir la transacción, nunca dentro.
	if in.Method == methodMercadoPago && in.Reference != "" {
		if err := uc.gateway.VerifyPayment(ctx, in.Reference, in.Amount); err != nil {
			return Summary{}, err
		}
	}

	reference := in.Reference
	if reference == "" {
		reference = uuid.NewString()
	}

	var out Summary

	err := uc.repo.Transact(ctx, func(tr domain.Repository) error {

		s, err := tr.GetSale(ctx, in.SaleID)
		if err != nil {
			return httperr.ErrBusiness("sale_not_found")
		}

		if domain.Status(s.Status) == domain.StatusAnulada {
			return httperr.ErrBusiness(httperr.CodeSaleVoided)
		}

		p := &models.Payment{
			SaleID:    s.ID,
			Method:    in.Method,
			Amount:    in.Amount,
			Reference: reference,
			Active:    true,
			PaidAt:    timezone.Now(),
		}

		if err := tr.CreatePayment(ctx, p); err != nil {
			return err
		}

		s.PaymentMethod = domain.SummaryMethod(s.PaymentMethod, in.Method)
		if err := tr.SaveSale(ctx, s); err != nil {
			return err
		}

		_, out, err = recomputeAndSave(ctx, tr, s.ID)
		return err
	})

	if err != nil {
		return Summary{}, err
	}

	uc.events.Dispatch(events.Event{
		Action:   "sale_payment_registered",
		Entity:   "sale",
		EntityID: in.SaleID,
		ActorID:  in.ActorID,
		Metadata: map[string]any{"method": in.Method, "amount": in.Amount},
	})

	return out, nil
}
