package gateway

import (
	"context"
	"strconv"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"

	"github.com/BarberiaDigital/barberia-api/internal/httperr"
)

// MercadoPago verifica pagos en línea contra la pasarela. El método
// "mercadopago" de la caja lleva como referencia el id del pago en la
// pasarela; antes de asentarlo en el libro se comprueba que exista,
// esté aprobado y cubra el monto registrado. Sin token configurado el
// verificador queda nulo y la caja opera en modo libro puro.
type MercadoPago struct {
	payments payment.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	if accessToken == "" {
		return nil, nil
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &MercadoPago{payments: payment.NewClient(cfg)}, nil
}

func (g *MercadoPago) VerifyPayment(ctx context.Context, reference string, amount float64) error {
	if g == nil {
		return nil
	}

	id, err := strconv.Atoi(reference)
	if err != nil {
		return httperr.ErrBusiness("invalid_gateway_reference")
	}

	res, err := g.payments.Get(ctx, id)
	if err != nil {
		return httperr.ErrBusiness("gateway_payment_not_found")
	}

	if res.Status != "approved" || res.TransactionAmount < amount {
		return httperr.ErrBusiness("gateway_payment_rejected")
	}

	return nil
}
