package sale

import "github.com/BarberiaDigital/barberia-api/internal/models"

// Totals deriva total y pagado desde las líneas y pagos activos de la
// venta cargada. Es la única fuente de verdad del total: nunca se
// acepta un total enviado por el cliente.
func Totals(s *models.Sale) (total, paid float64) {
	for _, l := range s.ServiceLines {
		if l.Active {
			total += l.Subtotal
		}
	}
	for _, l := range s.ProductLines {
		if l.Active {
			total += l.Subtotal
		}
	}
	for _, p := range s.Payments {
		if p.Active {
			paid += p.Amount
		}
	}
	return total, paid
}

// NextStatus calcula el estado derivado. Anulada es pegajosa.
func NextStatus(current Status, total, paid float64) Status {
	if current == StatusAnulada {
		return StatusAnulada
	}
	if total > 0 && paid >= total {
		return StatusPagada
	}
	return StatusAbierta
}

// SummaryMethod pliega el método de pago resumen: el primero que paga
// lo fija, un segundo método distinto lo vuelve "mixto" sin retorno.
func SummaryMethod(current, incoming string) string {
	if current == "" {
		return incoming
	}
	if current == MethodMixto || current == incoming {
		return current
	}
	return MethodMixto
}

// Recompute aplica Totals + NextStatus sobre la venta en memoria y
// devuelve los derivados. Idempotente: llamarla dos veces no cambia nada.
func Recompute(s *models.Sale) (total, paid float64, status Status) {
	total, paid = Totals(s)
	status = NextStatus(Status(s.Status), total, paid)
	s.Total = total
	s.Status = string(status)
	return total, paid, status
}
