package sale

type Status string

const (
	StatusAbierta Status = "abierta"
	StatusPagada  Status = "pagada"
	StatusAnulada Status = "anulada"
)

const (
	MethodEfectivo = "efectivo"
	MethodMixto    = "mixto"
)
