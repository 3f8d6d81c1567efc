package billing

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/dashboard-facturas/internal/application/dto"
	"github.com/jhoicas/dashboard-facturas/pkg/money"
)

// Claves del mapa de errores por campo que consume la UI.
const (
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
)

// Mensajes por campo.
const (
	msgSelectCustomer = "Please select a customer."
	msgAmountGTZero   = "Please enter an amount greater than $0."
	msgAmountTooLarge = "Please enter an amount no greater than $21,474,836.47."
	msgSelectStatus   = "Please select an invoice status."
)

// RawInput bolsa sin tipar tal como llega del formulario (form-data o JSON).
type RawInput map[string]any

// first devuelve el valor de la primera clave presente.
func (r RawInput) first(keys ...string) any {
	for _, k := range keys {
		if v, ok := r[k]; ok {
			return v
		}
	}
	return nil
}

// InvoiceInput registro tipado y validado de una factura. No incluye id ni fecha:
// el id viaja aparte y la fecha la asigna el servidor al crear.
type InvoiceInput struct {
	CustomerID string          `form:"customerId" validate:"required"`
	Amount     decimal.Decimal `form:"amount" validate:"gt=0"`
	Status     string          `form:"status" validate:"required,oneof=pending paid"`

	// Cents monto ya convertido a centavos, dentro de (0, money.MaxCents].
	Cents int64
}

// ValidationError errores por campo más un mensaje resumen. Nunca toca almacenamiento.
type ValidationError struct {
	Fields  map[string][]string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// State convierte el error al contrato de formulario.
func (e *ValidationError) State() *dto.FormState {
	return &dto.FormState{Errors: e.Fields, Message: e.Message}
}

// add agrega un mensaje al campo sin duplicarlo.
func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	for _, m := range e.Fields[field] {
		if m == msg {
			return
		}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// InvoiceSchema esquema de factura; Create y Update son sus dos variantes.
type InvoiceSchema struct {
	action string
}

var (
	// CreateInvoiceSchema variante de alta.
	CreateInvoiceSchema = InvoiceSchema{action: "Create"}
	// UpdateInvoiceSchema variante de edición.
	UpdateInvoiceSchema = InvoiceSchema{action: "Update"}
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("form")
	})
	// Permite aplicar gt=0 sobre decimal.Decimal.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Parse coacciona y valida la entrada. Devuelve *ValidationError si algún campo no cumple.
func (s InvoiceSchema) Parse(raw RawInput) (InvoiceInput, error) {
	in := InvoiceInput{
		CustomerID: coerceString(raw.first(FieldCustomerID, "customer_id")),
		Amount:     coerceDecimal(raw[FieldAmount]),
		Status:     coerceString(raw[FieldStatus]),
	}

	verr := &ValidationError{}
	if err := validate.Struct(in); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return InvoiceInput{}, err
		}
		for _, fe := range fieldErrs {
			verr.add(fe.Field(), fieldMessage(fe.Field()))
		}
	}
	if in.Amount.IsPositive() {
		cents, err := money.ToCents(in.Amount)
		switch {
		case err != nil || cents > money.MaxCents:
			verr.add(FieldAmount, msgAmountTooLarge)
		case cents <= 0:
			// Un monto positivo que redondea a 0 centavos tampoco es aceptable.
			verr.add(FieldAmount, msgAmountGTZero)
		default:
			in.Cents = cents
		}
	}

	if len(verr.Fields) > 0 {
		verr.Message = s.MissingFieldsMessage()
		return InvoiceInput{}, verr
	}
	return in, nil
}

// MissingFieldsMessage mensaje resumen de validación de la variante.
func (s InvoiceSchema) MissingFieldsMessage() string {
	return "Missing Fields. Failed to " + s.action + " Invoice."
}

// DatabaseErrorMessage mensaje genérico cuando falla el almacenamiento.
func (s InvoiceSchema) DatabaseErrorMessage() string {
	return "Database Error: Failed to " + s.action + " Invoice."
}

func fieldMessage(field string) string {
	switch field {
	case FieldCustomerID:
		return msgSelectCustomer
	case FieldAmount:
		return msgAmountGTZero
	case FieldStatus:
		return msgSelectStatus
	default:
		return "Invalid value."
	}
}

func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []string:
		if len(t) > 0 {
			return strings.TrimSpace(t[0])
		}
	}
	return ""
}

// coerceDecimal convierte texto o número a decimal. Lo que no es numérico queda en cero,
// y por tanto falla la regla gt=0.
func coerceDecimal(v any) decimal.Decimal {
	switch t := v.(type) {
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		if err != nil {
			return decimal.Zero
		}
		return d
	case []string:
		if len(t) > 0 {
			return coerceDecimal(t[0])
		}
	case json.Number:
		return coerceDecimal(t.String())
	case float64:
		return decimal.NewFromFloat(t)
	case float32:
		return decimal.NewFromFloat32(t)
	case int:
		return decimal.NewFromInt(int64(t))
	case int64:
		return decimal.NewFromInt(t)
	}
	return decimal.Zero
}
