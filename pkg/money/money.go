// Package money convierte montos entre unidades mayores (dólares) y menores (centavos)
// y los formatea para mostrar. Los montos se guardan siempre en centavos enteros.
package money

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var hundred = decimal.NewFromInt(100)

// MaxCents mayor monto almacenable: la columna amount es INTEGER.
const MaxCents int64 = math.MaxInt32

// ErrOutOfRange el monto en centavos no cabe en un int64.
var ErrOutOfRange = errors.New("money: monto fuera de rango")

// ToCents convierte un monto en unidades mayores a centavos: round(A * 100).
// Nunca trunca: si el resultado no cabe en int64 devuelve ErrOutOfRange.
func ToCents(amount decimal.Decimal) (int64, error) {
	cents := amount.Mul(hundred).Round(0).BigInt()
	if !cents.IsInt64() {
		return 0, ErrOutOfRange
	}
	return cents.Int64(), nil
}

// FromCents convierte centavos a unidades mayores (M / 100).
func FromCents(cents int64) float64 {
	f, _ := decimal.NewFromInt(cents).Div(hundred).Float64()
	return f
}

// Formatter formatea centavos como texto de moneda para un locale.
type Formatter struct {
	p      *message.Printer
	symbol string
}

// NewFormatter construye un formateador. Un locale inválido cae a en-US.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	return &Formatter{p: message.NewPrinter(tag), symbol: "$"}
}

// Format devuelve, p.ej., "$1,234.56" para 123456 centavos.
func (f *Formatter) Format(cents int64) string {
	return f.FormatDecimal(decimal.NewFromInt(cents))
}

// FormatDecimal formatea una suma en centavos obtenida como NUMERIC.
func (f *Formatter) FormatDecimal(cents decimal.Decimal) string {
	major := cents.Round(0).Div(hundred)
	sign := ""
	if major.IsNegative() {
		sign, major = "-", major.Neg()
	}
	v, _ := major.Float64()
	return sign + f.symbol + f.p.Sprintf("%.2f", v)
}

var defaultFormatter = NewFormatter("en-US")

// FormatCurrency formatea con el locale por defecto (en-US).
func FormatCurrency(cents int64) string {
	return defaultFormatter.Format(cents)
}
