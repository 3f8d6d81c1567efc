package billing_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dashboard-facturas/internal/application/billing"
)

func TestInvoiceSchema_ParseOK(t *testing.T) {
	in, err := billing.CreateInvoiceSchema.Parse(billing.RawInput{
		"customerId": "C1",
		"amount":     "250.00",
		"status":     "pending",
	})
	require.NoError(t, err)
	assert.Equal(t, "C1", in.CustomerID)
	assert.Equal(t, "250", in.Amount.String())
	assert.Equal(t, "pending", in.Status)
	assert.Equal(t, int64(25000), in.Cents)
}

func TestInvoiceSchema_MontoMaximo(t *testing.T) {
	in, err := billing.CreateInvoiceSchema.Parse(billing.RawInput{
		"customerId": "C1", "amount": "21474836.47", "status": "paid",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2147483647), in.Cents)

	for _, amount := range []string{"21474836.48", "92233720368547758.08", "184467440737095516.17"} {
		_, err := billing.CreateInvoiceSchema.Parse(billing.RawInput{
			"customerId": "C1", "amount": amount, "status": "paid",
		})
		var verr *billing.ValidationError
		require.ErrorAs(t, err, &verr, amount)
		assert.Equal(t, []string{"Please enter an amount no greater than $21,474,836.47."}, verr.Fields[billing.FieldAmount], amount)
	}
}

func TestInvoiceSchema_AceptaClaveSnakeYNumeros(t *testing.T) {
	cases := []any{float64(12.5), json.Number("12.5"), 12, int64(12)}
	for _, amount := range cases {
		in, err := billing.UpdateInvoiceSchema.Parse(billing.RawInput{
			"customer_id": "C1",
			"amount":      amount,
			"status":      "paid",
		})
		require.NoError(t, err, "amount %v", amount)
		assert.True(t, in.Amount.IsPositive())
	}
}

func TestInvoiceSchema_ErroresPorCampo(t *testing.T) {
	_, err := billing.CreateInvoiceSchema.Parse(billing.RawInput{})
	require.Error(t, err)

	var verr *billing.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Missing Fields. Failed to Create Invoice.", verr.Message)
	assert.Equal(t, []string{"Please select a customer."}, verr.Fields[billing.FieldCustomerID])
	assert.Equal(t, []string{"Please enter an amount greater than $0."}, verr.Fields[billing.FieldAmount])
	assert.Equal(t, []string{"Please select an invoice status."}, verr.Fields[billing.FieldStatus])

	state := verr.State()
	assert.Equal(t, verr.Message, state.Message)
	assert.Len(t, state.Errors, 3)
}

func TestInvoiceSchema_Monto(t *testing.T) {
	for _, amount := range []any{"0", "-3", "abc", "", "0.004", nil} {
		_, err := billing.UpdateInvoiceSchema.Parse(billing.RawInput{
			"customerId": "C1",
			"amount":     amount,
			"status":     "paid",
		})
		var verr *billing.ValidationError
		require.ErrorAs(t, err, &verr, "amount %v", amount)
		assert.Equal(t, "Missing Fields. Failed to Update Invoice.", verr.Message)
		assert.Equal(t, []string{"Please enter an amount greater than $0."}, verr.Fields[billing.FieldAmount])
		assert.NotContains(t, verr.Fields, billing.FieldStatus)
	}
}

func TestInvoiceSchema_EstadoFueraDelEnum(t *testing.T) {
	_, err := billing.CreateInvoiceSchema.Parse(billing.RawInput{
		"customerId": "C1",
		"amount":     "10",
		"status":     "overdue",
	})
	var verr *billing.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"Please select an invoice status."}, verr.Fields[billing.FieldStatus])
}
